//go:build protogen

package policy

import (
	"context"
	"log/slog"
	"time"

	"github.com/sadia-akter/trimly/libs/grpcx"
	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"

	businessv1 "github.com/sadia-akter/trimly/protos/gen/business/v1"
)

type grpcProvider struct {
	client businessv1.BusinessServiceClient
}

// NewGRPCProvider dials business-service for booking policy lookups. When
// addr is empty or the dial fails it degrades to the static fallback.
func NewGRPCProvider(logger *slog.Logger, fallback BookingPolicy, addr string) (Provider, error) {
	if addr == "" {
		return NewStaticProvider(fallback), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpcx.Dial(ctx, addr, grpcx.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		logger.Warn("grpc policy provider unavailable, using fallback", "err", err)
		return NewStaticProvider(fallback), nil
	}

	logger.Info("grpc policy provider enabled", "addr", addr)
	return &grpcProvider{client: businessv1.NewBusinessServiceClient(conn)}, nil
}

func (p *grpcProvider) BookingPolicy(ctx context.Context, businessID, customerRef string) (BookingPolicy, error) {
	resp, err := p.client.GetBookingPolicy(ctx, &businessv1.BookingPolicyRequest{
		BusinessId:  businessID,
		CustomerRef: customerRef,
	})
	if err != nil {
		return BookingPolicy{}, err
	}
	mode, err := approval.ParseMode(resp.GetApprovalMode())
	if err != nil {
		mode = approval.ModeManual
	}
	return BookingPolicy{
		ApprovalMode:     mode,
		VIP:              resp.GetVip(),
		MinChangeMinutes: int(resp.GetMinChangeMinutes()),
	}, nil
}
