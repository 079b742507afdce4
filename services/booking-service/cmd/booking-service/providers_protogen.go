//go:build protogen

package main

import (
	"log/slog"

	"github.com/sadia-akter/trimly/libs/config"
	"github.com/sadia-akter/trimly/services/booking-service/internal/approval"
	"github.com/sadia-akter/trimly/services/booking-service/internal/policy"
	"github.com/sadia-akter/trimly/services/booking-service/internal/scheduling"
)

// With generated protos available, BUSINESS_GRPC_ADDR switches both lookups
// to business-service's gRPC endpoint. HTTP stays the default.
func newSchedulingProvider(logger *slog.Logger, baseURL string) scheduling.Provider {
	addr := config.String("BUSINESS_GRPC_ADDR", "")
	if addr != "" {
		p, err := scheduling.NewGRPCProvider(addr)
		if err == nil && p != nil {
			logger.Info("grpc availability provider enabled", "addr", addr)
			return p
		}
		logger.Warn("grpc availability provider unavailable, using http", "err", err)
	}
	return scheduling.NewHTTPProvider(baseURL)
}

func newPolicyPrimary(logger *slog.Logger, baseURL string) policy.Provider {
	addr := config.String("BUSINESS_GRPC_ADDR", "")
	if addr != "" {
		fallback := policy.BookingPolicy{ApprovalMode: approval.ModeManual, MinChangeMinutes: 120}
		p, err := policy.NewGRPCProvider(logger, fallback, addr)
		if err == nil {
			return p
		}
		logger.Warn("grpc policy provider unavailable, using http", "err", err)
	}
	return policy.NewHTTPProvider(baseURL)
}
