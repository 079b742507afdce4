//go:build protogen

package scheduling

import (
	"context"
	"time"

	"github.com/sadia-akter/trimly/libs/grpcx"
	"github.com/sadia-akter/trimly/services/booking-service/internal/calendar"
	"github.com/sadia-akter/trimly/services/booking-service/internal/slots"

	businessv1 "github.com/sadia-akter/trimly/protos/gen/business/v1"
)

type grpcProvider struct {
	client businessv1.BusinessServiceClient
}

// NewGRPCProvider dials business-service's gRPC endpoint. Returns nil when
// addr is empty so callers can fall back to the HTTP provider.
func NewGRPCProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: businessv1.NewBusinessServiceClient(conn)}, nil
}

func (p *grpcProvider) GetAvailabilityConfig(ctx context.Context, businessID, serviceID, staffID, date string) (Config, error) {
	resp, err := p.client.GetAvailabilityConfig(ctx, &businessv1.AvailabilityConfigRequest{
		BusinessId: businessID,
		ServiceId:  serviceID,
		StaffId:    staffID,
		Date:       date,
	})
	if err != nil {
		return Config{}, err
	}

	loc, err := time.LoadLocation(resp.GetTimezone())
	if err != nil {
		loc = time.UTC
	}

	var days [7]calendar.DayRule
	for i, d := range resp.GetDays() {
		if i >= len(days) {
			break
		}
		days[i] = calendar.DayRule{
			Open:        d.GetOpen(),
			OpenMinute:  int(d.GetOpenMinute()),
			CloseMinute: int(d.GetCloseMinute()),
		}
	}

	cfg := Config{
		Calendar: calendar.Calendar{
			Days:        days,
			Granularity: time.Duration(resp.GetSlotGranularityMinutes()) * time.Minute,
			MinLead:     time.Duration(resp.GetMinLeadMinutes()) * time.Minute,
			MinChange:   time.Duration(resp.GetMinChangeMinutes()) * time.Minute,
			MaxAdvance:  int(resp.GetMaxAdvanceDays()),
			PreventGaps: resp.GetPreventGaps(),
			Location:    loc,
		},
		DurationMinutes:        int(resp.GetDurationMinutes()),
		ShortestServiceMinutes: int(resp.GetShortestServiceMinutes()),
		Timezone:               resp.GetTimezone(),
	}
	for _, t := range resp.GetTimeOff() {
		if t.GetStart() == nil || t.GetEnd() == nil {
			continue
		}
		start := t.GetStart().AsTime()
		end := t.GetEnd().AsTime()
		if end.After(start) {
			cfg.TimeOff = append(cfg.TimeOff, slots.Interval{Start: start, End: end})
		}
	}
	return cfg, nil
}
