//go:build protogen

package grpcserver

import (
	"context"
	"time"

	"github.com/sadia-akter/trimly/libs/db"
	businessv1 "github.com/sadia-akter/trimly/protos/gen/business/v1"
	"github.com/sadia-akter/trimly/services/business-service/internal/settings"
	"github.com/sadia-akter/trimly/services/business-service/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type server struct {
	businessv1.UnimplementedBusinessServiceServer
	pool *db.Pool
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, pool *db.Pool, repo *storage.Repository) {
	businessv1.RegisterBusinessServiceServer(grpcServer, &server{pool: pool, repo: repo})
}

func (s *server) GetAvailabilityConfig(ctx context.Context, req *businessv1.AvailabilityConfigRequest) (*businessv1.AvailabilityConfigResponse, error) {
	if req.GetBusinessId() == "" || req.GetServiceId() == "" || req.GetDate() == "" {
		return nil, status.Error(codes.InvalidArgument, "business_id, service_id, and date are required")
	}

	profile, err := s.repo.GetOrCreateProfile(ctx, req.GetBusinessId())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load profile")
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation("2006-01-02", req.GetDate(), loc)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid date")
	}

	duration, err := s.repo.GetServiceDuration(ctx, req.GetBusinessId(), req.GetServiceId())
	if err != nil {
		return nil, status.Error(codes.NotFound, "service not found")
	}

	cfg, err := s.repo.GetSettings(ctx, req.GetBusinessId())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load settings")
	}
	week, err := s.repo.GetWeekCalendar(ctx, req.GetBusinessId())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load calendar")
	}

	resp := &businessv1.AvailabilityConfigResponse{
		SlotGranularityMinutes: int32(cfg.SlotGranularityMinutes),
		MinLeadMinutes:         int32(cfg.MinLeadMinutes),
		MaxAdvanceDays:         int32(cfg.MaxAdvanceDays),
		MinChangeMinutes:       int32(cfg.MinChangeMinutes),
		PreventGaps:            cfg.PreventGaps,
		DurationMinutes:        int32(duration),
		Timezone:               profile.Timezone,
	}

	if staffID := req.GetStaffId(); staffID != "" {
		hours, err := s.repo.ListWorkingHours(ctx, req.GetBusinessId(), staffID)
		if err != nil {
			return nil, status.Error(codes.Internal, "failed to load working hours")
		}
		if len(hours) > 0 {
			var staffWeek settings.WeekCalendar
			for _, wh := range hours {
				if wh.Weekday < 0 || wh.Weekday > 6 {
					continue
				}
				staffWeek[wh.Weekday] = settings.DayRule{
					Open:        wh.IsWorking,
					OpenMinute:  wh.StartMinute,
					CloseMinute: wh.EndMinute,
				}
			}
			week = staffWeek
		}

		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		entries, err := s.repo.ListTimeOff(ctx, req.GetBusinessId(), staffID, dayStart, dayStart.AddDate(0, 0, 1), 100)
		if err != nil {
			return nil, status.Error(codes.Internal, "failed to load time off")
		}
		for _, t := range entries {
			resp.TimeOff = append(resp.TimeOff, &businessv1.TimeOffInterval{
				Start: timestamppb.New(t.StartTime),
				End:   timestamppb.New(t.EndTime),
			})
		}
	}

	for _, rule := range week {
		resp.Days = append(resp.Days, &businessv1.DayRule{
			Open:        rule.Open,
			OpenMinute:  int32(rule.OpenMinute),
			CloseMinute: int32(rule.CloseMinute),
		})
	}

	shortest, err := s.repo.ShortestServiceDuration(ctx, req.GetBusinessId())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load services")
	}
	resp.ShortestServiceMinutes = int32(shortest)

	return resp, nil
}

func (s *server) GetBookingPolicy(ctx context.Context, req *businessv1.BookingPolicyRequest) (*businessv1.BookingPolicyResponse, error) {
	if req.GetBusinessId() == "" {
		return nil, status.Error(codes.InvalidArgument, "business_id required")
	}

	cfg, err := s.repo.GetSettings(ctx, req.GetBusinessId())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load settings")
	}
	vip, err := s.repo.IsVIP(ctx, req.GetBusinessId(), req.GetCustomerRef())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to check vip status")
	}

	return &businessv1.BookingPolicyResponse{
		ApprovalMode:     cfg.ApprovalMode,
		Vip:              vip,
		MinChangeMinutes: int32(cfg.MinChangeMinutes),
	}, nil
}
