package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sadia-akter/trimly/services/booking-service/internal/calendar"
	"github.com/sadia-akter/trimly/services/booking-service/internal/model"
	"github.com/sadia-akter/trimly/services/booking-service/internal/scheduling"
	"github.com/sadia-akter/trimly/services/booking-service/internal/slots"
)

func testConfig() scheduling.Config {
	var days [7]calendar.DayRule
	for wd := 1; wd <= 5; wd++ {
		days[wd] = calendar.DayRule{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	}
	return scheduling.Config{
		Calendar: calendar.Calendar{
			Days:        days,
			Granularity: 30 * time.Minute,
			MinLead:     time.Hour,
			MaxAdvance:  30,
		},
		DurationMinutes:        30,
		ShortestServiceMinutes: 30,
		Timezone:               "UTC",
	}
}

func TestResolveDay_CarvesTimeOff(t *testing.T) {
	cfg := testConfig()
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	cfg.TimeOff = []slots.Interval{
		{Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)},
	}
	now := day.AddDate(0, 0, -1)

	resolved := resolveDay(cfg, day.Add(9*time.Hour), day.Add(18*time.Hour), nil, now)
	for _, s := range resolved {
		local := s.Start.Hour()
		if local == 12 {
			t.Fatalf("slot inside time off should not appear: %s", s.Start.Format("15:04"))
		}
	}
	// 09:00..11:30 and 13:00..17:30 grids: 6 + 10 slots.
	if len(resolved) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(resolved))
	}
}

func TestResolveDay_GapPrevention(t *testing.T) {
	cfg := testConfig()
	cfg.Calendar.PreventGaps = true
	cfg.DurationMinutes = 60
	cfg.ShortestServiceMinutes = 30
	cfg.Calendar.Granularity = 15 * time.Minute
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, -1)

	busy := []slots.Interval{
		{Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)},
	}
	resolved := resolveDay(cfg, day.Add(9*time.Hour), day.Add(18*time.Hour), busy, now)
	for _, s := range resolved {
		// A 60m booking at 09:45 would end 10:45 and orphan 15 minutes
		// before the 11:00 appointment.
		if s.Start.Equal(day.Add(9*time.Hour + 45*time.Minute)) {
			t.Fatal("gap-stranding start should be filtered")
		}
	}
}

func TestResolveDay_MarksBusyConflict(t *testing.T) {
	cfg := testConfig()
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, -1)
	busy := []slots.Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)},
	}

	resolved := resolveDay(cfg, day.Add(9*time.Hour), day.Add(18*time.Hour), busy, now)
	var found bool
	for _, s := range resolved {
		if s.Start.Equal(day.Add(10 * time.Hour)) {
			found = true
			if s.Status != slots.StatusConflict {
				t.Fatalf("10:00 should be conflict, got %s", s.Status)
			}
		} else if s.Status != slots.StatusAvailable {
			t.Fatalf("%s should be available, got %s", s.Start.Format("15:04"), s.Status)
		}
	}
	if !found {
		t.Fatal("10:00 slot missing from the grid")
	}
}

func TestParseLocalStart(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got, err := parseLocalStart("2026-01-28", "14:30", loc)
	if err != nil {
		t.Fatalf("parseLocalStart failed: %v", err)
	}
	want := time.Date(2026, 1, 28, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if _, err := parseLocalStart("2026-01-28", "25:00", loc); err == nil {
		t.Fatal("expected error for invalid time")
	}
}

func TestAppointmentEventPayload(t *testing.T) {
	start := time.Date(2026, 1, 28, 14, 0, 0, 0, time.UTC)
	appt := &model.Appointment{
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		StaffID:       "staff-1",
		CustomerName:  "Nadia",
		CustomerEmail: "nadia@example.com",
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        model.StatusConfirmed,
	}

	raw, err := appointmentEventPayload("appt-1", appt, map[string]any{"reason": "no-show"})
	if err != nil {
		t.Fatalf("payload build failed: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["appointment_id"] != "appt-1" || payload["status"] != "confirmed" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["start_time"] != "2026-01-28T14:00:00Z" {
		t.Fatalf("start_time not RFC3339 UTC: %v", payload["start_time"])
	}
	if payload["reason"] != "no-show" {
		t.Fatalf("extra fields not merged: %v", payload)
	}
}
