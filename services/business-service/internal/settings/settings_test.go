package settings

import (
	"errors"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Defaults()

	cases := []struct {
		name   string
		mutate func(*BookingSettings)
		ok     bool
	}{
		{"automatic mode", func(s *BookingSettings) { s.ApprovalMode = ApprovalAutomatic }, true},
		{"vip mode", func(s *BookingSettings) { s.ApprovalMode = ApprovalVIP }, true},
		{"unknown mode", func(s *BookingSettings) { s.ApprovalMode = "instant" }, false},
		{"lead min", func(s *BookingSettings) { s.MinLeadMinutes = 15 }, true},
		{"lead max", func(s *BookingSettings) { s.MinLeadMinutes = 240 }, true},
		{"lead below min", func(s *BookingSettings) { s.MinLeadMinutes = 0 }, false},
		{"lead above max", func(s *BookingSettings) { s.MinLeadMinutes = 255 }, false},
		{"lead off step", func(s *BookingSettings) { s.MinLeadMinutes = 50 }, false},
		{"advance min", func(s *BookingSettings) { s.MaxAdvanceDays = 7 }, true},
		{"advance max", func(s *BookingSettings) { s.MaxAdvanceDays = 90 }, true},
		{"advance below min", func(s *BookingSettings) { s.MaxAdvanceDays = 6 }, false},
		{"advance above max", func(s *BookingSettings) { s.MaxAdvanceDays = 91 }, false},
		{"change min", func(s *BookingSettings) { s.MinChangeMinutes = 60 }, true},
		{"change max", func(s *BookingSettings) { s.MinChangeMinutes = 1440 }, true},
		{"change off step", func(s *BookingSettings) { s.MinChangeMinutes = 75 }, false},
		{"change below min", func(s *BookingSettings) { s.MinChangeMinutes = 30 }, false},
		{"granularity 5", func(s *BookingSettings) { s.SlotGranularityMinutes = 5 }, true},
		{"granularity 60", func(s *BookingSettings) { s.SlotGranularityMinutes = 60 }, true},
		{"granularity 45", func(s *BookingSettings) { s.SlotGranularityMinutes = 45 }, false},
		{"granularity 0", func(s *BookingSettings) { s.SlotGranularityMinutes = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			err := s.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("expected ErrOutOfRange, got %v", err)
				}
			}
		})
	}
}

func TestDefaultWeek(t *testing.T) {
	week := DefaultWeek()
	if err := week.Validate(); err != nil {
		t.Fatalf("default week must validate: %v", err)
	}
	if week[0].Open || week[6].Open {
		t.Fatal("weekend should be closed by default")
	}
	for wd := 1; wd <= 5; wd++ {
		if !week[wd].Open || week[wd].OpenMinute != 540 || week[wd].CloseMinute != 1080 {
			t.Fatalf("weekday %d: expected 09:00-18:00, got %+v", wd, week[wd])
		}
	}
}

func TestWeekCalendarValidate(t *testing.T) {
	week := DefaultWeek()

	week[1].CloseMinute = week[1].OpenMinute
	if err := week.Validate(); err == nil {
		t.Fatal("expected error for zero-length day")
	}

	week = DefaultWeek()
	week[2].CloseMinute = 1441
	if err := week.Validate(); err == nil {
		t.Fatal("expected error for close past midnight")
	}

	week = DefaultWeek()
	week[0].OpenMinute = 540 // closed day carrying hours
	if err := week.Validate(); err == nil {
		t.Fatal("expected error for closed day with hours")
	}

	week = DefaultWeek()
	week[6] = DayRule{Open: true, OpenMinute: 0, CloseMinute: 1440}
	if err := week.Validate(); err != nil {
		t.Fatalf("24h day should validate: %v", err)
	}
}
