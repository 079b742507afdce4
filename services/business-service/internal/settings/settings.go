// Package settings defines the per-business booking configuration and the
// bounds the settings UI offers. Values arriving outside the bounds are
// rejected, not clamped.
package settings

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("setting out of range")

// Approval modes for new appointments.
const (
	ApprovalManual    = "manual"
	ApprovalAutomatic = "automatic"
	ApprovalVIP       = "vip"
)

// BookingSettings is the full settings row. Updates replace the whole row;
// there is no per-field patching.
type BookingSettings struct {
	ApprovalMode           string `json:"approval_mode"`
	MinLeadMinutes         int    `json:"min_lead_minutes"`
	MaxAdvanceDays         int    `json:"max_advance_days"`
	MinChangeMinutes       int    `json:"min_change_minutes"`
	SlotGranularityMinutes int    `json:"slot_granularity_minutes"`
	PreventGaps            bool   `json:"prevent_gaps"`
}

// Defaults returns the settings a business starts with.
func Defaults() BookingSettings {
	return BookingSettings{
		ApprovalMode:           ApprovalManual,
		MinLeadMinutes:         60,
		MaxAdvanceDays:         30,
		MinChangeMinutes:       120,
		SlotGranularityMinutes: 30,
		PreventGaps:            false,
	}
}

var granularityChoices = map[int]bool{5: true, 10: true, 15: true, 20: true, 30: true, 60: true}

// Validate checks every field against the ranges the settings UI offers:
// lead time 15..240 in steps of 15, advance horizon 7..90 days, change
// notice 60..1440 in steps of 30.
func (s BookingSettings) Validate() error {
	switch s.ApprovalMode {
	case ApprovalManual, ApprovalAutomatic, ApprovalVIP:
	default:
		return fmt.Errorf("%w: approval_mode %q", ErrOutOfRange, s.ApprovalMode)
	}
	if s.MinLeadMinutes < 15 || s.MinLeadMinutes > 240 || s.MinLeadMinutes%15 != 0 {
		return fmt.Errorf("%w: min_lead_minutes %d", ErrOutOfRange, s.MinLeadMinutes)
	}
	if s.MaxAdvanceDays < 7 || s.MaxAdvanceDays > 90 {
		return fmt.Errorf("%w: max_advance_days %d", ErrOutOfRange, s.MaxAdvanceDays)
	}
	if s.MinChangeMinutes < 60 || s.MinChangeMinutes > 1440 || s.MinChangeMinutes%30 != 0 {
		return fmt.Errorf("%w: min_change_minutes %d", ErrOutOfRange, s.MinChangeMinutes)
	}
	if !granularityChoices[s.SlotGranularityMinutes] {
		return fmt.Errorf("%w: slot_granularity_minutes %d", ErrOutOfRange, s.SlotGranularityMinutes)
	}
	return nil
}

// DayRule is one weekday's opening hours at the business level.
type DayRule struct {
	Open        bool `json:"open"`
	OpenMinute  int  `json:"open_minute"`
	CloseMinute int  `json:"close_minute"`
}

// WeekCalendar holds the seven day rules indexed 0=Sunday..6=Saturday.
type WeekCalendar [7]DayRule

// DefaultWeek is Mon-Fri 09:00-18:00, closed weekends.
func DefaultWeek() WeekCalendar {
	var week WeekCalendar
	for wd := 1; wd <= 5; wd++ {
		week[wd] = DayRule{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	}
	return week
}

// Validate rejects malformed day rules. Closed days must carry zero minutes.
func (w WeekCalendar) Validate() error {
	for wd, rule := range w {
		if !rule.Open {
			if rule.OpenMinute != 0 || rule.CloseMinute != 0 {
				return fmt.Errorf("%w: weekday %d closed but has hours", ErrOutOfRange, wd)
			}
			continue
		}
		if rule.OpenMinute < 0 || rule.OpenMinute >= 1440 ||
			rule.CloseMinute <= 0 || rule.CloseMinute > 1440 ||
			rule.OpenMinute >= rule.CloseMinute {
			return fmt.Errorf("%w: weekday %d hours %d-%d", ErrOutOfRange, wd, rule.OpenMinute, rule.CloseMinute)
		}
	}
	return nil
}
