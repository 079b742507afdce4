// Package calendar models a business's weekly opening schedule and booking
// policy and answers whether (and when) a business is open on a given date.
package calendar

import (
	"errors"
	"time"
)

var (
	// ErrClosed means the weekday is not an open day for the business.
	ErrClosed = errors.New("business is closed on this day")
	// ErrTooFarAhead means the date is beyond the bookable horizon.
	ErrTooFarAhead = errors.New("date is beyond the advance booking window")
	// ErrTooEarly means the whole day is already inside the lead-time window.
	ErrTooEarly = errors.New("date is inside the minimum lead window")
)

// DayRule is one weekday's opening rule. Open and close are minutes from
// midnight in the business's timezone; a closed day carries zeros.
type DayRule struct {
	Open        bool `json:"open"`
	OpenMinute  int  `json:"open_minute"`
	CloseMinute int  `json:"close_minute"`
}

// Calendar is the full booking configuration for one business: seven day
// rules indexed by time.Weekday (0=Sunday..6=Saturday) plus the policy knobs
// the slot pipeline needs.
type Calendar struct {
	Days        [7]DayRule
	Granularity time.Duration // candidate slot step
	MinLead     time.Duration // earliest a booking may start relative to now
	MinChange   time.Duration // notice required to cancel or reschedule
	MaxAdvance  int           // furthest bookable day, in days from today
	PreventGaps bool
	Location    *time.Location
}

func (c Calendar) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

// RuleFor returns the day rule applying to the given date.
func (c Calendar) RuleFor(date time.Time) DayRule {
	return c.Days[int(date.Weekday())]
}

// Window returns the open interval [start, end) for the given date, or a
// typed reason the date is not bookable at all. now decides both the advance
// horizon and whether the day is already unreachable behind the lead window.
// Pure function of (calendar, date, now).
func (c Calendar) Window(date time.Time, now time.Time) (start, end time.Time, err error) {
	loc := c.loc()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	rule := c.RuleFor(day)
	if !rule.Open || rule.CloseMinute <= rule.OpenMinute {
		return time.Time{}, time.Time{}, ErrClosed
	}

	nowLocal := now.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	if c.MaxAdvance > 0 && day.After(today.AddDate(0, 0, c.MaxAdvance)) {
		return time.Time{}, time.Time{}, ErrTooFarAhead
	}

	start = day.Add(time.Duration(rule.OpenMinute) * time.Minute)
	end = day.Add(time.Duration(rule.CloseMinute) * time.Minute)

	// A day whose closing time is already behind now+MinLead cannot hold any
	// slot; per-candidate lead filtering handles the partial-day case.
	if !end.After(now.Add(c.MinLead)) {
		return time.Time{}, time.Time{}, ErrTooEarly
	}
	return start, end, nil
}
