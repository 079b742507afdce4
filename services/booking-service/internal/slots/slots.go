// Package slots computes the offerable appointment slots for one day: the
// candidate grid from the open window, lead-time and gap-prevention filters,
// and conflict marking against already-booked intervals.
package slots

import (
	"errors"
	"time"
)

// Selection never substitutes a neighbouring slot: the requested start either
// matches a resolved available slot or the booking is rejected.
var (
	// ErrInvalidSelection means the requested start is not on the slot grid.
	ErrInvalidSelection = errors.New("selected time is not a bookable slot")
	// ErrSlotTaken means the requested start is on the grid but occupied.
	ErrSlotTaken = errors.New("selected slot is already taken")
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports half-open interval overlap: [a.Start,a.End) intersects
// [b.Start,b.End) iff a.Start < b.End && b.Start < a.End. Exact to the
// instant; no rounding tolerance.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusConflict  Status = "conflict"
)

type Slot struct {
	Start  time.Time
	Status Status
}

// Candidates emits starts at windowStart, windowStart+step, ... while
// start+duration fits before windowEnd, dropping starts inside the lead
// window (start < now+minLead). On future dates the lead filter is inert
// because every start is already past it.
func Candidates(windowStart, windowEnd time.Time, duration, step time.Duration, now time.Time, minLead time.Duration) []time.Time {
	if duration <= 0 || step <= 0 || !windowEnd.After(windowStart) {
		return nil
	}
	earliest := now.Add(minLead)

	var out []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if t.Before(earliest) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterGaps drops candidates that would strand a dead gap: a positive gap
// shorter than minFill between the candidate's end and the next fixed
// boundary (the first busy interval starting at or after the candidate's
// end, else windowEnd). busy must be sorted ascending by Start. With
// minFill <= 0 the filter is a no-op.
func FilterGaps(candidates []time.Time, duration time.Duration, busy []Interval, windowEnd time.Time, minFill time.Duration) []time.Time {
	if minFill <= 0 || len(candidates) == 0 {
		return candidates
	}

	out := candidates[:0:0]
	i := 0
	for _, start := range candidates {
		end := start.Add(duration)
		for i < len(busy) && busy[i].Start.Before(end) {
			i++
		}
		boundary := windowEnd
		if i < len(busy) && busy[i].Start.Before(windowEnd) {
			boundary = busy[i].Start
		}
		gap := boundary.Sub(end)
		if gap > 0 && gap < minFill {
			continue
		}
		out = append(out, start)
	}
	return out
}

// Resolve marks every candidate available or conflict against the busy
// intervals, preserving candidate order. Pure: identical inputs always yield
// identical output.
func Resolve(candidates []time.Time, busy []Interval, duration time.Duration) []Slot {
	out := make([]Slot, 0, len(candidates))
	for _, start := range candidates {
		slot := Slot{Start: start, Status: StatusAvailable}
		if overlapsAny(Interval{Start: start, End: start.Add(duration)}, busy) {
			slot.Status = StatusConflict
		}
		out = append(out, slot)
	}
	return out
}

// Select validates that the requested start is one of the resolved slots and
// is available. A conflict-marked slot fails with ErrSlotTaken, the same
// error an exclusion-constraint loss at commit maps to: in both cases the
// slot exists but is occupied, and the caller re-fetches and retries. Only a
// start that is not on the grid at all fails with ErrInvalidSelection.
func Select(resolved []Slot, start time.Time) (Slot, error) {
	for _, s := range resolved {
		if s.Start.Equal(start) {
			if s.Status != StatusAvailable {
				return Slot{}, ErrSlotTaken
			}
			return s, nil
		}
	}
	return Slot{}, ErrInvalidSelection
}

// ForWindow runs the full pipeline for one open window: candidate grid,
// lead filter, optional gap prevention, then conflict marking.
func ForWindow(windowStart, windowEnd time.Time, duration, step time.Duration, busy []Interval, now time.Time, minLead time.Duration, minFill time.Duration) []Slot {
	candidates := Candidates(windowStart, windowEnd, duration, step, now, minLead)
	candidates = FilterGaps(candidates, duration, busy, windowEnd, minFill)
	return Resolve(candidates, busy, duration)
}

func overlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}

// SubtractBusy splits an open window into sub-windows with the blocked
// intervals removed. Used to carve staff time off out of a day before slot
// generation. blocked must be sorted ascending by Start.
func SubtractBusy(window Interval, blocked []Interval) []Interval {
	out := []Interval{window}
	for _, b := range blocked {
		var next []Interval
		for _, w := range out {
			if !w.Overlaps(b) {
				next = append(next, w)
				continue
			}
			if b.Start.After(w.Start) {
				next = append(next, Interval{Start: w.Start, End: b.Start})
			}
			if b.End.Before(w.End) {
				next = append(next, Interval{Start: b.End, End: w.End})
			}
		}
		out = next
	}
	return out
}
