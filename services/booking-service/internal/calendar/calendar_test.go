package calendar

import (
	"testing"
	"time"
)

func weekdayCalendar() Calendar {
	var days [7]DayRule
	for wd := time.Monday; wd <= time.Friday; wd++ {
		days[int(wd)] = DayRule{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	}
	return Calendar{
		Days:        days,
		Granularity: 30 * time.Minute,
		MinLead:     time.Hour,
		MaxAdvance:  30,
	}
}

func TestWindow_OpenDay(t *testing.T) {
	cal := weekdayCalendar()
	// 2026-01-28 is a Wednesday.
	date := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

	start, end, err := cal.Window(date, now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if start.Hour() != 9 || end.Hour() != 18 {
		t.Fatalf("expected 09:00..18:00, got %s..%s", start.Format("15:04"), end.Format("15:04"))
	}
}

func TestWindow_ClosedDay(t *testing.T) {
	cal := weekdayCalendar()
	// 2026-02-01 is a Sunday.
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

	if _, _, err := cal.Window(date, now); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestWindow_TooFarAhead(t *testing.T) {
	cal := weekdayCalendar()
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

	// 30 days out lands on 2026-02-26 (Thursday): still bookable.
	edge := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	if _, _, err := cal.Window(edge, now); err != nil {
		t.Fatalf("day at the horizon should be bookable, got %v", err)
	}

	beyond := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	if _, _, err := cal.Window(beyond, now); err != ErrTooFarAhead {
		t.Fatalf("expected ErrTooFarAhead, got %v", err)
	}
}

func TestWindow_WholeDayBehindLead(t *testing.T) {
	cal := weekdayCalendar()
	date := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

	// Close is 18:00; at 17:30 with a 1h lead nothing on the day can start.
	now := time.Date(2026, 1, 28, 17, 30, 0, 0, time.UTC)
	if _, _, err := cal.Window(date, now); err != ErrTooEarly {
		t.Fatalf("expected ErrTooEarly, got %v", err)
	}

	// At 16:30 the tail of the day is still reachable.
	now = time.Date(2026, 1, 28, 16, 30, 0, 0, time.UTC)
	if _, _, err := cal.Window(date, now); err != nil {
		t.Fatalf("expected reachable window, got %v", err)
	}
}

func TestWindow_Timezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := weekdayCalendar()
	cal.Location = loc

	date := time.Date(2026, 1, 28, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

	start, _, err := cal.Window(date, now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if start.Location() != loc {
		t.Fatalf("expected window in business timezone, got %s", start.Location())
	}
	// 09:00 New York is 14:00 UTC in January.
	if start.UTC().Hour() != 14 {
		t.Fatalf("expected 14:00 UTC, got %s", start.UTC().Format("15:04"))
	}
}

func TestWindow_InvertedRuleTreatedAsClosed(t *testing.T) {
	cal := weekdayCalendar()
	cal.Days[int(time.Wednesday)] = DayRule{Open: true, OpenMinute: 18 * 60, CloseMinute: 9 * 60}
	date := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)

	if _, _, err := cal.Window(date, now); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
