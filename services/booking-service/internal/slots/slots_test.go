package slots

import (
	"testing"
	"time"
)

func at(day time.Time, h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestCandidates_GridFitsDuration(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	start := at(day, 9, 0)
	end := at(day, 18, 0)

	got := Candidates(start, end, 30*time.Minute, 30*time.Minute, day, 0)
	// 09:00 through 17:30 inclusive: 18 starts.
	if len(got) != 18 {
		t.Fatalf("expected 18 candidates, got %d", len(got))
	}
	if !got[0].Equal(at(day, 9, 0)) {
		t.Fatalf("expected first candidate 09:00, got %s", got[0].Format(time.RFC3339))
	}
	if !got[len(got)-1].Equal(at(day, 17, 30)) {
		t.Fatalf("expected last candidate 17:30, got %s", got[len(got)-1].Format(time.RFC3339))
	}
}

func TestCandidates_DurationLongerThanStep(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	got := Candidates(at(day, 9, 0), at(day, 10, 0), 45*time.Minute, 30*time.Minute, day, 0)
	// 09:00 fits (ends 09:45), 09:30 would end 10:15.
	if len(got) != 1 || !got[0].Equal(at(day, 9, 0)) {
		t.Fatalf("expected only 09:00, got %v", got)
	}
}

func TestCandidates_LeadFilter(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := at(day, 14, 5)

	got := Candidates(at(day, 9, 0), at(day, 18, 0), 30*time.Minute, 30*time.Minute, now, 60*time.Minute)
	// Earliest allowed start is 15:05, so the first surviving grid point is 15:30.
	if len(got) == 0 {
		t.Fatal("expected candidates after the lead window")
	}
	if !got[0].Equal(at(day, 15, 30)) {
		t.Fatalf("expected first candidate 15:30, got %s", got[0].Format(time.RFC3339))
	}
}

func TestCandidates_FutureDayUnaffectedByLead(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, -3)

	withLead := Candidates(at(day, 9, 0), at(day, 18, 0), 30*time.Minute, 30*time.Minute, now, 4*time.Hour)
	without := Candidates(at(day, 9, 0), at(day, 18, 0), 30*time.Minute, 30*time.Minute, now, 0)
	if len(withLead) != len(without) {
		t.Fatalf("lead filter changed a future day: %d vs %d", len(withLead), len(without))
	}
}

func TestCandidates_InvalidInputs(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	if got := Candidates(at(day, 9, 0), at(day, 9, 0), 30*time.Minute, 30*time.Minute, day, 0); got != nil {
		t.Fatalf("empty window should yield nil, got %v", got)
	}
	if got := Candidates(at(day, 9, 0), at(day, 18, 0), 0, 30*time.Minute, day, 0); got != nil {
		t.Fatalf("zero duration should yield nil, got %v", got)
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	a := Interval{Start: at(day, 10, 0), End: at(day, 10, 30)}

	// Back-to-back intervals sharing a boundary do not overlap.
	if a.Overlaps(Interval{Start: at(day, 10, 30), End: at(day, 11, 0)}) {
		t.Fatal("adjacent intervals must not overlap")
	}
	if a.Overlaps(Interval{Start: at(day, 9, 30), End: at(day, 10, 0)}) {
		t.Fatal("adjacent intervals must not overlap")
	}
	if !a.Overlaps(Interval{Start: at(day, 10, 29), End: at(day, 10, 31)}) {
		t.Fatal("expected overlap")
	}
	if !a.Overlaps(Interval{Start: at(day, 9, 0), End: at(day, 11, 0)}) {
		t.Fatal("containing interval must overlap")
	}
}

func TestResolve_MarksConflicts(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	busy := []Interval{{Start: at(day, 10, 0), End: at(day, 10, 30)}}

	candidates := Candidates(at(day, 9, 0), at(day, 11, 0), 30*time.Minute, 30*time.Minute, day, 0)
	resolved := Resolve(candidates, busy, 30*time.Minute)
	if len(resolved) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(resolved))
	}
	want := []Status{StatusAvailable, StatusAvailable, StatusConflict, StatusAvailable}
	for i, s := range resolved {
		if s.Status != want[i] {
			t.Fatalf("slot %s: expected %s, got %s", s.Start.Format("15:04"), want[i], s.Status)
		}
	}
}

func TestResolve_Pure(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	busy := []Interval{{Start: at(day, 10, 0), End: at(day, 11, 0)}}
	candidates := Candidates(at(day, 9, 0), at(day, 12, 0), 30*time.Minute, 30*time.Minute, day, 0)

	first := Resolve(candidates, busy, 30*time.Minute)
	second := Resolve(candidates, busy, 30*time.Minute)
	if len(first) != len(second) {
		t.Fatalf("length changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || first[i].Status != second[i].Status {
			t.Fatalf("resolution differs at index %d", i)
		}
	}
}

func TestFilterGaps_DropsShortGapBeforeBusy(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	busy := []Interval{{Start: at(day, 10, 0), End: at(day, 10, 30)}}
	candidates := []time.Time{at(day, 9, 0), at(day, 9, 15), at(day, 9, 30)}

	// Duration 30m, shortest service 30m. 09:15 ends 09:45, leaving a 15m
	// gap before the 10:00 booking that nothing can fill.
	got := FilterGaps(candidates, 30*time.Minute, busy, at(day, 18, 0), 30*time.Minute)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d (%v)", len(got), got)
	}
	if !got[0].Equal(at(day, 9, 0)) || !got[1].Equal(at(day, 9, 30)) {
		t.Fatalf("expected 09:00 and 09:30, got %v", got)
	}
}

func TestFilterGaps_ZeroGapAndWindowEnd(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	windowEnd := at(day, 10, 0)
	candidates := []time.Time{at(day, 9, 0), at(day, 9, 15), at(day, 9, 30)}

	got := FilterGaps(candidates, 30*time.Minute, nil, windowEnd, 30*time.Minute)
	// 09:00 leaves a 30m tail (fillable), 09:15 leaves 15m (dropped),
	// 09:30 ends flush with the window (zero gap, kept).
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d (%v)", len(got), got)
	}
	if !got[0].Equal(at(day, 9, 0)) || !got[1].Equal(at(day, 9, 30)) {
		t.Fatalf("expected 09:00 and 09:30, got %v", got)
	}
}

func TestFilterGaps_DisabledIsNoOp(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	candidates := []time.Time{at(day, 9, 0), at(day, 9, 15)}
	got := FilterGaps(candidates, 30*time.Minute, nil, at(day, 9, 50), 0)
	if len(got) != len(candidates) {
		t.Fatalf("expected no-op, got %v", got)
	}
}

func TestSelect_Errors(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	resolved := []Slot{
		{Start: at(day, 9, 0), Status: StatusAvailable},
		{Start: at(day, 9, 30), Status: StatusConflict},
	}

	if _, err := Select(resolved, at(day, 9, 0)); err != nil {
		t.Fatalf("expected available slot to select, got %v", err)
	}
	if _, err := Select(resolved, at(day, 9, 30)); err != ErrSlotTaken {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := Select(resolved, at(day, 9, 10)); err != ErrInvalidSelection {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestForWindow_Pipeline(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	busy := []Interval{{Start: at(day, 10, 0), End: at(day, 10, 30)}}

	got := ForWindow(at(day, 9, 0), at(day, 11, 0), 30*time.Minute, 30*time.Minute, busy, day, 0, 0)
	if len(got) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(got))
	}
	if got[2].Status != StatusConflict {
		t.Fatalf("expected 10:00 to conflict, got %s", got[2].Status)
	}
}

func TestSubtractBusy(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	window := Interval{Start: at(day, 9, 0), End: at(day, 18, 0)}
	blocked := []Interval{
		{Start: at(day, 12, 0), End: at(day, 13, 0)},
		{Start: at(day, 16, 0), End: at(day, 16, 30)},
	}

	got := SubtractBusy(window, blocked)
	want := []Interval{
		{Start: at(day, 9, 0), End: at(day, 12, 0)},
		{Start: at(day, 13, 0), End: at(day, 16, 0)},
		{Start: at(day, 16, 30), End: at(day, 18, 0)},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sub-windows, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("sub-window %d: expected %v..%v, got %v..%v", i, want[i].Start, want[i].End, got[i].Start, got[i].End)
		}
	}
}

func TestSubtractBusy_BlockCoversWindow(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	window := Interval{Start: at(day, 9, 0), End: at(day, 12, 0)}
	got := SubtractBusy(window, []Interval{{Start: at(day, 8, 0), End: at(day, 13, 0)}})
	if len(got) != 0 {
		t.Fatalf("expected no sub-windows, got %v", got)
	}
}
