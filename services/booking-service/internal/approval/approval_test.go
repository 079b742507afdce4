package approval

import (
	"testing"
	"time"

	"github.com/sadia-akter/trimly/services/booking-service/internal/model"
)

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"manual", "automatic", "vip"} {
		if _, err := ParseMode(valid); err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseMode("instant"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name string
		mode Mode
		vip  bool
		want model.AppointmentStatus
	}{
		{"manual", ModeManual, false, model.StatusPending},
		{"manual ignores vip", ModeManual, true, model.StatusPending},
		{"automatic", ModeAutomatic, false, model.StatusConfirmed},
		{"vip customer", ModeVIP, true, model.StatusConfirmed},
		{"vip mode regular customer", ModeVIP, false, model.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.mode, tc.vip); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.AppointmentStatus
		ok       bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestCheckChangeNotice(t *testing.T) {
	start := time.Date(2026, 1, 28, 14, 0, 0, 0, time.UTC)
	minChange := 2 * time.Hour

	// Exactly at the deadline is still allowed.
	if err := CheckChangeNotice(start.Add(-2*time.Hour), start, minChange); err != nil {
		t.Fatalf("expected change at deadline to pass, got %v", err)
	}
	if err := CheckChangeNotice(start.Add(-2*time.Hour-time.Minute), start, minChange); err != nil {
		t.Fatalf("expected change before deadline to pass, got %v", err)
	}
	if err := CheckChangeNotice(start.Add(-time.Hour), start, minChange); err != ErrTooLateToChange {
		t.Fatalf("expected ErrTooLateToChange, got %v", err)
	}
}

func TestCheckCompletable(t *testing.T) {
	end := time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)

	if err := CheckCompletable(end.Add(-time.Minute), end); err != ErrNotFinished {
		t.Fatalf("expected ErrNotFinished, got %v", err)
	}
	if err := CheckCompletable(end, end); err != nil {
		t.Fatalf("expected completion at end to pass, got %v", err)
	}
	if err := CheckCompletable(end.Add(time.Hour), end); err != nil {
		t.Fatalf("expected completion after end to pass, got %v", err)
	}
}

func TestEventType(t *testing.T) {
	cases := map[model.AppointmentStatus]string{
		model.StatusConfirmed: "booking.appointment.confirmed.v1",
		model.StatusCancelled: "booking.appointment.cancelled.v1",
		model.StatusCompleted: "booking.appointment.completed.v1",
		model.StatusPending:   "booking.appointment.created.v1",
	}
	for status, want := range cases {
		if got := EventType(status); got != want {
			t.Fatalf("EventType(%s): expected %s, got %s", status, want, got)
		}
	}
}

func TestOccupying(t *testing.T) {
	if !model.StatusPending.Occupying() || !model.StatusConfirmed.Occupying() {
		t.Fatal("pending and confirmed must occupy their interval")
	}
	if model.StatusCancelled.Occupying() || model.StatusCompleted.Occupying() {
		t.Fatal("cancelled and completed must not occupy their interval")
	}
}
