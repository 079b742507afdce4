// Package approval decides the initial status of a new appointment from the
// business's approval mode and guards every later status transition.
package approval

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadia-akter/trimly/services/booking-service/internal/model"
)

var (
	// ErrTooLateToChange means the cancellation/reschedule notice window has passed.
	ErrTooLateToChange = errors.New("too late to change this appointment")
	// ErrNotFinished means completion was requested before the appointment ended.
	ErrNotFinished = errors.New("appointment has not ended yet")
)

// Mode is the per-business approval policy for new appointments.
type Mode string

const (
	ModeManual    Mode = "manual"
	ModeAutomatic Mode = "automatic"
	ModeVIP       Mode = "vip" // automatic for VIP customers only
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeManual, ModeAutomatic, ModeVIP:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown approval mode %q", s)
}

// Decide returns the status a newly created appointment starts in. It is
// evaluated exactly once, at creation.
func Decide(mode Mode, customerIsVIP bool) model.AppointmentStatus {
	switch mode {
	case ModeAutomatic:
		return model.StatusConfirmed
	case ModeVIP:
		if customerIsVIP {
			return model.StatusConfirmed
		}
		return model.StatusPending
	default:
		return model.StatusPending
	}
}

var transitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
	// nothing leaves cancelled or completed
}

// CanTransition reports whether from -> to is an allowed status transition.
func CanTransition(from, to model.AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CheckChangeNotice rejects a cancel/reschedule request made with less than
// minChange notice before the appointment starts.
func CheckChangeNotice(now, start time.Time, minChange time.Duration) error {
	if now.After(start.Add(-minChange)) {
		return ErrTooLateToChange
	}
	return nil
}

// CheckCompletable allows completion only once the appointment has ended.
func CheckCompletable(now, end time.Time) error {
	if now.Before(end) {
		return ErrNotFinished
	}
	return nil
}

// EventType names the outbox event emitted for a status transition. Every
// transition produces exactly one event for the notification collaborator.
func EventType(to model.AppointmentStatus) string {
	switch to {
	case model.StatusConfirmed:
		return "booking.appointment.confirmed.v1"
	case model.StatusCancelled:
		return "booking.appointment.cancelled.v1"
	case model.StatusCompleted:
		return "booking.appointment.completed.v1"
	default:
		return "booking.appointment.created.v1"
	}
}
