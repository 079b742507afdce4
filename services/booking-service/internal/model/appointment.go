package model

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Occupying reports whether an appointment in this status blocks its time
// interval for new bookings. Cancelled and completed appointments never do.
func (s AppointmentStatus) Occupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Appointment struct {
	ID            string
	BusinessID    string
	ServiceID     string
	StaffID       string // empty = business-wide pool
	CustomerRef   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Status        AppointmentStatus
	IsVIP         bool
	CancelledAt   *time.Time
	CancelReason  string
	CreatedAt     time.Time
}
