// Package templates renders the customer-facing message for each appointment
// lifecycle event.
package templates

import (
	"fmt"
	"time"
)

// AppointmentEvent is the payload shape booking-service publishes for every
// appointment lifecycle event.
type AppointmentEvent struct {
	AppointmentID     string `json:"appointment_id"`
	BusinessID        string `json:"business_id"`
	ServiceID         string `json:"service_id"`
	StaffID           string `json:"staff_id"`
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Status            string `json:"status"`
	Reason            string `json:"reason"`
	PreviousStartTime string `json:"previous_start_time"`
}

type Message struct {
	Subject string
	Body    string
}

// Render builds the message for one event type. ok is false for event types
// that carry no customer-facing notification.
func Render(eventType string, evt AppointmentEvent) (Message, bool) {
	when := formatTime(evt.StartTime)
	name := evt.CustomerName
	if name == "" {
		name = "there"
	}

	switch eventType {
	case "booking.appointment.created.v1":
		return Message{
			Subject: "Booking request received",
			Body:    fmt.Sprintf("Hi %s, we received your booking request for %s. You will hear from us once it is confirmed.", name, when),
		}, true
	case "booking.appointment.confirmed.v1":
		return Message{
			Subject: "Appointment confirmed",
			Body:    fmt.Sprintf("Hi %s, your appointment on %s is confirmed. See you then!", name, when),
		}, true
	case "booking.appointment.cancelled.v1":
		body := fmt.Sprintf("Hi %s, your appointment on %s has been cancelled.", name, when)
		if evt.Reason != "" {
			body += " Reason: " + evt.Reason
		}
		return Message{Subject: "Appointment cancelled", Body: body}, true
	case "booking.appointment.rescheduled.v1":
		body := fmt.Sprintf("Hi %s, your appointment has been moved to %s.", name, when)
		if prev := formatTime(evt.PreviousStartTime); evt.PreviousStartTime != "" {
			body = fmt.Sprintf("Hi %s, your appointment originally on %s has been moved to %s.", name, prev, when)
		}
		return Message{Subject: "Appointment rescheduled", Body: body}, true
	case "booking.appointment.completed.v1":
		return Message{
			Subject: "Thanks for visiting",
			Body:    fmt.Sprintf("Hi %s, thanks for your visit on %s. We hope to see you again soon.", name, when),
		}, true
	}
	return Message{}, false
}

func formatTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Mon, 2 Jan 2006 at 15:04")
}
