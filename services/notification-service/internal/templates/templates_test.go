package templates

import (
	"strings"
	"testing"
)

func sampleEvent() AppointmentEvent {
	return AppointmentEvent{
		AppointmentID: "appt-1",
		BusinessID:    "biz-1",
		CustomerName:  "Nadia",
		CustomerEmail: "nadia@example.com",
		StartTime:     "2026-01-28T14:00:00Z",
		EndTime:       "2026-01-28T14:30:00Z",
	}
}

func TestRender_KnownEventTypes(t *testing.T) {
	cases := []struct {
		eventType   string
		wantSubject string
	}{
		{"booking.appointment.created.v1", "Booking request received"},
		{"booking.appointment.confirmed.v1", "Appointment confirmed"},
		{"booking.appointment.cancelled.v1", "Appointment cancelled"},
		{"booking.appointment.rescheduled.v1", "Appointment rescheduled"},
		{"booking.appointment.completed.v1", "Thanks for visiting"},
	}
	for _, tc := range cases {
		msg, ok := Render(tc.eventType, sampleEvent())
		if !ok {
			t.Fatalf("%s: expected a message", tc.eventType)
		}
		if msg.Subject != tc.wantSubject {
			t.Fatalf("%s: expected subject %q, got %q", tc.eventType, tc.wantSubject, msg.Subject)
		}
		if !strings.Contains(msg.Body, "Nadia") {
			t.Fatalf("%s: body should address the customer: %q", tc.eventType, msg.Body)
		}
		if !strings.Contains(msg.Body, "Wed, 28 Jan 2026 at 14:00") {
			t.Fatalf("%s: body should carry the local start time: %q", tc.eventType, msg.Body)
		}
	}
}

func TestRender_UnknownEventType(t *testing.T) {
	if _, ok := Render("billing.invoice.paid.v1", sampleEvent()); ok {
		t.Fatal("expected no message for unrelated event types")
	}
}

func TestRender_CancelledWithReason(t *testing.T) {
	evt := sampleEvent()
	evt.Reason = "stylist unavailable"
	msg, ok := Render("booking.appointment.cancelled.v1", evt)
	if !ok {
		t.Fatal("expected a message")
	}
	if !strings.Contains(msg.Body, "stylist unavailable") {
		t.Fatalf("body should include the reason: %q", msg.Body)
	}
}

func TestRender_RescheduledMentionsPreviousTime(t *testing.T) {
	evt := sampleEvent()
	evt.PreviousStartTime = "2026-01-27T10:00:00Z"
	msg, ok := Render("booking.appointment.rescheduled.v1", evt)
	if !ok {
		t.Fatal("expected a message")
	}
	if !strings.Contains(msg.Body, "Tue, 27 Jan 2026 at 10:00") {
		t.Fatalf("body should mention the previous time: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Wed, 28 Jan 2026 at 14:00") {
		t.Fatalf("body should mention the new time: %q", msg.Body)
	}
}

func TestRender_MissingName(t *testing.T) {
	evt := sampleEvent()
	evt.CustomerName = ""
	msg, _ := Render("booking.appointment.confirmed.v1", evt)
	if !strings.Contains(msg.Body, "Hi there") {
		t.Fatalf("expected fallback greeting, got %q", msg.Body)
	}
}
