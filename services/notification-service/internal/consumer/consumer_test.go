package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeInbox struct {
	seen      map[string]bool
	forgotten []string
}

func newFakeInbox() *fakeInbox {
	return &fakeInbox{seen: map[string]bool{}}
}

func (f *fakeInbox) Record(_ context.Context, eventID, _ string) (bool, error) {
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

func (f *fakeInbox) Forget(_ context.Context, eventID string) error {
	delete(f.seen, eventID)
	f.forgotten = append(f.forgotten, eventID)
	return nil
}

func appointmentMessage(eventID string) kafka.Message {
	return kafka.Message{
		Topic: "booking.appointment.created.v1",
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte("booking.appointment.created.v1")},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleMessageReleasesInboxOnHandlerError(t *testing.T) {
	inboxRepo := newFakeInbox()
	calls := 0
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxRepo,
		handler: func(context.Context, kafka.Message) error {
			calls++
			if calls == 1 {
				return errors.New("transient store failure")
			}
			return nil
		},
	}

	msg := appointmentMessage("evt-1")
	c.handleMessage(context.Background(), msg)
	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
	if len(inboxRepo.forgotten) != 1 || inboxRepo.forgotten[0] != "evt-1" {
		t.Fatalf("expected evt-1 released after handler error, got %v", inboxRepo.forgotten)
	}

	// The redelivery must reach the handler again.
	c.handleMessage(context.Background(), msg)
	if calls != 2 {
		t.Fatalf("expected redelivery to be processed, handler calls = %d", calls)
	}
	if !inboxRepo.seen["evt-1"] {
		t.Fatalf("expected evt-1 recorded after successful processing")
	}
}

func TestHandleMessageSkipsDuplicates(t *testing.T) {
	inboxRepo := newFakeInbox()
	calls := 0
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxRepo,
		handler: func(context.Context, kafka.Message) error {
			calls++
			return nil
		},
	}

	msg := appointmentMessage("evt-2")
	c.handleMessage(context.Background(), msg)
	c.handleMessage(context.Background(), msg)
	if calls != 1 {
		t.Fatalf("expected duplicate delivery to be ignored, handler calls = %d", calls)
	}
	if len(inboxRepo.forgotten) != 0 {
		t.Fatalf("expected no inbox release on success, got %v", inboxRepo.forgotten)
	}
}
