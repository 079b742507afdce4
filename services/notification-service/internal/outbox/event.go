package outbox

// Event is the envelope written to the outbox table for delivery receipts.
// The Kafka topic name equals EventType (event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}
