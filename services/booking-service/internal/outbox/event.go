package outbox

// Event is the envelope written to the outbox table in the same transaction
// as the appointment change it describes. The Kafka topic name equals
// EventType (event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}
