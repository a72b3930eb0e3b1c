package pubsub

// Client publishes league events for downstream consumers (page builders,
// archival jobs). Payloads are MessagePack-encoded.
type Client interface {
	Publish(topic EventType, data any) error
	Decode(data []byte, into any) error
	Close()
}
