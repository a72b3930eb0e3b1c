package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventRankingsGenerated fires after a generation run persists a new snapshot.
	EventRankingsGenerated EventType = "rankings-generated"
	// EventMatchRecorded fires when a new match document is accepted.
	EventMatchRecorded EventType = "match-recorded"
)

// RankingsGenerated is the payload for EventRankingsGenerated.
type RankingsGenerated struct {
	GeneratedAt int64 `msgpack:"generated_at"`
	Singles     int   `msgpack:"singles"`
	Teams       int   `msgpack:"teams"`
	Individuals int   `msgpack:"individuals"`
}

// MatchRecorded is the payload for EventMatchRecorded.
type MatchRecorded struct {
	Key      string `msgpack:"key"`
	Category string `msgpack:"category"`
	Date     string `msgpack:"date"`
}
