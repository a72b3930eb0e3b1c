package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a pubsub client for the given GCP project.
func New(projectID string) Client {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create pubsub client: %v", err)
	}
	return &client{client: pubSubC}
}

func (c *client) Publish(topic EventType, data any) error {
	ctx := context.Background()
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	result := c.client.Topic(string(topic)).Publish(ctx, &pubsub.Message{Data: payload})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("Published event", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) Decode(data []byte, into any) error {
	if err := msgpack.Unmarshal(data, into); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() {
	c.client.Close()
}
