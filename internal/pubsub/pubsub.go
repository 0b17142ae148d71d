package pubsub

import (
	"context"
)

// Message is the envelope carried on the bus. Payload holds the encoded
// event (a JSON transcript message for the transcript topics).
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "transcript.message.created").
	Topic string
	// UserID identifies the author that caused the event, if any.
	UserID string
	// Payload contains the encoded event.
	Payload []byte
	// Metadata carries arbitrary key-value context (request ids, timestamps).
	Metadata map[string]string
}

// Handler processes a received message. A non-nil error nacks the message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe starts consuming topic in the background and returns once the
	// subscription is active. Consumption stops when ctx is canceled or the
	// subscriber is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
