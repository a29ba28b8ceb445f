package notify

import "context"

// Message is a channel-agnostic notification.
type Message struct {
	Subject string
	Text    string
}

// Sink delivers messages on one channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
