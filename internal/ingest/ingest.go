// Package ingest defines the boundary with the source chat platform.
package ingest

import (
	"context"

	"github.com/dikacakep/stock-bridge/internal/report"
)

// Message is one inbound source-platform message event.
type Message struct {
	ID            string
	ChannelID     string
	AuthorIsBot   bool
	WebhookOrigin bool
	Embeds        []report.Notification
}

// Handler processes one inbound message.
type Handler func(ctx context.Context, msg Message)

// Source is a connected source-platform session.
type Source interface {
	// Listen blocks, invoking handler for each inbound message, until
	// the connection drops or ctx is canceled.
	Listen(ctx context.Context, handler Handler) error

	// LatestMessage fetches the most recent message in a channel, or
	// nil if the channel has none.
	LatestMessage(ctx context.Context, channelID string) (*Message, error)
}
