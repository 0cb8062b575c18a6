// Package dispatch fans finished reports out to the configured
// destination-platform recipient list.
package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dikacakep/stock-bridge/internal/platform/observability"
	"github.com/dikacakep/stock-bridge/internal/recipient"
)

const (
	statusOK    = "ok"
	statusError = "error"

	logFieldRecipient = "recipient"
	logFieldKind      = "kind"
	logFieldElapsed   = "elapsed"
)

// Sender delivers text to one destination-platform recipient.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) error
	SendTextWithMentions(ctx context.Context, recipientID, text string, memberIDs []string) error
}

// MemberResolver supplies group membership for mention attachment.
type MemberResolver interface {
	GroupMembers(ctx context.Context, groupID string) ([]string, error)
}

// Result summarizes one fan-out.
type Result struct {
	Sent   int
	Failed int
}

// Dispatcher sends a message to every configured recipient in order.
// Delivery is best-effort: each recipient is attempted independently
// and one failure never aborts the rest.
type Dispatcher struct {
	recipients []recipient.Recipient
	sender     Sender
	resolver   MemberResolver
	logger     *zerolog.Logger
}

func New(recipients []recipient.Recipient, sender Sender, resolver MemberResolver, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		recipients: recipients,
		sender:     sender,
		resolver:   resolver,
		logger:     logger,
	}
}

// Deliver sends text to the full recipient list. Group recipients get
// their member list attached as mention targets when urgent is set.
// Blank text is a no-op.
func (d *Dispatcher) Deliver(ctx context.Context, text string, urgent bool) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	var res Result

	// Sequential by design: per-recipient latency logs in config
	// order matter for operational visibility.
	for _, rcpt := range d.recipients {
		start := time.Now()
		err := d.send(ctx, rcpt, text, urgent)
		elapsed := time.Since(start)

		if err != nil {
			res.Failed++

			observability.DeliveriesTotal.WithLabelValues(statusError).Inc()
			d.logger.Error().Err(err).
				Str(logFieldRecipient, rcpt.ID).
				Str(logFieldKind, rcpt.Kind.String()).
				Dur(logFieldElapsed, elapsed).
				Msg("delivery failed")

			continue
		}

		res.Sent++

		observability.DeliveriesTotal.WithLabelValues(statusOK).Inc()
		observability.SendDuration.WithLabelValues(rcpt.Kind.String()).Observe(elapsed.Seconds())
		d.logger.Info().
			Str(logFieldRecipient, rcpt.ID).
			Str(logFieldKind, rcpt.Kind.String()).
			Dur(logFieldElapsed, elapsed).
			Msg("message sent")
	}

	return res
}

func (d *Dispatcher) send(ctx context.Context, rcpt recipient.Recipient, text string, urgent bool) error {
	if rcpt.Kind == recipient.KindGroup && urgent {
		members, err := d.resolver.GroupMembers(ctx, rcpt.ID)
		if err != nil {
			return err
		}

		return d.sender.SendTextWithMentions(ctx, rcpt.ID, text, members)
	}

	return d.sender.SendText(ctx, rcpt.ID, text)
}
