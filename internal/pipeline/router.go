// Package pipeline routes inbound notifications through formatting,
// aggregation, urgency classification, and delivery.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dikacakep/stock-bridge/internal/dispatch"
	"github.com/dikacakep/stock-bridge/internal/ingest"
	"github.com/dikacakep/stock-bridge/internal/platform/observability"
	"github.com/dikacakep/stock-bridge/internal/report"
	"github.com/dikacakep/stock-bridge/internal/stock"
)

const (
	reasonUnrecognizedChannel = "unrecognized_channel"
	reasonBotEcho             = "bot_echo"
	reasonNoEmbeds            = "no_embeds"
	reasonEmptyReport         = "empty_report"

	logFieldCorrelationID = "correlation_id"
	logFieldChannelID     = "channel_id"
	logFieldReason        = "reason"

	embedSeparator = "\n\n"
)

// NotificationSource classifies an inbound message by origin channel.
type NotificationSource int

const (
	SourceUnrecognized NotificationSource = iota
	SourceSeedGear
	SourceEgg
	SourceWeather
)

func (s NotificationSource) String() string {
	switch s {
	case SourceSeedGear:
		return "seed_gear"
	case SourceEgg:
		return "egg"
	case SourceWeather:
		return "weather"
	default:
		return "unrecognized"
	}
}

// Outcome is the terminal result of handling one inbound message.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCached
	OutcomeDelivered
	OutcomePartialFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeDelivered:
		return "delivered"
	case OutcomePartialFailure:
		return "partial_failure"
	default:
		return "ignored"
	}
}

// Deliverer fans a finished report out to all recipients.
type Deliverer interface {
	Deliver(ctx context.Context, text string, urgent bool) dispatch.Result
}

// Channels holds the three configured origin-channel identifiers.
type Channels struct {
	SeedGear string
	Egg      string
	Weather  string
}

// Router is the control component: it classifies each inbound message
// by origin channel and drives the report pipeline accordingly. All
// cross-message state lives in the aggregator.
type Router struct {
	channels   Channels
	formatter  *report.Formatter
	aggregator *stock.Aggregator
	classifier *stock.Classifier
	deliverer  Deliverer
	footer     *Footer
	logger     *zerolog.Logger
	now        func() time.Time
}

func NewRouter(
	channels Channels,
	formatter *report.Formatter,
	aggregator *stock.Aggregator,
	classifier *stock.Classifier,
	deliverer Deliverer,
	footer *Footer,
	logger *zerolog.Logger,
) *Router {
	return &Router{
		channels:   channels,
		formatter:  formatter,
		aggregator: aggregator,
		classifier: classifier,
		deliverer:  deliverer,
		footer:     footer,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle processes one inbound message to a terminal outcome. Safe to
// call from concurrently delivered messages.
func (r *Router) Handle(ctx context.Context, msg ingest.Message) Outcome {
	logger := r.logger.With().
		Str(logFieldCorrelationID, uuid.NewString()).
		Str(logFieldChannelID, msg.ChannelID).
		Logger()

	source := r.classify(msg.ChannelID)
	observability.MessagesRouted.WithLabelValues(source.String()).Inc()

	if source == SourceUnrecognized {
		return ignored(&logger, reasonUnrecognizedChannel)
	}

	// Bot-authored echoes without a verified webhook origin would
	// relay our own output back; the weather feed is the exception
	// and is always processed.
	if msg.AuthorIsBot && !msg.WebhookOrigin && source != SourceWeather {
		return ignored(&logger, reasonBotEcho)
	}

	switch source {
	case SourceWeather:
		return r.handleWeather(ctx, &logger, msg)
	case SourceEgg:
		return r.handleEgg(&logger, msg)
	default:
		return r.handleSeedGear(ctx, &logger, msg)
	}
}

func (r *Router) classify(channelID string) NotificationSource {
	switch channelID {
	case r.channels.SeedGear:
		return SourceSeedGear
	case r.channels.Egg:
		return SourceEgg
	case r.channels.Weather:
		return SourceWeather
	default:
		return SourceUnrecognized
	}
}

// handleWeather formats every attached notification and delivers with
// mass mentions unconditionally.
func (r *Router) handleWeather(ctx context.Context, logger *zerolog.Logger, msg ingest.Message) Outcome {
	if len(msg.Embeds) == 0 {
		return ignored(logger, reasonNoEmbeds)
	}

	text := r.formatAll(msg.Embeds)

	res := r.deliverer.Deliver(ctx, text, true)
	logger.Info().Int("sent", res.Sent).Int("failed", res.Failed).Msg("weather report delivered")

	return outcomeFromResult(res)
}

// handleEgg caches the last attached notification; no delivery is
// triggered by the egg channel alone.
func (r *Router) handleEgg(logger *zerolog.Logger, msg ingest.Message) Outcome {
	if len(msg.Embeds) == 0 {
		return ignored(logger, reasonNoEmbeds)
	}

	r.aggregator.UpdateEgg(r.formatter.Format(msg.Embeds[len(msg.Embeds)-1]))
	logger.Info().Msg("egg report cached")

	return OutcomeCached
}

// handleSeedGear combines the fresh seed/gear report with the cached
// egg report, classifies urgency, and delivers with the footer block.
func (r *Router) handleSeedGear(ctx context.Context, logger *zerolog.Logger, msg ingest.Message) Outcome {
	combined := r.aggregator.Combine(r.formatAll(msg.Embeds))
	if combined == "" {
		return ignored(logger, reasonEmptyReport)
	}

	urgent := r.classifier.IsUrgent(combined)
	if urgent {
		observability.UrgentReports.Inc()
	}

	text := combined + embedSeparator + r.footer.Render(r.now())

	res := r.deliverer.Deliver(ctx, text, urgent)
	logger.Info().Bool("urgent", urgent).Int("sent", res.Sent).Int("failed", res.Failed).Msg("stock report delivered")

	return outcomeFromResult(res)
}

func (r *Router) formatAll(embeds []report.Notification) string {
	parts := make([]string, 0, len(embeds))

	for _, embed := range embeds {
		if formatted := r.formatter.Format(embed); formatted != "" {
			parts = append(parts, formatted)
		}
	}

	return strings.Join(parts, embedSeparator)
}

func ignored(logger *zerolog.Logger, reason string) Outcome {
	observability.MessagesIgnored.WithLabelValues(reason).Inc()
	logger.Debug().Str(logFieldReason, reason).Msg("message ignored")

	return OutcomeIgnored
}

func outcomeFromResult(res dispatch.Result) Outcome {
	switch {
	case res.Failed > 0:
		return OutcomePartialFailure
	case res.Sent == 0:
		// Blank report or no recipients: nothing left the process.
		return OutcomeIgnored
	default:
		return OutcomeDelivered
	}
}
