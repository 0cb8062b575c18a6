// Package app wires the bridge together and runs it: a health/metrics
// server, a periodic status task, and a supervised source listener
// feeding the report pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/dikacakep/stock-bridge/internal/dispatch"
	"github.com/dikacakep/stock-bridge/internal/ingest"
	"github.com/dikacakep/stock-bridge/internal/pipeline"
	"github.com/dikacakep/stock-bridge/internal/platform/config"
	"github.com/dikacakep/stock-bridge/internal/platform/observability"
	"github.com/dikacakep/stock-bridge/internal/platform/worker"
	"github.com/dikacakep/stock-bridge/internal/recipient"
	"github.com/dikacakep/stock-bridge/internal/report"
	"github.com/dikacakep/stock-bridge/internal/stock"
)

const (
	statusWorkerName  = "status"
	logFieldComponent = "component"
)

// Destination is the destination-platform client surface the app
// needs: sends plus group membership lookups.
type Destination interface {
	dispatch.Sender
	recipient.MemberSource
}

// App holds the application dependencies and runs the bridge.
type App struct {
	cfg    *config.Config
	source ingest.Source
	dest   Destination
	logger *zerolog.Logger
}

func New(cfg *config.Config, source ingest.Source, dest Destination, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		source: source,
		dest:   dest,
		logger: logger,
	}
}

// Run builds the pipeline and runs all top-level loops until ctx is
// canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	loc, err := time.LoadLocation(a.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", a.cfg.Timezone, err)
	}

	glyphs := report.DefaultGlyphs()
	for name, glyph := range a.cfg.ParseGlyphOverrides() {
		glyphs[name] = glyph
	}

	formatter := report.NewFormatter(report.NewRegistry(glyphs))
	aggregator := stock.NewAggregator()
	classifier := stock.NewClassifier(a.cfg.HighValueKeywords)

	resolverLogger := a.logger.With().Str(logFieldComponent, "resolver").Logger()
	resolver := recipient.NewResolver(a.dest, &resolverLogger)

	dispatchLogger := a.logger.With().Str(logFieldComponent, "dispatch").Logger()
	dispatcher := dispatch.New(recipient.ParseList(a.cfg.PersonalIDs, a.cfg.GroupIDs), a.dest, resolver, &dispatchLogger)

	routerLogger := a.logger.With().Str(logFieldComponent, "router").Logger()
	router := pipeline.NewRouter(
		pipeline.Channels{
			SeedGear: a.cfg.SeedGearChannel,
			Egg:      a.cfg.EggChannel,
			Weather:  a.cfg.WeatherChannel,
		},
		formatter,
		aggregator,
		classifier,
		dispatcher,
		pipeline.NewFooter(a.cfg.FooterLines, loc, a.cfg.TimezoneLabel),
		&routerLogger,
	)

	a.warmEggCache(ctx, formatter, aggregator)

	healthServer := observability.NewServer(a.cfg.HealthPort, a.logger)
	healthServer.SetReady(true)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return healthServer.Start(gctx)
	})

	g.Go(func() error {
		return worker.Run(gctx, worker.Config{
			Name:       statusWorkerName,
			Interval:   a.cfg.StatusInterval,
			OnTick:     func(context.Context) { updateStatusMetrics(aggregator) },
			RunOnStart: true,
			Logger:     a.logger,
		})
	})

	g.Go(func() error {
		return a.listen(gctx, router)
	})

	return g.Wait()
}

// warmEggCache primes the egg cache from the egg channel's most recent
// message so the first seed/gear report after startup still carries
// egg stock. Best-effort.
func (a *App) warmEggCache(ctx context.Context, formatter *report.Formatter, aggregator *stock.Aggregator) {
	msg, err := a.source.LatestMessage(ctx, a.cfg.EggChannel)
	if err != nil {
		a.logger.Warn().Err(err).Msg("egg cache warm-up failed")

		return
	}

	if msg == nil || len(msg.Embeds) == 0 {
		return
	}

	aggregator.UpdateEgg(formatter.Format(msg.Embeds[len(msg.Embeds)-1]))
	a.logger.Info().Str("message_id", msg.ID).Msg("egg cache warmed from channel history")
}

// listen runs the source session in a supervised reconnect loop with
// capped exponential backoff. Cross-connection state is limited to the
// aggregator and resolver caches, which live outside the session.
func (a *App) listen(ctx context.Context, router *pipeline.Router) error {
	backoff := retry.WithCappedDuration(a.cfg.ReconnectMaxBackoff, retry.NewExponential(a.cfg.ReconnectMinBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := a.source.Listen(ctx, func(ctx context.Context, msg ingest.Message) {
			router.Handle(ctx, msg)
		})
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}

		observability.SourceReconnects.Inc()
		a.logger.Warn().Err(err).Msg("source connection lost, reconnecting")

		return retry.RetryableError(err)
	})
}

func updateStatusMetrics(aggregator *stock.Aggregator) {
	age, ok := aggregator.EggAge(time.Now())
	if !ok {
		return
	}

	observability.EggCacheAge.Set(age.Seconds())
}
