package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dikacakep/stock-bridge/internal/app"
	"github.com/dikacakep/stock-bridge/internal/discord"
	"github.com/dikacakep/stock-bridge/internal/platform/config"
	"github.com/dikacakep/stock-bridge/internal/wa"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := discord.New(discord.Config{
		Token:      cfg.DiscordToken,
		GatewayURL: cfg.DiscordGatewayURL,
		APIBaseURL: cfg.DiscordAPIBaseURL,
	}, &logger)

	dest := wa.New(wa.Config{
		BaseURL: cfg.WAGatewayURL,
		Token:   cfg.WAGatewayToken,
		Timeout: cfg.WASendTimeout,
	})

	application := app.New(cfg, source, dest, &logger)

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")

			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
