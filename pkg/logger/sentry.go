package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel is the lowest level forwarded to Sentry.
	MinLevel slog.Level
}

// NewWithSentry creates a JSON logger writing to stdout that mirrors
// records at or above MinLevel to Sentry. An empty DSN or a failed
// Sentry init degrades to stdout only, so local dev and the sidecar
// deployment need no Sentry config at all.
func NewWithSentry(cfg SentryConfig) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if cfg.DSN == "" {
		return slog.New(stdoutHandler)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(stdoutHandler)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},                 // Errors create Issues
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError}, // Logs stored for context
	}.NewSentryHandler(context.Background())

	return slog.New(newFanoutHandler(stdoutHandler, sentryHandler, cfg.MinLevel))
}
