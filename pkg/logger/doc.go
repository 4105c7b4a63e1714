// Package logger builds the gateway's slog logger: JSON to stdout,
// with records at or above a configurable level mirrored to Sentry.
// Without a Sentry DSN it degrades to stdout only.
package logger
