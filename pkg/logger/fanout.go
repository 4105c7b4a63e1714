package logger

import (
	"context"
	"log/slog"
)

// fanoutHandler duplicates records to a primary handler and a gated
// secondary one. The secondary handler only sees records at or above its
// floor, which is how the Sentry branch stays quiet below the configured
// minimum level.
type fanoutHandler struct {
	primary   slog.Handler
	secondary slog.Handler
	floor     slog.Level
}

func newFanoutHandler(primary, secondary slog.Handler, floor slog.Level) slog.Handler {
	return &fanoutHandler{primary: primary, secondary: secondary, floor: floor}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary.Enabled(ctx, level) {
		return true
	}
	return level >= h.floor && h.secondary.Enabled(ctx, level)
}

func (h *fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	if h.primary.Enabled(ctx, rec.Level) {
		if err := h.primary.Handle(ctx, rec.Clone()); err != nil {
			return err
		}
	}
	if rec.Level >= h.floor && h.secondary.Enabled(ctx, rec.Level) {
		return h.secondary.Handle(ctx, rec.Clone())
	}
	return nil
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFanoutHandler(h.primary.WithAttrs(attrs), h.secondary.WithAttrs(attrs), h.floor)
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	return newFanoutHandler(h.primary.WithGroup(name), h.secondary.WithGroup(name), h.floor)
}
