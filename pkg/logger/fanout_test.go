package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures handled records.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attrs = append(h.attrs, attrs...)
	return h
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestFanoutHandler(t *testing.T) {
	t.Parallel()

	t.Run("secondary gated by floor", func(t *testing.T) {
		t.Parallel()

		primary := &recordingHandler{}
		secondary := &recordingHandler{}
		log := slog.New(newFanoutHandler(primary, secondary, slog.LevelError))

		log.Info("request served")
		log.Warn("slow backend")
		log.Error("signing failed")

		assert.Equal(t, 3, primary.count())
		require.Equal(t, 1, secondary.count())
		assert.Equal(t, "signing failed", secondary.records[0].Message)
	})

	t.Run("both receive at the floor", func(t *testing.T) {
		t.Parallel()

		primary := &recordingHandler{}
		secondary := &recordingHandler{}
		log := slog.New(newFanoutHandler(primary, secondary, slog.LevelWarn))

		log.Warn("token refresh retried")

		assert.Equal(t, 1, primary.count())
		assert.Equal(t, 1, secondary.count())
	})

	t.Run("attrs propagate to both branches", func(t *testing.T) {
		t.Parallel()

		primary := &recordingHandler{}
		secondary := &recordingHandler{}
		log := slog.New(newFanoutHandler(primary, secondary, slog.LevelInfo))

		log.With(slog.String("bucket", "tours-media")).Error("upload failed")

		require.Len(t, primary.attrs, 1)
		assert.Equal(t, "bucket", primary.attrs[0].Key)
		require.Len(t, secondary.attrs, 1)
	})
}
