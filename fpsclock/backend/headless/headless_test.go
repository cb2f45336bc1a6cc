package headless_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-fpsclock/fpsclock/backend"
	"github.com/valerio/go-fpsclock/fpsclock/backend/headless"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestHeadlessBackend(t *testing.T) {
	t.Run("quits after max frames", func(t *testing.T) {
		var buf bytes.Buffer
		quitCalled := false
		h := headless.New(newLogger(&buf))

		err := h.Init(backend.Config{
			Title:     "Test",
			MaxFrames: 3,
			Callbacks: backend.Callbacks{OnQuit: func() { quitCalled = true }},
		})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			quit, err := h.Update(backend.Frame{Index: uint64(i), Rate: 30, Slack: 1000})
			assert.NoError(t, err)
			assert.Equal(t, i == 2, quit, "frame %d", i)
		}

		assert.True(t, quitCalled)
		assert.Equal(t, uint64(3), h.Frames())
		assert.Contains(t, buf.String(), "Headless execution completed")
		assert.NoError(t, h.Cleanup())
	})

	t.Run("unlimited frames never quit", func(t *testing.T) {
		h := headless.New(newLogger(&bytes.Buffer{}))
		require.NoError(t, h.Init(backend.Config{Title: "Test"}))

		for i := 0; i < 50; i++ {
			quit, err := h.Update(backend.Frame{Index: uint64(i), Rate: 60, Slack: 1})
			require.NoError(t, err)
			assert.False(t, quit)
		}
	})

	t.Run("logs progress and counts overruns", func(t *testing.T) {
		var buf bytes.Buffer
		h := headless.New(newLogger(&buf))
		require.NoError(t, h.Init(backend.Config{Title: "Test", MaxFrames: 20}))

		for i := 0; i < 20; i++ {
			slack := 1_000_000.0
			if i%4 == 0 {
				slack = -5_000_000
			}
			_, err := h.Update(backend.Frame{Index: uint64(i), Rate: 30, Slack: slack})
			require.NoError(t, err)
		}

		assert.Equal(t, uint64(5), h.Overruns())
		assert.Equal(t, 2, strings.Count(buf.String(), "Frame progress"))
		assert.Equal(t, 5, strings.Count(buf.String(), "Frame overran target period"))
	})
}

func TestHeadlessImplementsBackend(t *testing.T) {
	// Compile-time check that headless.Backend implements backend.Backend
	var _ backend.Backend = (*headless.Backend)(nil)
}
