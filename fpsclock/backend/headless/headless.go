package headless

import (
	"log/slog"
	"time"

	"github.com/valerio/go-fpsclock/fpsclock/backend"
)

// ProgressInterval is how many frames pass between progress log lines.
const ProgressInterval = 10

// Backend implements the Backend interface for batch runs: no screen, just
// structured log output.
type Backend struct {
	config     backend.Config
	logger     *slog.Logger
	frameCount uint64
	overruns   uint64
}

// New creates a headless backend that logs through logger, or through the
// default logger when nil.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.frameCount = 0
	h.overruns = 0

	h.logger.Info("Running headless mode", "title", config.Title, "frames", config.MaxFrames)
	return nil
}

// Update logs progress and overruns, and requests quit after MaxFrames frames.
func (h *Backend) Update(frame backend.Frame) (bool, error) {
	h.frameCount++

	if frame.Overrun() {
		h.overruns++
		h.logger.Debug("Frame overran target period",
			"frame", frame.Index,
			"overrun_ns", -frame.Slack)
	}

	if h.frameCount%ProgressInterval == 0 {
		h.logger.Info("Frame progress",
			"completed", h.frameCount,
			"total", h.config.MaxFrames,
			"slack_ns", frame.Slack,
			"slept", frame.Slept.Round(time.Microsecond))
	}

	if h.config.MaxFrames > 0 && h.frameCount >= h.config.MaxFrames {
		h.logger.Info("Headless execution completed", "frames", h.frameCount, "overruns", h.overruns)
		if h.config.Callbacks.OnQuit != nil {
			h.config.Callbacks.OnQuit()
		}
		return true, nil
	}

	return false, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames seen since Init.
func (h *Backend) Frames() uint64 {
	return h.frameCount
}

// Overruns returns how many of those frames overran the target period.
func (h *Backend) Overruns() uint64 {
	return h.overruns
}
