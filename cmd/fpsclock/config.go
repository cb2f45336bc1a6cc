package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cast"
	"github.com/urfave/cli"
)

// config is the driver configuration assembled from flags and environment.
type config struct {
	FPS      int
	Frames   uint64
	Work     time.Duration
	Headless bool
	Unpaced  bool
	LogLevel slog.Level
}

var flags = []cli.Flag{
	cli.IntFlag{
		Name:   "fps",
		Usage:  "Target frames per second",
		Value:  30,
		EnvVar: "FPSCLOCK_FPS",
	},
	cli.IntFlag{
		Name:   "frames",
		Usage:  "Number of frames to run (0 = until quit, required for headless)",
		Value:  0,
		EnvVar: "FPSCLOCK_FRAMES",
	},
	cli.StringFlag{
		Name:   "work",
		Usage:  "Simulated work per frame, as a duration (5ms) or nanoseconds (5000000)",
		Value:  "0",
		EnvVar: "FPSCLOCK_WORK",
	},
	cli.BoolFlag{
		Name:  "headless",
		Usage: "Log frame timing to stderr instead of showing the terminal UI",
	},
	cli.BoolFlag{
		Name:  "unpaced",
		Usage: "Run as fast as possible without pacing",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	},
}

type flagSource interface {
	Int(name string) int
	String(name string) string
	Bool(name string) bool
}

var _ flagSource = (*cli.Context)(nil)

func parseConfig(c flagSource) (config, error) {
	cfg := config{
		FPS:      c.Int("fps"),
		Headless: c.Bool("headless"),
		Unpaced:  c.Bool("unpaced"),
		LogLevel: slog.LevelInfo,
	}

	if c.Bool("debug") {
		cfg.LogLevel = slog.LevelDebug
	}

	if !cfg.Unpaced && cfg.FPS <= 0 {
		return cfg, fmt.Errorf("--fps must be positive, got %d", cfg.FPS)
	}

	frames := c.Int("frames")
	if frames < 0 {
		return cfg, fmt.Errorf("--frames must not be negative, got %d", frames)
	}
	cfg.Frames = uint64(frames)

	if cfg.Headless && cfg.Frames == 0 {
		return cfg, errors.New("headless mode requires --frames option with a positive value")
	}

	work, err := cast.ToDurationE(c.String("work"))
	if err != nil {
		return cfg, fmt.Errorf("invalid --work value: %w", err)
	}
	if work < 0 {
		return cfg, fmt.Errorf("--work must not be negative, got %s", work)
	}
	cfg.Work = work

	return cfg, nil
}
