package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-fpsclock/fpsclock"
	"github.com/valerio/go-fpsclock/fpsclock/backend"
	"github.com/valerio/go-fpsclock/fpsclock/backend/headless"
	"github.com/valerio/go-fpsclock/fpsclock/backend/terminal"
	"github.com/valerio/go-fpsclock/fpsclock/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "fpsclock"
	app.Description = "Runs a loop at a constant frame rate and shows the slack of every frame"
	app.Usage = "fpsclock [options]"
	app.Version = "1.0.0"
	app.Flags = flags
	app.Action = runLoop

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running loop", "error", err)
		os.Exit(1)
	}
}

func runLoop(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}

	var pacer timing.Pacer
	if cfg.Unpaced {
		pacer = timing.NewUnpaced()
	} else {
		clock, err := timing.New(cfg.FPS)
		if err != nil {
			return err
		}
		pacer = clock
	}

	var b backend.Backend
	if cfg.Headless {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})
		logger := slog.New(handler)
		slog.SetDefault(logger)
		b = headless.New(logger)
	} else {
		b = terminal.New(cfg.LogLevel)
	}

	if err := b.Init(backend.Config{Title: "fpsclock", MaxFrames: cfg.Frames}); err != nil {
		return err
	}
	defer b.Cleanup()

	slog.Info("Starting loop", "fps", pacer.Rate(), "frames", cfg.Frames, "work", cfg.Work)

	runner := fpsclock.NewRunner(pacer, b, fpsclock.SleepWork(cfg.Work))
	if err := runner.Run(context.Background()); err != nil {
		return err
	}

	slog.Info("Loop finished", "frames", runner.Frames())
	return nil
}
