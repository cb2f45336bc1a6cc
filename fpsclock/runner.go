// Package fpsclock runs a loop body at a constant cadence and reports the
// timing of every frame to a backend.
package fpsclock

import (
	"context"
	"fmt"
	"time"

	"github.com/valerio/go-fpsclock/fpsclock/backend"
	"github.com/valerio/go-fpsclock/fpsclock/timing"
)

// WorkFunc is the body of the loop, called once per frame before pacing.
type WorkFunc func(frame uint64)

// NoWork is a loop body that does nothing.
func NoWork(uint64) {}

// SleepWork returns a loop body that simulates d of work per frame.
func SleepWork(d time.Duration) WorkFunc {
	if d <= 0 {
		return NoWork
	}
	return func(uint64) { time.Sleep(d) }
}

// Runner drives the loop: work, pace, report.
type Runner struct {
	pacer   timing.Pacer
	backend backend.Backend
	work    WorkFunc
	frames  uint64
}

// NewRunner creates a runner. A nil work runs NoWork.
func NewRunner(pacer timing.Pacer, b backend.Backend, work WorkFunc) *Runner {
	if work == nil {
		work = NoWork
	}
	return &Runner{
		pacer:   pacer,
		backend: b,
		work:    work,
	}
}

// Run loops until the backend asks to quit or ctx is done. Cancellation is
// only checked between frames; a frame that is sleeping finishes first.
// The backend must already be initialized.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		index := r.frames
		r.work(index)

		start := time.Now()
		slack := r.pacer.Tick()
		slept := time.Since(start)

		r.frames++

		quit, err := r.backend.Update(backend.Frame{
			Index: index,
			Rate:  r.pacer.Rate(),
			Slack: slack,
			Slept: slept,
		})
		if err != nil {
			return fmt.Errorf("backend update failed at frame %d: %w", index, err)
		}
		if quit {
			return nil
		}
	}
}

// Frames returns how many frames have been paced.
func (r *Runner) Frames() uint64 {
	return r.frames
}
