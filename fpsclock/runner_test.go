package fpsclock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-fpsclock/fpsclock/backend"
	"github.com/valerio/go-fpsclock/fpsclock/timing"
)

type recordingBackend struct {
	frames    []backend.Frame
	maxFrames int
	err       error
}

func (b *recordingBackend) Init(backend.Config) error { return nil }
func (b *recordingBackend) Cleanup() error            { return nil }

func (b *recordingBackend) Update(frame backend.Frame) (bool, error) {
	b.frames = append(b.frames, frame)
	if b.err != nil {
		return false, b.err
	}
	return b.maxFrames > 0 && len(b.frames) >= b.maxFrames, nil
}

func TestRunner_PacesEveryFrame(t *testing.T) {
	src := timing.NewFakeSource(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	clock, err := timing.NewWithSource(10, src)
	require.NoError(t, err)

	workloads := []time.Duration{
		30 * time.Millisecond,
		150 * time.Millisecond,
		0,
		99 * time.Millisecond,
	}
	rec := &recordingBackend{maxFrames: len(workloads)}
	work := func(frame uint64) { src.Advance(workloads[frame]) }

	runner := NewRunner(clock, rec, work)
	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, uint64(4), runner.Frames())
	require.Len(t, rec.frames, 4)

	wantSlack := []float64{70_000_000, -50_000_000, 100_000_000, 1_000_000}
	for i, frame := range rec.frames {
		assert.Equal(t, uint64(i), frame.Index)
		assert.Equal(t, 10, frame.Rate)
		assert.InDelta(t, wantSlack[i], frame.Slack, 1, "frame %d", i)
		assert.GreaterOrEqual(t, frame.Slept, time.Duration(0))
	}
	assert.True(t, rec.frames[1].Overrun())
	assert.Equal(t, []time.Duration{
		70 * time.Millisecond,
		100 * time.Millisecond,
		time.Millisecond,
	}, src.Sleeps())
}

func TestRunner_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recordingBackend{}
	runner := NewRunner(timing.NewUnpaced(), rec, nil)

	require.NoError(t, runner.Run(ctx))
	assert.Zero(t, runner.Frames())
	assert.Empty(t, rec.frames)
}

func TestRunner_CancelBetweenFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recordingBackend{}
	work := func(frame uint64) {
		if frame == 4 {
			cancel()
		}
	}

	runner := NewRunner(timing.NewUnpaced(), rec, work)
	require.NoError(t, runner.Run(ctx))

	// the frame in progress when cancelled still completes
	assert.Equal(t, uint64(5), runner.Frames())
}

func TestRunner_PropagatesBackendError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recordingBackend{err: boom}
	runner := NewRunner(timing.NewUnpaced(), rec, nil)

	err := runner.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), runner.Frames())
}

func TestRunner_SystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("uses the system clock")
	}

	clock, err := timing.New(100)
	require.NoError(t, err)

	rec := &recordingBackend{maxFrames: 5}
	start := time.Now()
	require.NoError(t, NewRunner(clock, rec, SleepWork(2*time.Millisecond)).Run(context.Background()))
	total := time.Since(start)

	// five frames at 10ms each, with scheduler slop
	assert.GreaterOrEqual(t, total, 45*time.Millisecond)
	assert.Less(t, total, 500*time.Millisecond)
	assert.Len(t, rec.frames, 5)
}

func TestSleepWork(t *testing.T) {
	start := time.Now()
	SleepWork(5 * time.Millisecond)(0)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	start = time.Now()
	SleepWork(0)(0)
	assert.Less(t, time.Since(start), 5*time.Millisecond)
}
