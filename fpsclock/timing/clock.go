package timing

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRate is returned when a clock is built with a non-positive rate.
var ErrInvalidRate = errors.New("invalid rate")

// Clock keeps a loop running at a constant number of frames per second.
// Call Tick at the end of every iteration of the loop.
//
// A Clock is owned by a single loop and is not safe for concurrent use.
type Clock struct {
	rate     int
	period   float64 // nanoseconds
	lastTick time.Time
	source   Source
}

// New creates a clock for the given rate using the system monotonic clock.
func New(rate int) (*Clock, error) {
	return NewWithSource(rate, nil)
}

// NewWithSource creates a clock that reads time from src and sleeps through it.
// A nil src uses the system clock.
func NewWithSource(rate int, src Source) (*Clock, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d frames per second", ErrInvalidRate, rate)
	}
	if src == nil {
		src = SystemSource()
	}

	return &Clock{
		rate:     rate,
		period:   float64(time.Second) / float64(rate),
		lastTick: src.Now(),
		source:   src,
	}, nil
}

// Rate returns the frames per second the clock was created with.
func (c *Clock) Rate() int {
	return c.rate
}

// PeriodNanos returns the target frame period in nanoseconds.
func (c *Clock) PeriodNanos() float64 {
	return c.period
}

// Period returns the target frame period truncated to whole nanoseconds.
func (c *Clock) Period() time.Duration {
	return time.Duration(c.period)
}

// LastTick returns the instant the last Tick returned, or the construction
// time if Tick was never called.
func (c *Clock) LastTick() time.Time {
	return c.lastTick
}

// Tick sleeps for whatever is left of the current frame period and returns the
// slack in nanoseconds: positive when the frame finished early, zero or negative
// when it overran the period. An overrun never sleeps.
//
// The next frame is measured from the moment Tick returns, so oversleeping is
// not made up later.
func (c *Clock) Tick() float64 {
	elapsed := float64(c.source.Now().Sub(c.lastTick))
	slack := c.period - elapsed

	if slack > 0 {
		c.source.Sleep(time.Duration(slack))
	}

	c.lastTick = c.source.Now()
	return slack
}
