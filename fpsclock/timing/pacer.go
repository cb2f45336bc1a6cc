package timing

import "time"

// Pacer controls frame rate timing for a loop.
type Pacer interface {
	// Tick blocks until it's time for the next frame and returns the slack
	// in nanoseconds. Returns immediately if the frame overran.
	Tick() float64

	// Rate returns the target frames per second, or 0 when unpaced.
	Rate() int
}

var _ Pacer = (*Clock)(nil)

// NewUnpaced returns a pacer that doesn't pace (for benchmarks and batch runs).
func NewUnpaced() Pacer {
	return &unpaced{}
}

type unpaced struct{}

func (u *unpaced) Tick() float64 { return 0 }
func (u *unpaced) Rate() int     { return 0 }

// FrameDuration returns the target duration of a single frame at rate, or 0
// for a non-positive rate.
func FrameDuration(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(rate))
}
