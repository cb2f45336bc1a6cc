package backend

import "time"

// Backend presents the result of every paced frame (terminal UI, log output).
// Backends are responsible for:
// - Rendering or logging the frame timing
// - Translating platform events (keys, signals) into a quit request
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config Config) error

	// Update handles a finished frame. It returns true when the loop
	// should stop after this frame.
	Update(frame Frame) (quit bool, err error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration for backends
type Config struct {
	Title     string
	MaxFrames uint64 // 0 runs until the backend is asked to quit
	Callbacks Callbacks
}

// Callbacks allows backends to communicate with the driver
type Callbacks struct {
	// OnQuit is called when the backend requests shutdown (e.g. key press, signal)
	OnQuit func()
}

// Frame describes one paced iteration of the loop.
type Frame struct {
	Index uint64        // zero based
	Rate  int           // target frames per second, 0 when unpaced
	Slack float64       // nanoseconds returned by the pacer
	Slept time.Duration // wall time spent inside the pacer
}

// Overrun reports whether the frame took at least the whole target period.
func (f Frame) Overrun() bool {
	return f.Rate > 0 && f.Slack <= 0
}
