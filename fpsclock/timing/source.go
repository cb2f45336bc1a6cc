package timing

import "time"

// Source provides the current time and a way to block the calling goroutine.
// Only differences between Now readings are meaningful.
type Source interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemSource returns a Source backed by the runtime's monotonic clock.
// time.Now carries a monotonic reading, so durations between readings are
// unaffected by wall clock changes.
func SystemSource() Source {
	return systemSource{}
}

type systemSource struct{}

func (systemSource) Now() time.Time        { return time.Now() }
func (systemSource) Sleep(d time.Duration) { time.Sleep(d) }
