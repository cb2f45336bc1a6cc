package timing

import "time"

// FakeSource is a manually driven Source. Time only moves when Advance or
// Sleep is called, which makes frame pacing deterministic in tests and
// simulations.
type FakeSource struct {
	now       time.Time
	oversleep time.Duration
	sleeps    []time.Duration
}

// NewFakeSource returns a fake source whose clock starts at start.
func NewFakeSource(start time.Time) *FakeSource {
	return &FakeSource{now: start}
}

// Now returns the fake current time.
func (f *FakeSource) Now() time.Time {
	return f.now
}

// Sleep records the request and advances the clock by d plus the configured
// oversleep, mimicking scheduler granularity.
func (f *FakeSource) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d + f.oversleep)
}

// Advance moves the clock forward by d, standing in for work done by the loop.
func (f *FakeSource) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// SetOversleep makes every subsequent Sleep last extra longer than requested.
func (f *FakeSource) SetOversleep(extra time.Duration) {
	f.oversleep = extra
}

// Sleeps returns every duration passed to Sleep, oldest first.
func (f *FakeSource) Sleeps() []time.Duration {
	out := make([]time.Duration, len(f.sleeps))
	copy(out, f.sleeps)
	return out
}
