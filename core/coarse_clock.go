package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock returns the timestamp stamped on new entries.
type Clock func() time.Time

// coarseResolution is how often the coarse clock refreshes its cached value
const coarseResolution = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of
// the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseResolution)
			for now := range ticker.C {
				coarseNow.Store(&now)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value.
// StartCoarseClock must have been called before using CoarseNow.
func CoarseNow() time.Time {
	return *coarseNow.Load()
}

// CoarseClock starts the coarse clock if needed and returns it as a Clock.
// Timestamps lag wall time by up to 500µs, which %e tolerates but %f and
// %F make visible.
func CoarseClock() Clock {
	StartCoarseClock()
	return CoarseNow
}

// SystemClock is time.Now as a Clock
func SystemClock() Clock {
	return time.Now
}
