package core

import (
	"testing"
	"time"
)

func TestCoarseNow(t *testing.T) {
	StartCoarseClock()
	// Allow the ticker to fire at least once
	time.Sleep(2 * time.Millisecond)

	got := CoarseNow()
	diff := time.Since(got)
	if diff < 0 {
		diff = -diff
	}

	// The cached time should be within 5ms of real time
	if diff > 5*time.Millisecond {
		t.Errorf("CoarseNow() drifted %v from time.Now()", diff)
	}
}

func TestCoarseClockIdempotent(t *testing.T) {
	c1 := CoarseClock()
	c2 := CoarseClock()

	if c1().IsZero() || c2().IsZero() {
		t.Error("CoarseClock() returned zero time after repeated starts")
	}
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := SystemClock()()
	if got.Before(before) {
		t.Errorf("SystemClock() = %v, before %v", got, before)
	}
}
