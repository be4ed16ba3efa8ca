package pattern

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeZone is an OffsetQuery whose answer the test controls
type fakeZone struct {
	minutes atomic.Int64
	queries atomic.Int64
}

func (z *fakeZone) query(time.Time) int {
	z.queries.Add(1)
	return int(z.minutes.Load())
}

func TestOffsetCacheReusesWithinInterval(t *testing.T) {
	zone := &fakeZone{}
	zone.minutes.Store(60)
	c := NewOffsetCache(zone.query)
	t0 := time.Date(2024, 3, 31, 0, 59, 58, 0, time.UTC)

	if got := c.Minutes(t0); got != 60 {
		t.Fatalf("Minutes(t0) = %d, want 60", got)
	}

	zone.minutes.Store(120)
	if got := c.Minutes(t0.Add(4 * time.Second)); got != 60 {
		t.Errorf("Minutes(t0+4s) = %d, want cached 60", got)
	}
	if got := c.Minutes(t0.Add(OffsetRefreshInterval)); got != 120 {
		t.Errorf("Minutes(t0+5s) = %d, want refreshed 120", got)
	}
	if n := zone.queries.Load(); n != 2 {
		t.Errorf("queries = %d, want 2", n)
	}
}

func TestOffsetCacheRefreshesOnBackwardJump(t *testing.T) {
	zone := &fakeZone{}
	zone.minutes.Store(-300)
	c := NewOffsetCache(zone.query)
	t0 := time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC)
	c.Minutes(t0)

	zone.minutes.Store(-240)
	if got := c.Minutes(t0.Add(-time.Second)); got != -300 {
		t.Errorf("slightly older record = %d, want cached -300", got)
	}
	if got := c.Minutes(t0.Add(-time.Hour)); got != -240 {
		t.Errorf("much older record = %d, want refreshed -240", got)
	}
}

func TestOffsetCacheDefaultsToLocal(t *testing.T) {
	ts := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	if got, want := NewOffsetCache(nil).Minutes(ts), LocalOffsetMinutes(ts); got != want {
		t.Errorf("Minutes() = %d, want %d", got, want)
	}
}

func TestOffsetCacheConcurrent(t *testing.T) {
	zone := &fakeZone{}
	zone.minutes.Store(330)
	c := NewOffsetCache(zone.query)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if got := c.Minutes(t0.Add(time.Duration(i) * time.Millisecond)); got != 330 {
					t.Errorf("Minutes() = %d, want 330", got)
					return
				}
			}
		}()
	}
	wg.Wait()

	if n := zone.queries.Load(); n != 1 {
		t.Errorf("queries = %d, want 1 within a single interval", n)
	}
}
