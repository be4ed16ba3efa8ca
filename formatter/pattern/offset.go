package pattern

import (
	"sync"
	"time"
)

// OffsetRefreshInterval is how long a cached UTC offset is reused before
// the time zone database is queried again.
const OffsetRefreshInterval = 5 * time.Second

// OffsetQuery returns the offset of the process time zone at t, in minutes
// east of UTC.
type OffsetQuery func(t time.Time) int

// LocalOffsetMinutes queries time.Local for its offset at t.
func LocalOffsetMinutes(t time.Time) int {
	_, offset := t.In(time.Local).Zone()
	return offset / 60
}

// OffsetCache remembers the last UTC offset it computed and recomputes it
// only when the record being rendered is at least OffsetRefreshInterval
// away from the one that triggered the last refresh. The cached value can
// therefore lag a DST switch by up to the refresh interval.
//
// The zero value is not usable; create caches with NewOffsetCache.
type OffsetCache struct {
	query OffsetQuery

	mu            sync.Mutex
	lastRefresh   time.Time
	offsetMinutes int
}

// NewOffsetCache returns an empty cache backed by query
// (LocalOffsetMinutes when nil). The first lookup always queries.
func NewOffsetCache(query OffsetQuery) *OffsetCache {
	if query == nil {
		query = LocalOffsetMinutes
	}
	return &OffsetCache{query: query}
}

// Minutes returns the offset for a record stamped t. The cached value is
// re-read once t is OffsetRefreshInterval or more after the last refresh,
// and also when t is that far before it, as after the clock steps back.
func (c *OffsetCache) Minutes(t time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(t) {
		c.offsetMinutes = c.query(t)
		c.lastRefresh = t
	}
	return c.offsetMinutes
}

// stale reports whether t is an interval or more away from the last
// refresh. The zero lastRefresh is always stale. Records stamped far
// enough in the past also refresh, so a clock stepped backwards cannot
// pin an old offset.
func (c *OffsetCache) stale(t time.Time) bool {
	if c.lastRefresh.IsZero() {
		return true
	}
	d := t.Sub(c.lastRefresh)
	return d >= OffsetRefreshInterval || d <= -OffsetRefreshInterval
}
