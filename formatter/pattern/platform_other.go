//go:build !windows

package pattern

// DefaultEOL terminates every rendered record.
const DefaultEOL = "\n"

// The offset is already part of the breakdown (time.Time.Zone), so %z
// reads it directly without locking.
const cacheOffsetByDefault = false
