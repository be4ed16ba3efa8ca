//go:build windows

package pattern

// DefaultEOL terminates every rendered record.
const DefaultEOL = "\r\n"

// Zone lookups go through the registry-backed time zone database here,
// so %z reuses a cached offset.
const cacheOffsetByDefault = true
