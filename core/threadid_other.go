//go:build !linux && !windows

package core

// CurrentThreadID returns 0 on platforms without a cheap thread id query.
func CurrentThreadID() uint64 {
	return 0
}
