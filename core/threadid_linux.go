//go:build linux

package core

import "golang.org/x/sys/unix"

// CurrentThreadID returns the id of the OS thread running the caller.
// Goroutines migrate between threads, so the value identifies where the
// record was produced, not which goroutine produced it.
func CurrentThreadID() uint64 {
	return uint64(unix.Gettid())
}
