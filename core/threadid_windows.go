//go:build windows

package core

import "golang.org/x/sys/windows"

// CurrentThreadID returns the id of the OS thread running the caller.
func CurrentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
