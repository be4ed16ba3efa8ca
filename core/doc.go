// Package core defines the shared types used across the framework.
//
// Entry is the log record every formatter renders: timestamp, level,
// logger name, OS thread id, message sequence id, message and optional
// structured fields. Level carries both the long name rendered by the
// %l pattern flag ("info", "warning", ...) and the one-letter name
// rendered by %L.
//
// Entry objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Entry with GetEntry and must
// return it with PutEntry once the handler has consumed it.
//
// The package also hosts the clocks a logger can stamp entries with
// (SystemClock and the 500µs CoarseClock) and CurrentThreadID, which
// asks the OS for the id of the calling thread.
package core
