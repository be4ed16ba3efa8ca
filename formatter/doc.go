// Package formatter defines how log entries are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which appends to a caller-owned buffer. Handlers
// check for the optional interfaces at construction time and prefer
// them, eliminating the intermediate byte slice allocation on the
// write path.
//
// PatternFormatter renders each entry through a program compiled once
// from a printf/strftime-like pattern (see package pattern); the
// default pattern "%+" produces
//
//	[2023-09-23 15:35:46.123] [app] [info] message
//
// JSONFormatter writes one object per line and renders its timestamp
// with the same pattern engine. Both use a pooled bytes.Buffer and
// Go's Append-style functions to avoid per-call allocations.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
