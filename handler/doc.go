// Package handler provides the Handler interface and its built-in
// implementations for dispatching log entries to various outputs.
//
// All handlers support both synchronous and asynchronous operation. In
// async mode, entries are sent to a bounded channel and written by a
// background goroutine, which keeps the caller's hot path fast even
// under slow I/O. An async handler owns the entries it accepts and
// returns them to the pool once written; CanRecycleEntry reports
// whether the caller may reuse an entry after Handle returns.
//
// When the async queue is full, each handler applies a per-level
// OverflowPolicy: DropNewest (default for Trace through Warn),
// DropOldest, or Block with a configurable timeout (default for Error
// and Critical). A Block that times out falls back to a synchronous
// write, so errors are never silently dropped.
//
// Built-in handlers:
//
//   - ConsoleHandler writes formatted entries to any io.Writer (default:
//     stdout), colouring lines by level when the writer is a terminal.
//   - FileHandler writes to a file with rotation by size, age or
//     interval, optional gzip or zstd compression of rotated backups
//     and cleanup of old backups.
//   - MultiHandler fans out a single entry to multiple child handlers.
//   - SlogHandler adapts the Handler interface to log/slog.Handler.
//
// Handlers implementing FastHandler accept a core.Header and the field
// slices directly, so synchronous loggers never touch the entry pool.
//
// Every handler counts dropped, blocked and processed entries in Stats;
// StatsCollector exports them to Prometheus.
package handler
