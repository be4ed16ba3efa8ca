// Package logger is the public API. Most users only need to import this
// package.
//
// A Logger is immutable after construction: its name, fields, level and
// handler are set once via the Builder and never modified, so it is
// safe for concurrent use without locking on the read path.
//
// Every record carries the logger name, the OS thread id and a message
// id. Message ids start at 1 and are shared by all loggers derived from
// one Build through With and Named, so %i numbers a whole logger family.
//
// The package initializes a default Logger (async, InfoLevel, "%+"
// pattern to stdout) in init(). The package-level functions Info,
// Error, Debugf, etc. delegate to this default instance, so simple
// programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//	// [2023-09-23 15:35:46.123] [] [info] ready port=8080
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithName("api").
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// With returns a child that carries additional default fields and Named
// returns one with another name; both share the parent's handler:
//
//	reqLog := log.With(logger.String("request_id", id))
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
