package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/handler"
)

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         core.Level
	name          string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
	clock         core.Clock
	// msgID is shared by every logger derived from the same Build
	msgID *atomic.Uint64
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         core.Level
	name          string
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 3,              // Default skip for getCaller
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	// Pre-compute recycleEntry to avoid interface assertion in Build()
	if rc, ok := h.(interface{ CanRecycleEntry() bool }); ok {
		b.recycleEntry = rc.CanRecycleEntry()
	} else {
		b.recycleEntry = false
	}
	// Cache FastHandler for pool-free hot path
	b.fastHandler, _ = h.(handler.FastHandler)
	return b
}

// WithLevel sets the minimum level. OffLevel disables the logger.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithName sets the logger name rendered by %n
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock stamps records with core.CoarseNow instead of
// time.Now. The cached clock lags by up to 500µs.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	clock := core.SystemClock()
	if b.coarseClock {
		clock = core.CoarseClock()
	}
	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)

	return &Logger{
		handler:       b.handler,
		fastHandler:   b.fastHandler,
		level:         b.level,
		name:          b.name,
		fields:        fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		recycleEntry:  b.recycleEntry,
		clock:         clock,
		msgID:         new(atomic.Uint64),
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := *l
	c.fields = newFields
	return &c
}

// Named returns a copy of the logger with a different name. The copy
// shares the handler and the message counter.
func (l *Logger) Named(name string) *Logger {
	c := *l
	c.name = name
	return &c
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level the logger emits
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether a record at level would be emitted
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.level < core.OffLevel && level < core.OffLevel
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if !l.Enabled(level) {
		return
	}

	l.log(level, msg, fields)
}

// header stamps the record metadata shared by both dispatch paths
func (l *Logger) header(level core.Level, msg string) core.Header {
	h := core.Header{
		Time:       l.clock(),
		Level:      level,
		LoggerName: l.name,
		ThreadID:   core.CurrentThreadID(),
		MsgID:      l.msgID.Add(1),
		Message:    msg,
	}
	if l.includeCaller {
		// header adds a frame on top of log
		h.Caller = core.GetCaller(l.callerSkip + 1)
	}
	return h
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	// Handler check - exit if no handler (avoid any work)
	if l.handler == nil {
		return
	}

	hdr := l.header(level, msg)

	// Fast path: use FastHandler when there are no call-site fields.
	// This avoids sync.Pool Get/Put overhead. We cannot pass variadic
	// fields through the interface because that causes them to escape
	// to the heap.
	if l.fastHandler != nil && len(fields) == 0 {
		_ = l.fastHandler.HandleLog(hdr, l.fields, nil)
		return
	}

	// Get entry from pool AFTER level check
	entry := core.GetEntry()
	entry.Fill(&hdr, l.fields, fields)

	err := l.handler.Handle(entry)
	if err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message. Unlike a fatal level it neither
// exits nor panics.
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
