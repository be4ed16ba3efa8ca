package logger

import (
	"sync"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter"
	"github.com/philipp01105/patternlog/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Default logger: "%+" lines to stdout through an async console handler
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Async:      true,
		BufferSize: 1000,
		Formatter:  formatter.NewPatternFormatter(formatter.Config{Pattern: formatter.DefaultPattern}),
	})

	defaultLogger = NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger and returns the previous one. The
// previous logger is not closed.
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// Package-level convenience functions using the default logger

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	Default().Trace(msg, fields...)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	Default().Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	Default().Tracef(format, args...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	Default().Warnf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...interface{}) {
	Default().Criticalf(format, args...)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named creates a copy of the default logger with a different name
func Named(name string) *Logger {
	return Default().Named(name)
}
