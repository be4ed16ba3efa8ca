package core

import "strings"

// Level represents the severity level of a log entry
type Level int8

const (
	// TraceLevel for very fine-grained diagnostic output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures the application cannot recover from
	CriticalLevel
	// OffLevel disables logging when used as a threshold
	OffLevel
)

// long and short names indexed by Level; rendered by %l and %L
var (
	levelNames      = [...]string{"trace", "debug", "info", "warning", "error", "critical", "off"}
	shortLevelNames = [...]string{"T", "D", "I", "W", "E", "C", "O"}
)

// String returns the long name of the level
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ShortString returns the one-letter name of the level
func (l Level) ShortString() string {
	if l < 0 || int(l) >= len(shortLevelNames) {
		return "?"
	}
	return shortLevelNames[l]
}

// ParseLevel converts a level name to a Level. Long names, one-letter
// names and the aliases "warn", "err" and "fatal" are accepted in any case.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "t":
		return TraceLevel, true
	case "debug", "d":
		return DebugLevel, true
	case "info", "i":
		return InfoLevel, true
	case "warning", "warn", "w":
		return WarnLevel, true
	case "error", "err", "e":
		return ErrorLevel, true
	case "critical", "fatal", "c":
		return CriticalLevel, true
	case "off", "o":
		return OffLevel, true
	default:
		return InfoLevel, false
	}
}
