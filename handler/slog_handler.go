package handler

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/patternlog/core"
)

// SlogHandler is an adapter that implements slog.Handler using a Handler.
// This allows the handlers to be used as a drop-in backend for log/slog.
//
// Groups opened with WithGroup become the record's logger name, joined
// with dots, so a pattern's %n shows them. Inline group attributes are
// flattened into "group.key" fields.
type SlogHandler struct {
	handler Handler
	level   core.Level
	attrs   []core.Field
	name    string
	recycle bool
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	s := &SlogHandler{
		handler: h,
		level:   level,
	}
	if rc, ok := h.(interface{ CanRecycleEntry() bool }); ok {
		s.recycle = rc.CanRecycleEntry()
	}
	return s
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle processes a slog.Record by converting it to a core.Entry and passing it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.LoggerName = s.name
	entry.ThreadID = core.CurrentThreadID()
	entry.Message = record.Message

	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		entry.Caller = core.CallerInfo{
			File:      frame.File,
			ShortFile: filepath.Base(frame.File),
			Line:      frame.Line,
			Function:  frame.Function,
			Defined:   frame.File != "",
		}
	}

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendSlogAttr(entry.Fields, "", a)
		return true
	})

	err := s.handler.Handle(entry)
	if s.recycle {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendSlogAttr(newAttrs, "", a)
	}
	c := *s
	c.attrs = newAttrs
	return &c
}

// WithGroup returns a new SlogHandler whose logger name is extended by name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	if s.name != "" {
		c.name = s.name + "." + name
	} else {
		c.name = name
	}
	return &c
}

// slogLevelToCore converts a slog.Level to a core.Level. Levels below
// Debug become Trace and levels at Error+4 or above become Critical.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendSlogAttr converts a slog.Attr to fields, flattening groups with a
// dotted key prefix.
func appendSlogAttr(dst []core.Field, prefix string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// An empty key inlines the group's attrs at the current level
		if a.Key == "" {
			key = prefix
		}
		for _, ga := range a.Value.Group() {
			dst = appendSlogAttr(dst, key, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
