package zapencoder

import (
	"bytes"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter/pattern"
)

var (
	linePool = buffer.NewPool()
	bodyPool = sync.Pool{New: func() interface{} { return new(bytes.Buffer) }}
)

// Encoder is a zapcore.Encoder that renders the zap entry through a
// compiled pattern program. Context and call-site fields are appended
// after the pattern output as a single JSON object.
type Encoder struct {
	zapcore.Encoder // accumulates context fields
	program         *pattern.Program
	msgID           *atomic.Uint64
}

// New returns an Encoder rendering lines with p
func New(p *pattern.Program) *Encoder {
	cfg := zapcore.EncoderConfig{
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		LineEnding:     "\n",
	}
	return &Encoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		program: p,
		msgID:   new(atomic.Uint64),
	}
}

// NewCore is a shorthand for zapcore.NewCore(New(p), ws, enab)
func NewCore(p *pattern.Program, ws zapcore.WriteSyncer, enab zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(New(p), ws, enab)
}

// Clone implements zapcore.Encoder. Clones share the message counter.
func (e *Encoder) Clone() zapcore.Encoder {
	return &Encoder{
		Encoder: e.Encoder.Clone(),
		program: e.program,
		msgID:   e.msgID,
	}
}

// EncodeEntry implements zapcore.Encoder
func (e *Encoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	rec := core.GetEntry()
	defer core.PutEntry(rec)

	rec.Time = ent.Time
	rec.Level = Level(ent.Level)
	rec.LoggerName = ent.LoggerName
	rec.Message = ent.Message
	rec.ThreadID = core.CurrentThreadID()
	rec.MsgID = e.msgID.Add(1)
	if ent.Caller.Defined {
		rec.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	body := bodyPool.Get().(*bytes.Buffer)
	body.Reset()
	e.program.AppendBody(rec, body)

	line := linePool.Get()
	line.Write(body.Bytes())
	bodyPool.Put(body)

	if err := e.appendFields(line, fields); err != nil {
		line.Free()
		return nil, err
	}
	line.AppendString(e.program.EOL())
	if ent.Stack != "" {
		line.AppendString(ent.Stack)
		line.AppendString(e.program.EOL())
	}
	return line, nil
}

// appendFields writes " {...}" when the entry carries any context or
// call-site fields
func (e *Encoder) appendFields(line *buffer.Buffer, fields []zapcore.Field) error {
	enc := e.Encoder.Clone()
	for i := range fields {
		fields[i].AddTo(enc)
	}
	obj, err := enc.EncodeEntry(zapcore.Entry{}, nil)
	if err != nil {
		return err
	}
	defer obj.Free()

	b := bytes.TrimRight(obj.Bytes(), "\n")
	if len(b) <= 2 { // "{}"
		return nil
	}
	line.AppendByte(' ')
	line.Write(b)
	return nil
}

// Level maps a zap level to the closest core level. DPanic, Panic and
// Fatal all become CriticalLevel.
func Level(l zapcore.Level) core.Level {
	switch {
	case l < zapcore.DebugLevel:
		return core.TraceLevel
	case l == zapcore.DebugLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.ErrorLevel:
		return core.ErrorLevel
	default:
		return core.CriticalLevel
	}
}

// compile-time check
var _ zapcore.Encoder = (*Encoder)(nil)
