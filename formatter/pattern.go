package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter/pattern"
)

// PatternFormatter renders log entries through a compiled pattern
// program. Structured fields and caller information are appended after
// the pattern output as key=value pairs.
type PatternFormatter struct {
	Config
	program *pattern.Program
}

// NewPatternFormatter compiles cfg.Pattern and returns a formatter for it
func NewPatternFormatter(cfg Config) *PatternFormatter {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	cfg.EOL = cfg.eol()
	p := pattern.Compile(cfg.Pattern,
		pattern.WithTimeReference(cfg.timeReference()),
		pattern.WithMessageCounter(cfg.MessageCounter),
		pattern.WithEOL(cfg.EOL),
	)
	return &PatternFormatter{Config: cfg, program: p}
}

// Program returns the compiled pattern
func (f *PatternFormatter) Program() *pattern.Program {
	return f.program
}

// Format formats an entry through the pattern
func (f *PatternFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)
	return copyBytes(buf), nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *PatternFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.FormatEntry(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry formats an entry into the given buffer (implements BufferFormatter).
func (f *PatternFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	f.program.AppendBody(entry, buf)

	if !f.OmitFields {
		for i := range entry.Fields {
			field := &entry.Fields[i]
			buf.WriteByte(' ')
			buf.WriteString(field.Key)
			buf.WriteByte('=')
			buf.Write(field.AppendValue(buf.AvailableBuffer()))
		}
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteString(" caller=")
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
	}

	buf.WriteString(f.EOL)
}
