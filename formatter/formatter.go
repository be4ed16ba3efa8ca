package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter/pattern"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// DefaultPattern is the line layout used when Config.Pattern is empty
const DefaultPattern = "%+"

// DefaultTimestampPattern renders RFC 3339 timestamps with nanoseconds
const DefaultTimestampPattern = "%Y-%m-%dT%H:%M:%S.%F%z"

// Config holds common formatter configuration
type Config struct {
	// Pattern is the line layout of PatternFormatter (default DefaultPattern)
	Pattern string
	// TimestampPattern is the layout of the JSON "time" value
	// (default DefaultTimestampPattern)
	TimestampPattern string
	// UTC renders every date and time directive in UTC instead of local time
	UTC bool
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// OmitFields drops structured fields from PatternFormatter output
	OmitFields bool
	// MessageCounter enables the %i directive
	MessageCounter bool
	// EOL overrides the platform line terminator
	EOL string
}

func (c Config) timeReference() pattern.TimeReference {
	if c.UTC {
		return pattern.UTC
	}
	return pattern.Local
}

func (c Config) eol() string {
	if c.EOL == "" {
		return pattern.DefaultEOL
	}
	return c.EOL
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// copyBytes detaches the buffer content from the pooled buffer
func copyBytes(buf *bytes.Buffer) []byte {
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}
