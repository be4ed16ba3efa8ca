package handler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter"
)

// ColorMode selects whether ConsoleHandler colours its lines
type ColorMode int

const (
	// ColorAuto colours output when the writer is a terminal
	ColorAuto ColorMode = iota
	// ColorAlways colours output regardless of the writer
	ColorAlways
	// ColorNever writes plain lines
	ColorNever
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ConsoleHandler writes log entries to stdout/stderr
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	styles          *levelStyles // nil when colour is off
	mu              sync.Mutex   // protects syncBuf, syncEntry and writer
	syncBuf         bytes.Buffer
	syncEntry       core.Entry
	stats           *Stats
	queue           *asyncQueue // nil in synchronous mode
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: PatternFormatter with DefaultPattern)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// Color selects level colouring (default: ColorAuto)
	Color ColorMode
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewPatternFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &ConsoleHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		stats:     NewStats(),
	}

	// Cache the optional formatter interfaces for the allocation-free paths
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.syncBuf.Grow(256)
	h.syncEntry.Fields = make([]core.Field, 0, 16)

	if useColor(cfg.Color, cfg.Writer) {
		h.styles = newLevelStyles(cfg.Writer)
	}

	if cfg.Async {
		h.queue = newAsyncQueue(cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats, h.write)
	}

	return h
}

// Handle processes a log entry
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.queue == nil {
		return h.write(entry)
	}
	return h.queue.enqueue(entry)
}

// HandleLog processes log data without a pooled Entry in synchronous
// mode; in async mode it builds a pooled entry for the queue.
func (h *ConsoleHandler) HandleLog(hdr core.Header, loggerFields, callFields []core.Field) error {
	if h.queue != nil {
		entry := core.GetEntry()
		entry.Fill(&hdr, loggerFields, callFields)
		return h.queue.enqueue(entry)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.syncEntry.Fill(&hdr, loggerFields, callFields)
	err := h.writeLocked(&h.syncEntry)
	h.syncEntry.Fields = h.syncEntry.Fields[:0]
	return err
}

// write formats and writes an entry
func (h *ConsoleHandler) write(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writeLocked(entry)
}

func (h *ConsoleHandler) writeLocked(entry *core.Entry) error {
	var data []byte
	switch {
	case h.bufferFormatter != nil:
		h.syncBuf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.syncBuf)
		data = h.syncBuf.Bytes()
	case h.writerFormatter != nil && h.styles == nil:
		err := h.writerFormatter.FormatTo(entry, h.writer)
		if err == nil {
			h.stats.IncrementProcessed()
		}
		return err
	default:
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			return err
		}
	}

	if h.styles != nil {
		data = h.styles.apply(entry.Level, data)
	}

	_, err := h.writer.Write(data)
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return h.queue == nil
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the async queue. The writer itself is not closed.
func (h *ConsoleHandler) Close() error {
	if h.queue != nil {
		h.queue.close()
	}
	return nil
}

// useColor resolves ColorAuto by checking whether w is a terminal
func useColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// levelStyles colours whole lines by level
type levelStyles struct {
	byLevel [numLevels]lipgloss.Style
}

func newLevelStyles(w io.Writer) *levelStyles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	s := &levelStyles{}
	s.byLevel[core.TraceLevel] = base.Foreground(lipgloss.Color("245")).Faint(true)
	s.byLevel[core.DebugLevel] = base.Foreground(lipgloss.Color("245"))
	s.byLevel[core.InfoLevel] = base.Foreground(lipgloss.Color("34"))
	s.byLevel[core.WarnLevel] = base.Foreground(lipgloss.Color("220"))
	s.byLevel[core.ErrorLevel] = base.Foreground(lipgloss.Color("196")).Bold(true)
	s.byLevel[core.CriticalLevel] = base.
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("196")).
		Bold(true)
	return s
}

// apply styles the line without its terminator; the terminator stays last
func (s *levelStyles) apply(level core.Level, line []byte) []byte {
	if level < 0 || int(level) >= numLevels {
		return line
	}
	body := bytes.TrimRight(line, "\r\n")
	eol := line[len(body):]
	style := s.byLevel[level]

	// Multi-line messages are styled line by line so lipgloss does not
	// pad them to a common width.
	out := make([]byte, 0, len(line)+32)
	for {
		i := bytes.IndexByte(body, '\n')
		if i < 0 {
			break
		}
		out = append(out, style.Render(string(body[:i]))...)
		out = append(out, '\n')
		body = body[i+1:]
	}
	out = append(out, style.Render(string(body))...)
	return append(out, eol...)
}
