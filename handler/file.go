package handler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter"
)

// Compression selects how rotated backups are stored
type Compression string

const (
	// CompressNone keeps rotated backups as plain files
	CompressNone Compression = ""
	// CompressGzip stores rotated backups as <name>.gz
	CompressGzip Compression = "gzip"
	// CompressZstd stores rotated backups as <name>.zst
	CompressZstd Compression = "zstd"
)

// ParseCompression accepts "", "none", "gzip" and "zstd"
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressNone, nil
	case "gzip", "gz":
		return CompressGzip, nil
	case "zstd", "zst":
		return CompressZstd, nil
	default:
		return CompressNone, fmt.Errorf("unknown compression %q", s)
	}
}

// suffix returns the file extension of a compressed backup
func (c Compression) suffix() string {
	switch c {
	case CompressGzip:
		return ".gz"
	case CompressZstd:
		return ".zst"
	default:
		return ""
	}
}

// FileHandler writes log entries to a file with rotation support
type FileHandler struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	buf             bytes.Buffer
	mu              sync.Mutex
	maxSize         int64
	maxAge          time.Duration
	maxBackups      int
	rotateInterval  time.Duration
	compression     Compression
	currentSize     int64
	lastRotateTime  time.Time
	stats           *Stats
	queue           *asyncQueue // nil in synchronous mode
	closed          bool
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: PatternFormatter with DefaultPattern)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxAge is the maximum age before rotation (0 = no time rotation)
	MaxAge time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// Compression compresses rotated backups (default: CompressNone)
	Compression Compression
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if _, err := ParseCompression(string(cfg.Compression)); err != nil {
		return nil, err
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

	// Create directory if it doesn't exist
	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		file:           file,
		formatter:      cfg.Formatter,
		maxSize:        cfg.MaxSize,
		maxAge:         cfg.MaxAge,
		maxBackups:     cfg.MaxBackups,
		rotateInterval: cfg.RotateInterval,
		compression:    cfg.Compression,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
		stats:          NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	if cfg.Async {
		h.queue = newAsyncQueue(cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats, h.write)
	}

	return h, nil
}

func openLogFile(name string) (*os.File, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if h.queue == nil {
		return h.write(entry)
	}
	return h.queue.enqueue(entry)
}

// write formats and writes an entry
func (h *FileHandler) write(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return os.ErrClosed
	}

	var data []byte
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	} else {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			return err
		}
	}

	// Check if rotation is needed
	if err := h.rotateIfNeeded(); err != nil {
		return err
	}

	n, err := h.file.Write(data)
	h.currentSize += int64(n)
	if err == nil {
		h.stats.IncrementProcessed()
	}

	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return h.queue == nil
}

// rotateIfNeeded checks and performs rotation if needed
func (h *FileHandler) rotateIfNeeded() error {
	needRotate := false

	// Check size-based rotation
	if h.maxSize > 0 && h.currentSize >= h.maxSize {
		needRotate = true
	}

	// Check time-based rotation (by age)
	if h.maxAge > 0 && time.Since(h.lastRotateTime) >= h.maxAge {
		needRotate = true
	}

	// Check interval-based rotation
	if h.rotateInterval > 0 && time.Since(h.lastRotateTime) >= h.rotateInterval {
		needRotate = true
	}

	if !needRotate {
		return nil
	}

	return h.rotate()
}

// rotate performs the actual file rotation
func (h *FileHandler) rotate() error {
	if err := h.file.Sync(); err != nil {
		return fmt.Errorf("sync before rotation: %w", err)
	}
	if err := h.file.Close(); err != nil {
		return fmt.Errorf("close before rotation: %w", err)
	}

	// Rename current file with timestamp
	rotatedName := h.backupName(time.Now())

	if err := os.Rename(h.filename, rotatedName); err != nil {
		// If rename fails, try to reopen the original file
		file, openErr := openLogFile(h.filename)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %w, reopen failed: %v", err, openErr)
		}
		h.file = file
		return fmt.Errorf("rotation failed: %w", err)
	}

	file, err := openLogFile(h.filename)
	if err != nil {
		return err
	}
	h.file = file
	h.currentSize = 0
	h.lastRotateTime = time.Now()

	if h.compression != CompressNone {
		if err := compressFile(rotatedName, rotatedName+h.compression.suffix(), h.compression); err != nil {
			return err
		}
	}

	// Clean up old backups if needed
	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	return nil
}

// backupName returns an unused backup name for a rotation at t. Several
// rotations within one millisecond get a numeric suffix.
func (h *FileHandler) backupName(t time.Time) string {
	base := h.filename + "." + t.Format("2006-01-02T15-04-05.000")
	name := base
	for i := 1; backupExists(name, h.compression); i++ {
		name = base + "." + strconv.Itoa(i)
	}
	return name
}

func backupExists(name string, c Compression) bool {
	if _, err := os.Lstat(name); err == nil {
		return true
	}
	if c == CompressNone {
		return false
	}
	_, err := os.Lstat(name + c.suffix())
	return err == nil
}

// compressFile writes src compressed into dst and removes src. On
// failure the partial dst is removed and src is kept.
func compressFile(src, dst string, c Compression) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create compressed backup: %w", err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	var enc io.WriteCloser
	switch c {
	case CompressZstd:
		if enc, err = zstd.NewWriter(out); err != nil {
			return fmt.Errorf("init zstd writer: %w", err)
		}
	default:
		enc = gzip.NewWriter(out)
	}

	if _, err = io.Copy(enc, in); err != nil {
		_ = enc.Close()
		return fmt.Errorf("compress backup: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("flush compressed backup: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("close compressed backup: %w", err)
	}

	_ = in.Close()
	return os.Remove(src)
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return
	}

	type backup struct {
		name    string
		modTime time.Time
	}
	backups := make([]backup, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: match, modTime: info.ModTime()})
	}

	// Oldest first; names carry the rotation time, so they break ties
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].modTime.Before(backups[j].modTime)
		}
		return backups[i].name < backups[j].name
	})

	if len(backups) > h.maxBackups {
		for _, b := range backups[:len(backups)-h.maxBackups] {
			if err := os.Remove(b.name); err != nil {
				return
			}
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the async queue, then syncs and closes the file
func (h *FileHandler) Close() error {
	if h.queue != nil {
		h.queue.close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	syncErr := h.file.Sync()
	closeErr := h.file.Close()
	if syncErr != nil {
		return fmt.Errorf("sync log file: %w", syncErr)
	}
	return closeErr
}
