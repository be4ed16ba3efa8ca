package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// follower reads complete lines from a file as they are appended. When
// the file is removed or renamed and later recreated (log rotation), it
// continues with the new file from its start.
type follower struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	partial []byte
	emit    func(line []byte) error
}

// followFile emits every line of path, then keeps emitting appended lines
// until ctx is cancelled. A trailing line without a newline is emitted
// once it is completed.
func followFile(ctx context.Context, path string, emit func(line []byte) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory so a recreated file is noticed
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	f := &follower{path: abs, emit: emit}
	if err := f.open(); err != nil {
		return err
	}
	defer f.close()

	if err := f.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0:
				if err := f.drain(); err != nil {
					return err
				}
			case ev.Op&fsnotify.Create != 0:
				// Rotated: finish the old file, then start on the new one
				if err := f.drain(); err != nil {
					return err
				}
				f.close()
				if err := f.open(); err != nil {
					return err
				}
				if err := f.drain(); err != nil {
					return err
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", abs, err)
		}
	}
}

func (f *follower) open() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	f.file = file
	f.reader = bufio.NewReader(file)
	f.partial = f.partial[:0]
	return nil
}

func (f *follower) close() {
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}
}

// drain emits every complete line available in the current file
func (f *follower) drain() error {
	if f.file == nil {
		return nil
	}
	for {
		chunk, err := f.reader.ReadSlice('\n')
		f.partial = append(f.partial, chunk...)
		switch {
		case err == nil:
			line := bytes.TrimRight(f.partial, "\r\n")
			if emitErr := f.emit(line); emitErr != nil {
				return emitErr
			}
			f.partial = f.partial[:0]
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("read %s: %w", f.path, err)
		}
	}
}
