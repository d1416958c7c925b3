package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reader reads NDJSON capture files.
type Reader struct {
	path string
	file *os.File
}

// NewReader opens a capture file for reading.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}
	return &Reader{path: path, file: file}, nil
}

// Path returns the file path being read.
func (r *Reader) Path() string {
	return r.path
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadAll reads every record in the file. Malformed lines are skipped:
// a capture interrupted mid-write still replays everything before the
// torn line.
func (r *Reader) ReadAll() ([]Record, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	var records []Record
	scanner := bufio.NewScanner(r.file)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan capture: %w", err)
	}
	return records, nil
}

// Tail follows the capture file and sends new records on the returned
// channel, starting from the current end of file. The channel closes
// when the context is cancelled. Uses fsnotify with a polling fallback.
func (r *Reader) Tail(ctx context.Context) <-chan Record {
	ch := make(chan Record, 100)

	go func() {
		defer close(ch)

		offset, err := r.file.Seek(0, io.SeekEnd)
		if err != nil {
			return
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			r.tailPolling(ctx, ch, offset)
			return
		}
		defer watcher.Close()

		// Watching the directory survives rename-and-recreate capture
		// rotation, unlike watching the file itself.
		if err := watcher.Add(filepath.Dir(r.path)); err != nil {
			r.tailPolling(ctx, ch, offset)
			return
		}

		r.tailWithWatcher(ctx, ch, watcher, offset)
	}()

	return ch
}

func (r *Reader) tailWithWatcher(ctx context.Context, ch chan<- Record, watcher *fsnotify.Watcher, offset int64) {
	baseName := filepath.Base(r.path)
	reader := bufio.NewReader(r.file)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName || !event.Has(fsnotify.Write) {
				continue
			}
			offset = r.readNewRecords(reader, ch, r.resetIfTruncated(reader, offset))

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Reader) tailPolling(ctx context.Context, ch chan<- Record, offset int64) {
	reader := bufio.NewReader(r.file)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			offset = r.readNewRecords(reader, ch, r.resetIfTruncated(reader, offset))
		}
	}
}

// resetIfTruncated rewinds when the file shrank under us.
func (r *Reader) resetIfTruncated(reader *bufio.Reader, offset int64) int64 {
	info, err := r.file.Stat()
	if err != nil {
		return offset
	}
	if info.Size() < offset {
		r.file.Seek(0, io.SeekStart)
		reader.Reset(r.file)
		return 0
	}
	return offset
}

func (r *Reader) readNewRecords(reader *bufio.Reader, ch chan<- Record, offset int64) int64 {
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			offset += int64(len(line))
			trimmed := strings.TrimSuffix(string(line), "\n")
			if trimmed != "" {
				if rec, perr := ParseRecord([]byte(trimmed)); perr == nil {
					select {
					case ch <- *rec:
					default:
					}
				}
			}
		}
		if err != nil {
			return offset
		}
	}
}

// ReadFile reads all records from a capture file path.
func ReadFile(path string) ([]Record, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadAll()
}
