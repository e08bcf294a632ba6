package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

var dirCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Writer streams a recording to disk.
type Writer struct {
	mu          sync.Mutex
	dir         string
	manifest    Manifest
	eventFile   *os.File
	eventStream *snappy.Writer
	frameFile   *os.File
	frameStream *zstd.Encoder
	frames      int
	closed      bool
}

// NewWriter creates <root>/<game>-<UTC time> and opens the compressed
// streams. meta supplies the session fields of the manifest.
func NewWriter(root string, meta Manifest, clock func() time.Time) (*Writer, error) {
	if root == "" {
		return nil, errors.New("replay: root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}

	name := dirCleaner.ReplaceAllString(meta.Game, "")
	if name == "" {
		name = "session"
	}
	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", name, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay: failed to create %s: %w", dir, err)
	}

	eventFile, err := os.Create(filepath.Join(dir, eventsFile))
	if err != nil {
		return nil, fmt.Errorf("replay: failed to create events: %w", err)
	}
	frameFile, err := os.Create(filepath.Join(dir, framesFile))
	if err != nil {
		eventFile.Close()
		return nil, fmt.Errorf("replay: failed to create frames: %w", err)
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventFile.Close()
		frameFile.Close()
		return nil, fmt.Errorf("replay: failed to start zstd: %w", err)
	}

	meta.Version = Version
	meta.CreatedAt = created.Format(time.RFC3339Nano)
	meta.EventsPath = eventsFile
	meta.FramesPath = framesFile

	w := &Writer{
		dir:         dir,
		manifest:    meta,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		frameFile:   frameFile,
		frameStream: frameStream,
	}
	if err := w.writeManifest(); err != nil {
		w.closeStreams()
		return nil, err
	}
	return w, nil
}

// Dir returns the recording directory.
func (w *Writer) Dir() string { return w.dir }

// AppendFrame writes one pointer sample.
func (w *Writer) AppendFrame(f Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	if _, err := w.frameStream.Write(encodeFrame(f)); err != nil {
		return fmt.Errorf("replay: failed to write frame %d: %w", f.Tick, err)
	}
	w.frames++
	return nil
}

// AppendEvent writes one JSON line to the event log and flushes it, so a
// crashed session still leaves its events behind.
func (w *Writer) AppendEvent(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	if _, err := w.eventStream.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("replay: failed to write event: %w", err)
	}
	return w.eventStream.Flush()
}

// Result is the outcome stored in a finished manifest.
type Result struct {
	Ticks    int
	Score    int
	State    string
	Snapshot any // JSON-encodable; nil when the game has none
}

// Finish records the outcome in the manifest and closes the streams.
func (w *Writer) Finish(res Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}

	w.manifest.Ticks = res.Ticks
	w.manifest.Score = res.Score
	w.manifest.State = res.State
	if res.Snapshot != nil {
		data, err := json.Marshal(res.Snapshot)
		if err != nil {
			w.closeStreams()
			return fmt.Errorf("replay: failed to encode snapshot: %w", err)
		}
		w.manifest.Snapshot = data
	}

	firstErr := w.closeStreams()
	w.manifest.Frames = w.frames
	if err := w.writeManifest(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Close closes the streams without recording an outcome. Closing a finished
// writer does nothing.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	firstErr := w.closeStreams()
	w.manifest.Frames = w.frames
	if err := w.writeManifest(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// closeStreams attempts every flush and close and returns the first failure.
// Callers hold the mutex.
func (w *Writer) closeStreams() error {
	w.closed = true
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(w.eventStream.Close())
	keep(w.eventFile.Close())
	keep(w.frameStream.Close())
	keep(w.frameFile.Close())
	return firstErr
}

func (w *Writer) writeManifest() error {
	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("replay: failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, manifestFile), data, 0o644); err != nil {
		return fmt.Errorf("replay: failed to write manifest: %w", err)
	}
	return nil
}
