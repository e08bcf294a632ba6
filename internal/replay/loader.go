package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Replay is a loaded recording.
type Replay struct {
	Dir      string
	Manifest Manifest
	Frames   []Frame
	Events   []Event
}

// Load reads a recording directory. Missing files are returned as-is;
// undecodable content wraps ErrCorrupt.
func Load(dir string) (*Replay, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrCorrupt, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, m.Version)
	}
	if m.Game == "" {
		return nil, fmt.Errorf("%w: manifest has no game", ErrCorrupt)
	}
	if m.EventsPath == "" {
		m.EventsPath = eventsFile
	}
	if m.FramesPath == "" {
		m.FramesPath = framesFile
	}

	events, err := loadEvents(filepath.Join(dir, m.EventsPath))
	if err != nil {
		return nil, err
	}
	frames, err := loadFrames(filepath.Join(dir, m.FramesPath))
	if err != nil {
		return nil, err
	}
	if m.Frames != 0 && m.Frames != len(frames) {
		return nil, fmt.Errorf("%w: manifest lists %d frames, found %d", ErrCorrupt, m.Frames, len(frames))
	}
	return &Replay{Dir: dir, Manifest: m, Frames: frames, Events: events}, nil
}

func loadEvents(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(snappy.NewReader(file))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var events []Event
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrCorrupt, len(events), err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: events: %v", ErrCorrupt, err)
	}
	return events, nil
}

func loadFrames(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: frames: %v", ErrCorrupt, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: frames: %v", ErrCorrupt, err)
	}
	return decodeFrames(data)
}
