// Package replay records game sessions as input journals and plays them back
// through the headless host.
//
// A recording is a directory holding three files:
//
//	manifest.json    game, seed, viewport and final result
//	events.jsonl.sz  snappy-framed JSON lines, one per status update
//	frames.bin.zst   zstd-compressed, length-prefixed pointer samples
package replay

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// Version is the recording format version written to manifests.
const Version = 1

const (
	manifestFile = "manifest.json"
	eventsFile   = "events.jsonl.sz"
	framesFile   = "frames.bin.zst"
)

// Frame record layout: tick u64, dt u64 (nanoseconds), payload length u32,
// then x f64, y f64, down u8. All little endian.
const (
	frameHeaderSize  = 8 + 8 + 4
	framePayloadSize = 8 + 8 + 1
)

var (
	// ErrCorrupt is returned when a recording cannot be decoded.
	ErrCorrupt = errors.New("replay: corrupt recording")
	// ErrMismatch is returned when a replayed run ends differently from
	// its recording.
	ErrMismatch = errors.New("replay: result mismatch")
)

// Frame is one pointer sample and the time that passed since the previous one.
type Frame struct {
	Tick uint64
	DT   time.Duration
	X, Y float64
	Down bool
}

// Event is a status update captured during recording.
type Event struct {
	Tick  uint64 `json:"tick"`
	Game  string `json:"game"`
	Label string `json:"label,omitempty"`
	Value int    `json:"value"`
	Text  string `json:"text,omitempty"`
	State string `json:"state"`
}

// Viewport is a size in cells: the screen the session ran on, or the
// avatar window.
type Viewport struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Manifest describes a recording. The result fields are filled in when the
// writer finishes.
type Manifest struct {
	Version        int      `json:"version"`
	CreatedAt      string   `json:"created_at"`
	Game           string   `json:"game"`
	Seed           int64    `json:"seed"`
	Viewport       Viewport `json:"viewport"`
	Avatar         Viewport `json:"avatar"`
	TickIntervalMs int      `json:"tick_interval_ms"`
	Preset         string   `json:"preset,omitempty"`
	EventsPath     string   `json:"events_path"`
	FramesPath     string   `json:"frames_path"`

	// Config is the game configuration the run used, so a rerun does not
	// depend on the config files present at replay time.
	Config json.RawMessage `json:"config,omitempty"`

	Frames   int             `json:"frames"`
	Ticks    int             `json:"ticks"`
	Score    int             `json:"score"`
	State    string          `json:"state"`
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
}

func encodeFrame(f Frame) []byte {
	buf := make([]byte, frameHeaderSize+framePayloadSize)
	binary.LittleEndian.PutUint64(buf[0:8], f.Tick)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(f.DT))
	binary.LittleEndian.PutUint32(buf[16:20], framePayloadSize)
	p := buf[frameHeaderSize:]
	binary.LittleEndian.PutUint64(p[0:8], math.Float64bits(f.X))
	binary.LittleEndian.PutUint64(p[8:16], math.Float64bits(f.Y))
	if f.Down {
		p[16] = 1
	}
	return buf
}

// decodeFrames splits a decompressed frame stream into frames.
func decodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame
	offset := 0
	for offset < len(data) {
		if offset+frameHeaderSize > len(data) {
			return nil, fmt.Errorf("%w: truncated frame header at byte %d", ErrCorrupt, offset)
		}
		tick := binary.LittleEndian.Uint64(data[offset : offset+8])
		dt := int64(binary.LittleEndian.Uint64(data[offset+8 : offset+16]))
		size := int(binary.LittleEndian.Uint32(data[offset+16 : offset+20]))
		offset += frameHeaderSize
		if size < framePayloadSize || offset+size > len(data) {
			return nil, fmt.Errorf("%w: bad frame payload of %d bytes at tick %d", ErrCorrupt, size, tick)
		}
		if dt < 0 {
			return nil, fmt.Errorf("%w: negative dt at tick %d", ErrCorrupt, tick)
		}
		p := data[offset : offset+size]
		offset += size

		frames = append(frames, Frame{
			Tick: tick,
			DT:   time.Duration(dt),
			X:    math.Float64frombits(binary.LittleEndian.Uint64(p[0:8])),
			Y:    math.Float64frombits(binary.LittleEndian.Uint64(p[8:16])),
			Down: p[16] != 0,
		})
	}
	return frames, nil
}
