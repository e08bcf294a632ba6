// Package tui provides the Bubble Tea integration for the arcade platform.
// The terminal stands in for the desktop: the avatar is a box drawn at the
// position the game sets, the mouse is the pointer, and overlay visuals are
// drawn into a cell buffer under a one-line status bar.
package tui

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// ErrClosed is returned by SetPosition once the host has been closed.
var ErrClosed = errors.New("tui: terminal host closed")

// pressHold is how long a keyboard press keeps the pointer button down.
// Terminals report key presses but never releases.
const pressHold = 150 * time.Millisecond

// Host implements the engine collaborators on top of a terminal. The
// scheduler goroutine writes through SetPosition, Apply and Report while the
// Bubble Tea goroutine feeds input and draws, so all state sits behind mu.
type Host struct {
	src engine.TimeSource

	mu         sync.Mutex
	dims       core.Vec
	avatar     core.Vec // Top-left corner
	placed     bool
	pointer    core.PointerState
	pressUntil time.Time
	live       map[engine.Handle]engine.VisualUpdate
	border     *core.Rect
	tilt       float64
	status     engine.StatusUpdate
	reported   bool
	frames     uint64
	closed     bool
}

var (
	_ engine.Actuator = (*Host)(nil)
	_ engine.Pointer  = (*Host)(nil)
	_ engine.Overlay  = (*Host)(nil)
	_ engine.Status   = (*Host)(nil)
)

// NewHost creates a host whose avatar box is dims cells large.
func NewHost(dims core.Vec, src engine.TimeSource) *Host {
	if src == nil {
		src = engine.SystemTime{}
	}
	return &Host{
		src:  src,
		dims: dims,
		live: make(map[engine.Handle]engine.VisualUpdate),
	}
}

// Env returns base with the host installed as every collaborator.
func (h *Host) Env(base engine.Env) engine.Env {
	base.Actuator = h
	base.Pointer = h
	base.Overlay = h
	base.Status = h
	return base
}

// SetPosition moves the avatar box.
func (h *Host) SetPosition(p core.Vec) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.avatar = p
	h.placed = true
	return nil
}

// Size returns the avatar box size in cells.
func (h *Host) Size() (core.Vec, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return core.Vec{}, ErrClosed
	}
	return h.dims, nil
}

// Sample returns the latest pointer reading.
func (h *Host) Sample() core.PointerState {
	now := h.src.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.pointer
	if now.Before(h.pressUntil) {
		s.Down = true
	}
	return s
}

// Apply records the frame's pool operations and visual state.
func (h *Host) Apply(f engine.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, op := range f.Ops {
		switch op.Kind {
		case engine.OpAcquire:
			h.live[op.Handle] = engine.VisualUpdate{Handle: op.Handle}
		case engine.OpRelease:
			delete(h.live, op.Handle)
		}
	}
	for _, v := range f.Visuals {
		if _, ok := h.live[v.Handle]; ok {
			h.live[v.Handle] = v
		}
	}
	h.border = f.Border
	h.tilt = f.Tilt
	h.frames++
}

// Report keeps the latest status update for the status bar.
func (h *Host) Report(u engine.StatusUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = u
	h.reported = true
}

// HandleMouse turns a mouse message into a pointer reading. Positions are
// cell centres.
func (h *Host) HandleMouse(msg tea.MouseMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pointer.Pos = core.V(float64(msg.X)+0.5, float64(msg.Y)+0.5)
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		h.pointer.Down = true
	case tea.MouseActionRelease:
		h.pointer.Down = false
	}
}

// Nudge moves the pointer by d cells, clamped to bounds.
func (h *Host) Nudge(d core.Vec, bounds core.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pointer.Pos = bounds.ClampPoint(h.pointer.Pos.Add(d))
}

// Press holds the pointer button down briefly.
func (h *Host) Press() {
	until := h.src.Now().Add(pressHold)
	h.mu.Lock()
	h.pressUntil = until
	h.mu.Unlock()
}

// Reset forgets everything drawn by the previous game.
func (h *Host) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.live)
	h.border = nil
	h.tilt = 0
	h.placed = false
	h.reported = false
	h.status = engine.StatusUpdate{}
	h.closed = false
}

// Close makes further avatar moves fail, which stops the running game.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// Status returns the latest status update, if any.
func (h *Host) Status() (engine.StatusUpdate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status, h.reported
}

// Live returns the number of visuals currently shown.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Draw renders the border, the live visuals and the avatar box into s.
func (h *Host) Draw(s *core.Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.border != nil {
		x0, x1 := span(h.border.X, h.border.Right())
		y0, y1 := span(h.border.Y, h.border.Bottom())
		s.DrawBox(x0, y0, x1-x0+1, y1-y0+1, core.ColorGray)
	}

	handles := make([]engine.Handle, 0, len(h.live))
	for hd, v := range h.live {
		if v.Visible && v.Opacity > 0.2 {
			handles = append(handles, hd)
		}
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, hd := range handles {
		drawVisual(s, h.live[hd])
	}

	if h.placed {
		x := int(math.Round(h.avatar.X))
		y := int(math.Round(h.avatar.Y))
		w := max(1, int(math.Round(h.dims.X)))
		ht := max(1, int(math.Round(h.dims.Y)))
		s.DrawBox(x, y, w, ht, core.ColorBrightCyan)
	}

	if h.reported && h.status.State == engine.GameOver {
		drawGameOver(s, h.status)
	}
}

// drawGameOver centres the final score and the reason the game ended over
// the play field while the game lingers in GameOver.
func drawGameOver(s *core.Screen, u engine.StatusUpdate) {
	mid := s.Height() / 2
	s.DrawTextCentered(mid-1, " GAME OVER ", core.ColorBrightRed)
	s.DrawTextCentered(mid, fmt.Sprintf(" score %d ", u.Value), core.ColorBrightWhite)
	if u.Text != "" {
		s.DrawTextCentered(mid+1, " "+u.Text+" ", core.ColorGray)
	}
}

func drawVisual(s *core.Screen, v engine.VisualUpdate) {
	x0, x1 := span(v.Rect.X, v.Rect.Right())
	y0, y1 := span(v.Rect.Y, v.Rect.Bottom())
	r := glyphFor(v.Content)
	if v.Opacity < 0.6 {
		r = '░'
	}
	c := v.Color
	if c == core.ColorDefault {
		c = core.ColorWhite
	}
	s.FillRect(x0, y0, x1-x0+1, y1-y0+1, r, c)
}

// span maps [lo, hi) in cell units onto inclusive cell indices. Anything
// narrower than a cell still covers the cell holding its centre.
func span(lo, hi float64) (int, int) {
	a := int(math.Round(lo))
	b := int(math.Round(hi)) - 1
	if b < a {
		a = int(math.Floor((lo + hi) / 2))
		b = a
	}
	return a, b
}

// glyphs maps the overlay content keys of the bundled games to cells.
var glyphs = map[string]rune{
	"ball":             '●',
	"bullet":           '·',
	"spark":            '*',
	"flash":            '+',
	"rock-small":       'o',
	"rock-medium":      'O',
	"rock-large":       '@',
	"paddle":           '█',
	"brick":            '▓',
	"pickup-slow":      'S',
	"pickup-fast":      'F',
	"pickup-life":      '♥',
	"wall":             '█',
	"dot":              '·',
	"pellet":           '•',
	"ghost":            'M',
	"ghost-frightened": 'm',
}

func glyphFor(content string) rune {
	if r, ok := glyphs[content]; ok {
		return r
	}
	return '■'
}
