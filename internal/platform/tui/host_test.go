package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestHost() (*Host, *engine.ManualTime) {
	clock := engine.NewManualTime(epoch)
	return NewHost(core.V(4, 3), clock), clock
}

// cells returns row y from column x0 up to x1.
func cells(s *core.Screen, y, x0, x1 int) string {
	return string([]rune(s.Row(y))[x0:x1])
}

func TestHostDrawsVisualsAndAvatar(t *testing.T) {
	h, _ := newTestHost()
	h.Apply(engine.Frame{
		Ops: []engine.PoolOp{
			{Kind: engine.OpAcquire, Handle: 0},
			{Kind: engine.OpAcquire, Handle: 1},
			{Kind: engine.OpAcquire, Handle: 2},
		},
		Visuals: []engine.VisualUpdate{
			{Handle: 0, Content: "brick", Rect: core.NewRect(2, 1, 3, 1), Color: core.ColorRed, Opacity: 1, Visible: true},
			{Handle: 1, Content: "ball", Rect: core.NewRect(7.2, 3.3, 0.5, 0.5), Opacity: 1, Visible: true},
			{Handle: 2, Content: "ball", Rect: core.NewRect(15, 8, 1, 1), Opacity: 1, Visible: false},
		},
	})
	if err := h.SetPosition(core.V(10, 5)); err != nil {
		t.Fatalf("SetPosition() error = %v", err)
	}

	s := core.NewScreen(20, 10)
	h.Draw(s)

	for x := 2; x <= 4; x++ {
		if c := s.GetCell(x, 1); c.Rune != '▓' || c.Color != core.ColorRed {
			t.Errorf("cell (%d,1) = %q/%v, expected brick in red", x, c.Rune, c.Color)
		}
	}
	if c := s.GetCell(5, 1); c.Rune != ' ' {
		t.Errorf("cell (5,1) = %q, expected empty", c.Rune)
	}
	if c := s.GetCell(7, 3); c.Rune != '●' || c.Color != core.ColorWhite {
		t.Errorf("ball cell = %q/%v, expected a white ball", c.Rune, c.Color)
	}
	if c := s.GetCell(15, 8); c.Rune != ' ' {
		t.Errorf("hidden visual drawn as %q", c.Rune)
	}

	// Avatar box 4x3 at (10,5)
	if got := cells(s, 5, 10, 14); got != "┌──┐" {
		t.Errorf("avatar top = %q, expected %q", got, "┌──┐")
	}
	if got := cells(s, 7, 10, 14); got != "└──┘" {
		t.Errorf("avatar bottom = %q, expected %q", got, "└──┘")
	}
}

func TestHostReleaseRemovesVisual(t *testing.T) {
	h, _ := newTestHost()
	h.Apply(engine.Frame{
		Ops:     []engine.PoolOp{{Kind: engine.OpAcquire, Handle: 3}},
		Visuals: []engine.VisualUpdate{{Handle: 3, Content: "dot", Rect: core.NewRect(1, 1, 1, 1), Opacity: 1, Visible: true}},
	})
	if h.Live() != 1 {
		t.Fatalf("Live() = %d, expected 1", h.Live())
	}

	h.Apply(engine.Frame{Ops: []engine.PoolOp{{Kind: engine.OpRelease, Handle: 3}}})
	if h.Live() != 0 {
		t.Errorf("Live() = %d, expected 0", h.Live())
	}

	// Updates for released handles are ignored
	h.Apply(engine.Frame{Visuals: []engine.VisualUpdate{{Handle: 3, Visible: true, Opacity: 1}}})
	if h.Live() != 0 {
		t.Errorf("Live() = %d after stale update, expected 0", h.Live())
	}
}

func TestHostBorder(t *testing.T) {
	h, _ := newTestHost()
	border := core.NewRect(0, 0, 6, 4)
	h.Apply(engine.Frame{Border: &border})

	s := core.NewScreen(10, 6)
	h.Draw(s)
	if got := cells(s, 0, 0, 6); got != "┌────┐" {
		t.Errorf("border top = %q", got)
	}
	if c := s.GetCell(0, 0); c.Color != core.ColorGray {
		t.Errorf("border colour = %v, expected gray", c.Color)
	}

	h.Apply(engine.Frame{})
	s.Clear()
	h.Draw(s)
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("border still drawn after a frame without one:\n%s", s.String())
	}
}

func TestHostMouse(t *testing.T) {
	h, _ := newTestHost()

	h.HandleMouse(tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionMotion})
	if got := h.Sample(); got != (core.PointerState{Pos: core.V(5.5, 2.5)}) {
		t.Errorf("Sample() = %+v after motion", got)
	}

	h.HandleMouse(tea.MouseMsg{X: 6, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := h.Sample(); !got.Down || got.Pos != core.V(6.5, 2.5) {
		t.Errorf("Sample() = %+v after press", got)
	}

	// Other buttons move the pointer but leave the button state alone
	h.HandleMouse(tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonRight})
	if got := h.Sample(); !got.Down {
		t.Errorf("Sample() = %+v, right button released the left", got)
	}

	h.HandleMouse(tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := h.Sample(); got.Down {
		t.Errorf("Sample() = %+v after release", got)
	}
}

func TestHostKeyboardPointer(t *testing.T) {
	h, clock := newTestHost()
	bounds := core.NewRect(0, 0, 20, 10)

	h.Nudge(core.V(3, 4), bounds)
	h.Nudge(core.V(-10, 0), bounds)
	if got := h.Sample().Pos; got != core.V(0, 4) {
		t.Errorf("Pos = %v, expected clamped (0,4)", got)
	}

	h.Press()
	if !h.Sample().Down {
		t.Error("Sample().Down = false right after Press")
	}
	clock.Advance(pressHold + time.Millisecond)
	if h.Sample().Down {
		t.Error("Sample().Down = true after the hold expired")
	}
}

func TestHostCloseFailsActuator(t *testing.T) {
	h, _ := newTestHost()
	h.Close()

	if err := h.SetPosition(core.V(1, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("SetPosition() error = %v, expected ErrClosed", err)
	}
	if _, err := h.Size(); !errors.Is(err, ErrClosed) {
		t.Errorf("Size() error = %v, expected ErrClosed", err)
	}

	h.Reset()
	if err := h.SetPosition(core.V(1, 1)); err != nil {
		t.Errorf("SetPosition() after Reset error = %v", err)
	}
}

func TestHostStatus(t *testing.T) {
	h, _ := newTestHost()
	if _, ok := h.Status(); ok {
		t.Error("Status() reported before any update")
	}

	h.Report(engine.StatusUpdate{Game: "pong", Label: "score", Value: 3, Text: "score 3  lives 2", State: engine.Playing})
	u, ok := h.Status()
	if !ok || u.Value != 3 || u.Text != "score 3  lives 2" {
		t.Errorf("Status() = %+v, %v", u, ok)
	}

	h.Reset()
	if _, ok := h.Status(); ok {
		t.Error("Status() survived Reset")
	}
}

func TestHostDrawsGameOverBanner(t *testing.T) {
	tests := []struct {
		name   string
		state  engine.State
		banner bool
	}{
		{"playing", engine.Playing, false},
		{"game over", engine.GameOver, true},
		{"stopped", engine.Ready, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost()
			h.Report(engine.StatusUpdate{Game: "pong", Label: "score", Value: 12, Text: "out of lives", State: tt.state})

			s := core.NewScreen(30, 10)
			h.Draw(s)
			got := strings.Contains(s.Row(4), "GAME OVER")
			if got != tt.banner {
				t.Errorf("banner drawn = %v, expected %v:\n%s", got, tt.banner, s.String())
			}
			if !tt.banner {
				return
			}
			if row := s.Row(5); strings.TrimSpace(row) != "score 12" {
				t.Errorf("Row(5) = %q, expected the score centred", row)
			}
			if c := s.GetCell(10, 4); c.Rune != 'G' || c.Color != core.ColorBrightRed {
				t.Errorf("cell (10,4) = %q/%v, expected 'G' in bright red", c.Rune, c.Color)
			}
			if !strings.Contains(s.Row(6), "out of lives") {
				t.Errorf("Row(6) = %q, expected the reason", s.Row(6))
			}
		})
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		lo, hi float64
		a, b   int
	}{
		{2, 5, 2, 4},
		{7.2, 7.7, 7, 7},
		{7.6, 8.1, 7, 7},
		{0, 1, 0, 0},
		{3.4, 6.6, 3, 6},
	}

	for _, tt := range tests {
		a, b := span(tt.lo, tt.hi)
		if a != tt.a || b != tt.b {
			t.Errorf("span(%v, %v) = %d, %d, expected %d, %d", tt.lo, tt.hi, a, b, tt.a, tt.b)
		}
	}
}

func TestGlyphFor(t *testing.T) {
	if got := glyphFor("rock-large"); got != '@' {
		t.Errorf("glyphFor(rock-large) = %q, expected '@'", got)
	}
	if got := glyphFor("something-new"); got != '■' {
		t.Errorf("glyphFor(unknown) = %q, expected '■'", got)
	}
}
