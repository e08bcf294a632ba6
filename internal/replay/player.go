package replay

import (
	"time"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
)

// Player feeds recorded frames back into a headless run. Each Step advances
// time by the next frame's dt and makes its pointer reading current; once
// the frames run out, time advances by the tick interval and the pointer
// holds its last reading.
type Player struct {
	*engine.ManualTime
	frames []Frame
	next   int
	cur    core.PointerState
}

var (
	_ headless.Stepper = (*Player)(nil)
	_ engine.Pointer   = (*Player)(nil)
)

// NewPlayer creates a player starting at start.
func NewPlayer(frames []Frame, start time.Time) *Player {
	return &Player{ManualTime: engine.NewManualTime(start), frames: frames}
}

// Step implements headless.Stepper.
func (p *Player) Step(interval time.Duration) bool {
	if p.next >= len(p.frames) {
		p.Advance(interval)
		return true
	}
	f := p.frames[p.next]
	p.next++
	p.Advance(f.DT)
	p.cur = core.PointerState{Pos: core.V(f.X, f.Y), Down: f.Down}
	return true
}

// Sample implements engine.Pointer.
func (p *Player) Sample() core.PointerState { return p.cur }

// Remaining returns the frames not yet played.
func (p *Player) Remaining() int { return len(p.frames) - p.next }
