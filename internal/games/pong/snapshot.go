package pong

import "github.com/vovakirdan/window-arcade/internal/registry"

// Snapshot contains the Pong state a replay compares after the last tick.
// Positions are fixed-point (x1000) so float noise in the last digits does
// not make equal runs differ.
type Snapshot struct {
	Tick    uint64
	BallX   int
	BallY   int
	BallVX  int
	BallVY  int
	PlayerY int
	CPUY    int
	CPUAimY int
	Samples int
	Rallies int
	Score   int
	Lives   int
	Serving bool
	State   string
}

var _ registry.Snapshotter = (*Game)(nil)

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	snap := Snapshot{
		Tick:    g.s.Ticks(),
		BallX:   fixed(g.ball.pos.X),
		BallY:   fixed(g.ball.pos.Y),
		BallVX:  fixed(g.ball.vel.X),
		BallVY:  fixed(g.ball.vel.Y),
		PlayerY: fixed(g.player.Y),
		Rallies: g.rallies,
		Score:   g.s.Score(),
		Lives:   g.s.Lives(),
		Serving: g.serving,
		State:   g.s.State().String(),
	}
	if g.cpu != nil {
		snap.CPUY = fixed(g.cpu.Pos.Y)
		snap.CPUAimY = fixed(g.cpu.Target.Y)
		snap.Samples = g.cpu.Samples()
	}
	return snap
}

func fixed(v float64) int {
	return int(v * 1000)
}
