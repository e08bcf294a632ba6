package breakout

import "github.com/vovakirdan/window-arcade/internal/registry"

// Snapshot contains the brick breaker state a replay compares.
// Positions are fixed-point thousandths of a unit for stable comparison.
type Snapshot struct {
	Tick    uint64
	PaddleX int
	BallX   int
	BallY   int
	BallVX  int
	BallVY  int
	Stuck   bool
	Level   int
	Bricks  []int // Remaining hits per brick, in layout order
	Pickups []int // Pickup types in flight
	Effect  int
	Score   int
	Lives   int
	State   string
}

var _ registry.Snapshotter = (*Game)(nil)

func fixed(v float64) int {
	return int(v * 1000)
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	snap := Snapshot{
		Tick:    g.s.Ticks(),
		PaddleX: fixed(g.paddle.X),
		BallX:   fixed(g.ball.pos.X),
		BallY:   fixed(g.ball.pos.Y),
		BallVX:  fixed(g.ball.vel.X),
		BallVY:  fixed(g.ball.vel.Y),
		Stuck:   g.ball.stuck,
		Level:   g.level,
		Effect:  fixed(g.effect),
		Score:   g.s.Score(),
		Lives:   g.s.Lives(),
		State:   g.s.State().String(),
	}
	for _, k := range g.bricks {
		snap.Bricks = append(snap.Bricks, k.hits)
	}
	for _, p := range g.pickups {
		snap.Pickups = append(snap.Pickups, int(p.kind))
	}
	return snap
}
