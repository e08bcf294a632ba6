package asteroids

import "github.com/vovakirdan/window-arcade/internal/registry"

// Snapshot contains the Asteroids state a replay compares.
// Positions are fixed-point (x1000).
type Snapshot struct {
	Tick      uint64
	ShipX     int
	ShipY     int
	ShipAlive bool
	Wave      int
	Rocks     []int // Size class per rock, in spawn order
	Bullets   int
	Particles int
	Score     int
	Lives     int
	State     string
}

var _ registry.Snapshotter = (*Game)(nil)

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	sizes := make([]int, len(g.rocks))
	for i, r := range g.rocks {
		sizes[i] = r.size
	}
	return Snapshot{
		Tick:      g.s.Ticks(),
		ShipX:     int(g.ship.pos.X * 1000),
		ShipY:     int(g.ship.pos.Y * 1000),
		ShipAlive: g.ship.alive,
		Wave:      g.wave,
		Rocks:     sizes,
		Bullets:   len(g.bullets),
		Particles: len(g.particles),
		Score:     g.s.Score(),
		Lives:     g.s.Lives(),
		State:     g.s.State().String(),
	}
}
