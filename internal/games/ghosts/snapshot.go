package ghosts

import "github.com/vovakirdan/window-arcade/internal/registry"

// GhostState is one ghost in a Snapshot.
type GhostState struct {
	X, Y       int
	Released   bool
	Frightened bool
}

// Snapshot contains the maze chase state a replay compares.
type Snapshot struct {
	Tick      uint64
	AvatarX   int
	AvatarY   int
	Ghosts    []GhostState
	ItemsLeft int
	Level     int
	Mode      string
	Score     int
	Lives     int
	State     string
}

var _ registry.Snapshotter = (*Game)(nil)

// Snapshot returns the current game state.
func (g *Game) Snapshot() any {
	snap := Snapshot{
		Tick:      g.s.Ticks(),
		AvatarX:   g.avatar.Cell.X,
		AvatarY:   g.avatar.Cell.Y,
		ItemsLeft: len(g.items),
		Level:     g.level,
		Mode:      g.mode.String(),
		Score:     g.s.Score(),
		Lives:     g.s.Lives(),
		State:     g.s.State().String(),
	}
	for _, gh := range g.ghosts {
		snap.Ghosts = append(snap.Ghosts, GhostState{
			X:          gh.w.Cell.X,
			Y:          gh.w.Cell.Y,
			Released:   gh.released,
			Frightened: gh.frightened,
		})
	}
	return snap
}
