package ghosts

import (
	"github.com/vovakirdan/window-arcade/internal/ai"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// Personality decides where a ghost aims while chasing.
type Personality int

const (
	Direct Personality = iota // Avatar's cell
	Ambush                    // Four cells ahead of the avatar
	Flank                     // Two cells ahead of the avatar
	Shy                       // Avatar when far, its scatter corner when close
)

var ghostColors = [4]core.Color{core.ColorRed, core.ColorMagenta, core.ColorCyan, core.ColorOrange}

// shyRadius is how close (in cells) a Shy ghost comes before retreating.
const shyRadius = 8

type ghost struct {
	id          int
	personality Personality
	w           ai.Walker
	corner      ai.Cell
	released    bool
	frightened  bool
	handle      engine.Handle
}

// chaseTarget returns the cell the ghost aims for in chase mode.
func (gh *ghost) chaseTarget(m *ai.Maze, avatar *ai.Walker) ai.Cell {
	at := avatar.Nearest(m)
	switch gh.personality {
	case Ambush:
		return ahead(at, avatar.Dir, 4)
	case Flank:
		return ahead(at, avatar.Dir, 2)
	case Shy:
		if distSq(gh.w.Nearest(m), at) <= shyRadius*shyRadius {
			return gh.corner
		}
		return at
	default:
		return at
	}
}

func ahead(c ai.Cell, d ai.Dir, n int) ai.Cell {
	dx, dy := d.Delta()
	return ai.Cell{X: c.X + dx*n, Y: c.Y + dy*n}
}

func (gh *ghost) visual() (string, core.Color) {
	if gh.frightened {
		return FrightenedVisual, core.ColorBlue
	}
	return GhostVisual, ghostColors[gh.id%len(ghostColors)]
}
