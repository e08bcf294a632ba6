package ai

import (
	"math/rand"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// Dir is a grid direction.
type Dir int

const (
	None Dir = iota
	Up
	Left
	Down
	Right
)

// candidateOrder is the fixed enumeration order; earlier entries win ties.
var candidateOrder = [4]Dir{Up, Left, Down, Right}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Delta returns the cell offset for one step.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Cell is a grid coordinate.
type Cell struct{ X, Y int }

// Vec returns the cell centre in cell units.
func (c Cell) Vec() core.Vec { return core.Vec{X: float64(c.X), Y: float64(c.Y)} }

// Grid is a maze the chase walks on.
type Grid interface {
	Walkable(c Cell) bool
	Neighbor(c Cell, d Dir) Cell
}

// Maze is a rectangular Grid of walls. With WrapX, stepping off the left or
// right edge re-enters on the other side.
type Maze struct {
	W, H  int
	WrapX bool
	walls []bool
}

// NewMaze creates an open maze.
func NewMaze(w, h int, wrapX bool) *Maze {
	return &Maze{W: w, H: h, WrapX: wrapX, walls: make([]bool, w*h)}
}

// SetWall marks c as a wall or floor.
func (m *Maze) SetWall(c Cell, wall bool) {
	if m.inside(c) {
		m.walls[c.Y*m.W+c.X] = wall
	}
}

// Walkable reports whether c is inside the maze and not a wall.
func (m *Maze) Walkable(c Cell) bool {
	return m.inside(c) && !m.walls[c.Y*m.W+c.X]
}

// Neighbor returns the cell one step from c in direction d.
func (m *Maze) Neighbor(c Cell, d Dir) Cell {
	dx, dy := d.Delta()
	n := Cell{X: c.X + dx, Y: c.Y + dy}
	if m.WrapX && m.W > 0 {
		n.X = ((n.X % m.W) + m.W) % m.W
	}
	return n
}

func (m *Maze) inside(c Cell) bool {
	return c.X >= 0 && c.X < m.W && c.Y >= 0 && c.Y < m.H
}

// ChooseDir picks the next direction at a cell centre without pathfinding.
// Candidates are the walkable neighbours in Up, Left, Down, Right order,
// excluding the reverse of facing. A dead end allows the reverse. In random
// mode a candidate is picked uniformly; otherwise the one whose cell is
// closest (straight line) to target wins, earlier candidates winning ties.
func ChooseDir(g Grid, at Cell, facing Dir, target Cell, random bool, rng *rand.Rand) Dir {
	var cands [4]Dir
	n := 0
	rev := facing.Reverse()
	for _, d := range candidateOrder {
		if facing != None && d == rev {
			continue
		}
		if g.Walkable(g.Neighbor(at, d)) {
			cands[n] = d
			n++
		}
	}
	if n == 0 {
		if facing != None && g.Walkable(g.Neighbor(at, rev)) {
			return rev
		}
		return None
	}
	if random && rng != nil {
		return cands[rng.Intn(n)]
	}

	best := cands[0]
	bestDist := distSq(g.Neighbor(at, best), target)
	for _, d := range cands[1:n] {
		if dd := distSq(g.Neighbor(at, d), target); dd < bestDist {
			best, bestDist = d, dd
		}
	}
	return best
}

func distSq(a, b Cell) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Walker moves through a Grid one cell at a time, committing to a direction
// between cell centres.
type Walker struct {
	Cell     Cell    // Cell most recently centred on
	Dir      Dir     // Direction of travel, None when stopped
	Progress float64 // Fraction of the way to the next cell
	Speed    float64 // Cells per second
}

// ChooseFunc decides the direction to take from a cell centre.
type ChooseFunc func(at Cell, facing Dir) Dir

// Step advances the walker by dt seconds. choose is asked for a direction
// at every centre. It returns the number of cell centres reached.
func (w *Walker) Step(dt float64, g Grid, choose ChooseFunc) int {
	remaining := w.Speed * dt
	arrived := 0
	for i := 0; remaining > 0 && i < 16; i++ {
		if w.Progress == 0 {
			d := choose(w.Cell, w.Dir)
			if d == None || !g.Walkable(g.Neighbor(w.Cell, d)) {
				w.Dir = None
				return arrived
			}
			w.Dir = d
		}
		need := 1 - w.Progress
		if remaining < need {
			w.Progress += remaining
			return arrived
		}
		remaining -= need
		w.Cell = g.Neighbor(w.Cell, w.Dir)
		w.Progress = 0
		arrived++
	}
	return arrived
}

// Reverse turns around immediately, even between centres.
func (w *Walker) Reverse(g Grid) {
	if w.Dir == None {
		return
	}
	if w.Progress > 0 {
		w.Cell = g.Neighbor(w.Cell, w.Dir)
		w.Progress = 1 - w.Progress
	}
	w.Dir = w.Dir.Reverse()
}

// Pos returns the walker position in cell units. It may lie half a cell
// outside the grid while crossing a wrap seam.
func (w *Walker) Pos() core.Vec {
	dx, dy := w.Dir.Delta()
	return core.Vec{
		X: float64(w.Cell.X) + float64(dx)*w.Progress,
		Y: float64(w.Cell.Y) + float64(dy)*w.Progress,
	}
}

// Nearest returns the cell the walker is mostly in.
func (w *Walker) Nearest(g Grid) Cell {
	if w.Progress >= 0.5 {
		return g.Neighbor(w.Cell, w.Dir)
	}
	return w.Cell
}
