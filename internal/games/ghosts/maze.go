package ghosts

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/window-arcade/internal/ai"
)

// ErrBadLayout is returned for maze layouts the game cannot play.
var ErrBadLayout = errors.New("ghosts: bad maze layout")

// item is something the avatar can eat.
type item uint8

const (
	dot item = iota + 1
	pellet
)

// Layout is a parsed maze.
//
// Legend: '#' wall, '.' dot, 'o' power pellet, 'P' avatar spawn, 'G' ghost
// house, anything else empty floor. Short rows are padded with walls.
type Layout struct {
	Maze  *ai.Maze
	Items map[ai.Cell]item
	Spawn ai.Cell
	House ai.Cell
}

// ParseLayout builds a Layout. A row whose first and last cells are both
// open makes the maze wrap horizontally.
func ParseLayout(lines []string) (*Layout, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	width := 0
	for _, row := range lines {
		width = max(width, len([]rune(row)))
	}
	if width < 2 {
		return nil, fmt.Errorf("%w: rows too short", ErrBadLayout)
	}

	l := &Layout{Items: make(map[ai.Cell]item)}
	maze := ai.NewMaze(width, len(lines), false)
	spawn, house := false, false
	wrap := false

	for y, row := range lines {
		runes := []rune(row)
		for x := 0; x < width; x++ {
			c := ai.Cell{X: x, Y: y}
			ch := '#'
			if x < len(runes) {
				ch = runes[x]
			}
			maze.SetWall(c, ch == '#')
			switch ch {
			case '.':
				l.Items[c] = dot
			case 'o':
				l.Items[c] = pellet
			case 'P':
				l.Spawn, spawn = c, true
			case 'G':
				l.House, house = c, true
			}
		}
		if len(runes) == width && runes[0] != '#' && runes[width-1] != '#' {
			wrap = true
		}
	}
	if !spawn || !house {
		return nil, fmt.Errorf("%w: needs one P and one G", ErrBadLayout)
	}
	if len(l.Items) == 0 {
		return nil, fmt.Errorf("%w: nothing to eat", ErrBadLayout)
	}
	maze.WrapX = wrap
	l.Maze = maze
	return l, nil
}

// Corners returns the walkable cells nearest the four maze corners, in
// top-right, top-left, bottom-right, bottom-left order.
func (l *Layout) Corners() [4]ai.Cell {
	m := l.Maze
	want := [4]ai.Cell{{X: m.W - 1, Y: 0}, {X: 0, Y: 0}, {X: m.W - 1, Y: m.H - 1}, {X: 0, Y: m.H - 1}}
	var out [4]ai.Cell
	for i, w := range want {
		out[i] = l.nearestFloor(w)
	}
	return out
}

func (l *Layout) nearestFloor(to ai.Cell) ai.Cell {
	best, bestD := l.Spawn, distSq(l.Spawn, to)
	for y := 0; y < l.Maze.H; y++ {
		for x := 0; x < l.Maze.W; x++ {
			c := ai.Cell{X: x, Y: y}
			if d := distSq(c, to); l.Maze.Walkable(c) && d < bestD {
				best, bestD = c, d
			}
		}
	}
	return best
}

// route returns the first step of a shortest path from `from` to the
// reachable cell closest to target. Breadth-first search expands
// neighbours in Up, Left, Down, Right order, so equal paths resolve the
// same way every time.
func route(m *ai.Maze, from, target ai.Cell) ai.Dir {
	if from == target || !m.Walkable(from) {
		return ai.None
	}
	first := map[ai.Cell]ai.Dir{from: ai.None}
	queue := []ai.Cell{from}
	best, bestD := from, distSq(from, target)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4]ai.Dir{ai.Up, ai.Left, ai.Down, ai.Right} {
			n := m.Neighbor(c, d)
			if _, seen := first[n]; seen || !m.Walkable(n) {
				continue
			}
			if c == from {
				first[n] = d
			} else {
				first[n] = first[c]
			}
			if dd := distSq(n, target); dd < bestD {
				best, bestD = n, dd
			}
			if n == target {
				return first[n]
			}
			queue = append(queue, n)
		}
	}
	return first[best]
}

func distSq(a, b ai.Cell) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
