package ai

import (
	"math/rand"
	"testing"
)

// mazeFrom builds a Maze where '#' is a wall.
func mazeFrom(lines []string, wrap bool) *Maze {
	m := NewMaze(len(lines[0]), len(lines), wrap)
	for y, row := range lines {
		for x, ch := range row {
			m.SetWall(Cell{x, y}, ch == '#')
		}
	}
	return m
}

func TestChooseDirTJunction(t *testing.T) {
	// Entity at (2,1) moving down into a T: left, right and back up are open.
	m := mazeFrom([]string{
		"##.##",
		".....",
		"#####",
	}, false)
	at := Cell{2, 1}

	tests := []struct {
		name   string
		target Cell
		want   Dir
	}{
		{"target due north ties, first candidate wins", Cell{2, -5}, Left},
		{"target north-east", Cell{4, -5}, Right},
		{"target north-west", Cell{0, -5}, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseDir(m, at, Down, tt.target, false, nil)
			if got == Up {
				t.Fatal("ChooseDir() picked the reverse direction")
			}
			if got != tt.want {
				t.Errorf("ChooseDir() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestChooseDirDeadEndReverses(t *testing.T) {
	m := mazeFrom([]string{
		"#####",
		"#...#",
		"#####",
	}, false)
	if got := ChooseDir(m, Cell{3, 1}, Right, Cell{3, 1}, false, nil); got != Left {
		t.Errorf("ChooseDir() at dead end = %v, expected left", got)
	}
	if got := ChooseDir(NewMaze(1, 1, false), Cell{0, 0}, None, Cell{0, 0}, false, nil); got != None {
		t.Errorf("ChooseDir() enclosed = %v, expected none", got)
	}
}

func TestChooseDirStoppedConsidersAll(t *testing.T) {
	m := mazeFrom([]string{
		"#.#",
		"...",
		"#.#",
	}, false)
	if got := ChooseDir(m, Cell{1, 1}, None, Cell{1, 2}, false, nil); got != Down {
		t.Errorf("ChooseDir() from stop = %v, expected down", got)
	}
}

func TestChooseDirRandomMode(t *testing.T) {
	m := mazeFrom([]string{
		"##.##",
		".....",
		"#####",
	}, false)
	rng := rand.New(rand.NewSource(5))
	seen := map[Dir]int{}
	for i := 0; i < 200; i++ {
		seen[ChooseDir(m, Cell{2, 1}, Down, Cell{2, -5}, true, rng)]++
	}
	if seen[Up] != 0 || seen[Down] != 0 {
		t.Errorf("random mode picked a non-candidate: %v", seen)
	}
	if seen[Left] == 0 || seen[Right] == 0 {
		t.Errorf("random mode should use both branches: %v", seen)
	}
}

func TestMazeWrapNeighbor(t *testing.T) {
	m := mazeFrom([]string{"...."}, true)
	if got := m.Neighbor(Cell{0, 0}, Left); got != (Cell{3, 0}) {
		t.Errorf("Neighbor(left edge, Left) = %v, expected (3, 0)", got)
	}
	flat := mazeFrom([]string{"...."}, false)
	if flat.Walkable(flat.Neighbor(Cell{0, 0}, Left)) {
		t.Error("non-wrapping maze should not walk off the edge")
	}
}

func TestWalkerCommitsBetweenCentres(t *testing.T) {
	m := mazeFrom([]string{
		".....",
		"#.#.#",
	}, false)
	w := &Walker{Cell: Cell{0, 0}, Speed: 4}
	decisions := 0
	choose := func(at Cell, facing Dir) Dir {
		decisions++
		return Right
	}

	// 0.1s at 4 cells/s = 0.4 of a cell: one decision, no arrival
	if n := w.Step(0.1, m, choose); n != 0 {
		t.Errorf("Step() arrived at %d centres, expected 0", n)
	}
	if decisions != 1 || w.Dir != Right || w.Progress <= 0 {
		t.Fatalf("after first step: decisions %d, walker %+v", decisions, w)
	}

	// 0.2s more = 1.2 cells total: passes (1,0) and decides again there
	if n := w.Step(0.2, m, choose); n != 1 {
		t.Errorf("Step() arrived at %d centres, expected 1", n)
	}
	if w.Cell != (Cell{1, 0}) {
		t.Errorf("Cell = %v, expected (1, 0)", w.Cell)
	}
	if decisions != 2 {
		t.Errorf("decided %d times, expected once per centre (2)", decisions)
	}

	// Running into the wall at the east edge stops the walker
	for i := 0; i < 20; i++ {
		w.Step(0.05, m, choose)
	}
	if w.Cell != (Cell{4, 0}) || w.Dir != None {
		t.Errorf("walker = %+v, expected stopped at (4, 0)", w)
	}
}

func TestWalkerReverse(t *testing.T) {
	m := mazeFrom([]string{"....."}, false)
	w := &Walker{Cell: Cell{1, 0}, Dir: Right, Progress: 0.25, Speed: 1}
	before := w.Pos()
	w.Reverse(m)
	if w.Dir != Left || w.Cell != (Cell{2, 0}) {
		t.Errorf("after Reverse walker = %+v", w)
	}
	if after := w.Pos(); after != before {
		t.Errorf("Reverse moved the walker from %v to %v", before, after)
	}
	if w.Nearest(m) != (Cell{1, 0}) {
		t.Errorf("Nearest() = %v, expected (1, 0)", w.Nearest(m))
	}
}
