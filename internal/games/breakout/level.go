package breakout

// Layout is a brick pattern. Each row string holds one character per
// column: '1'-'3' is a brick taking that many hits, anything else is empty.
type Layout struct {
	Name string
	Rows []string
}

var layouts = []Layout{
	{"Classic", []string{
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
	}},
	{"Pyramid", []string{
		"....22....",
		"...1111...",
		"..111111..",
		".11111111.",
		"1111111111",
	}},
	{"Checkerboard", []string{
		"2.2.2.2.2.",
		".1.1.1.1.1",
		"2.2.2.2.2.",
		".1.1.1.1.1",
		"2.2.2.2.2.",
	}},
	{"Fortress", []string{
		"3333333333",
		"3........3",
		"3.111111.3",
		"3.111111.3",
		"3333333333",
	}},
	{"Striped", []string{
		"2222222222",
		"..........",
		"1111111111",
		"..........",
		"2222222222",
	}},
	{"Final", []string{
		"3333333333",
		"3222222223",
		"3211111123",
		"3222222223",
		"3333333333",
	}},
}

// LayoutCount returns the number of built-in layouts.
func LayoutCount() int { return len(layouts) }

// LayoutFor returns the layout of a level index, wrapping around after the
// last one.
func LayoutFor(level int) Layout {
	if level < 0 {
		level = 0
	}
	return layouts[level%len(layouts)]
}

// ParseLayout converts rows to hit counts, [row][col]. Short rows are padded
// with empty cells and long rows are cut at columns.
func ParseLayout(rows []string, columns int) [][]int {
	if columns < 1 {
		columns = 1
	}
	grid := make([][]int, len(rows))
	for r, line := range rows {
		grid[r] = make([]int, columns)
		for c := 0; c < columns && c < len(line); c++ {
			if ch := line[c]; ch >= '1' && ch <= '3' {
				grid[r][c] = int(ch - '0')
			}
		}
	}
	return grid
}
