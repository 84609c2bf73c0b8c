package render

import (
	"strings"

	"github.com/PDC-hub/Stickman/internal/pose"
)

// ASCII projects a pose onto a character grid for the terminal UI.
// Bones become line segments of '*' runes, the head an 'O', and the joint
// named highlight is marked with '#' so the user can see what they are
// rotating. Terminal cells are roughly twice as tall as wide, so the
// x axis is stretched to keep proportions.
func ASCII(p pose.Pose, cols, rows int, highlight pose.Joint) string {
	if cols < 8 || rows < 8 {
		return ""
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	unit := float64(rows) * 0.82
	toCell := func(pt pose.Point) (int, int) {
		x := int(float64(cols)/2 + pt.X*unit*2)
		y := int(float64(rows)/2 + pt.Y*unit)
		return x, y
	}

	pts := pose.Positions(p)
	for _, j := range pose.Joints() {
		bone, ok := pose.Skeleton[j]
		if !ok || j == pose.Head {
			continue
		}
		x1, y1 := toCell(pts[bone.Parent])
		x2, y2 := toCell(pts[j])
		plotLine(grid, x1, y1, x2, y2, '*')
	}

	hx, hy := toCell(pts[pose.Head])
	plot(grid, hx, hy, 'O')

	if highlight != "" {
		x, y := toCell(pts[highlight])
		plot(grid, x, y, '#')
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String()
}

// plotLine draws a Bresenham segment into the grid.
func plotLine(grid [][]rune, x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(grid, x1, y1, r)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func plot(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
