package app

// cellAt maps a window position to grid coordinates.
func cellAt(mx, my, scale, w, h int) (int, int, bool) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y := mx/scale, my/scale
	if x >= w || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// strokeCells returns the cells on the line from (x0, y0) to (x1, y1) so a
// fast drag leaves no gaps.
func strokeCells(x0, y0, x1, y1 int) [][2]int {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	var out [][2]int
	for {
		out = append(out, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
