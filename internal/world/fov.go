package world

// HasLineOfSight walks a Bresenham line from (x0, y0) to (x1, y1) and reports
// whether every tile strictly between the endpoints lets sight through.
func (z *Zone) HasLineOfSight(x0, y0, x1, y1 int) bool {
	visible := true
	bresenham(x0, y0, x1, y1, func(x, y int) bool {
		if (x == x0 && y == y0) || (x == x1 && y == y1) {
			return true
		}
		if z.TileProperties(x, y).BlocksSight {
			visible = false
			return false
		}
		return true
	})
	return visible
}

// ComputeFOV recomputes the visible grid around (ox, oy) and folds it into
// the explored grid. Rays stop at the first tile that blocks sight, which is
// itself visible.
func (z *Zone) ComputeFOV(ox, oy, radius int) {
	for i := range z.Visible {
		z.Visible[i] = false
	}
	if !z.InBounds(ox, oy) {
		return
	}
	mark := func(x, y int) bool {
		if !z.InBounds(x, y) {
			return false
		}
		dx, dy := x-ox, y-oy
		if dx*dx+dy*dy > radius*radius {
			return false
		}
		i := y*z.Width + x
		z.Visible[i] = true
		z.Explored[i] = true
		return !z.Tiles[i].Props.BlocksSight || (x == ox && y == oy)
	}
	for d := -radius; d <= radius; d++ {
		bresenham(ox, oy, ox+d, oy-radius, mark)
		bresenham(ox, oy, ox+d, oy+radius, mark)
		bresenham(ox, oy, ox-radius, oy+d, mark)
		bresenham(ox, oy, ox+radius, oy+d, mark)
	}
}

// bresenham visits the tiles from (x0, y0) to (x1, y1) until visit returns false.
func bresenham(x0, y0, x1, y1 int, visit func(x, y int) bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if !visit(x0, y0) {
			return
		}
		if x0 == x1 && y0 == y1 {
			return
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
