package world

// enforceConnectivity keeps the largest 4-connected walkable region and turns
// every other walkable tile into rock, so any walkable tile can reach any
// other.
func enforceConnectivity(z *Zone) {
	labels := make([]int, len(z.Tiles))
	var sizes []int
	queue := make([]int, 0, 256)

	for start := range z.Tiles {
		if labels[start] != 0 || z.Tiles[start].Props.BlocksMovement {
			continue
		}
		id := len(sizes) + 1
		size := 0
		labels[start] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++
			x, y := i%z.Width, i/z.Width
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if !z.InBounds(nx, ny) {
					continue
				}
				ni := ny*z.Width + nx
				if labels[ni] == 0 && !z.Tiles[ni].Props.BlocksMovement {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	if len(sizes) <= 1 {
		return
	}

	keep := 1
	for i, s := range sizes {
		if s > sizes[keep-1] {
			keep = i + 1
		}
	}
	for i, l := range labels {
		if l != 0 && l != keep {
			z.Tiles[i].setTerrain(TerrainRock)
		}
	}
}

// Reachable flood-fills from (x, y) across walkable tiles and returns how
// many tiles were reached.
func (z *Zone) Reachable(x, y int) int {
	if !z.IsWalkable(x, y) {
		return 0
	}
	seen := make([]bool, len(z.Tiles))
	stack := []Point{{x, y}}
	seen[y*z.Width+x] = true
	n := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.X+d[0], p.Y+d[1]
			if z.IsWalkable(nx, ny) && !seen[ny*z.Width+nx] {
				seen[ny*z.Width+nx] = true
				stack = append(stack, Point{nx, ny})
			}
		}
	}
	return n
}
