package world

// stitch joins z to every already generated cardinal neighbour with a
// corridor across the shared edge and records the crossing in both zones.
func (g *Generator) stitch(z *Zone) {
	for _, d := range Directions {
		dx, dy := d.Delta()
		n, ok := g.zones[Coord{z.Coord.X + dx, z.Coord.Y + dy}]
		if !ok {
			continue
		}
		here, there := g.edgePoints(z.Coord, d)
		carveToInterior(z, here)
		carveToInterior(n, there)
		z.Connections[d] = here
		n.Connections[d.Opposite()] = there
		g.log.Debug().
			Int("zx", z.Coord.X).Int("zy", z.Coord.Y).
			Str("dir", d.String()).
			Int("x", here.X).Int("y", here.Y).
			Msg("zones stitched")
	}
}

// edgePoints returns the crossing tile on z's side of edge d and on the
// neighbour's side. The offset along the edge comes from a stream keyed on
// the edge itself, so both zones agree on it whichever is built first.
func (g *Generator) edgePoints(c Coord, d Direction) (here, there Point) {
	w, h := g.width, g.height
	key, tag := c, "edge-ew"
	switch d {
	case West:
		key = Coord{c.X - 1, c.Y}
	case North:
		key, tag = Coord{c.X, c.Y - 1}, "edge-ns"
	case South:
		tag = "edge-ns"
	}
	rng := stream(g.seed, key, tag)

	switch d {
	case East:
		off := 2 + rng.Intn(h-4)
		return Point{w - 1, off}, Point{0, off}
	case West:
		off := 2 + rng.Intn(h-4)
		return Point{0, off}, Point{w - 1, off}
	case South:
		off := 2 + rng.Intn(w-4)
		return Point{off, h - 1}, Point{off, 0}
	default:
		off := 2 + rng.Intn(w-4)
		return Point{off, 0}, Point{off, h - 1}
	}
}

// carveToInterior digs from edge tile p to the nearest walkable tile. Every
// tile on an L between p and its nearest walkable tile is strictly closer to
// p, so the corridor only ever cuts through blocking terrain.
func carveToInterior(z *Zone, p Point) {
	if z.IsWalkable(p.X, p.Y) {
		return
	}
	floor := TerrainDirt
	if z.Type == ZoneUnderground {
		floor = TerrainCave
	}

	target := Point{z.Width / 2, z.Height / 2}
	bestD := -1
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			if !z.IsWalkable(x, y) {
				continue
			}
			if d := manhattan(p, Point{x, y}); bestD < 0 || d < bestD {
				target, bestD = Point{x, y}, d
			}
		}
	}

	dig := func(x, y int) {
		if !z.IsWalkable(x, y) {
			z.SetTerrain(x, y, floor)
		}
	}
	if p.X == 0 || p.X == z.Width-1 {
		for x := min(p.X, target.X); x <= max(p.X, target.X); x++ {
			dig(x, p.Y)
		}
		for y := min(p.Y, target.Y); y <= max(p.Y, target.Y); y++ {
			dig(target.X, y)
		}
		return
	}
	for y := min(p.Y, target.Y); y <= max(p.Y, target.Y); y++ {
		dig(p.X, y)
	}
	for x := min(p.X, target.X); x <= max(p.X, target.X); x++ {
		dig(x, target.Y)
	}
}
