package world

import "math/rand"

type roomKind uint8

const (
	roomLiving roomKind = iota
	roomStorage
	roomWorkshop
)

// interiorRoom is one room of a building in zone coordinates.
type interiorRoom struct {
	area Rect
	door Point
	kind roomKind
}

// buildBuilding walls in r, runs a hallway along its long axis with an
// exterior door at each end, and splits both sides of the hallway into rooms
// that each open onto it through a single door. The short side must be odd
// and at least 7.
func buildBuilding(z *Zone, rng *rand.Rand, r Rect) []interiorRoom {
	horizontal := r.W >= r.H
	long, short := r.W, r.H
	if !horizontal {
		long, short = r.H, r.W
	}
	// toZone maps (along, across) building coordinates to zone tiles.
	toZone := func(u, v int) (int, int) {
		if horizontal {
			return r.X + u, r.Y + v
		}
		return r.X + v, r.Y + u
	}
	set := func(u, v int, t Terrain) {
		x, y := toZone(u, v)
		z.SetTerrain(x, y, t)
	}

	for v := 0; v < short; v++ {
		for u := 0; u < long; u++ {
			if u == 0 || v == 0 || u == long-1 || v == short-1 {
				set(u, v, TerrainWall)
			} else {
				set(u, v, TerrainBuilding)
			}
		}
	}

	hall := short / 2
	for u := 1; u < long-1; u++ {
		set(u, hall-1, TerrainWall)
		set(u, hall+1, TerrainWall)
	}
	set(0, hall, TerrainDoor)
	set(long-1, hall, TerrainDoor)

	var rooms []interiorRoom
	sides := []struct{ v0, v1, doorV int }{
		{1, hall - 2, hall - 1},
		{hall + 2, short - 2, hall + 1},
	}
	for _, side := range sides {
		for _, span := range splitSpans(rng, 1, long-2) {
			if span[1]+1 <= long-2 {
				for v := side.v0; v <= side.v1; v++ {
					set(span[1]+1, v, TerrainWall)
				}
			}
			du := span[0] + rng.Intn(span[1]-span[0]+1)
			set(du, side.doorV, TerrainDoor)

			x0, y0 := toZone(span[0], side.v0)
			x1, y1 := toZone(span[1], side.v1)
			dx, dy := toZone(du, side.doorV)
			rooms = append(rooms, interiorRoom{
				area: Rect{X: min(x0, x1), Y: min(y0, y1), W: abs(x1-x0) + 1, H: abs(y1-y0) + 1},
				door: Point{dx, dy},
				kind: roomKind(rng.Intn(3)),
			})
		}
	}

	for _, rm := range rooms {
		furnishRoom(z, rng, rm)
	}
	return rooms
}

// splitSpans cuts [from, to] into room spans of 3-5 tiles with one wall tile
// between neighbours. A remainder too small for a room joins the last span.
func splitSpans(rng *rand.Rand, from, to int) [][2]int {
	var spans [][2]int
	for u := from; u <= to; {
		end := u + 2 + rng.Intn(3)
		if end > to || to-(end+1) < 2 {
			end = to
		}
		spans = append(spans, [2]int{u, end})
		u = end + 2
	}
	return spans
}

// furnishRoom places furniture suited to the room kind.
func furnishRoom(z *Zone, rng *rand.Rand, rm interiorRoom) {
	if rm.area.W < 2 || rm.area.H < 2 {
		return
	}
	switch rm.kind {
	case roomLiving:
		placeFurniture(z, rng, rm, TerrainBed)
		if rng.Float64() < 0.6 {
			placeTableCluster(z, rng, rm)
		}
	case roomStorage:
		placeCrates(z, rng, rm)
		if rng.Float64() < 0.5 {
			placeFurniture(z, rng, rm, TerrainLocker)
		}
	case roomWorkshop:
		placeFurniture(z, rng, rm, TerrainWorkbench)
		if rng.Float64() < 0.5 {
			placeFurniture(z, rng, rm, TerrainStove)
		}
		if rng.Float64() < 0.3 {
			placeTableCluster(z, rng, rm)
		}
	}
}

// freeFloor reports whether furniture may go on (x, y): bare building floor,
// not next to the room's door.
func freeFloor(z *Zone, rm interiorRoom, x, y int) bool {
	if !rm.area.Contains(x, y) || z.TerrainAt(x, y) != TerrainBuilding {
		return false
	}
	return abs(x-rm.door.X) > 1 || abs(y-rm.door.Y) > 1
}

// placeFurniture drops one piece on a random free floor tile.
func placeFurniture(z *Zone, rng *rand.Rand, rm interiorRoom, t Terrain) bool {
	for i := 0; i < 8; i++ {
		x := rm.area.X + rng.Intn(rm.area.W)
		y := rm.area.Y + rng.Intn(rm.area.H)
		if freeFloor(z, rm, x, y) {
			z.SetTerrain(x, y, t)
			return true
		}
	}
	return false
}

// placeTableCluster places a table with 1-3 chairs around it.
func placeTableCluster(z *Zone, rng *rand.Rand, rm interiorRoom) {
	tx := rm.area.X + rng.Intn(rm.area.W)
	ty := rm.area.Y + rng.Intn(rm.area.H)
	if !freeFloor(z, rm, tx, ty) {
		return
	}
	z.SetTerrain(tx, ty, TerrainTable)

	chairOffsets := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	rng.Shuffle(len(chairOffsets), func(i, j int) {
		chairOffsets[i], chairOffsets[j] = chairOffsets[j], chairOffsets[i]
	})
	chairCount := 1 + rng.Intn(3)
	placed := 0
	for _, off := range chairOffsets {
		if placed >= chairCount {
			break
		}
		cx, cy := tx+off[0], ty+off[1]
		if freeFloor(z, rm, cx, cy) {
			z.SetTerrain(cx, cy, TerrainChair)
			placed++
		}
	}
}

// placeCrates lines 1-3 crates along one wall of the room.
func placeCrates(z *Zone, rng *rand.Rand, rm interiorRoom) {
	a := rm.area
	count := 1 + rng.Intn(3)
	side := rng.Intn(4)
	for i := 0; i < count; i++ {
		var x, y int
		switch side {
		case 0: // north wall
			x, y = a.X+rng.Intn(a.W), a.Y
		case 1: // south wall
			x, y = a.X+rng.Intn(a.W), a.Y+a.H-1
		case 2: // west wall
			x, y = a.X, a.Y+rng.Intn(a.H)
		default: // east wall
			x, y = a.X+a.W-1, a.Y+rng.Intn(a.H)
		}
		if freeFloor(z, rm, x, y) {
			z.SetTerrain(x, y, TerrainCrate)
		}
	}
}
