package world

import "math/rand"

const (
	maxRooms        = 15
	roomAttempts    = 100
	minRoomW        = 4
	maxRoomW        = 10
	minRoomH        = 4
	maxRoomH        = 8
	undergroundEdge = 1
)

// carveUnderground turns a solid rock zone into caves: a drunkard's walk
// tunnel system plus rectangular rooms joined by a minimum spanning tree
// of L-shaped corridors and a few extra loops.
func (g *Generator) carveUnderground(z *Zone) {
	rng := stream(g.seed, z.Coord, "underground")
	drunkardsWalk(z, rng, z.Width*z.Height/4)

	rooms := placeRooms(z, rng)
	for _, r := range rooms {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				z.SetTerrain(x, y, TerrainCave)
			}
		}
		z.Structures = append(z.Structures, Structure{Kind: "room", Area: r})
	}

	for _, e := range spanningTree(rooms) {
		carveCorridor(z, rng, rooms[e[0]].Center(), rooms[e[1]].Center())
	}
	if len(rooms) > 1 {
		for i := 0; i < len(rooms)/3; i++ {
			a := rng.Intn(len(rooms))
			b := rng.Intn(len(rooms))
			if a != b {
				carveCorridor(z, rng, rooms[a].Center(), rooms[b].Center())
			}
		}
	}
}

// drunkardsWalk carves a random-walk tunnel from the zone centre, kept one
// tile away from the zone edge.
func drunkardsWalk(z *Zone, rng *rand.Rand, steps int) {
	x, y := z.Width/2, z.Height/2
	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for i := 0; i < steps; i++ {
		z.SetTerrain(x, y, TerrainCave)
		d := dirs[rng.Intn(4)]
		x = min(max(x+d[0], undergroundEdge), z.Width-1-undergroundEdge)
		y = min(max(y+d[1], undergroundEdge), z.Height-1-undergroundEdge)
	}
}

// placeRooms rejection-samples up to maxRooms rooms that keep a one tile
// margin from each other and from the zone edge.
func placeRooms(z *Zone, rng *rand.Rand) []Rect {
	var rooms []Rect
	for attempt := 0; attempt < roomAttempts && len(rooms) < maxRooms; attempt++ {
		w := minRoomW + rng.Intn(maxRoomW-minRoomW+1)
		h := minRoomH + rng.Intn(maxRoomH-minRoomH+1)
		if z.Width-w-2 <= 0 || z.Height-h-2 <= 0 {
			continue
		}
		r := Rect{X: 1 + rng.Intn(z.Width-w-2), Y: 1 + rng.Intn(z.Height-h-2), W: w, H: h}
		ok := true
		for _, o := range rooms {
			if r.Overlaps(o, 1) {
				ok = false
				break
			}
		}
		if ok {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// spanningTree returns Prim's minimum spanning tree over room centres using
// Manhattan distance. Ties go to the lower index.
func spanningTree(rooms []Rect) [][2]int {
	if len(rooms) < 2 {
		return nil
	}
	inTree := make([]bool, len(rooms))
	inTree[0] = true
	edges := make([][2]int, 0, len(rooms)-1)
	for len(edges) < len(rooms)-1 {
		best := [2]int{-1, -1}
		bestD := 0
		for i := range rooms {
			if !inTree[i] {
				continue
			}
			for j := range rooms {
				if inTree[j] {
					continue
				}
				d := manhattan(rooms[i].Center(), rooms[j].Center())
				if best[0] < 0 || d < bestD {
					best, bestD = [2]int{i, j}, d
				}
			}
		}
		inTree[best[1]] = true
		edges = append(edges, best)
	}
	return edges
}

// carveCorridor digs an L-shaped corridor from a to b; the rng picks which
// leg comes first.
func carveCorridor(z *Zone, rng *rand.Rand, a, b Point) {
	if rng.Intn(2) == 0 {
		carveH(z, a.X, b.X, a.Y)
		carveV(z, a.Y, b.Y, b.X)
	} else {
		carveV(z, a.Y, b.Y, a.X)
		carveH(z, a.X, b.X, b.Y)
	}
}

func carveH(z *Zone, x0, x1, y int) {
	for x := min(x0, x1); x <= max(x0, x1); x++ {
		z.SetTerrain(x, y, TerrainCave)
	}
}

func carveV(z *Zone, y0, y1, x int) {
	for y := min(y0, y1); y <= max(y0, y1); y++ {
		z.SetTerrain(x, y, TerrainCave)
	}
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}
