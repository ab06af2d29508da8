package world

import "math/rand"

const (
	villageW = 36
	villageH = 28
)

// placeVillage stamps a cross-road village with 3-7 buildings.
func placeVillage(z *Zone, rng *rand.Rand) bool {
	site, ok := findSite(z, rng, villageW, villageH, 2)
	if !ok {
		return false
	}
	stampVillageRoads(z, rng, site)

	want := 3 + rng.Intn(5)
	var placed []Rect
	for attempt := 0; attempt < 80 && len(placed) < want; attempt++ {
		long := 8 + rng.Intn(5)
		short := 7
		if rng.Intn(3) == 0 {
			short = 9
		}
		w, h := long, short
		if rng.Intn(2) == 0 {
			w, h = short, long
		}
		b := Rect{
			X: site.X + 1 + rng.Intn(site.W-w-1),
			Y: site.Y + 1 + rng.Intn(site.H-h-1),
			W: w,
			H: h,
		}
		if !buildingFits(z, b, placed) {
			continue
		}
		buildBuilding(z, rng, b)
		placed = append(placed, b)
	}

	z.Structures = append(z.Structures, Structure{Kind: featureVillage.String(), Area: site})
	for _, b := range placed {
		z.Structures = append(z.Structures, Structure{Kind: "building", Area: b})
	}
	return true
}

// buildingFits rejects footprints that touch a road or crowd another building.
func buildingFits(z *Zone, b Rect, placed []Rect) bool {
	for _, p := range placed {
		if p.Overlaps(b, 1) {
			return false
		}
	}
	for y := b.Y - 1; y <= b.Y+b.H; y++ {
		for x := b.X - 1; x <= b.X+b.W; x++ {
			if z.TerrainAt(x, y) == TerrainRoad {
				return false
			}
		}
	}
	return true
}

// stampVillageRoads lays a cross through the village centre and three
// perpendicular branches off random points of the cross.
func stampVillageRoads(z *Zone, rng *rand.Rand, site Rect) {
	c := site.Center()
	for x := site.X; x < site.X+site.W; x++ {
		z.SetTerrain(x, c.Y, TerrainRoad)
	}
	for y := site.Y; y < site.Y+site.H; y++ {
		z.SetTerrain(c.X, y, TerrainRoad)
	}

	for i := 0; i < 3; i++ {
		length := 3 + rng.Intn(6)
		sign := 1
		if rng.Intn(2) == 0 {
			sign = -1
		}
		if rng.Intn(2) == 0 {
			// Branch off the east-west road.
			bx := site.X + 2 + rng.Intn(site.W-4)
			for s := 1; s <= length; s++ {
				y := c.Y + sign*s
				if !site.Contains(bx, y) {
					break
				}
				z.SetTerrain(bx, y, TerrainRoad)
			}
			continue
		}
		by := site.Y + 2 + rng.Intn(site.H-4)
		for s := 1; s <= length; s++ {
			x := c.X + sign*s
			if !site.Contains(x, by) {
				break
			}
			z.SetTerrain(x, by, TerrainRoad)
		}
	}
}
