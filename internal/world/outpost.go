package world

import "math/rand"

const (
	outpostW = 24
	outpostH = 20
)

// placeOutpost builds a fenced compound with gates north and south, a watch
// tower in each corner and a main building in the middle.
func placeOutpost(z *Zone, rng *rand.Rand) bool {
	site, ok := findSite(z, rng, outpostW, outpostH, 2)
	if !ok {
		return false
	}
	for y := site.Y; y < site.Y+site.H; y++ {
		for x := site.X; x < site.X+site.W; x++ {
			edge := x == site.X || y == site.Y || x == site.X+site.W-1 || y == site.Y+site.H-1
			if edge {
				z.SetTerrain(x, y, TerrainFence)
			} else {
				z.SetTerrain(x, y, TerrainDirt)
			}
		}
	}

	gx := site.X + site.W/2
	for _, gy := range []int{site.Y, site.Y + site.H - 1} {
		z.SetTerrain(gx-1, gy, TerrainGate)
		z.SetTerrain(gx, gy, TerrainGate)
	}

	for _, corner := range [][2]int{
		{site.X, site.Y},
		{site.X + site.W - 2, site.Y},
		{site.X, site.Y + site.H - 2},
		{site.X + site.W - 2, site.Y + site.H - 2},
	} {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				z.SetTerrain(corner[0]+dx, corner[1]+dy, TerrainTower)
			}
		}
	}

	hq := Rect{X: site.X + (site.W-12)/2, Y: site.Y + (site.H-9)/2, W: 12, H: 9}
	buildBuilding(z, rng, hq)

	z.Structures = append(z.Structures,
		Structure{Kind: featureOutpost.String(), Area: site},
		Structure{Kind: "building", Area: hq},
	)
	return true
}
