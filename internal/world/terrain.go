package world

// terrainProfile tunes surface synthesis per zone type.
type terrainProfile struct {
	forestThreshold float64 // forest density above which trees appear
	treeScale       float64 // multiplier on the tree probability
	brushChance     float64 // chance of brush on forested tiles that get no tree
}

var terrainProfiles = map[ZoneType]terrainProfile{
	ZoneWilderness: {forestThreshold: 0.55, treeScale: 1.5, brushChance: 0.15},
	ZoneVillage:    {forestThreshold: 0.70, treeScale: 1.0, brushChance: 0.10},
	ZoneMilitary:   {forestThreshold: 0.65, treeScale: 1.0, brushChance: 0.10},
}

// synthesizeTerrain lays out water, marsh, rock, forest and open ground.
// The noise fields are sampled in world space so neighbouring zones meet
// without seams; only the tree scatter uses the per-zone stream.
func (g *Generator) synthesizeTerrain(z *Zone) {
	prof, ok := terrainProfiles[z.Type]
	if !ok {
		prof = terrainProfiles[ZoneWilderness]
	}
	rng := stream(g.seed, z.Coord, "terrain")
	ox, oy := z.Coord.X*z.Width, z.Coord.Y*z.Height

	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			wx, wy := ox+x, oy+y
			elev := g.elevation.At(wx, wy)
			moist := g.moisture.At(wx, wy)

			var t Terrain
			switch {
			case elev < 0.22:
				t = TerrainDeepWater
			case elev < 0.30:
				t = TerrainShallowWater
			case elev < 0.36 || moist > 0.75:
				t = TerrainMarsh
			case elev > 0.80:
				t = TerrainRock
			default:
				t = TerrainGrass
				if f := g.forest.At(wx, wy); f > prof.forestThreshold {
					p := (f - prof.forestThreshold) / (1 - prof.forestThreshold) * prof.treeScale
					if rng.Float64() < p {
						t = TerrainTree
					} else if rng.Float64() < prof.brushChance {
						t = TerrainBrush
					}
				}
			}
			z.SetTerrain(x, y, t)
			z.At(x, y).Props.Moisture = moist
		}
	}
}
