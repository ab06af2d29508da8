package world

const (
	radiationThreshold = 0.7
	anomalyThreshold   = 0.8
	anomalyDensity     = 0.15
)

// placeHazards overlays radiation and anomalies from two value-noise fields
// independent of the terrain fields. Anomalies never land on blocking tiles.
func (g *Generator) placeHazards(z *Zone) {
	rng := stream(g.seed, z.Coord, "hazards")
	radSeed := fieldSeed(g.seed, "radiation")
	anomSeed := fieldSeed(g.seed, "anomaly")
	ox, oy := z.Coord.X*z.Width, z.Coord.Y*z.Height

	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			wx, wy := ox+x, oy+y
			if rn := hazardNoise(wx, wy, radSeed, 14); rn > radiationThreshold {
				z.SetRadiation(x, y, (rn-radiationThreshold)/(1-radiationThreshold))
			}
			an := hazardNoise(wx, wy, anomSeed, 9)
			if an <= anomalyThreshold || !z.IsWalkable(x, y) {
				continue
			}
			if rng.Float64() >= anomalyDensity {
				continue
			}
			kind := AnomalyTypes[rng.Intn(len(AnomalyTypes))]
			danger := 0.3 + 0.7*(an-anomalyThreshold)/(1-anomalyThreshold)
			z.PlaceAnomaly(x, y, kind, danger)
		}
	}
	z.collectAnomalies()
}
