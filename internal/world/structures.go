package world

import "math/rand"

// placementAttempts bounds the site search for every point of interest.
const placementAttempts = 40

type featureKind uint8

const (
	featureVillage featureKind = iota
	featureOutpost
	featureAnomalyField
	featureCrashSite
	featureKindCount
)

func (f featureKind) String() string {
	switch f {
	case featureVillage:
		return "village"
	case featureOutpost:
		return "outpost"
	case featureAnomalyField:
		return "anomaly_field"
	case featureCrashSite:
		return "crash_site"
	default:
		return "unknown"
	}
}

// featureChances holds the placement probability of each feature per zone type.
var featureChances = map[ZoneType][featureKindCount]float64{
	ZoneWilderness: {0.35, 0.20, 0.40, 0.25},
	ZoneVillage:    {1.00, 0.05, 0.20, 0.10},
	ZoneMilitary:   {0.05, 1.00, 0.30, 0.30},
}

// placeStructures rolls for each point of interest and stamps the ones that
// find a suitable site. Failed placements are skipped.
func (g *Generator) placeStructures(z *Zone) {
	chances, ok := featureChances[z.Type]
	if !ok {
		return
	}
	rng := stream(g.seed, z.Coord, "structures")
	for f := featureKind(0); f < featureKindCount; f++ {
		if rng.Float64() >= chances[f] {
			continue
		}
		var placed bool
		switch f {
		case featureVillage:
			placed = placeVillage(z, rng)
		case featureOutpost:
			placed = placeOutpost(z, rng)
		case featureAnomalyField:
			placed = placeAnomalyField(z, rng)
		case featureCrashSite:
			placed = placeCrashSite(z, rng)
		}
		if !placed {
			g.log.Debug().
				Int("zx", z.Coord.X).Int("zy", z.Coord.Y).
				Str("feature", f.String()).
				Msg("no suitable site, feature skipped")
		}
	}
}

// areaSuitable reports whether r, grown by pad, is in bounds, dry, free of
// blocking tiles and clear of earlier structures.
func areaSuitable(z *Zone, r Rect, pad int) bool {
	if r.X-pad < 0 || r.Y-pad < 0 || r.X+r.W+pad > z.Width || r.Y+r.H+pad > z.Height {
		return false
	}
	for y := r.Y - pad; y < r.Y+r.H+pad; y++ {
		for x := r.X - pad; x < r.X+r.W+pad; x++ {
			p := z.Tiles[y*z.Width+x].Props
			if p.IsWater || p.BlocksMovement {
				return false
			}
		}
	}
	for _, s := range z.Structures {
		if s.Area.Overlaps(r, pad) {
			return false
		}
	}
	return true
}

// findSite rejection-samples a w×h site passing areaSuitable.
func findSite(z *Zone, rng *rand.Rand, w, h, pad int) (Rect, bool) {
	spanX := z.Width - w - 2*pad
	spanY := z.Height - h - 2*pad
	if spanX <= 0 || spanY <= 0 {
		return Rect{}, false
	}
	for i := 0; i < placementAttempts; i++ {
		r := Rect{X: pad + rng.Intn(spanX), Y: pad + rng.Intn(spanY), W: w, H: h}
		if areaSuitable(z, r, pad) {
			return r, true
		}
	}
	return Rect{}, false
}

func placeAnomalyField(z *Zone, rng *rand.Rand) bool {
	const radius = 4
	site, ok := findSite(z, rng, 2*radius+1, 2*radius+1, 1)
	if !ok {
		return false
	}
	c := site.Center()
	want := 3 + rng.Intn(4)
	placed := 0
	for i := 0; i < want*10 && placed < want; i++ {
		x := c.X + rng.Intn(2*radius+1) - radius
		y := c.Y + rng.Intn(2*radius+1) - radius
		if a, _ := z.AnomalyAt(x, y); a.Type != AnomalyNone {
			continue
		}
		kind := AnomalyTypes[rng.Intn(len(AnomalyTypes))]
		if z.PlaceAnomaly(x, y, kind, 0.5+0.5*rng.Float64()) {
			placed++
		}
	}
	z.Structures = append(z.Structures, Structure{Kind: featureAnomalyField.String(), Area: site})
	return true
}

// placeCrashSite carves a diamond of hull plating surrounded by debris.
func placeCrashSite(z *Zone, rng *rand.Rand) bool {
	r := 3 + rng.Intn(3)
	outer := r + 3
	site, ok := findSite(z, rng, 2*outer+1, 2*outer+1, 1)
	if !ok {
		return false
	}
	c := site.Center()
	for dy := -r; dy <= r; dy++ {
		span := r - abs(dy)
		for dx := -span; dx <= span; dx++ {
			z.SetTerrain(c.X+dx, c.Y+dy, TerrainWreckage)
			z.SetRadiation(c.X+dx, c.Y+dy, 0.6)
		}
	}
	debris := 4 + rng.Intn(5)
	for placed, tries := 0, 0; placed < debris && tries < debris*10; tries++ {
		dx := rng.Intn(2*outer+1) - outer
		dy := rng.Intn(2*outer+1) - outer
		if abs(dx)+abs(dy) <= r || z.TerrainAt(c.X+dx, c.Y+dy) == TerrainDebris {
			continue
		}
		z.SetTerrain(c.X+dx, c.Y+dy, TerrainDebris)
		z.SetRadiation(c.X+dx, c.Y+dy, 0.4)
		placed++
	}
	z.Structures = append(z.Structures, Structure{Kind: featureCrashSite.String(), Area: site})
	return true
}
