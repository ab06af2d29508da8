package world

import "math/rand"

const spawnRetries = 20

// populate decides enemy placements from the zone type's spawn table.
func (g *Generator) populate(z *Zone) {
	table := g.spawns[z.Type.String()]
	total := 0.0
	for _, e := range table {
		total += e.Weight
	}
	if total <= 0 {
		return
	}

	rng := stream(g.seed, z.Coord, "population")
	attempts := 3 + rng.Intn(6)
	occupied := map[Point]bool{}
	for i := 0; i < attempts; i++ {
		tmpl := pickSpawn(rng, table, total)
		for try := 0; try < spawnRetries; try++ {
			p := Point{rng.Intn(z.Width), rng.Intn(z.Height)}
			if !z.IsWalkable(p.X, p.Y) || occupied[p] {
				continue
			}
			if _, hazard := z.AnomalyAt(p.X, p.Y); hazard {
				continue
			}
			occupied[p] = true
			z.Spawns = append(z.Spawns, Spawn{
				Template:   tmpl,
				Pos:        p,
				Difficulty: 0.8 + 0.4*rng.Float64(),
			})
			break
		}
	}
}

func pickSpawn(rng *rand.Rand, table []SpawnEntry, total float64) string {
	roll := rng.Float64() * total
	for _, e := range table {
		if roll < e.Weight {
			return e.Template
		}
		roll -= e.Weight
	}
	return table[len(table)-1].Template
}
