package world

import (
	"github.com/rs/zerolog"
)

const (
	DefaultZoneWidth  = 100
	DefaultZoneHeight = 100

	// MinZoneSize is the smallest zone edge the generator builds. Edge
	// corridors need two tiles of margin on each side of the exit.
	MinZoneSize = 16
)

// SpawnEntry is one weighted row of a spawn table.
type SpawnEntry struct {
	Template string
	Weight   float64
}

// SpawnTables maps a zone type name to its weighted spawn table.
type SpawnTables map[string][]SpawnEntry

// DefaultSpawnTables is used when no table set is supplied.
func DefaultSpawnTables() SpawnTables {
	return SpawnTables{
		"wilderness":  {{"bandit", 0.3}, {"mutant_dog", 0.4}, {"zombie", 0.2}},
		"village":     {{"bandit", 0.5}, {"loner", 0.3}, {"zombie", 0.2}},
		"military":    {{"military", 0.6}, {"bandit", 0.2}, {"mutant_dog", 0.2}},
		"underground": {{"zombie", 0.5}, {"mutant_dog", 0.3}, {"bandit", 0.2}},
	}
}

// Generator builds zones on demand and owns every zone it has built.
type Generator struct {
	seed     int64
	width    int
	height   int
	log      zerolog.Logger
	spawns   SpawnTables
	typeFunc func(Coord) ZoneType

	elevation noiseField
	forest    noiseField
	moisture  noiseField

	zones map[Coord]*Zone
}

// Option configures a Generator.
type Option func(*Generator)

// WithZoneSize sets the tile dimensions of every zone. Edges shorter than
// MinZoneSize are raised to it.
func WithZoneSize(w, h int) Option {
	return func(g *Generator) {
		g.width = w
		g.height = h
	}
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithSpawnTables replaces the default spawn tables.
func WithSpawnTables(t SpawnTables) Option {
	return func(g *Generator) { g.spawns = t }
}

// WithZoneTypes overrides how zone coordinates map to zone types.
func WithZoneTypes(fn func(Coord) ZoneType) Option {
	return func(g *Generator) { g.typeFunc = fn }
}

// NewGenerator creates a generator for the world identified by seed.
func NewGenerator(seed int64, opts ...Option) *Generator {
	g := &Generator{
		seed:   seed,
		width:  DefaultZoneWidth,
		height: DefaultZoneHeight,
		log:    zerolog.Nop(),
		spawns: DefaultSpawnTables(),
		zones:  map[Coord]*Zone{},
	}
	for _, o := range opts {
		o(g)
	}
	if g.width < MinZoneSize || g.height < MinZoneSize {
		g.log.Warn().Int("width", g.width).Int("height", g.height).Int("min", MinZoneSize).Msg("zone size raised to minimum")
		g.width = max(g.width, MinZoneSize)
		g.height = max(g.height, MinZoneSize)
	}
	g.elevation = newNoiseField(seed, "elevation", 28)
	g.forest = newNoiseField(seed, "forest", 16)
	g.moisture = newNoiseField(seed, "moisture", 22)
	return g
}

// Seed returns the world seed.
func (g *Generator) Seed() int64 { return g.seed }

// ZoneSize returns the tile dimensions shared by all zones.
func (g *Generator) ZoneSize() (int, int) { return g.width, g.height }

// Lookup returns an already generated zone without generating it.
func (g *Generator) Lookup(x, y int) (*Zone, bool) {
	z, ok := g.zones[Coord{x, y}]
	return z, ok
}

// Generated returns the number of zones built so far.
func (g *Generator) Generated() int { return len(g.zones) }

// ZoneTypeAt returns the type the zone at c has or will have.
func (g *Generator) ZoneTypeAt(c Coord) ZoneType {
	if g.typeFunc != nil {
		return g.typeFunc(c)
	}
	if c == (Coord{}) {
		return ZoneWilderness
	}
	r := stream(g.seed, c, "zonetype").Float64()
	switch {
	case r < 0.15:
		return ZoneUnderground
	case r < 0.35:
		return ZoneVillage
	case r < 0.45:
		return ZoneMilitary
	default:
		return ZoneWilderness
	}
}

// Zone returns the zone at (x, y), generating it on first request.
func (g *Generator) Zone(x, y int) *Zone {
	c := Coord{x, y}
	if z, ok := g.zones[c]; ok {
		return z
	}
	z := g.generate(c)
	g.zones[c] = z
	g.stitch(z)

	g.log.Info().
		Int("zx", x).Int("zy", y).
		Str("type", z.Type.String()).
		Int("walkable", z.WalkableCount()).
		Int("anomalies", len(z.Anomalies)).
		Int("spawns", len(z.Spawns)).
		Int("structures", len(z.Structures)).
		Msg("zone generated")
	return z
}

func (g *Generator) generate(c Coord) *Zone {
	zt := g.ZoneTypeAt(c)
	if zt == ZoneUnderground {
		z := NewZone(c, zt, g.width, g.height, TerrainRock)
		g.carveUnderground(z)
		g.finish(z)
		return z
	}
	z := NewZone(c, zt, g.width, g.height, TerrainGrass)
	g.synthesizeTerrain(z)
	g.placeStructures(z)
	g.finish(z)
	return z
}

// finish runs the passes shared by every zone type.
func (g *Generator) finish(z *Zone) {
	enforceConnectivity(z)
	g.placeHazards(z)
	g.populate(z)
}
