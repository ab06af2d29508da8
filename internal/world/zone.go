package world

import (
	"errors"
	"strings"
)

// ErrNoSpawnPoint is returned when a zone holds no tile an actor can start on.
var ErrNoSpawnPoint = errors.New("no walkable spawn point in zone")

// Coord addresses a zone in the world-level zone grid.
type Coord struct{ X, Y int }

// Point is a tile position inside a zone.
type Point struct{ X, Y int }

// Rect is an axis-aligned tile rectangle.
type Rect struct{ X, Y, W, H int }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the integer centre of r.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Overlaps reports whether r and o intersect once both are grown by pad tiles.
func (r Rect) Overlaps(o Rect, pad int) bool {
	return r.X-pad < o.X+o.W+pad && o.X-pad < r.X+r.W+pad &&
		r.Y-pad < o.Y+o.H+pad && o.Y-pad < r.Y+r.H+pad
}

// ZoneType selects the generation pipeline and spawn table.
type ZoneType uint8

const (
	ZoneWilderness ZoneType = iota
	ZoneVillage
	ZoneMilitary
	ZoneUnderground
)

func (z ZoneType) String() string {
	switch z {
	case ZoneWilderness:
		return "wilderness"
	case ZoneVillage:
		return "village"
	case ZoneMilitary:
		return "military"
	case ZoneUnderground:
		return "underground"
	default:
		return "unknown"
	}
}

// ParseZoneType maps a name back to its ZoneType.
func ParseZoneType(s string) (ZoneType, bool) {
	for _, z := range []ZoneType{ZoneWilderness, ZoneVillage, ZoneMilitary, ZoneUnderground} {
		if z.String() == s {
			return z, true
		}
	}
	return ZoneWilderness, false
}

// Direction names one of the four zone edges.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in a stable order.
var Directions = []Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the facing edge.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Delta returns the zone-grid step for d. North is -Y.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Anomaly is a hazardous tile modifier.
type Anomaly struct {
	Pos    Point
	Type   AnomalyType
	Danger float64
}

// Spawn is an enemy placement decided at generation time. Actors are
// instantiated from it by the game layer.
type Spawn struct {
	Template   string
	Pos        Point
	Difficulty float64
}

// Structure records a placed point of interest.
type Structure struct {
	Kind string
	Area Rect
}

// Zone is one fixed-size region of the world.
type Zone struct {
	Coord       Coord
	Type        ZoneType
	Width       int
	Height      int
	Tiles       []Tile // row-major: index = y*Width + x
	Anomalies   []Anomaly
	Spawns      []Spawn
	Structures  []Structure
	Connections map[Direction]Point

	// Explored and Visible belong to the viewer.
	Explored []bool
	Visible  []bool
}

// NewZone creates a zone filled with fill.
func NewZone(c Coord, zt ZoneType, w, h int, fill Terrain) *Zone {
	z := &Zone{
		Coord:       c,
		Type:        zt,
		Width:       w,
		Height:      h,
		Tiles:       make([]Tile, w*h),
		Connections: map[Direction]Point{},
		Explored:    make([]bool, w*h),
		Visible:     make([]bool, w*h),
	}
	z.Fill(fill)
	return z
}

// Fill overwrites every tile with the defaults of t.
func (z *Zone) Fill(t Terrain) {
	for i := range z.Tiles {
		z.Tiles[i] = newTile(t)
	}
}

// Size returns the zone dimensions.
func (z *Zone) Size() (int, int) { return z.Width, z.Height }

// InBounds returns true if (x, y) is within the zone.
func (z *Zone) InBounds(x, y int) bool {
	return x >= 0 && x < z.Width && y >= 0 && y < z.Height
}

// At returns a pointer to the tile at (x, y), or nil if out of bounds.
func (z *Zone) At(x, y int) *Tile {
	if !z.InBounds(x, y) {
		return nil
	}
	return &z.Tiles[y*z.Width+x]
}

// TerrainAt returns the terrain at (x, y); out of bounds reads as rock.
func (z *Zone) TerrainAt(x, y int) Terrain {
	if !z.InBounds(x, y) {
		return TerrainRock
	}
	return z.Tiles[y*z.Width+x].Terrain
}

// IsWalkable reports whether an actor may stand on (x, y).
func (z *Zone) IsWalkable(x, y int) bool {
	if !z.InBounds(x, y) {
		return false
	}
	return !z.Tiles[y*z.Width+x].Props.BlocksMovement
}

// TileProperties returns the property bundle at (x, y). Out of bounds tiles
// block both movement and sight.
func (z *Zone) TileProperties(x, y int) TileProps {
	if !z.InBounds(x, y) {
		return TileProps{BlocksMovement: true, BlocksSight: true}
	}
	return z.Tiles[y*z.Width+x].Props
}

// SetTerrain changes the terrain at (x, y), resetting its derived flags.
func (z *Zone) SetTerrain(x, y int, t Terrain) {
	if !z.InBounds(x, y) {
		return
	}
	z.Tiles[y*z.Width+x].setTerrain(t)
}

// SetRadiation raises the radiation level at (x, y) to at least level.
func (z *Zone) SetRadiation(x, y int, level float64) {
	if tile := z.At(x, y); tile != nil && level > tile.Props.Radiation {
		tile.Props.Radiation = level
	}
}

// PlaceAnomaly tags a walkable tile with an anomaly. Blocking tiles are skipped.
func (z *Zone) PlaceAnomaly(x, y int, a AnomalyType, danger float64) bool {
	tile := z.At(x, y)
	if tile == nil || tile.Props.BlocksMovement || a == AnomalyNone {
		return false
	}
	tile.Props.Anomaly = a
	tile.Props.Danger = danger
	return true
}

// AnomalyAt returns the anomaly on (x, y), if any.
func (z *Zone) AnomalyAt(x, y int) (Anomaly, bool) {
	tile := z.At(x, y)
	if tile == nil || tile.Props.Anomaly == AnomalyNone {
		return Anomaly{}, false
	}
	return Anomaly{Pos: Point{x, y}, Type: tile.Props.Anomaly, Danger: tile.Props.Danger}, true
}

// collectAnomalies rebuilds the anomaly list from the tile grid.
func (z *Zone) collectAnomalies() {
	z.Anomalies = z.Anomalies[:0]
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			if a, ok := z.AnomalyAt(x, y); ok {
				z.Anomalies = append(z.Anomalies, a)
			}
		}
	}
}

// WalkableCount returns the number of walkable tiles.
func (z *Zone) WalkableCount() int {
	n := 0
	for i := range z.Tiles {
		if !z.Tiles[i].Props.BlocksMovement {
			n++
		}
	}
	return n
}

// FindSpawn searches outward from (px, py) in growing square rings for a
// walkable tile free of anomalies.
func (z *Zone) FindSpawn(px, py int) (Point, error) {
	maxR := max(z.Width, z.Height)
	for r := 0; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				x, y := px+dx, py+dy
				if z.IsWalkable(x, y) && z.Tiles[y*z.Width+x].Props.Anomaly == AnomalyNone {
					return Point{x, y}, nil
				}
			}
		}
	}
	return Point{}, ErrNoSpawnPoint
}

// ASCII renders the zone as one line of glyphs per row. overlay may replace
// the glyph of any tile; pass nil for none.
func (z *Zone) ASCII(overlay func(x, y int) (rune, bool)) string {
	var sb strings.Builder
	sb.Grow((z.Width + 1) * z.Height)
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			if overlay != nil {
				if r, ok := overlay(x, y); ok {
					sb.WriteRune(r)
					continue
				}
			}
			if z.Tiles[y*z.Width+x].Props.Anomaly != AnomalyNone {
				sb.WriteRune('A')
				continue
			}
			sb.WriteRune(Glyph(z.Tiles[y*z.Width+x].Terrain))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
