package world

// Terrain identifies what a tile is made of.
type Terrain uint8

const (
	TerrainGrass        Terrain = iota // Default open ground
	TerrainDirt                        // Packed earth, trails and carved corridors
	TerrainRoad                        // Village road
	TerrainMarsh                       // Waterlogged ground, walkable
	TerrainShallowWater                // Wadeable water
	TerrainDeepWater                   // Impassable water
	TerrainBrush                       // Thick undergrowth, hides whoever stands in it
	TerrainTree                        // Tree trunk
	TerrainRock                        // Natural rock wall
	TerrainWall                        // Built wall
	TerrainBuilding                    // Building interior floor (shelter)
	TerrainDoor                        // Doorway
	TerrainCave                        // Underground floor (shelter)
	TerrainWreckage                    // Crash site hull plating
	TerrainDebris                      // Crash debris
	TerrainFence                       // Perimeter fence
	TerrainGate                        // Gap in a perimeter
	TerrainTower                       // Watch tower
	TerrainBed
	TerrainTable
	TerrainChair
	TerrainCrate
	TerrainLocker
	TerrainWorkbench
	TerrainStove
	terrainCount // sentinel
)

var terrainNames = [terrainCount]string{
	"grass", "dirt", "road", "marsh", "shallow_water", "deep_water", "brush", "tree",
	"rock", "wall", "building", "door", "cave", "wreckage", "debris", "fence", "gate",
	"tower", "bed", "table", "chair", "crate", "locker", "workbench", "stove",
}

func (t Terrain) String() string {
	if t < terrainCount {
		return terrainNames[t]
	}
	return "unknown"
}

// IsShelter reports whether the terrain protects from dangerous weather.
func (t Terrain) IsShelter() bool {
	return t == TerrainBuilding || t == TerrainCave
}

// terrainBlocksMovement returns the default walkability of a terrain.
func terrainBlocksMovement(t Terrain) bool {
	switch t {
	case TerrainDeepWater, TerrainTree, TerrainRock, TerrainWall, TerrainDebris,
		TerrainFence, TerrainTower, TerrainBed, TerrainTable, TerrainCrate,
		TerrainLocker, TerrainWorkbench, TerrainStove:
		return true
	default:
		return false
	}
}

// terrainBlocksSight returns whether a terrain stops line of sight.
func terrainBlocksSight(t Terrain) bool {
	switch t {
	case TerrainBrush, TerrainTree, TerrainRock, TerrainWall, TerrainTower, TerrainLocker:
		return true
	default:
		return false
	}
}

func terrainIsWater(t Terrain) bool {
	return t == TerrainShallowWater || t == TerrainDeepWater
}

// AnomalyType tags the kind of anomaly sitting on a tile.
type AnomalyType uint8

const (
	AnomalyNone AnomalyType = iota
	AnomalyThermal
	AnomalyGravity
	AnomalyChemical
	AnomalyElectric
)

// AnomalyTypes lists every placeable anomaly kind.
var AnomalyTypes = []AnomalyType{AnomalyThermal, AnomalyGravity, AnomalyChemical, AnomalyElectric}

func (a AnomalyType) String() string {
	switch a {
	case AnomalyNone:
		return "none"
	case AnomalyThermal:
		return "thermal"
	case AnomalyGravity:
		return "gravity"
	case AnomalyChemical:
		return "chemical"
	case AnomalyElectric:
		return "electric"
	default:
		return "unknown"
	}
}

// TileProps is the property bundle queried by actors.
type TileProps struct {
	BlocksMovement bool
	BlocksSight    bool
	IsWater        bool
	Radiation      float64
	Moisture       float64
	Anomaly        AnomalyType
	Danger         float64
}

// Tile is one cell of a zone.
type Tile struct {
	Terrain Terrain
	Props   TileProps
}

// newTile returns a tile carrying the default properties of t.
func newTile(t Terrain) Tile {
	var tile Tile
	tile.setTerrain(t)
	return tile
}

// setTerrain swaps the terrain and resets the derived flags. Hazard values
// survive, except that an anomaly cannot sit on a blocking tile.
func (t *Tile) setTerrain(terrain Terrain) {
	t.Terrain = terrain
	t.Props.BlocksMovement = terrainBlocksMovement(terrain)
	t.Props.BlocksSight = terrainBlocksSight(terrain)
	t.Props.IsWater = terrainIsWater(terrain)
	if t.Props.BlocksMovement {
		t.Props.Anomaly = AnomalyNone
		t.Props.Danger = 0
	}
}

// Walkable reports whether actors may enter the tile.
func (t *Tile) Walkable() bool { return !t.Props.BlocksMovement }

// Glyph returns the ASCII symbol used by text dumps.
func Glyph(t Terrain) rune {
	switch t {
	case TerrainGrass:
		return '.'
	case TerrainDirt:
		return ','
	case TerrainRoad:
		return '='
	case TerrainMarsh:
		return '"'
	case TerrainShallowWater:
		return '~'
	case TerrainDeepWater:
		return 'W'
	case TerrainBrush:
		return ';'
	case TerrainTree:
		return 'T'
	case TerrainRock:
		return '^'
	case TerrainWall:
		return '#'
	case TerrainBuilding:
		return '_'
	case TerrainDoor:
		return '+'
	case TerrainCave:
		return ':'
	case TerrainWreckage:
		return '*'
	case TerrainDebris:
		return '&'
	case TerrainFence:
		return '|'
	case TerrainGate:
		return '/'
	case TerrainTower:
		return 'O'
	case TerrainBed:
		return 'b'
	case TerrainTable:
		return 't'
	case TerrainChair:
		return 'h'
	case TerrainCrate:
		return 'x'
	case TerrainLocker:
		return 'L'
	case TerrainWorkbench:
		return 'w'
	case TerrainStove:
		return 's'
	default:
		return '?'
	}
}

// TerrainColour returns the base RGB used by the viewer and coloured dumps.
func TerrainColour(t Terrain) (r, g, b uint8) {
	switch t {
	case TerrainGrass:
		return 30, 48, 30
	case TerrainDirt:
		return 48, 42, 34
	case TerrainRoad:
		return 62, 60, 56
	case TerrainMarsh:
		return 40, 50, 38
	case TerrainShallowWater:
		return 28, 44, 62
	case TerrainDeepWater:
		return 16, 26, 52
	case TerrainBrush:
		return 34, 58, 28
	case TerrainTree:
		return 20, 70, 24
	case TerrainRock:
		return 70, 66, 60
	case TerrainWall:
		return 96, 90, 80
	case TerrainBuilding:
		return 52, 40, 28
	case TerrainDoor:
		return 120, 84, 40
	case TerrainCave:
		return 38, 36, 32
	case TerrainWreckage:
		return 90, 94, 100
	case TerrainDebris:
		return 110, 104, 96
	case TerrainFence:
		return 84, 84, 70
	case TerrainGate:
		return 60, 56, 48
	case TerrainTower:
		return 100, 70, 50
	default:
		return 88, 64, 40
	}
}
