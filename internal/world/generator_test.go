package world

import (
	"errors"
	"math/rand"
	"testing"
)

func fixedType(zt ZoneType) Option {
	return WithZoneTypes(func(Coord) ZoneType { return zt })
}

func firstWalkable(z *Zone) (Point, bool) {
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			if z.IsWalkable(x, y) {
				return Point{x, y}, true
			}
		}
	}
	return Point{}, false
}

func assertConnected(t *testing.T, z *Zone) {
	t.Helper()
	p, ok := firstWalkable(z)
	if !ok {
		t.Fatalf("zone %v (%s) has no walkable tiles", z.Coord, z.Type)
	}
	if got, want := z.Reachable(p.X, p.Y), z.WalkableCount(); got != want {
		t.Fatalf("zone %v (%s): flood fill reached %d of %d walkable tiles", z.Coord, z.Type, got, want)
	}
}

func TestGenerateZoneDeterministic(t *testing.T) {
	a := NewGenerator(1234, WithZoneSize(48, 40))
	b := NewGenerator(1234, WithZoneSize(48, 40))
	for _, c := range []Coord{{0, 0}, {1, 0}, {0, 1}, {-1, -1}} {
		za := a.Zone(c.X, c.Y)
		zb := b.Zone(c.X, c.Y)
		if za.Type != zb.Type {
			t.Fatalf("zone %v: type %s vs %s", c, za.Type, zb.Type)
		}
		for i := range za.Tiles {
			if za.Tiles[i] != zb.Tiles[i] {
				t.Fatalf("zone %v: tile %d differs: %+v vs %+v", c, i, za.Tiles[i], zb.Tiles[i])
			}
		}
		if len(za.Spawns) != len(zb.Spawns) {
			t.Fatalf("zone %v: spawn count %d vs %d", c, len(za.Spawns), len(zb.Spawns))
		}
	}
}

func TestZoneIsMemoized(t *testing.T) {
	g := NewGenerator(7, WithZoneSize(32, 32))
	z1 := g.Zone(2, 3)
	z2 := g.Zone(2, 3)
	if z1 != z2 {
		t.Fatal("re-requesting a zone must return the memoized zone")
	}
	if g.Generated() != 1 {
		t.Fatalf("expected 1 generated zone, got %d", g.Generated())
	}
	if _, ok := g.Lookup(5, 5); ok {
		t.Fatal("Lookup must not generate")
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	za := NewGenerator(1, WithZoneSize(48, 40), fixedType(ZoneWilderness)).Zone(0, 0)
	zb := NewGenerator(2, WithZoneSize(48, 40), fixedType(ZoneWilderness)).Zone(0, 0)
	same := 0
	for i := range za.Tiles {
		if za.Tiles[i].Terrain == zb.Tiles[i].Terrain {
			same++
		}
	}
	if same == len(za.Tiles) {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestConnectivityEveryZoneType(t *testing.T) {
	for _, zt := range []ZoneType{ZoneWilderness, ZoneVillage, ZoneMilitary, ZoneUnderground} {
		g := NewGenerator(99, WithZoneSize(60, 50), fixedType(zt))
		for _, c := range []Coord{{0, 0}, {3, -2}, {1, 0}, {0, 1}} {
			z := g.Zone(c.X, c.Y)
			if z.Type != zt {
				t.Fatalf("expected %s, got %s", zt, z.Type)
			}
			assertConnected(t, z)
		}
	}
}

func TestStitchRecordsConnectionInBothZones(t *testing.T) {
	g := NewGenerator(5, WithZoneSize(48, 40))
	west := g.Zone(0, 0)
	east := g.Zone(1, 0)

	pw, ok := west.Connections[East]
	if !ok {
		t.Fatal("western zone has no east connection")
	}
	pe, ok := east.Connections[West]
	if !ok {
		t.Fatal("eastern zone has no west connection")
	}
	if pw.X != 47 || pe.X != 0 || pw.Y != pe.Y {
		t.Fatalf("connection points do not face each other: %v / %v", pw, pe)
	}
	if !west.IsWalkable(pw.X, pw.Y) || !east.IsWalkable(pe.X, pe.Y) {
		t.Fatal("connection tiles must be walkable")
	}
	assertConnected(t, west)
	assertConnected(t, east)
}

func TestStitchOffsetIndependentOfOrder(t *testing.T) {
	a := NewGenerator(77, WithZoneSize(40, 40))
	a.Zone(0, 0)
	a.Zone(0, 1)

	b := NewGenerator(77, WithZoneSize(40, 40))
	b.Zone(0, 1)
	b.Zone(0, 0)

	za, _ := a.Lookup(0, 0)
	zb, _ := b.Lookup(0, 0)
	if za.Connections[South] != zb.Connections[South] {
		t.Fatalf("edge offset depends on generation order: %v vs %v", za.Connections[South], zb.Connections[South])
	}
}

func TestTinyZoneSizeRaisedToMinimum(t *testing.T) {
	g := NewGenerator(1, WithZoneSize(4, 4))
	if w, h := g.ZoneSize(); w != MinZoneSize || h != MinZoneSize {
		t.Fatalf("zone size should be raised to %d, got %dx%d", MinZoneSize, w, h)
	}
	west := g.Zone(0, 0)
	east := g.Zone(1, 0)
	if west.Width != MinZoneSize || east.Height != MinZoneSize {
		t.Fatalf("zones built at the wrong size: %dx%d", west.Width, east.Height)
	}
	p, ok := west.Connections[East]
	if !ok {
		t.Fatal("small zones should still be stitched")
	}
	if p.Y < 2 || p.Y > MinZoneSize-3 {
		t.Fatalf("exit offset %d leaves no margin", p.Y)
	}
}

func TestAnomaliesOnlyOnWalkableTiles(t *testing.T) {
	g := NewGenerator(31337, WithZoneSize(64, 64))
	for x := 0; x < 3; x++ {
		z := g.Zone(x, 0)
		for _, a := range z.Anomalies {
			if !z.IsWalkable(a.Pos.X, a.Pos.Y) {
				t.Fatalf("anomaly %v on blocking tile %s", a, z.TerrainAt(a.Pos.X, a.Pos.Y))
			}
			if a.Danger <= 0 || a.Danger > 1 {
				t.Fatalf("anomaly danger out of range: %.2f", a.Danger)
			}
		}
	}
}

func TestSpawnsAreWalkableAndBounded(t *testing.T) {
	g := NewGenerator(8, WithZoneSize(50, 50))
	for x := 0; x < 4; x++ {
		z := g.Zone(x, 1)
		if len(z.Spawns) > 8 {
			t.Fatalf("zone %v: %d spawns, want at most 8", z.Coord, len(z.Spawns))
		}
		for _, s := range z.Spawns {
			if !z.IsWalkable(s.Pos.X, s.Pos.Y) {
				t.Fatalf("spawn %+v on blocking tile", s)
			}
			if s.Difficulty < 0.8 || s.Difficulty > 1.2 {
				t.Fatalf("difficulty %.2f outside 0.8-1.2", s.Difficulty)
			}
		}
	}
}

func TestSpawnTableOverride(t *testing.T) {
	tables := SpawnTables{"wilderness": {{"zombie", 1}}}
	z := NewGenerator(3, WithZoneSize(40, 40), fixedType(ZoneWilderness), WithSpawnTables(tables)).Zone(0, 0)
	if len(z.Spawns) == 0 {
		t.Fatal("expected at least one spawn")
	}
	for _, s := range z.Spawns {
		if s.Template != "zombie" {
			t.Fatalf("unexpected template %q", s.Template)
		}
	}
}

func TestUndergroundLayout(t *testing.T) {
	z := NewGenerator(11, WithZoneSize(80, 60), fixedType(ZoneUnderground)).Zone(0, 0)
	rooms := 0
	for _, s := range z.Structures {
		if s.Kind == "room" {
			rooms++
		}
	}
	if rooms == 0 || rooms > maxRooms {
		t.Fatalf("expected 1-%d rooms, got %d", maxRooms, rooms)
	}
	for x := 0; x < z.Width; x++ {
		if z.IsWalkable(x, 0) || z.IsWalkable(x, z.Height-1) {
			t.Fatalf("unstitched underground zone must keep a solid border (x=%d)", x)
		}
	}
	caves := 0
	for i := range z.Tiles {
		if z.Tiles[i].Terrain == TerrainCave {
			caves++
		}
	}
	if caves != z.WalkableCount() {
		t.Fatalf("every walkable underground tile should be cave: %d caves, %d walkable", caves, z.WalkableCount())
	}
}

func TestSpanningTreeConnectsAllRooms(t *testing.T) {
	rooms := []Rect{{0, 0, 4, 4}, {20, 0, 4, 4}, {0, 20, 4, 4}, {40, 40, 4, 4}}
	edges := spanningTree(rooms)
	if len(edges) != len(rooms)-1 {
		t.Fatalf("expected %d edges, got %d", len(rooms)-1, len(edges))
	}
	seen := map[int]bool{0: true}
	for _, e := range edges {
		if !seen[e[0]] {
			t.Fatalf("edge %v starts outside the tree", e)
		}
		seen[e[1]] = true
	}
	if len(seen) != len(rooms) {
		t.Fatalf("tree spans %d of %d rooms", len(seen), len(rooms))
	}
}

func TestEnforceConnectivityKeepsLargestRegion(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 10, 10, TerrainRock)
	for x := 1; x <= 5; x++ {
		z.SetTerrain(x, 1, TerrainGrass)
	}
	z.SetTerrain(8, 8, TerrainGrass)
	enforceConnectivity(z)
	if z.IsWalkable(8, 8) {
		t.Fatal("isolated tile should have been walled off")
	}
	if z.TerrainAt(8, 8) != TerrainRock {
		t.Fatalf("walled tile should be rock, got %s", z.TerrainAt(8, 8))
	}
	if z.WalkableCount() != 5 {
		t.Fatalf("largest region should survive intact, got %d walkable", z.WalkableCount())
	}
}

func TestFindSpawn(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 8, 8, TerrainRock)
	if _, err := z.FindSpawn(4, 4); !errors.Is(err, ErrNoSpawnPoint) {
		t.Fatalf("expected ErrNoSpawnPoint, got %v", err)
	}
	z.SetTerrain(6, 5, TerrainGrass)
	p, err := z.FindSpawn(4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (Point{6, 5}) {
		t.Fatalf("expected spawn at (6,5), got %v", p)
	}
}

func TestSetTerrainDropsAnomalyOnBlockingTile(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 4, 4, TerrainGrass)
	if !z.PlaceAnomaly(1, 1, AnomalyElectric, 0.9) {
		t.Fatal("anomaly placement on grass failed")
	}
	z.SetTerrain(1, 1, TerrainWall)
	if _, ok := z.AnomalyAt(1, 1); ok {
		t.Fatal("wall tile still carries an anomaly")
	}
	if z.PlaceAnomaly(1, 1, AnomalyThermal, 0.5) {
		t.Fatal("anomaly placed on a blocking tile")
	}
	p := z.TileProperties(1, 1)
	if !p.BlocksMovement || !p.BlocksSight {
		t.Fatalf("wall should block movement and sight: %+v", p)
	}
}

func TestPlaceVillageSkipsUnsuitableZone(t *testing.T) {
	z := NewZone(Coord{}, ZoneVillage, 60, 60, TerrainDeepWater)
	rng := rand.New(rand.NewSource(42))
	if placeVillage(z, rng) {
		t.Fatal("village placed on open water")
	}
	if len(z.Structures) != 0 {
		t.Fatalf("skipped placement left %d structures behind", len(z.Structures))
	}
}

func TestPlaceVillageBuildsRoadsAndBuildings(t *testing.T) {
	z := NewZone(Coord{}, ZoneVillage, 60, 60, TerrainGrass)
	rng := rand.New(rand.NewSource(42))
	if !placeVillage(z, rng) {
		t.Fatal("village placement failed on open grass")
	}
	buildings, roads := 0, 0
	for _, s := range z.Structures {
		switch s.Kind {
		case featureVillage.String():
			if s.Area.W != villageW || s.Area.H != villageH {
				t.Fatalf("village footprint should be %dx%d, got %dx%d", villageW, villageH, s.Area.W, s.Area.H)
			}
		case "building":
			buildings++
			isLong := func(n int) bool { return n >= 8 && n <= 12 }
			isShort := func(n int) bool { return n == 7 || n == 9 }
			w, h := s.Area.W, s.Area.H
			if !(isLong(w) && isShort(h)) && !(isLong(h) && isShort(w)) {
				t.Fatalf("building %dx%d outside the 8..12 by 7|9 range", s.Area.W, s.Area.H)
			}
		}
	}
	for i := range z.Tiles {
		if z.Tiles[i].Terrain == TerrainRoad {
			roads++
		}
	}
	if buildings == 0 || buildings > 7 {
		t.Fatalf("expected 1-7 buildings, got %d", buildings)
	}
	if roads < villageW+villageH-1 {
		t.Fatalf("cross road incomplete: %d road tiles", roads)
	}
}

func TestBuildingRoomsHaveSingleDoor(t *testing.T) {
	z := NewZone(Coord{}, ZoneVillage, 20, 20, TerrainGrass)
	rng := rand.New(rand.NewSource(42))
	rooms := buildBuilding(z, rng, Rect{X: 2, Y: 2, W: 12, H: 9})
	if len(rooms) < 2 {
		t.Fatalf("expected rooms on both sides of the hallway, got %d", len(rooms))
	}
	for _, rm := range rooms {
		doors := 0
		for y := rm.area.Y - 1; y <= rm.area.Y+rm.area.H; y++ {
			for x := rm.area.X - 1; x <= rm.area.X+rm.area.W; x++ {
				if rm.area.Contains(x, y) || z.TerrainAt(x, y) != TerrainDoor {
					continue
				}
				// Only orthogonal neighbours of the room count as access.
				inRow := y >= rm.area.Y && y < rm.area.Y+rm.area.H
				inCol := x >= rm.area.X && x < rm.area.X+rm.area.W
				if inRow || inCol {
					doors++
				}
			}
		}
		if doors != 1 {
			t.Fatalf("room %+v has %d doors, want 1", rm.area, doors)
		}
	}
	if z.TerrainAt(2, 6) != TerrainDoor || z.TerrainAt(13, 6) != TerrainDoor {
		t.Fatal("hallway should have an exterior door at each end")
	}
}

func TestCrashSiteIsRadiationTagged(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 40, 40, TerrainGrass)
	rng := rand.New(rand.NewSource(42))
	if !placeCrashSite(z, rng) {
		t.Fatal("crash site placement failed on open grass")
	}
	debris := 0
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			tile := z.At(x, y)
			switch tile.Terrain {
			case TerrainWreckage:
				if tile.Props.Radiation < 0.6 || !tile.Walkable() {
					t.Fatalf("wreckage at (%d,%d) should be walkable and irradiated: %+v", x, y, tile.Props)
				}
			case TerrainDebris:
				debris++
				if tile.Props.Radiation < 0.4 {
					t.Fatalf("debris at (%d,%d) not irradiated", x, y)
				}
			}
		}
	}
	if debris < 4 || debris > 8 {
		t.Fatalf("expected 4-8 debris tiles, got %d", debris)
	}
}

func TestOutpostHasTowersAndGates(t *testing.T) {
	z := NewZone(Coord{}, ZoneMilitary, 40, 40, TerrainGrass)
	rng := rand.New(rand.NewSource(42))
	if !placeOutpost(z, rng) {
		t.Fatal("outpost placement failed on open grass")
	}
	towers, gates := 0, 0
	for i := range z.Tiles {
		switch z.Tiles[i].Terrain {
		case TerrainTower:
			towers++
		case TerrainGate:
			gates++
		}
	}
	if towers != 16 {
		t.Fatalf("expected 4 towers of 2x2 tiles, got %d tower tiles", towers)
	}
	if gates != 4 {
		t.Fatalf("expected two double gates, got %d gate tiles", gates)
	}
	enforceConnectivity(z)
	assertConnected(t, z)
}
