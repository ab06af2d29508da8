package world

import "testing"

func TestHasLineOfSight(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 10, 10, TerrainGrass)
	if !z.HasLineOfSight(0, 5, 9, 5) {
		t.Fatal("open ground should not block sight")
	}
	z.SetTerrain(5, 5, TerrainWall)
	if z.HasLineOfSight(0, 5, 9, 5) {
		t.Fatal("wall between endpoints should block sight")
	}
	if !z.HasLineOfSight(0, 5, 5, 5) {
		t.Fatal("the blocking tile itself is visible")
	}
}

func TestComputeFOV(t *testing.T) {
	z := NewZone(Coord{}, ZoneWilderness, 11, 11, TerrainGrass)
	for y := 0; y < 11; y++ {
		z.SetTerrain(7, y, TerrainWall)
	}
	z.ComputeFOV(5, 5, 5)
	if !z.Visible[5*11+6] || !z.Visible[5*11+7] {
		t.Fatal("tiles up to and including the wall should be visible")
	}
	if z.Visible[5*11+8] {
		t.Fatal("tile behind the wall should be hidden")
	}
	if !z.Explored[5*11+6] {
		t.Fatal("visible tiles should be marked explored")
	}
	z.ComputeFOV(1, 1, 1)
	if z.Visible[5*11+6] || !z.Explored[5*11+6] {
		t.Fatal("explored state must persist after visibility moves away")
	}
}
