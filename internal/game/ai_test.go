package game

import (
	"testing"

	"github.com/Garsondee/Zone-Sense/internal/bt"
	"github.com/Garsondee/Zone-Sense/internal/world"
)

func TestAI_FindsAndWalksToShelterInStorm(t *testing.T) {
	z := openZone(20, 20)
	z.SetTerrain(8, 5, world.TerrainBuilding)
	a := armed("a", "loners", 5, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)
	ctx.Weather = WeatherStorm

	if got := ai.Update(ctx); got != bt.Success {
		t.Fatalf("finding shelter should succeed, got %s", got)
	}
	if s := ai.Memory.Shelter; s == nil || *s != (world.Point{X: 8, Y: 5}) {
		t.Fatalf("shelter should be remembered at (8,5), got %v", s)
	}
	for i := 0; i < 3; i++ {
		if got := ai.Update(ctx); got != bt.Running {
			t.Fatalf("step %d: walking to shelter should be running, got %s", i, got)
		}
	}
	if a.X != 8 || a.Y != 5 {
		t.Fatalf("actor should reach shelter, at (%d,%d)", a.X, a.Y)
	}
	if got := ai.Update(ctx); got != bt.Success {
		t.Fatalf("arrival should succeed, got %s", got)
	}
}

func TestAI_NoShelterFallsThrough(t *testing.T) {
	z := openZone(30, 30)
	a := armed("a", "loners", 15, 15, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)
	ctx.Weather = WeatherRadiationStorm

	ai.Update(ctx)
	if ai.Memory.Shelter != nil {
		t.Fatalf("no shelter exists")
	}
	if !ai.Memory.PatrolGenerated {
		t.Fatalf("failed shelter search should fall through to patrol")
	}
}

func TestAI_AttacksVisibleEnemy(t *testing.T) {
	z := openZone(20, 20)
	a := armed("a", "loners", 5, 5, 100)
	e := armed("e", "bandits", 6, 5, 1000)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Success {
		t.Fatalf("point-blank attack should hit, got %s", got)
	}
	if e.Stats.Health >= 1000 {
		t.Fatalf("enemy should be hurt")
	}
	if ai.Memory.LastSeenEnemyID != "e" || *ai.Memory.LastKnownEnemy != e.Pos() {
		t.Fatalf("sighting should be remembered: %+v", ai.Memory)
	}
}

func TestAI_OutOfRangeShotFallsBackToCover(t *testing.T) {
	z := openZone(30, 30)
	z.SetTerrain(4, 4, world.TerrainBrush)
	a := armed("a", "loners", 5, 5, 100)
	w := a.Inventory.Weapon(SlotWeaponPrimary)
	w.Weapon.Range = 2
	e := armed("e", "bandits", 10, 5, 1000)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("missed shot should fall through to take_cover, got %s", got)
	}
	if a.X != 4 || a.Y != 4 {
		t.Fatalf("actor should move into the brush at (4,4), at (%d,%d)", a.X, a.Y)
	}
	if e.Stats.Health != 1000 {
		t.Fatalf("out-of-range target should be untouched, health=%.1f", e.Stats.Health)
	}
	if w.Weapon.Ammo != 29 || ctx.Combat.Tally.Shots != 1 {
		t.Fatalf("the shot should still be fired: ammo=%d shots=%d", w.Weapon.Ammo, ctx.Combat.Tally.Shots)
	}
}

func TestAI_TakesCoverInTheDark(t *testing.T) {
	z := openZone(20, 20)
	z.SetTerrain(4, 4, world.TerrainBrush)
	a := armed("a", "loners", 5, 5, 100)
	e := armed("e", "bandits", 7, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)
	ctx.Light = 0.2

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("moving to cover should be running, got %s", got)
	}
	if a.X != 4 || a.Y != 4 {
		t.Fatalf("actor should step into the brush at (4,4), at (%d,%d)", a.X, a.Y)
	}
	if e.Stats.Health != 100 {
		t.Fatalf("no shot should be taken in the dark")
	}
}

func TestAI_TakeCoverReloadsEmptyWeapon(t *testing.T) {
	z := openZone(20, 20)
	a := armed("a", "loners", 5, 5, 100)
	w := a.Inventory.Weapon(SlotWeaponPrimary)
	w.Weapon.Ammo = 0
	_ = a.Inventory.AddItem(NewAmmo("5.45x39", 20))
	e := armed("e", "bandits", 7, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)

	if got := ai.Update(testContext(lvl, 42)); got != bt.Running {
		t.Fatalf("reloading should spend the tick, got %s", got)
	}
	if w.Weapon.Ammo != 20 {
		t.Fatalf("weapon should be loaded from the inventory, ammo=%d", w.Weapon.Ammo)
	}
	if a.X != 5 || a.Y != 5 {
		t.Fatalf("actor should not move while reloading, at (%d,%d)", a.X, a.Y)
	}
}

func TestAI_RetreatsWhenHurt(t *testing.T) {
	z := openZone(20, 20)
	a := armed("a", "loners", 5, 5, 100)
	a.Stats.Health = 10
	e := armed("e", "bandits", 7, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("retreat should be running, got %s", got)
	}
	if a.X != 4 || a.Y != 5 {
		t.Fatalf("actor should back away to (4,5), at (%d,%d)", a.X, a.Y)
	}
}

func TestAI_RetreatTieKeepsEarlierCandidate(t *testing.T) {
	z := openZone(20, 20)
	z.SetTerrain(10, 11, world.TerrainWall)
	a := armed("a", "loners", 10, 10, 100)
	a.Stats.Health = 10
	e := armed("e", "bandits", 13, 7, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(e)
	ai := NewAI(a)

	// (9,11) and (9,10) both score the capped distance bonus.
	if got := ai.Update(testContext(lvl, 42)); got != bt.Running {
		t.Fatalf("retreat should be running, got %s", got)
	}
	if a.X != 9 || a.Y != 11 {
		t.Fatalf("tie should go to the (-.5,+.5) skew at (9,11), at (%d,%d)", a.X, a.Y)
	}
}

func TestAI_SquadRetreatHeadsToLeader(t *testing.T) {
	z := openZone(20, 20)
	leader := armed("l", "loners", 2, 2, 100)
	a := armed("a", "loners", 6, 6, 100)
	a.Stats.Health = 10
	e := armed("e", "bandits", 8, 6, 100)
	lvl := NewLevel(z)
	lvl.Add(leader)
	lvl.Add(a)
	lvl.Add(e)
	sq := NewSquad(0, leader)
	sq.AddMember(a, "assault")
	sq.State = SquadRetreat

	ai := NewAI(a)
	ctx := testContext(lvl, 42)
	ctx.Squad = sq.MemberContext(a, lvl)
	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("want running, got %s", got)
	}
	if a.X != 5 || a.Y != 5 {
		t.Fatalf("should step toward leader, at (%d,%d)", a.X, a.Y)
	}
}

func TestCanSeeEnemy_PrefersRoleTargets(t *testing.T) {
	z := openZone(20, 20)
	a := armed("a", "bandits", 5, 5, 100)
	near := armed("near", "loners", 7, 5, 100)
	far := armed("far", "loners", 5, 9, 100)
	far.Kind = PlayerKind
	lvl := NewLevel(z)
	lvl.Add(a)
	lvl.Add(near)
	lvl.Add(far)

	ctx := testContext(lvl, 1)
	ctx.Actor = a
	ctx.Memory = &Memory{}
	if !canSeeEnemy(ctx) || ctx.enemy != near {
		t.Fatalf("solo actors pick the nearest enemy")
	}

	ctx.Squad = &SquadContext{Role: RoleFor("assault")}
	if !canSeeEnemy(ctx) || ctx.enemy != far {
		t.Fatalf("assault should prefer the player")
	}

	ctx.Effects.Visibility = 0.3
	if canSeeEnemy(ctx) && ctx.enemy == far {
		t.Fatalf("reduced visibility should hide the distant enemy")
	}
}

func TestSpiralPoints(t *testing.T) {
	pts := SpiralPoints(10, 10)
	if len(pts) != 40 {
		t.Fatalf("want 40 points, got %d", len(pts))
	}
	want := map[int]world.Point{
		0: {X: 11, Y: 10},
		2: {X: 10, Y: 11},
		4: {X: 9, Y: 10},
		6: {X: 10, Y: 9},
		8: {X: 12, Y: 10},
	}
	for i, p := range want {
		if pts[i] != p {
			t.Fatalf("point %d: want %v, got %v", i, p, pts[i])
		}
	}
}

func TestAI_SearchClearsMemoryWhenDone(t *testing.T) {
	z := openZone(20, 20)
	a := armed("a", "loners", 5, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ai.Memory.LastKnownEnemy = &world.Point{X: 9, Y: 9}
	ai.Memory.LastSeenEnemyID = "ghost"
	ai.Memory.SearchGenerated = true
	ai.Memory.SearchPoints = []world.Point{{X: 5, Y: 5}, {X: -3, Y: 2}}
	ctx := testContext(lvl, 1)

	for i := 0; i < 2; i++ {
		if got := ai.Update(ctx); got != bt.Running {
			t.Fatalf("tick %d: search should be running, got %s", i, got)
		}
	}
	if got := ai.Update(ctx); got != bt.Success {
		t.Fatalf("exhausted search should succeed, got %s", got)
	}
	m := ai.Memory
	if m.LastKnownEnemy != nil || m.LastSeenEnemyID != "" || m.SearchPoints != nil || m.SearchGenerated {
		t.Fatalf("search memory should be cleared: %+v", m)
	}
}

func TestAI_SearchGeneratesSpiral(t *testing.T) {
	z := openZone(30, 30)
	a := armed("a", "loners", 5, 5, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ai.Memory.LastKnownEnemy = &world.Point{X: 15, Y: 15}
	ctx := testContext(lvl, 1)

	ai.Update(ctx)
	if !ai.Memory.SearchGenerated || len(ai.Memory.SearchPoints) != 40 {
		t.Fatalf("spiral should be generated once")
	}
	if a.X != 6 || a.Y != 6 {
		t.Fatalf("actor should head for the first point, at (%d,%d)", a.X, a.Y)
	}
}

func TestAI_PatrolAroundSpawn(t *testing.T) {
	z := openZone(40, 40)
	a := armed("a", "loners", 20, 20, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("patrol should be running, got %s", got)
	}
	pts := ai.Memory.PatrolPoints
	if len(pts) != patrolPointCount {
		t.Fatalf("open ground should yield %d patrol points, got %d", patrolPointCount, len(pts))
	}
	for _, p := range pts {
		if abs(p.X-20) > patrolMaxRadius || abs(p.Y-20) > patrolMaxRadius {
			t.Fatalf("patrol point %v too far from spawn", p)
		}
	}
	if a.X == 20 && a.Y == 20 {
		t.Fatalf("actor should start walking")
	}
}

func TestAI_PatrolFailsWithoutPoints(t *testing.T) {
	z := world.NewZone(world.Coord{}, world.ZoneUnderground, 40, 40, world.TerrainRock)
	z.SetTerrain(20, 20, world.TerrainCave)
	a := armed("a", "loners", 20, 20, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	if got := ai.Update(testContext(lvl, 42)); got != bt.Failure {
		t.Fatalf("walled-in actor has nowhere to patrol, got %s", got)
	}
}

func TestAI_PatrolYieldsToVisibleEnemy(t *testing.T) {
	z := openZone(40, 40)
	a := armed("a", "loners", 20, 20, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("patrol should be running, got %s", got)
	}
	e := armed("e", "bandits", a.X+1, a.Y, 1000)
	lvl.Add(e)

	ai.Update(ctx)
	if ai.Memory.LastSeenEnemyID != "e" {
		t.Fatalf("running patrol must not hide an adjacent enemy: %+v", ai.Memory)
	}
	if e.Stats.Health >= 1000 {
		t.Fatalf("actor should engage the enemy, health=%.1f", e.Stats.Health)
	}
}

func TestAI_PatrolYieldsToStorm(t *testing.T) {
	z := openZone(40, 40)
	a := armed("a", "loners", 20, 20, 100)
	lvl := NewLevel(z)
	lvl.Add(a)
	ai := NewAI(a)
	ctx := testContext(lvl, 42)

	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("patrol should be running, got %s", got)
	}
	z.SetTerrain(a.X+4, a.Y, world.TerrainBuilding)
	ctx.Weather = WeatherRadiationStorm

	if got := ai.Update(ctx); got != bt.Success {
		t.Fatalf("shelter search should preempt patrol, got %s", got)
	}
	if s := ai.Memory.Shelter; s == nil || *s != (world.Point{X: a.X + 4, Y: a.Y}) {
		t.Fatalf("shelter should be found at (%d,%d), got %v", a.X+4, a.Y, s)
	}

	// Once the storm clears, patrol restarts from its guard.
	ctx.Weather = WeatherClear
	ai.Memory.Shelter = nil
	if got := ai.Update(ctx); got != bt.Running {
		t.Fatalf("patrol should resume after the storm, got %s", got)
	}
}
