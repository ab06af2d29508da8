package game

import (
	"math"

	"github.com/Garsondee/Zone-Sense/internal/bt"
	"github.com/Garsondee/Zone-Sense/internal/world"
)

const (
	baseViewDistance    = 10.0
	minViewLight        = 0.3
	lowHealthRatio      = 0.3
	minShotAccuracy     = 0.5
	minShotLight        = 0.3
	repositionChance    = 0.3
	shelterRadius       = 9
	searchRadius        = 5
	searchPointsPerRing = 8
	patrolPointCount    = 4
	patrolMinRadius     = 5
	patrolMaxRadius     = 10
)

// ---------------------------------------------------------------------------
// Movement
// ---------------------------------------------------------------------------

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// stepToward takes one sign-clamped step toward (tx, ty). arrived is true
// when the actor was already there, in which case no move is made.
func stepToward(ctx *AIContext, tx, ty int) (arrived bool, res MoveResult) {
	a := ctx.Actor
	if a.X == tx && a.Y == ty {
		return true, Moved
	}
	return false, a.Move(sign(tx-a.X), sign(ty-a.Y), ctx.Terrain)
}

// moveTowards reports whether the actor is already at (tx, ty), stepping
// toward it otherwise.
func moveTowards(ctx *AIContext, tx, ty int) bool {
	arrived, _ := stepToward(ctx, tx, ty)
	return arrived
}

// ---------------------------------------------------------------------------
// Shelter
// ---------------------------------------------------------------------------

func dangerousWeather(ctx *AIContext) bool { return ctx.Weather.Dangerous() }

func hasShelter(ctx *AIContext) bool { return ctx.Memory.Shelter != nil }

func moveToShelter(ctx *AIContext) bt.Status {
	s := ctx.Memory.Shelter
	if s == nil {
		return bt.Failure
	}
	arrived, res := stepToward(ctx, s.X, s.Y)
	switch {
	case arrived:
		return bt.Success
	case res == Blocked:
		return bt.Failure
	default:
		return bt.Running
	}
}

func findShelter(ctx *AIContext) bt.Status {
	a := ctx.Actor
	for r := 1; r <= shelterRadius; r++ {
		for x := a.X - r; x <= a.X+r; x++ {
			for y := a.Y - r; y <= a.Y+r; y++ {
				if !ctx.Terrain.InBounds(x, y) || !ctx.Terrain.TerrainAt(x, y).IsShelter() {
					continue
				}
				ctx.Memory.Shelter = &world.Point{X: x, Y: y}
				ctx.Log.Debug().Str("actor", a.Name).Int("x", x).Int("y", y).Msg("shelter found")
				return bt.Success
			}
		}
	}
	return bt.Failure
}

// ---------------------------------------------------------------------------
// Combat
// ---------------------------------------------------------------------------

// ViewDistance is how far the actor can see under the given conditions.
func ViewDistance(e WeatherEffects, light float64) float64 {
	return baseViewDistance * e.Visibility * max(minViewLight, light)
}

func canSeeEnemy(ctx *AIContext) bool {
	if ctx.Level == nil {
		return false
	}
	a := ctx.Actor
	view := ViewDistance(ctx.Effects, ctx.Light)

	var best *Actor
	bestPreferred := false
	bestDist := math.Inf(1)
	for _, e := range ctx.Level.Entities() {
		if e == a || e.Dead || e.Faction == a.Faction {
			continue
		}
		d := a.Distance(e)
		if d > view {
			continue
		}
		preferred := ctx.Squad != nil && ctx.Squad.Role.Prefers(e)
		if best == nil || (preferred && !bestPreferred) || (preferred == bestPreferred && d < bestDist) {
			best, bestPreferred, bestDist = e, preferred, d
		}
	}
	if best == nil {
		return false
	}
	ctx.enemy = best
	ctx.Memory.SawEnemy(best)
	return true
}

// enemyPos is the position to react to: this tick's sighting, or memory
// when a composite resumed without re-running the visibility check.
func enemyPos(ctx *AIContext) (world.Point, bool) {
	if ctx.enemy != nil {
		return ctx.enemy.Pos(), true
	}
	if ctx.Memory.LastKnownEnemy != nil {
		return *ctx.Memory.LastKnownEnemy, true
	}
	return world.Point{}, false
}

func lowHealth(ctx *AIContext) bool {
	s := ctx.Actor.Stats
	return s.Health < s.MaxHealth*lowHealthRatio
}

var cardinals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func retreat(ctx *AIContext) bt.Status {
	a := ctx.Actor
	if ctx.Squad != nil && ctx.Squad.State == SquadRetreat {
		lp := ctx.Squad.LeaderPos
		if max(abs(lp.X-a.X), abs(lp.Y-a.Y)) <= 1 {
			return bt.Success
		}
		moveTowards(ctx, lp.X, lp.Y)
		return bt.Running
	}

	ep, ok := enemyPos(ctx)
	if !ok {
		return bt.Failure
	}
	dx := float64(a.X - ep.X)
	dy := float64(a.Y - ep.Y)
	if d := math.Hypot(dx, dy); d == 0 {
		c := cardinals[ctx.Rng.Intn(len(cardinals))]
		dx, dy = float64(c[0]), float64(c[1])
	} else {
		dx, dy = dx/d, dy/d
	}

	// Straight away first, then the four half-step skews. Ties keep the
	// earlier candidate.
	candidates := [5][2]int{
		{int(dx), int(dy)},
		{int(dx + .5), int(dy + .5)},
		{int(dx + .5), int(dy - .5)},
		{int(dx - .5), int(dy + .5)},
		{int(dx - .5), int(dy - .5)},
	}
	best := 0.0
	var move [2]int
	found := false
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		nx, ny := a.X+c[0], a.Y+c[1]
		if !validMove(ctx.Terrain, nx, ny) {
			continue
		}
		if s := CoverScore(ctx.Terrain, nx, ny, ep.X, ep.Y); s > best {
			best, move, found = s, c, true
		}
	}
	if !found {
		return bt.Failure
	}
	a.Move(move[0], move[1], ctx.Terrain)
	return bt.Running
}

func goodShot(ctx *AIContext) bool {
	if ctx.Effects.Accuracy < minShotAccuracy || ctx.Light < minShotLight {
		return false
	}
	return ctx.Actor.Inventory.Weapon(SlotWeaponPrimary).HasAmmo()
}

func nearest(a *Actor, pts []world.Point) (world.Point, bool) {
	if len(pts) == 0 {
		return world.Point{}, false
	}
	best := pts[0]
	bd := a.DistanceTo(best.X, best.Y)
	for _, p := range pts[1:] {
		if d := a.DistanceTo(p.X, p.Y); d < bd {
			best, bd = p, d
		}
	}
	return best, true
}

func attack(ctx *AIContext) bt.Status {
	a := ctx.Actor
	if sq := ctx.Squad; sq != nil && sq.State == SquadCombat && ctx.Rng.Float64() < repositionChance {
		positions := sq.FlankPositions
		if sq.Role.Name == "support" {
			positions = sq.SupportPositions
		}
		if p, ok := nearest(a, positions); ok && !moveTowards(ctx, p.X, p.Y) {
			return bt.Running
		}
	}

	ep, ok := enemyPos(ctx)
	if !ok {
		return bt.Failure
	}
	target := ctx.enemy
	if target == nil {
		target = ctx.Level.ActorAt(ep.X, ep.Y)
	}
	if target == nil || target.Faction == a.Faction {
		return bt.Failure
	}

	// Out of range is a miss; take_cover handles the rest.
	res := ctx.Combat.Attack(a, target, SlotWeaponPrimary)
	if res.Outcome == AttackHit {
		return bt.Success
	}
	return bt.Failure
}

func takeCover(ctx *AIContext) bt.Status {
	a := ctx.Actor
	if w := a.Inventory.Weapon(SlotWeaponPrimary); w != nil && !w.HasAmmo() {
		if ctx.Combat.ReloadFromInventory(a, SlotWeaponPrimary) > 0 {
			return bt.Running
		}
	}
	ep, ok := enemyPos(ctx)
	if !ok {
		return bt.Failure
	}
	x, y, found := bestCover(ctx.Terrain, a.X, a.Y, ep.X, ep.Y)
	if !found {
		return bt.Failure
	}
	if moveTowards(ctx, x, y) {
		return bt.Success
	}
	return bt.Running
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func hasLastKnown(ctx *AIContext) bool { return ctx.Memory.LastKnownEnemy != nil }

// SpiralPoints returns the search pattern around (cx, cy): 8 points per
// ring at 45 degree steps, rings 1 through 5.
func SpiralPoints(cx, cy int) []world.Point {
	pts := make([]world.Point, 0, searchRadius*searchPointsPerRing)
	for r := 1; r <= searchRadius; r++ {
		for k := 0; k < searchPointsPerRing; k++ {
			ang := float64(k) * math.Pi / 4
			pts = append(pts, world.Point{
				X: cx + int(float64(r)*math.Cos(ang)),
				Y: cy + int(float64(r)*math.Sin(ang)),
			})
		}
	}
	return pts
}

func searchArea(ctx *AIContext) bt.Status {
	m := ctx.Memory
	if m.LastKnownEnemy == nil {
		return bt.Failure
	}
	if !m.SearchGenerated {
		m.SearchPoints = SpiralPoints(m.LastKnownEnemy.X, m.LastKnownEnemy.Y)
		m.SearchIndex = 0
		m.SearchGenerated = true
	}
	if m.SearchIndex < len(m.SearchPoints) {
		p := m.SearchPoints[m.SearchIndex]
		if !ctx.Terrain.InBounds(p.X, p.Y) {
			m.SearchIndex++
			return bt.Running
		}
		arrived, res := stepToward(ctx, p.X, p.Y)
		if arrived || res == Blocked {
			m.SearchIndex++
		}
		return bt.Running
	}
	m.ForgetEnemy()
	return bt.Success
}

// ---------------------------------------------------------------------------
// Patrol
// ---------------------------------------------------------------------------

func noEnemyMemory(ctx *AIContext) bool { return ctx.Memory.LastKnownEnemy == nil }

func generatePatrol(ctx *AIContext) []world.Point {
	a := ctx.Actor
	w, h := ctx.Terrain.Size()
	radius := float64(patrolMinRadius + ctx.Rng.Intn(patrolMaxRadius-patrolMinRadius+1))
	var pts []world.Point
	for i := 0; i < patrolPointCount; i++ {
		ang := ctx.Rng.Float64() * 2 * math.Pi
		x := a.SpawnX + int(radius*math.Cos(ang))
		y := a.SpawnY + int(radius*math.Sin(ang))
		x = min(w-1, max(0, x))
		y = min(h-1, max(0, y))
		if ctx.Terrain.IsWalkable(x, y) {
			pts = append(pts, world.Point{X: x, Y: y})
		}
	}
	return pts
}

func patrol(ctx *AIContext) bt.Status {
	m := ctx.Memory
	if !m.PatrolGenerated {
		m.PatrolPoints = generatePatrol(ctx)
		m.PatrolIndex = 0
		m.PatrolGenerated = true
	}
	if len(m.PatrolPoints) == 0 {
		return bt.Failure
	}
	p := m.PatrolPoints[m.PatrolIndex]
	arrived, res := stepToward(ctx, p.X, p.Y)
	if arrived || res == Blocked {
		m.PatrolIndex = (m.PatrolIndex + 1) % len(m.PatrolPoints)
	}
	return bt.Running
}
