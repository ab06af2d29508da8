package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/Zone-Sense/internal/world"
)

const (
	PlayerKind    = "player"
	PlayerFaction = "player"

	defaultStamina = 100.0
	diagonalCost   = 1.4
)

// MoveResult is the outcome of a single-step move.
type MoveResult uint8

const (
	Moved MoveResult = iota
	Blocked
	Exhausted
)

func (m MoveResult) String() string {
	switch m {
	case Moved:
		return "moved"
	case Blocked:
		return "blocked"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Actor is anything with a position, a faction and a body: the player,
// stalkers, mutants.
type Actor struct {
	ID      string
	Name    string
	Kind    string
	Class   string
	Faction string

	X, Y           int
	SpawnX, SpawnY int

	Stats     Stats
	Combat    CombatState
	Inventory *Inventory
	Dead      bool
}

// NewActor returns a living actor at (x, y) with full stats and an empty
// inventory.
func NewActor(id, name, kind, faction string, x, y int, health float64) *Actor {
	return &Actor{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Faction:   faction,
		X:         x,
		Y:         y,
		SpawnX:    x,
		SpawnY:    y,
		Stats:     NewStats(health, defaultStamina),
		Combat:    CombatState{Effects: map[string]int{}},
		Inventory: NewInventory(),
	}
}

// NewPlayer returns the player with a starting kit.
func NewPlayer(x, y int) *Actor {
	a := NewActor("player", "Player", PlayerKind, PlayerFaction, x, y, 100)
	pm := NewWeapon("PM Pistol", 0.7, WeaponSpec{
		Damage: 20, Range: 6, Accuracy: 0.7, Ammo: 8, MaxAmmo: 8,
		JamChance: 0.02, Caliber: "9x18",
	})
	_ = a.Inventory.Equip(pm, SlotWeaponPrimary)
	_ = a.Inventory.AddItem(NewAmmo("9x18", 24))
	_ = a.Inventory.AddItem(NewConsumable("Medkit", 0.5, EffectHeal, 50))
	_ = a.Inventory.AddItem(NewConsumable("Bandage", 0.1, EffectStopBleeding, 0))
	_ = a.Inventory.AddItem(NewConsumable("Anti-rad", 0.3, EffectAntiRad, 50))
	return a
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s(%s@%d,%d)", a.Name, a.Faction, a.X, a.Y)
}

// Alive is !Dead.
func (a *Actor) Alive() bool { return !a.Dead }

// Pos returns the actor position as a world point.
func (a *Actor) Pos() world.Point { return world.Point{X: a.X, Y: a.Y} }

// DistanceTo is the Euclidean distance to (x, y).
func (a *Actor) DistanceTo(x, y int) float64 {
	return math.Hypot(float64(x-a.X), float64(y-a.Y))
}

// Distance is the Euclidean distance between two actors.
func (a *Actor) Distance(o *Actor) float64 { return a.DistanceTo(o.X, o.Y) }

// MoveCost is the stamina cost of a step.
func (a *Actor) MoveCost(dx, dy int) float64 {
	cost := 1 + a.Inventory.MovementPenalty()
	if dx != 0 && dy != 0 {
		cost *= diagonalCost
	}
	return cost
}

// Move takes one step by (dx, dy). Walkability is checked before stamina.
func (a *Actor) Move(dx, dy int, t Terrain) MoveResult {
	nx, ny := a.X+dx, a.Y+dy
	if !t.InBounds(nx, ny) || !t.IsWalkable(nx, ny) {
		return Blocked
	}
	cost := a.MoveCost(dx, dy)
	if a.Stats.Stamina < cost {
		return Exhausted
	}
	a.Stats.Stamina -= cost
	a.X, a.Y = nx, ny
	return Moved
}

// Regenerate restores one point of stamina.
func (a *Actor) Regenerate() {
	a.Stats.Stamina = min(a.Stats.MaxStamina, a.Stats.Stamina+1)
}

// Heal adds health, clamped to max.
func (a *Actor) Heal(amount float64) {
	a.Stats.setHealth(a.Stats.Health + amount)
}

// UseItem applies a consumable and removes it from the inventory.
func (a *Actor) UseItem(it *Item) error {
	if it.Kind != ItemConsumable {
		return fmt.Errorf("use %s: %w", it.Name, ErrNotConsumable)
	}
	if !a.Inventory.RemoveItem(it) {
		return fmt.Errorf("use %s: %w", it.Name, ErrNotCarried)
	}
	switch it.Consumable.Effect {
	case EffectHeal:
		a.Heal(it.Consumable.Amount)
		a.Combat.BleedingRate = 0
	case EffectStopBleeding:
		a.Combat.BleedingRate = 0
	case EffectAntiRad:
		a.Combat.RadiationLevel = max(0, a.Combat.RadiationLevel-it.Consumable.Amount)
		delete(a.Combat.Effects, EffectRadiationSickness)
	}
	return nil
}

// FindConsumable returns the first carried consumable with effect e.
func (a *Actor) FindConsumable(e ConsumableEffect) *Item {
	for _, it := range a.Inventory.Items {
		if it.Kind == ItemConsumable && it.Consumable.Effect == e {
			return it
		}
	}
	return nil
}
