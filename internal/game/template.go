package game

import (
	"errors"
	"fmt"
	"maps"

	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/google/uuid"
)

// ErrUnknownTemplate is returned when a spawn names a template that was
// never loaded.
var ErrUnknownTemplate = errors.New("unknown enemy template")

// actorNamespace scopes deterministic actor IDs.
var actorNamespace = uuid.MustParse("6f1c2a0e-3b5d-5c7e-9a41-2d8e4b6f0c13")

// ActorID derives a stable ID for the idx-th spawn of a zone.
func ActorID(c world.Coord, idx int) string {
	return uuid.NewSHA1(actorNamespace, fmt.Appendf(nil, "%d:%d:%d", c.X, c.Y, idx)).String()
}

// Template describes an enemy type. Items are prototypes; Instantiate
// hands out clones.
type Template struct {
	Name      string
	Display   string
	Faction   string
	Class     string
	SquadRole string
	Health    float64

	// Resistances scale environmental damage for actors built from t.
	Resistances map[DamageType]float64

	Weapon *Item
	Armor  []*Item
	Items  []*Item
}

// Instantiate builds an actor from t at (x, y). Difficulty scales health
// and weapon damage.
func (t Template) Instantiate(id string, x, y int, difficulty float64) *Actor {
	if difficulty <= 0 {
		difficulty = 1
	}
	name := t.Display
	if name == "" {
		name = t.Name
	}
	a := NewActor(id, name, t.Name, t.Faction, x, y, t.Health*difficulty)
	a.Class = t.Class
	maps.Copy(a.Stats.Resistances, t.Resistances)
	if t.Weapon != nil {
		w := t.Weapon.Clone()
		w.Weapon.Damage *= difficulty
		_ = a.Inventory.Equip(w, SlotWeaponPrimary)
	}
	for _, ar := range t.Armor {
		_ = a.Inventory.Equip(ar.Clone(), ar.Armor.Slot)
	}
	for _, it := range t.Items {
		_ = a.Inventory.AddItem(it.Clone())
	}
	return a
}

// Templates indexes templates by name.
type Templates map[string]Template

// Lookup returns the named template or ErrUnknownTemplate.
func (ts Templates) Lookup(name string) (Template, error) {
	t, ok := ts[name]
	if !ok {
		return Template{}, fmt.Errorf("template %q: %w", name, ErrUnknownTemplate)
	}
	return t, nil
}
