// Package data loads enemy templates and spawn tables. Defaults are
// embedded; a data directory may override either file.
package data

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/world"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

const (
	TemplatesFile   = "templates.yaml"
	SpawnTablesFile = "spawn_tables.yaml"
)

// ErrUnknownTemplate is returned when a spawn table references a template
// that is not defined.
var ErrUnknownTemplate = game.ErrUnknownTemplate

// ErrInvalidTemplate is returned for malformed template entries.
var ErrInvalidTemplate = errors.New("invalid template")

// WeaponDef is the YAML form of a weapon.
type WeaponDef struct {
	Name       string  `yaml:"name"`
	Weight     float64 `yaml:"weight"`
	Damage     float64 `yaml:"damage"`
	Range      float64 `yaml:"range"`
	Accuracy   float64 `yaml:"accuracy"`
	MaxAmmo    int     `yaml:"max_ammo"`
	JamChance  float64 `yaml:"jam_chance"`
	DamageType string  `yaml:"damage_type"`
	Melee      bool    `yaml:"melee"`
	Caliber    string  `yaml:"caliber"`
}

// ArmorDef is the YAML form of an armor piece.
type ArmorDef struct {
	Name            string             `yaml:"name"`
	Weight          float64            `yaml:"weight"`
	Slot            string             `yaml:"slot"`
	Protection      map[string]float64 `yaml:"protection"`
	MovementPenalty float64            `yaml:"movement_penalty"`
}

// ItemDef is a carried item: a consumable or a box of ammo.
type ItemDef struct {
	Kind    string  `yaml:"kind"`
	Name    string  `yaml:"name"`
	Weight  float64 `yaml:"weight"`
	Effect  string  `yaml:"effect"`
	Amount  float64 `yaml:"amount"`
	Caliber string  `yaml:"caliber"`
	Count   int     `yaml:"count"`
}

// TemplateDef is one enemy template as written in templates.yaml.
type TemplateDef struct {
	Display     string             `yaml:"display"`
	Faction     string             `yaml:"faction"`
	Class       string             `yaml:"class"`
	SquadRole   string             `yaml:"squad_role"`
	Health      float64            `yaml:"health"`
	Weapon      *WeaponDef         `yaml:"weapon"`
	Armor       []ArmorDef         `yaml:"armor"`
	Items       []ItemDef          `yaml:"items"`
	Resistances map[string]float64 `yaml:"resistances"`
}

// Bundle is everything loaded from a data set.
type Bundle struct {
	Templates   game.Templates
	SpawnTables world.SpawnTables
}

// Load reads the embedded defaults, replacing each file that exists in
// dir. An empty dir loads only the defaults. Every spawn table entry must
// name a known template.
func Load(dir string) (*Bundle, error) {
	tplRaw, err := readFile(dir, TemplatesFile)
	if err != nil {
		return nil, err
	}
	spawnRaw, err := readFile(dir, SpawnTablesFile)
	if err != nil {
		return nil, err
	}

	tpls, err := ParseTemplates(tplRaw)
	if err != nil {
		return nil, err
	}
	tables, err := ParseSpawnTables(spawnRaw)
	if err != nil {
		return nil, err
	}
	if err := checkTables(tables, tpls); err != nil {
		return nil, err
	}
	return &Bundle{Templates: tpls, SpawnTables: tables}, nil
}

// Defaults loads the embedded data set.
func Defaults() (*Bundle, error) { return Load("") }

func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	b, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return b, nil
}

func decodeStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// ParseTemplates decodes templates.yaml content.
func ParseTemplates(raw []byte) (game.Templates, error) {
	var defs map[string]TemplateDef
	if err := decodeStrict(raw, &defs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", TemplatesFile, err)
	}
	out := make(game.Templates, len(defs))
	for name, d := range defs {
		t, err := d.build(name)
		if err != nil {
			return nil, err
		}
		out[name] = t
	}
	return out, nil
}

// ParseSpawnTables decodes spawn_tables.yaml content. Keys must be zone
// type names.
func ParseSpawnTables(raw []byte) (world.SpawnTables, error) {
	var defs map[string][]struct {
		Template string  `yaml:"template"`
		Weight   float64 `yaml:"weight"`
	}
	if err := decodeStrict(raw, &defs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", SpawnTablesFile, err)
	}
	out := make(world.SpawnTables, len(defs))
	for zt, entries := range defs {
		if _, ok := world.ParseZoneType(zt); !ok {
			return nil, fmt.Errorf("spawn table %q: unknown zone type", zt)
		}
		for _, e := range entries {
			if e.Weight <= 0 {
				return nil, fmt.Errorf("spawn table %q: %s has non-positive weight %g", zt, e.Template, e.Weight)
			}
			out[zt] = append(out[zt], world.SpawnEntry{Template: e.Template, Weight: e.Weight})
		}
	}
	return out, nil
}

func checkTables(tables world.SpawnTables, tpls game.Templates) error {
	zones := make([]string, 0, len(tables))
	for zt := range tables {
		zones = append(zones, zt)
	}
	sort.Strings(zones)
	for _, zt := range zones {
		for _, e := range tables[zt] {
			if _, err := tpls.Lookup(e.Template); err != nil {
				return fmt.Errorf("spawn table %q: %w", zt, err)
			}
		}
	}
	return nil
}

func (d TemplateDef) build(name string) (game.Template, error) {
	bad := func(format string, args ...any) (game.Template, error) {
		return game.Template{}, fmt.Errorf("%w %q: %s", ErrInvalidTemplate, name, fmt.Sprintf(format, args...))
	}
	if d.Health <= 0 {
		return bad("health must be positive")
	}
	if d.Faction == "" {
		return bad("missing faction")
	}
	t := game.Template{
		Name:      name,
		Display:   d.Display,
		Faction:   d.Faction,
		Class:     d.Class,
		SquadRole: d.SquadRole,
		Health:    d.Health,
	}
	for k, v := range d.Resistances {
		dt, ok := game.ParseDamageType(k)
		if !ok {
			return bad("unknown resistance %q", k)
		}
		if t.Resistances == nil {
			t.Resistances = map[game.DamageType]float64{}
		}
		t.Resistances[dt] = v
	}
	if w := d.Weapon; w != nil {
		dt := game.DamagePhysical
		if w.DamageType != "" {
			var ok bool
			if dt, ok = game.ParseDamageType(w.DamageType); !ok {
				return bad("unknown damage type %q", w.DamageType)
			}
		}
		t.Weapon = game.NewWeapon(w.Name, w.Weight, game.WeaponSpec{
			Damage:     w.Damage,
			Range:      w.Range,
			Accuracy:   w.Accuracy,
			Ammo:       w.MaxAmmo,
			MaxAmmo:    w.MaxAmmo,
			JamChance:  w.JamChance,
			DamageType: dt,
			Melee:      w.Melee,
			Caliber:    w.Caliber,
		})
	}
	for _, a := range d.Armor {
		slot, ok := game.ParseSlot(a.Slot)
		if !ok || slot == game.SlotWeaponPrimary || slot == game.SlotWeaponSecondary {
			return bad("armor %q has invalid slot %q", a.Name, a.Slot)
		}
		prot := make(map[game.DamageType]float64, len(a.Protection))
		for k, v := range a.Protection {
			dt, ok := game.ParseDamageType(k)
			if !ok {
				return bad("armor %q: unknown damage type %q", a.Name, k)
			}
			prot[dt] = v
		}
		t.Armor = append(t.Armor, game.NewArmor(a.Name, a.Weight, game.ArmorSpec{
			Slot:            slot,
			Protection:      prot,
			MovementPenalty: a.MovementPenalty,
		}))
	}
	for _, it := range d.Items {
		switch it.Kind {
		case "ammo":
			t.Items = append(t.Items, game.NewAmmo(it.Caliber, it.Count))
		case "consumable":
			eff, ok := consumableEffects[it.Effect]
			if !ok {
				return bad("item %q: unknown effect %q", it.Name, it.Effect)
			}
			t.Items = append(t.Items, game.NewConsumable(it.Name, it.Weight, eff, it.Amount))
		default:
			return bad("unknown item kind %q", it.Kind)
		}
	}
	return t, nil
}

var consumableEffects = map[string]game.ConsumableEffect{
	"heal":          game.EffectHeal,
	"stop_bleeding": game.EffectStopBleeding,
	"antirad":       game.EffectAntiRad,
}
