package game

import (
	"maps"
	"strings"
)

// DamageType tags how damage is delivered.
type DamageType uint8

const (
	DamagePhysical DamageType = iota
	DamageRadiation
	DamageChemical
	DamageThermal
	DamageElectric
	DamageGravity
	damageTypeCount // sentinel
)

var damageTypeNames = [damageTypeCount]string{
	"physical", "radiation", "chemical", "thermal", "electric", "gravity",
}

func (d DamageType) String() string {
	if d < damageTypeCount {
		return damageTypeNames[d]
	}
	return "unknown"
}

// ParseDamageType maps a name to its DamageType.
func ParseDamageType(s string) (DamageType, bool) {
	for i, n := range damageTypeNames {
		if n == s {
			return DamageType(i), true
		}
	}
	return DamagePhysical, false
}

// kinetic damage wears armor by the full incoming amount.
func (d DamageType) kinetic() bool {
	return d == DamagePhysical || d == DamageGravity
}

// ItemKind selects which payload of an Item is meaningful.
type ItemKind uint8

const (
	ItemWeapon ItemKind = iota
	ItemArmor
	ItemConsumable
	ItemAmmo
)

func (k ItemKind) String() string {
	switch k {
	case ItemWeapon:
		return "weapon"
	case ItemArmor:
		return "armor"
	case ItemConsumable:
		return "consumable"
	case ItemAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// WeaponSpec is the weapon payload.
type WeaponSpec struct {
	Damage     float64
	Range      float64
	Accuracy   float64
	Ammo       int
	MaxAmmo    int
	JamChance  float64
	DamageType DamageType
	Melee      bool
	Caliber    string
}

// ArmorSpec is the armor payload. Protection fractions are in [0, 1].
type ArmorSpec struct {
	Slot            Slot
	Protection      map[DamageType]float64
	MovementPenalty float64
}

// ConsumableEffect is what using a consumable does.
type ConsumableEffect uint8

const (
	EffectHeal ConsumableEffect = iota
	EffectStopBleeding
	EffectAntiRad
)

// ConsumableSpec is the consumable payload.
type ConsumableSpec struct {
	Effect ConsumableEffect
	Amount float64
}

// AmmoSpec is a box of loose rounds.
type AmmoSpec struct {
	Caliber string
	Count   int
}

// Item is anything an actor can carry. Only the payload matching Kind is used.
type Item struct {
	Kind      ItemKind
	Name      string
	Weight    float64
	Condition float64 // 0-100, weapons and armor only

	Weapon     WeaponSpec
	Armor      ArmorSpec
	Consumable ConsumableSpec
	Ammo       AmmoSpec
}

// NewWeapon returns a weapon in perfect condition.
func NewWeapon(name string, weight float64, spec WeaponSpec) *Item {
	return &Item{Kind: ItemWeapon, Name: name, Weight: weight, Condition: 100, Weapon: spec}
}

// NewArmor returns armor in perfect condition.
func NewArmor(name string, weight float64, spec ArmorSpec) *Item {
	return &Item{Kind: ItemArmor, Name: name, Weight: weight, Condition: 100, Armor: spec}
}

// NewConsumable returns a single-use item.
func NewConsumable(name string, weight float64, effect ConsumableEffect, amount float64) *Item {
	return &Item{Kind: ItemConsumable, Name: name, Weight: weight,
		Consumable: ConsumableSpec{Effect: effect, Amount: amount}}
}

// NewAmmo returns a box of count rounds.
func NewAmmo(caliber string, count int) *Item {
	return &Item{Kind: ItemAmmo, Name: caliber + " rounds", Weight: 0.01 * float64(count),
		Ammo: AmmoSpec{Caliber: caliber, Count: count}}
}

// SetCondition stores c clamped to [0, 100].
func (it *Item) SetCondition(c float64) {
	it.Condition = min(100, max(0, c))
}

// Degrade lowers the condition by amount, never below 0.
func (it *Item) Degrade(amount float64) {
	it.SetCondition(it.Condition - amount)
}

// HasAmmo reports whether a weapon can fire. Melee weapons always can.
func (it *Item) HasAmmo() bool {
	if it == nil || it.Kind != ItemWeapon {
		return false
	}
	return it.Weapon.Melee || it.Weapon.Ammo > 0
}

// EffectiveDamage is the weapon damage scaled by condition.
func (it *Item) EffectiveDamage() float64 {
	return it.Weapon.Damage * it.Condition / 100
}

// Clone returns a deep copy.
func (it *Item) Clone() *Item {
	c := *it
	if it.Armor.Protection != nil {
		c.Armor.Protection = maps.Clone(it.Armor.Protection)
	}
	return &c
}

// soundID builds the notification sound name for an item event.
func (it *Item) soundID(event string) string {
	return strings.ToLower(strings.ReplaceAll(it.Name, " ", "_")) + "_" + event
}

// CalculateProtection returns the damage left after armor of the given
// condition absorbs its share.
func CalculateProtection(armor *Item, dt DamageType, damage float64) float64 {
	if armor == nil || armor.Kind != ItemArmor {
		return damage
	}
	prot := armor.Armor.Protection[dt]
	return damage * (1 - prot*(armor.Condition/100))
}
