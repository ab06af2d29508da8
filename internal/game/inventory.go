package game

import "errors"

var (
	ErrInventoryFull = errors.New("inventory full")
	ErrTooHeavy      = errors.New("item too heavy to carry")
	ErrInvalidSlot   = errors.New("item cannot be equipped in that slot")
	ErrNotCarried    = errors.New("item not in inventory")
	ErrNotConsumable = errors.New("item is not consumable")
)

// Slot is an equipment slot.
type Slot uint8

const (
	SlotWeaponPrimary Slot = iota
	SlotWeaponSecondary
	SlotHead
	SlotTorso
	SlotLegs
)

// Slots lists every equipment slot.
var Slots = []Slot{SlotWeaponPrimary, SlotWeaponSecondary, SlotHead, SlotTorso, SlotLegs}

func (s Slot) String() string {
	switch s {
	case SlotWeaponPrimary:
		return "weapon_primary"
	case SlotWeaponSecondary:
		return "weapon_secondary"
	case SlotHead:
		return "head"
	case SlotTorso:
		return "torso"
	case SlotLegs:
		return "legs"
	default:
		return "unknown"
	}
}

// ParseSlot maps a name to its Slot.
func ParseSlot(name string) (Slot, bool) {
	for _, s := range Slots {
		if s.String() == name {
			return s, true
		}
	}
	return SlotTorso, false
}

const (
	DefaultCapacity  = 20
	DefaultMaxWeight = 50.0
)

// Inventory holds equipped items and a bounded list of carried ones.
type Inventory struct {
	Equipped  map[Slot]*Item
	Items     []*Item
	Capacity  int
	MaxWeight float64
}

// NewInventory returns an empty inventory with default limits.
func NewInventory() *Inventory {
	return &Inventory{
		Equipped:  map[Slot]*Item{},
		Capacity:  DefaultCapacity,
		MaxWeight: DefaultMaxWeight,
	}
}

// Weight is the total weight of carried, unequipped items.
func (inv *Inventory) Weight() float64 {
	w := 0.0
	for _, it := range inv.Items {
		w += it.Weight
	}
	return w
}

// AddItem puts it in the bag if count and weight limits allow.
func (inv *Inventory) AddItem(it *Item) error {
	if len(inv.Items) >= inv.Capacity {
		return ErrInventoryFull
	}
	if inv.Weight()+it.Weight > inv.MaxWeight {
		return ErrTooHeavy
	}
	inv.Items = append(inv.Items, it)
	return nil
}

// RemoveItem takes it out of the bag.
func (inv *Inventory) RemoveItem(it *Item) bool {
	for i, c := range inv.Items {
		if c == it {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

func validSlot(it *Item, s Slot) bool {
	switch it.Kind {
	case ItemWeapon:
		return s == SlotWeaponPrimary || s == SlotWeaponSecondary
	case ItemArmor:
		return it.Armor.Slot == s
	default:
		return false
	}
}

// Equip moves it into slot s. Whatever was there goes back into the bag.
func (inv *Inventory) Equip(it *Item, s Slot) error {
	if !validSlot(it, s) {
		return ErrInvalidSlot
	}
	carried := inv.RemoveItem(it)
	if prev := inv.Equipped[s]; prev != nil {
		if len(inv.Items) >= inv.Capacity {
			if carried {
				inv.Items = append(inv.Items, it)
			}
			return ErrInventoryFull
		}
		inv.Items = append(inv.Items, prev)
	}
	inv.Equipped[s] = it
	return nil
}

// Unequip moves the item in slot s back into the bag.
func (inv *Inventory) Unequip(s Slot) error {
	it := inv.Equipped[s]
	if it == nil {
		return nil
	}
	if len(inv.Items) >= inv.Capacity {
		return ErrInventoryFull
	}
	delete(inv.Equipped, s)
	inv.Items = append(inv.Items, it)
	return nil
}

// Weapon returns the weapon in s, or nil.
func (inv *Inventory) Weapon(s Slot) *Item {
	it := inv.Equipped[s]
	if it == nil || it.Kind != ItemWeapon {
		return nil
	}
	return it
}

// ArmorFor returns the armor covering a hit location, or nil.
func (inv *Inventory) ArmorFor(loc string) *Item {
	var s Slot
	switch loc {
	case LocationHead:
		s = SlotHead
	case LocationTorso, LocationLeftArm, LocationRightArm:
		s = SlotTorso
	case LocationLeftLeg, LocationRightLeg:
		s = SlotLegs
	default:
		return nil
	}
	it := inv.Equipped[s]
	if it == nil || it.Kind != ItemArmor {
		return nil
	}
	return it
}

// MovementPenalty sums the movement penalty of torso and leg armor.
func (inv *Inventory) MovementPenalty() float64 {
	p := 0.0
	for _, s := range []Slot{SlotTorso, SlotLegs} {
		if it := inv.Equipped[s]; it != nil && it.Kind == ItemArmor {
			p += it.Armor.MovementPenalty
		}
	}
	return p
}

// TakeAmmo removes up to n rounds of caliber from carried ammo boxes.
func (inv *Inventory) TakeAmmo(caliber string, n int) int {
	taken := 0
	for i := 0; i < len(inv.Items) && taken < n; {
		it := inv.Items[i]
		if it.Kind != ItemAmmo || it.Ammo.Caliber != caliber {
			i++
			continue
		}
		k := min(n-taken, it.Ammo.Count)
		it.Ammo.Count -= k
		it.Weight = 0.01 * float64(it.Ammo.Count)
		taken += k
		if it.Ammo.Count == 0 {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			continue
		}
		i++
	}
	return taken
}
