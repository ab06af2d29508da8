package game

// FireOutcome is the result of pulling the trigger.
type FireOutcome uint8

const (
	Fired FireOutcome = iota
	FireEmpty
	FireJammed
)

func (f FireOutcome) String() string {
	switch f {
	case Fired:
		return "fired"
	case FireEmpty:
		return "empty"
	case FireJammed:
		return "jammed"
	default:
		return "unknown"
	}
}

const fireWear = 0.1

// FireWeapon tries to discharge w. Empty and jammed weapons keep their ammo.
func (cm *CombatManager) FireWeapon(w *Item) FireOutcome {
	if w.Weapon.Melee {
		cm.sink.PlaySound(w.soundID("fire"))
		return Fired
	}
	if w.Weapon.Ammo <= 0 {
		cm.sink.PlaySound(w.soundID("empty"))
		return FireEmpty
	}
	jam := w.Weapon.JamChance + (1-w.Condition/100)*0.1
	if cm.rng.Float64() < jam {
		cm.sink.PlaySound(w.soundID("jam"))
		cm.Tally.Jams++
		return FireJammed
	}
	w.Weapon.Ammo--
	w.Degrade(fireWear)
	cm.sink.PlaySound(w.soundID("fire"))
	return Fired
}

// Reload loads up to offered rounds into w and returns how many went in.
func (cm *CombatManager) Reload(w *Item, offered int) int {
	n := min(w.Weapon.MaxAmmo-w.Weapon.Ammo, offered)
	if n <= 0 || w.Weapon.Melee {
		return 0
	}
	w.Weapon.Ammo += n
	cm.sink.PlaySound(w.soundID("reload"))
	return n
}

// ReloadFromInventory refills the weapon in slot s from carried ammo of
// the matching caliber.
func (cm *CombatManager) ReloadFromInventory(a *Actor, s Slot) int {
	w := a.Inventory.Weapon(s)
	if w == nil || w.Weapon.Melee {
		return 0
	}
	want := w.Weapon.MaxAmmo - w.Weapon.Ammo
	if want <= 0 {
		return 0
	}
	got := a.Inventory.TakeAmmo(w.Weapon.Caliber, want)
	return cm.Reload(w, got)
}
