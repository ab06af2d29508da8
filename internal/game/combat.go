package game

import "fmt"

// AttackOutcome summarises an attack.
type AttackOutcome uint8

const (
	AttackNoWeapon AttackOutcome = iota
	AttackEmpty
	AttackJammed
	AttackMissed
	AttackHit
)

func (o AttackOutcome) String() string {
	switch o {
	case AttackNoWeapon:
		return "no_weapon"
	case AttackEmpty:
		return "empty"
	case AttackJammed:
		return "jammed"
	case AttackMissed:
		return "missed"
	case AttackHit:
		return "hit"
	default:
		return "unknown"
	}
}

// AttackResult is everything that happened in one attack.
type AttackResult struct {
	Outcome  AttackOutcome
	Location string
	Damage   float64
	Report   DamageReport
}

// Attack fires shooter's weapon in slot at target and applies the damage.
func (cm *CombatManager) Attack(shooter, target *Actor, slot Slot) AttackResult {
	w := shooter.Inventory.Weapon(slot)
	if w == nil {
		return AttackResult{Outcome: AttackNoWeapon, Location: LocationNone}
	}
	cond := w.Condition

	switch cm.FireWeapon(w) {
	case FireEmpty:
		return AttackResult{Outcome: AttackEmpty, Location: LocationNone}
	case FireJammed:
		cm.event(shooter, "jam", w.Name, 0)
		return AttackResult{Outcome: AttackJammed, Location: LocationNone}
	}
	cm.Tally.Shots++

	shot := cm.CalculateShot(shooter, target, w)
	if !shot.Hit {
		cm.event(shooter, "miss", target.Name, shooter.Distance(target))
		return AttackResult{Outcome: AttackMissed, Location: LocationNone}
	}
	cm.Tally.Hits++

	dmg := w.Weapon.Damage * cond / 100 * shot.Multiplier
	rep := cm.ApplyDamage(target, dmg, w.Weapon.DamageType, shot.Location)
	cm.event(shooter, "hit", fmt.Sprintf("%s %s", target.Name, shot.Location), rep.Dealt)
	cm.log.Debug().
		Str("shooter", shooter.Name).
		Str("target", target.Name).
		Str("location", shot.Location).
		Float64("damage", rep.Dealt).
		Msg("hit")

	if rep.Killed {
		cm.Tally.Kills++
		cm.event(target, "killed", shooter.Name, 0)
		cm.sink.AddMessage(fmt.Sprintf("%s killed %s", shooter.Name, target.Name), ColourDanger)
	}
	return AttackResult{Outcome: AttackHit, Location: shot.Location, Damage: dmg, Report: rep}
}
