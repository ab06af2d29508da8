package game

import "math"

// DamageReport describes what a single application of damage did.
type DamageReport struct {
	Raw      float64
	Dealt    float64
	Location string
	Type     DamageType
	Armor    *Item
	Wear     float64
	Effects  []string
	Bleeding float64 // added bleeding rate, 0 if none
	Killed   bool
}

// ApplyDamage runs damage of type dt at location loc through the armor
// covering it and onto target's health and limbs.
func (cm *CombatManager) ApplyDamage(target *Actor, dmg float64, dt DamageType, loc string) DamageReport {
	rep := DamageReport{Raw: dmg, Location: loc, Type: dt}
	if target.Dead || dmg <= 0 {
		return rep
	}

	after := dmg
	if armor := target.Inventory.ArmorFor(loc); armor != nil {
		after = CalculateProtection(armor, dt, dmg)
		wear := after
		if dt.kinetic() {
			wear = dmg
		}
		wear = math.Floor(wear)
		armor.Degrade(wear)
		rep.Armor = armor
		rep.Wear = wear
	}
	rep.Dealt = after

	target.Stats.setHealth(target.Stats.Health - after)
	if lh, ok := target.Stats.Limbs[loc]; ok {
		target.Stats.Limbs[loc] = max(0, lh-after)
	}

	cm.applyEffects(target, after, dt, loc, &rep)

	if target.Stats.Health <= 0 && !target.Dead {
		target.Dead = true
		rep.Killed = true
	}
	return rep
}

func (cm *CombatManager) applyEffects(target *Actor, dmg float64, dt DamageType, loc string, rep *DamageReport) {
	add := func(name string, ticks int) {
		if ticks <= 0 {
			return
		}
		target.Combat.Effects[name] = ticks
		rep.Effects = append(rep.Effects, name)
	}
	switch dt {
	case DamagePhysical:
		switch loc {
		case LocationLeftLeg, LocationRightLeg:
			if dmg > 20 {
				add(EffectLimping, int(math.Floor(dmg)))
			}
		case LocationLeftArm, LocationRightArm:
			if dmg > 15 {
				add(EffectArmDamage, int(math.Floor(dmg)))
			}
		}
		if dmg > 10 {
			chance := min(0.8, dmg/100)
			if cm.rng.Float64() < chance {
				rep.Bleeding = dmg * 0.05
				target.Combat.BleedingRate += rep.Bleeding
			}
		}
	case DamageRadiation:
		add(EffectRadiationSickness, int(math.Floor(dmg*2)))
	case DamageChemical:
		add(EffectPoisoned, int(math.Floor(dmg*1.5)))
	}
}

// UpdateEffects advances bleeding and status effects by one tick and
// returns the bleeding damage dealt.
func (cm *CombatManager) UpdateEffects(a *Actor) float64 {
	bleed := a.Combat.BleedingRate
	if bleed > 0 {
		a.Stats.setHealth(a.Stats.Health - bleed)
		a.Combat.BleedingRate = max(0, bleed-0.1)
		if a.Stats.Health <= 0 && !a.Dead {
			a.Dead = true
			cm.event(a, "died", "bled out", 0)
		}
	}
	for name, left := range a.Combat.Effects {
		if left-1 <= 0 {
			delete(a.Combat.Effects, name)
			continue
		}
		a.Combat.Effects[name] = left - 1
	}
	return bleed
}
