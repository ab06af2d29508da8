package game

import "github.com/Garsondee/Zone-Sense/internal/world"

const (
	hazardInterval      = 10
	surgeHazardInterval = 5
	radiationDamage     = 5.0
	anomalyDamage       = 10.0
)

// AnomalyDamageType maps an anomaly to the damage it deals.
func AnomalyDamageType(t world.AnomalyType) DamageType {
	switch t {
	case world.AnomalyThermal:
		return DamageThermal
	case world.AnomalyGravity:
		return DamageGravity
	case world.AnomalyChemical:
		return DamageChemical
	case world.AnomalyElectric:
		return DamageElectric
	default:
		return DamagePhysical
	}
}

func resisted(a *Actor, dt DamageType, dmg float64) float64 {
	return dmg * (1 - min(1, max(0, a.Stats.Resistances[dt])))
}

// hazardTick reports whether hazards apply on tick.
func hazardTick(wt WeatherType, tick int) bool {
	if wt.surge() {
		return tick%surgeHazardInterval == 0
	}
	return tick%hazardInterval == 0
}

// StepEnvironment applies one tick of stamina regeneration, status effects
// and, on hazard ticks, radiation and anomaly damage to every living actor.
func (cm *CombatManager) StepEnvironment(level *Level, wt WeatherType, e WeatherEffects, tick int) {
	hazards := hazardTick(wt, tick)
	for _, a := range level.Actors {
		if a.Dead {
			continue
		}
		a.Regenerate()
		cm.UpdateEffects(a)
		if a.Dead || !hazards || level.Zone == nil {
			continue
		}
		cm.applyHazards(a, level.Zone, e)
	}
}

func (cm *CombatManager) applyHazards(a *Actor, z *world.Zone, e WeatherEffects) {
	if e.Radiation > 0 {
		cm.irradiate(a, resisted(a, DamageRadiation, e.Radiation*radiationDamage))
	}
	props := z.TileProperties(a.X, a.Y)
	if props.Radiation > 0 {
		a.Combat.RadiationLevel += props.Radiation
		if dmg := resisted(a, DamageRadiation, props.Radiation*e.Radiation*radiationDamage); dmg > 0 {
			cm.irradiate(a, dmg)
		}
	}
	if props.Anomaly != world.AnomalyNone && !a.Dead {
		dt := AnomalyDamageType(props.Anomaly)
		dmg := resisted(a, dt, props.Danger*e.AnomalyStrength*anomalyDamage)
		rep := cm.ApplyDamage(a, dmg, dt, LocationTorso)
		cm.event(a, "anomaly", props.Anomaly.String(), rep.Dealt)
		if rep.Killed {
			cm.event(a, "died", props.Anomaly.String()+" anomaly", 0)
			cm.sink.AddMessage(a.Name+" was killed by an anomaly", ColourDanger)
		}
	}
}

// irradiate applies radiation damage straight to health; armor does not
// stop ambient radiation.
func (cm *CombatManager) irradiate(a *Actor, dmg float64) {
	if dmg <= 0 || a.Dead {
		return
	}
	a.Stats.setHealth(a.Stats.Health - dmg)
	if a.Stats.Health <= 0 {
		a.Dead = true
		cm.event(a, "died", "radiation", 0)
	}
}
