package game

// Hit locations. Each one is also a limb tracked in Stats.Limbs.
const (
	LocationHead     = "head"
	LocationTorso    = "torso"
	LocationLeftArm  = "left_arm"
	LocationRightArm = "right_arm"
	LocationLeftLeg  = "left_leg"
	LocationRightLeg = "right_leg"
	LocationNone     = "none"
)

// Locations lists the hit locations in sampling order.
var Locations = []string{
	LocationHead, LocationTorso,
	LocationLeftArm, LocationRightArm,
	LocationLeftLeg, LocationRightLeg,
}

const limbMax = 100.0

// Stats is the mutable physical state of an actor.
type Stats struct {
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Limbs      map[string]float64

	// Resistances scale environmental damage of a type; 0 is no resistance.
	Resistances map[DamageType]float64
}

// NewStats returns full stats with every limb at 100.
func NewStats(health, stamina float64) Stats {
	limbs := make(map[string]float64, len(Locations))
	for _, l := range Locations {
		limbs[l] = limbMax
	}
	return Stats{
		Health:      health,
		MaxHealth:   health,
		Stamina:     stamina,
		MaxStamina:  stamina,
		Limbs:       limbs,
		Resistances: map[DamageType]float64{},
	}
}

// HealthFraction is Health/MaxHealth, 0 when MaxHealth is 0.
func (s *Stats) HealthFraction() float64 {
	if s.MaxHealth <= 0 {
		return 0
	}
	return s.Health / s.MaxHealth
}

func (s *Stats) setHealth(h float64) {
	s.Health = min(s.MaxHealth, max(0, h))
}

// CombatState tracks ongoing injuries and status effects.
type CombatState struct {
	BleedingRate   float64
	RadiationLevel float64
	Effects        map[string]int // effect name -> remaining ticks
}

// Status effect names.
const (
	EffectLimping           = "limping"
	EffectArmDamage         = "arm_damage"
	EffectRadiationSickness = "radiation_sickness"
	EffectPoisoned          = "poisoned"
)
