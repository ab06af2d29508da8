package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// locationWeight is the cumulative hit-location distribution.
var locationWeight = []struct {
	loc string
	cum float64
}{
	{LocationHead, 0.10},
	{LocationTorso, 0.50},
	{LocationLeftArm, 0.625},
	{LocationRightArm, 0.75},
	{LocationLeftLeg, 0.875},
	{LocationRightLeg, 1.0},
}

// LocationMultiplier is the damage multiplier for a hit location.
func LocationMultiplier(loc string) float64 {
	switch loc {
	case LocationHead:
		return 4.0
	case LocationTorso:
		return 1.0
	case LocationLeftArm, LocationRightArm:
		return 0.7
	case LocationLeftLeg, LocationRightLeg:
		return 0.6
	default:
		return 0
	}
}

// ShotResult is the outcome of a ballistics roll.
type ShotResult struct {
	Hit        bool
	Location   string
	Multiplier float64
}

var missed = ShotResult{Hit: false, Location: LocationNone, Multiplier: 0}

// CombatTally counts combat events for run reports.
type CombatTally struct {
	Shots int
	Hits  int
	Kills int
	Jams  int
}

// CombatManager resolves shots, damage and weapon handling. All randomness
// comes from its own stream so a run is reproducible from its seed.
type CombatManager struct {
	rng  *rand.Rand
	sink Notifier
	log  zerolog.Logger

	events *SimLog
	tick   int

	Tally CombatTally
}

// NewCombatManager creates a combat manager seeded with seed. A nil sink
// discards notifications.
func NewCombatManager(seed int64, sink Notifier) *CombatManager {
	if sink == nil {
		sink = nopNotifier{}
	}
	return &CombatManager{
		rng:  rand.New(rand.NewSource(seed)), // #nosec G404 -- deterministic simulation
		sink: sink,
		log:  zerolog.Nop(),
	}
}

// SetLogger sets the debug logger.
func (cm *CombatManager) SetLogger(l zerolog.Logger) { cm.log = l }

// SetEventLog routes combat events into sl, stamped with the tick set by
// SetTick.
func (cm *CombatManager) SetEventLog(sl *SimLog) { cm.events = sl }

// SetTick stamps subsequent events.
func (cm *CombatManager) SetTick(tick int) { cm.tick = tick }

func (cm *CombatManager) event(a *Actor, key, value string, num float64) {
	if cm.events == nil {
		return
	}
	cm.events.Add(cm.tick, a.Name, a.Faction, "combat", key, value, num)
}

// CalculateShot rolls whether shooter hits target with weapon, where, and
// how hard. Targets beyond weapon range are never hit.
func (cm *CombatManager) CalculateShot(shooter, target *Actor, weapon *Item) ShotResult {
	d := shooter.Distance(target)
	r := weapon.Weapon.Range
	if d > r || r <= 0 {
		return missed
	}
	if cm.rng.Float64() >= weapon.Weapon.Accuracy {
		return missed
	}
	roll := cm.rng.Float64()
	loc := LocationRightLeg
	for _, lw := range locationWeight {
		if roll < lw.cum {
			loc = lw.loc
			break
		}
	}
	falloff := 1.0 - (d/r)*0.5
	return ShotResult{Hit: true, Location: loc, Multiplier: LocationMultiplier(loc) * falloff}
}
