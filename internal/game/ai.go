package game

import (
	"math/rand"

	"github.com/Garsondee/Zone-Sense/internal/bt"
	"github.com/rs/zerolog"
)

// AIContext is rebuilt every tick and handed to the behaviour tree.
type AIContext struct {
	Actor   *Actor
	Memory  *Memory
	Level   *Level
	Terrain Terrain
	Weather WeatherType
	Effects WeatherEffects
	Light   float64
	Squad   *SquadContext // nil when solo
	Combat  *CombatManager
	Rng     *rand.Rand
	Tick    int
	Log     zerolog.Logger

	// enemy is the target chosen by the visibility check this tick.
	enemy *Actor
}

// AI is one actor's brain: a behaviour tree plus its memory.
type AI struct {
	Actor  *Actor
	Memory Memory
	Tree   *bt.Node[*AIContext]

	// Last is the status of the most recent tick.
	Last bt.Status
}

// NewAI builds the standard stalker tree for a.
func NewAI(a *Actor) *AI {
	return &AI{Actor: a, Tree: newStalkerTree()}
}

// Update ticks the tree once. ctx.Actor and ctx.Memory are filled in from
// the AI.
func (ai *AI) Update(ctx *AIContext) bt.Status {
	if ai.Actor.Dead {
		return bt.Failure
	}
	ctx.Actor = ai.Actor
	ctx.Memory = &ai.Memory
	ctx.enemy = nil
	if ctx.Terrain == nil && ctx.Level != nil && ctx.Level.Zone != nil {
		ctx.Terrain = ctx.Level.Zone
	}

	// The root is a priority list: it is re-evaluated from the top every
	// tick. A branch that was running and lost priority starts over at its
	// guard the next time it is chosen.
	prev := -1
	if ai.Last == bt.Running {
		prev = ai.Tree.Cursor()
	}
	ai.Tree.Rewind()
	ai.Last = ai.Tree.Tick(ctx)
	if prev >= 0 && (ai.Last != bt.Running || ai.Tree.Cursor() != prev) {
		ai.Tree.Children[prev].Reset()
	}
	return ai.Last
}

func newStalkerTree() *bt.Node[*AIContext] {
	return bt.Selector("root",
		bt.Sequence("shelter",
			bt.Condition("dangerous_weather", dangerousWeather),
			bt.Selector("get_to_shelter",
				bt.Sequence("use_known_shelter",
					bt.Condition("has_shelter", hasShelter),
					bt.Action("move_to_shelter", moveToShelter),
				),
				bt.Action("find_shelter", findShelter),
			),
		),
		bt.Sequence("combat",
			bt.Condition("can_see_enemy", canSeeEnemy),
			bt.Selector("engage",
				bt.Sequence("fall_back",
					bt.Condition("low_health", lowHealth),
					bt.Action("retreat", retreat),
				),
				bt.Sequence("shoot",
					bt.Condition("good_shot", goodShot),
					bt.Action("attack", attack),
				),
				bt.Action("take_cover", takeCover),
			),
		),
		bt.Sequence("search",
			bt.Condition("has_last_known", hasLastKnown),
			bt.Action("search_area", searchArea),
		),
		bt.Sequence("patrol",
			bt.Condition("no_enemy_memory", noEnemyMemory),
			bt.Action("patrol", patrol),
		),
	)
}
