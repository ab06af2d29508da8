package game

import (
	"sort"

	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/rs/zerolog"
)

// SquadState is the squad-wide posture.
type SquadState uint8

const (
	SquadPatrol SquadState = iota
	SquadCombat
	SquadRetreat
)

func (s SquadState) String() string {
	switch s {
	case SquadPatrol:
		return "patrol"
	case SquadCombat:
		return "combat"
	case SquadRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

const (
	sightingTTL        = 100
	retreatHealthRatio = 0.3
	outnumberFactor    = 2
	dangerRadius       = 3
)

// Vec2 is a fractional grid position.
type Vec2 struct{ X, Y float64 }

// Sighting is an enemy position reported by one member.
type Sighting struct {
	Pos  world.Point
	Tick int
}

// SharedMemory is what a squad knows collectively.
type SharedMemory struct {
	KnownEnemies    map[string]int      // enemy ID -> tick last reported
	LastKnown       map[string]Sighting // member ID -> latest report
	DangerZones     map[world.Point]bool
	StrategicPoints []world.Point
}

func newSharedMemory() SharedMemory {
	return SharedMemory{
		KnownEnemies: map[string]int{},
		LastKnown:    map[string]Sighting{},
		DangerZones:  map[world.Point]bool{},
	}
}

// Squad groups actors of one faction under a leader.
type Squad struct {
	ID      int
	Faction string
	Leader  *Actor
	Members []*Actor // leader first
	Roles   map[string]Role
	Center  Vec2
	State   SquadState
	Shared  SharedMemory

	// AvoidAnomalies marks anomaly tiles near members as danger zones.
	AvoidAnomalies bool

	memories map[string]*Memory
	log      zerolog.Logger

	// Telemetry.
	StateChanges int
	Retreats     int
}

// NewSquad creates a squad led by leader.
func NewSquad(id int, leader *Actor) *Squad {
	sq := &Squad{
		ID:       id,
		Faction:  leader.Faction,
		Leader:   leader,
		Members:  []*Actor{leader},
		Roles:    map[string]Role{leader.ID: LeaderRole()},
		Center:   Vec2{float64(leader.X), float64(leader.Y)},
		State:    SquadPatrol,
		Shared:   newSharedMemory(),
		memories: map[string]*Memory{},
		log:      zerolog.Nop(),
	}
	return sq
}

// SetLogger sets the debug logger for state changes.
func (sq *Squad) SetLogger(l zerolog.Logger) {
	sq.log = l.With().Int("squad", sq.ID).Str("faction", sq.Faction).Logger()
}

// AddMember adds a with the named role. Unknown names fall back to assault.
func (sq *Squad) AddMember(a *Actor, roleName string) {
	sq.Members = append(sq.Members, a)
	sq.Roles[a.ID] = RoleFor(roleName)
}

// BindMemory lets the squad read a member's AI memory when sharing.
func (sq *Squad) BindMemory(a *Actor, m *Memory) {
	sq.memories[a.ID] = m
}

// Has reports whether a is a member.
func (sq *Squad) Has(a *Actor) bool {
	_, ok := sq.Roles[a.ID]
	return ok
}

// Role returns a member's role.
func (sq *Squad) Role(a *Actor) Role { return sq.Roles[a.ID] }

// AliveMembers returns the living members in order.
func (sq *Squad) AliveMembers() []*Actor {
	out := make([]*Actor, 0, len(sq.Members))
	for _, m := range sq.Members {
		if !m.Dead {
			out = append(out, m)
		}
	}
	return out
}

// AverageHealth is the mean health fraction over every member.
func (sq *Squad) AverageHealth() float64 {
	if len(sq.Members) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range sq.Members {
		sum += m.Stats.HealthFraction()
	}
	return sum / float64(len(sq.Members))
}

// Update runs once per tick before member AI.
func (sq *Squad) Update(tick int, level *Level) {
	sq.updateState()
	sq.updateCenter()
	sq.share(tick, level)
	if level != nil && level.Zone != nil {
		sq.updateDangerZones(level.Zone)
		sq.updateStrategicPoints(level.Zone)
	}
}

func (sq *Squad) updateState() {
	next := SquadPatrol
	switch {
	case sq.AverageHealth() < retreatHealthRatio ||
		len(sq.Shared.KnownEnemies) > outnumberFactor*len(sq.Members):
		next = SquadRetreat
	case len(sq.Shared.KnownEnemies) > 0:
		next = SquadCombat
	}
	if next == sq.State {
		return
	}
	sq.log.Debug().Stringer("from", sq.State).Stringer("to", next).Msg("squad state")
	sq.State = next
	sq.StateChanges++
	if next == SquadRetreat {
		sq.Retreats++
	}
}

func (sq *Squad) updateCenter() {
	if sq.State == SquadPatrol || len(sq.Members) == 0 {
		sq.Center = Vec2{float64(sq.Leader.X), float64(sq.Leader.Y)}
		return
	}
	var sx, sy float64
	for _, m := range sq.Members {
		sx += float64(m.X)
		sy += float64(m.Y)
	}
	n := float64(len(sq.Members))
	sq.Center = Vec2{sx / n, sy / n}
}

func (sq *Squad) share(tick int, level *Level) {
	for _, m := range sq.Members {
		mem := sq.memories[m.ID]
		if mem == nil {
			continue
		}
		if mem.LastKnownEnemy != nil {
			sq.Shared.LastKnown[m.ID] = Sighting{Pos: *mem.LastKnownEnemy, Tick: tick}
		}
		if mem.LastSeenEnemyID != "" {
			sq.Shared.KnownEnemies[mem.LastSeenEnemyID] = tick
		}
	}
	for id, s := range sq.Shared.LastKnown {
		if tick-s.Tick >= sightingTTL {
			delete(sq.Shared.LastKnown, id)
		}
	}
	for id, seen := range sq.Shared.KnownEnemies {
		if tick-seen >= sightingTTL {
			delete(sq.Shared.KnownEnemies, id)
			continue
		}
		if level == nil {
			continue
		}
		if e := level.ActorByID(id); e == nil || e.Dead {
			delete(sq.Shared.KnownEnemies, id)
		}
	}
}

func (sq *Squad) updateDangerZones(z *world.Zone) {
	if !sq.AvoidAnomalies {
		return
	}
	for _, m := range sq.AliveMembers() {
		for _, an := range z.Anomalies {
			if max(abs(an.Pos.X-m.X), abs(an.Pos.Y-m.Y)) <= dangerRadius {
				sq.Shared.DangerZones[an.Pos] = true
			}
		}
	}
}

func (sq *Squad) updateStrategicPoints(z *world.Zone) {
	sq.Shared.StrategicPoints = sq.Shared.StrategicPoints[:0]
	for _, d := range world.Directions {
		if p, ok := z.Connections[d]; ok {
			sq.Shared.StrategicPoints = append(sq.Shared.StrategicPoints, p)
		}
	}
}

// SquadContext is the squad's view handed to one member's AI each tick.
type SquadContext struct {
	Role      Role
	State     SquadState
	Center    Vec2
	LeaderPos world.Point
	Allies    []*Actor // nearest first
	Shared    *SharedMemory

	// Only filled in combat.
	SupportPositions []world.Point
	FlankPositions   []world.Point
}

// MemberContext builds the squad context for member.
func (sq *Squad) MemberContext(member *Actor, level *Level) *SquadContext {
	ctx := &SquadContext{
		Role:      sq.Roles[member.ID],
		State:     sq.State,
		Center:    sq.Center,
		LeaderPos: sq.Leader.Pos(),
		Allies:    sq.nearestAllies(member),
		Shared:    &sq.Shared,
	}
	if sq.State == SquadCombat && level != nil && level.Zone != nil {
		ctx.SupportPositions = sq.supportPositions(member, level.Zone)
		ctx.FlankPositions = sq.flankPositions(level.Zone)
	}
	return ctx
}

func (sq *Squad) nearestAllies(member *Actor) []*Actor {
	var allies []*Actor
	for _, m := range sq.Members {
		if m != member && !m.Dead {
			allies = append(allies, m)
		}
	}
	sort.SliceStable(allies, func(i, j int) bool {
		return member.Distance(allies[i]) < member.Distance(allies[j])
	})
	return allies
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
