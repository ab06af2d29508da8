package game

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/rs/zerolog"
)

// Sim is the headless tick loop over one zone. The viewer drives the same
// loop from ebiten's Update.
type Sim struct {
	Seed     int64
	Gen      *world.Generator
	Level    *Level
	Squads   []*Squad
	AIs      []*AI
	Player   *Actor
	Weather  *Weather
	Clock    *Clock
	Combat   *CombatManager
	SimLog   *SimLog
	Messages *MessageLog

	rng  *rand.Rand
	log  zerolog.Logger
	sink Notifier
	tick int

	// construction inputs
	coord          world.Coord
	zoneW, zoneH   int
	zone           *world.Zone
	templates      Templates
	spawnTables    world.SpawnTables
	weatherStart   WeatherType
	avoidAnomalies bool
	autoSquads     bool
	player         bool
	playerAI       bool
	notifiers      []Notifier
	squadOf        map[string]*Squad
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, zone, data and logging; applied first
	simOptActor                      // add actors after spawns exist
	simOptSquad                      // form squads after actors exist
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithSeed sets the world seed and the simulation RNG.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Seed = seed
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic simulation
	}}
}

// WithZoneSize sets the generated zone dimensions.
func WithZoneSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.zoneW, s.zoneH = w, h }}
}

// WithZoneCoord selects which zone of the world to simulate.
func WithZoneCoord(x, y int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.coord = world.Coord{X: x, Y: y} }}
}

// WithZone simulates a prebuilt zone instead of generating one.
func WithZone(z *world.Zone) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.zone = z
		s.coord = z.Coord
	}}
}

// WithTemplates sets the enemy templates spawns are instantiated from.
func WithTemplates(t Templates) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.templates = t }}
}

// WithSpawnTables overrides the generator's spawn tables.
func WithSpawnTables(t world.SpawnTables) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.spawnTables = t }}
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.log = l }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.SimLog = NewSimLog(v) }}
}

// WithWeather sets the starting weather.
func WithWeather(w WeatherType) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.weatherStart = w }}
}

// WithAvoidAnomalies makes squads treat nearby anomalies as danger zones.
func WithAvoidAnomalies(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.avoidAnomalies = v }}
}

// WithAutoSquads toggles grouping same-faction spawns into squads.
func WithAutoSquads(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.autoSquads = v }}
}

// WithPlayer places the player near the zone centre. With ai set the
// player is driven by the same behaviour tree as everyone else.
func WithPlayer(ai bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.player = true
		s.playerAI = ai
	}}
}

// WithNotifier adds a notification sink next to the built-in message log.
func WithNotifier(n Notifier) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.notifiers = append(s.notifiers, n) }}
}

// WithActor adds a hand-built actor.
func WithActor(a *Actor) SimOption {
	return SimOption{simOptActor, func(s *Sim) { s.Level.Add(a) }}
}

// WithSquad groups existing actors (by ID) into a squad. The first ID
// leads; the rest take the paired roles, or assault when roles run out.
func WithSquad(ids []string, roles ...string) SimOption {
	return SimOption{simOptSquad, func(s *Sim) {
		var members []*Actor
		for _, id := range ids {
			if a := s.Level.ActorByID(id); a != nil {
				members = append(members, a)
			}
		}
		if len(members) == 0 {
			return
		}
		sq := s.newSquad(members[0])
		for i, m := range members[1:] {
			role := ""
			if i < len(roles) {
				role = roles[i]
			}
			s.join(sq, m, role)
		}
	}}
}

// NewSim constructs a Sim from the given options in three ordered passes:
//  1. Infrastructure (seed, zone, templates, logging)
//  2. Zone generation and spawns, then hand-added actors
//  3. Squads, explicit first, then automatic grouping
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		Seed:       1,
		SimLog:     NewSimLog(false),
		Messages:   NewMessageLog(),
		Clock:      NewClock(),
		rng:        rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic default
		log:        zerolog.Nop(),
		zoneW:      world.DefaultZoneWidth,
		zoneH:      world.DefaultZoneHeight,
		autoSquads: true,
		squadOf:    map[string]*Squad{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}

	z := s.zone
	if z == nil {
		gopts := []world.Option{world.WithZoneSize(s.zoneW, s.zoneH), world.WithLogger(s.log)}
		if s.spawnTables != nil {
			gopts = append(gopts, world.WithSpawnTables(s.spawnTables))
		}
		s.Gen = world.NewGenerator(s.Seed, gopts...)
		z = s.Gen.Zone(s.coord.X, s.coord.Y)
	}
	s.Level = NewLevel(z)

	spawned, err := s.spawn(z)
	if err != nil {
		return nil, err
	}
	if s.player {
		p, err := z.FindSpawn(z.Width/2, z.Height/2)
		if err != nil {
			return nil, fmt.Errorf("place player: %w", err)
		}
		s.Player = NewPlayer(p.X, p.Y)
		s.Level.Add(s.Player)
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(s)
		}
	}
	for _, o := range opts {
		if o.kind == simOptSquad {
			o.fn(s)
		}
	}
	if s.autoSquads {
		s.groupSquads(spawned)
	}

	s.sink = MultiNotifier(append([]Notifier{s.Messages}, s.notifiers...))
	s.Combat = NewCombatManager(s.rng.Int63(), s.sink)
	s.Combat.SetLogger(s.log)
	s.Combat.SetEventLog(s.SimLog)
	s.Weather = NewWeather(s.weatherStart, s.rng.Int63(), s.sink)

	for _, a := range s.Level.Actors {
		if a == s.Player && !s.playerAI {
			continue
		}
		ai := NewAI(a)
		if sq := s.squadOf[a.ID]; sq != nil {
			sq.BindMemory(a, &ai.Memory)
		}
		s.AIs = append(s.AIs, ai)
	}
	s.log.Info().
		Int("x", z.Coord.X).Int("y", z.Coord.Y).
		Stringer("type", z.Type).
		Int("actors", len(s.Level.Actors)).
		Int("squads", len(s.Squads)).
		Msg("sim ready")
	return s, nil
}

func (s *Sim) spawn(z *world.Zone) ([]*Actor, error) {
	var out []*Actor
	for i, sp := range z.Spawns {
		t, err := s.templates.Lookup(sp.Template)
		if err != nil {
			return nil, fmt.Errorf("spawn %d in zone (%d,%d): %w", i, z.Coord.X, z.Coord.Y, err)
		}
		a := t.Instantiate(ActorID(z.Coord, i), sp.Pos.X, sp.Pos.Y, sp.Difficulty)
		a.Name = fmt.Sprintf("%s-%d", a.Name, i)
		s.Level.Add(a)
		out = append(out, a)
	}
	return out, nil
}

func (s *Sim) newSquad(leader *Actor) *Squad {
	sq := NewSquad(len(s.Squads), leader)
	sq.AvoidAnomalies = s.avoidAnomalies
	sq.SetLogger(s.log)
	s.Squads = append(s.Squads, sq)
	s.squadOf[leader.ID] = sq
	return sq
}

func (s *Sim) join(sq *Squad, a *Actor, role string) {
	sq.AddMember(a, role)
	s.squadOf[a.ID] = sq
}

// groupSquads forms one squad per faction with two or more unsquadded
// spawns. The first spawn leads.
func (s *Sim) groupSquads(spawned []*Actor) {
	byFaction := map[string][]*Actor{}
	var order []string
	for _, a := range spawned {
		if s.squadOf[a.ID] != nil {
			continue
		}
		if _, ok := byFaction[a.Faction]; !ok {
			order = append(order, a.Faction)
		}
		byFaction[a.Faction] = append(byFaction[a.Faction], a)
	}
	for _, f := range order {
		members := byFaction[f]
		if len(members) < 2 {
			continue
		}
		sq := s.newSquad(members[0])
		for _, m := range members[1:] {
			role := ""
			if t, ok := s.templates[m.Kind]; ok {
				role = t.SquadRole
			}
			s.join(sq, m, role)
		}
	}
}

// SquadOf returns a's squad, or nil.
func (s *Sim) SquadOf(a *Actor) *Squad { return s.squadOf[a.ID] }

// AIFor returns the AI driving a, or nil.
func (s *Sim) AIFor(a *Actor) *AI {
	for _, ai := range s.AIs {
		if ai.Actor == a {
			return ai
		}
	}
	return nil
}

// CurrentTick returns the current simulation tick.
func (s *Sim) CurrentTick() int { return s.tick }

// Zone is the simulated zone.
func (s *Sim) Zone() *world.Zone { return s.Level.Zone }

// Tick advances the simulation by one tick: squads, actor AI, environment,
// then weather and time.
func (s *Sim) Tick() {
	s.tick++
	tick := s.tick
	s.Combat.SetTick(tick)

	for _, sq := range s.Squads {
		prev := sq.State
		sq.Update(tick, s.Level)
		if sq.State != prev {
			s.SimLog.Add(tick, sq.Leader.Name, sq.Faction, "squad", "state_change",
				fmt.Sprintf("%s → %s", prev, sq.State), sq.AverageHealth())
		}
	}

	effects := s.Weather.Effects()
	light := s.Clock.Light()
	for _, ai := range s.AIs {
		a := ai.Actor
		if a.Dead {
			continue
		}
		ctx := &AIContext{
			Level:   s.Level,
			Terrain: s.Level.Zone,
			Weather: s.Weather.Type,
			Effects: effects,
			Light:   light,
			Combat:  s.Combat,
			Rng:     s.rng,
			Tick:    tick,
			Log:     s.log,
		}
		if sq := s.squadOf[a.ID]; sq != nil {
			ctx.Squad = sq.MemberContext(a, s.Level)
		}
		ai.Update(ctx)
		s.SimLog.AddVerbose(tick, a.Name, a.Faction, "move", "position",
			fmt.Sprintf("(%d,%d)", a.X, a.Y), 0)
		s.SimLog.AddVerbose(tick, a.Name, a.Faction, "stats", "health",
			fmt.Sprintf("%.1f", a.Stats.Health), a.Stats.Health)
	}

	s.Combat.StepEnvironment(s.Level, s.Weather.Type, effects, tick)

	prevWeather := s.Weather.Type
	s.Weather.Update(tick)
	if s.Weather.Type != prevWeather {
		s.SimLog.Add(tick, "--", "--", "weather", "change",
			fmt.Sprintf("%s → %s", prevWeather, s.Weather.Type), 0)
		s.log.Info().Stringer("weather", s.Weather.Type).Int("tick", tick).Msg("weather changed")
	}
	s.Clock.Advance()
}

// RunTicks advances the simulation n ticks.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Tick()
		if predicate(s) {
			return s.tick
		}
	}
	return -1
}

// Factions returns the factions present, in first-seen order.
func (s *Sim) Factions() []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range s.Level.Actors {
		if !seen[a.Faction] {
			seen[a.Faction] = true
			out = append(out, a.Faction)
		}
	}
	return out
}
