package game

import (
	"fmt"
	"sort"
	"strings"
)

// RunOutcome classifies how a run ended.
type RunOutcome int

const (
	OutcomeInconclusive RunOutcome = iota // several factions still standing
	OutcomeDominated                      // one faction left alive
	OutcomeWipe                           // nobody survived
	OutcomeQuiet                          // at most one faction was ever present
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeInconclusive:
		return "inconclusive"
	case OutcomeDominated:
		return "dominated"
	case OutcomeWipe:
		return "wipe"
	case OutcomeQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// FactionCount is alive/total for one faction.
type FactionCount struct {
	Faction   string
	Survivors int
	Total     int
}

// RunReport summarises one simulation run.
type RunReport struct {
	Seed              int64
	Ticks             int
	ZoneX, ZoneY      int
	ZoneType          string
	Factions          []FactionCount
	Outcome           RunOutcome
	Winner            string
	Kills             int
	Shots             int
	Hits              int
	Jams              int
	SquadStateChanges int
	Retreats          int
	WeatherChanges    int
	FinalWeather      string
}

// HitRate is hits per shot, 0 when nothing was fired.
func (r RunReport) HitRate() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// Report builds the run report for the sim's current state.
func (s *Sim) Report() RunReport {
	z := s.Level.Zone
	r := RunReport{
		Seed:         s.Seed,
		Ticks:        s.tick,
		ZoneX:        z.Coord.X,
		ZoneY:        z.Coord.Y,
		ZoneType:     z.Type.String(),
		Kills:        s.Combat.Tally.Kills,
		Shots:        s.Combat.Tally.Shots,
		Hits:         s.Combat.Tally.Hits,
		Jams:         s.Combat.Tally.Jams,
		FinalWeather: s.Weather.Type.String(),
	}
	r.WeatherChanges = s.Weather.Changes
	for _, sq := range s.Squads {
		r.SquadStateChanges += sq.StateChanges
		r.Retreats += sq.Retreats
	}
	for _, f := range s.Factions() {
		fc := FactionCount{Faction: f}
		for _, a := range s.Level.Actors {
			if a.Faction != f {
				continue
			}
			fc.Total++
			if !a.Dead {
				fc.Survivors++
			}
		}
		r.Factions = append(r.Factions, fc)
	}
	r.Outcome, r.Winner = DetermineOutcome(r.Factions)
	return r
}

// DetermineOutcome classifies a run from its faction counts.
func DetermineOutcome(factions []FactionCount) (RunOutcome, string) {
	if len(factions) <= 1 {
		return OutcomeQuiet, ""
	}
	standing := 0
	winner := ""
	for _, f := range factions {
		if f.Survivors > 0 {
			standing++
			winner = f.Faction
		}
	}
	switch standing {
	case 0:
		return OutcomeWipe, ""
	case 1:
		return OutcomeDominated, winner
	default:
		return OutcomeInconclusive, ""
	}
}

// String renders the report as a short multi-line block.
func (r RunReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "seed=%d zone=(%d,%d) %s ticks=%d outcome=%s",
		r.Seed, r.ZoneX, r.ZoneY, r.ZoneType, r.Ticks, r.Outcome)
	if r.Winner != "" {
		fmt.Fprintf(&sb, " winner=%s", r.Winner)
	}
	sb.WriteByte('\n')
	for _, f := range r.Factions {
		fmt.Fprintf(&sb, "  %-10s %d/%d alive\n", f.Faction, f.Survivors, f.Total)
	}
	fmt.Fprintf(&sb, "  shots=%d hits=%d (%.0f%%) jams=%d kills=%d\n",
		r.Shots, r.Hits, r.HitRate()*100, r.Jams, r.Kills)
	fmt.Fprintf(&sb, "  squad changes=%d retreats=%d weather changes=%d final=%s\n",
		r.SquadStateChanges, r.Retreats, r.WeatherChanges, r.FinalWeather)
	return sb.String()
}

// Aggregate accumulates reports across runs.
type Aggregate struct {
	Runs      int
	Outcomes  map[RunOutcome]int
	Wins      map[string]int
	Survivors map[string]int
	Totals    map[string]int
	Kills     int
	Shots     int
	Hits      int
	Retreats  int
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Outcomes:  map[RunOutcome]int{},
		Wins:      map[string]int{},
		Survivors: map[string]int{},
		Totals:    map[string]int{},
	}
}

// Add folds one run into the aggregate.
func (ag *Aggregate) Add(r RunReport) {
	ag.Runs++
	ag.Outcomes[r.Outcome]++
	if r.Winner != "" {
		ag.Wins[r.Winner]++
	}
	for _, f := range r.Factions {
		ag.Survivors[f.Faction] += f.Survivors
		ag.Totals[f.Faction] += f.Total
	}
	ag.Kills += r.Kills
	ag.Shots += r.Shots
	ag.Hits += r.Hits
	ag.Retreats += r.Retreats
}

// String renders the aggregate with factions sorted by name.
func (ag *Aggregate) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runs=%d", ag.Runs)
	for _, o := range []RunOutcome{OutcomeDominated, OutcomeInconclusive, OutcomeWipe, OutcomeQuiet} {
		fmt.Fprintf(&sb, " %s=%d", o, ag.Outcomes[o])
	}
	sb.WriteByte('\n')
	factions := make([]string, 0, len(ag.Totals))
	for f := range ag.Totals {
		factions = append(factions, f)
	}
	sort.Strings(factions)
	for _, f := range factions {
		rate := 0.0
		if ag.Totals[f] > 0 {
			rate = float64(ag.Survivors[f]) / float64(ag.Totals[f])
		}
		fmt.Fprintf(&sb, "  %-10s survival=%.0f%% wins=%d\n", f, rate*100, ag.Wins[f])
	}
	hitRate := 0.0
	if ag.Shots > 0 {
		hitRate = float64(ag.Hits) / float64(ag.Shots)
	}
	fmt.Fprintf(&sb, "  kills=%d shots=%d hit rate=%.0f%% retreats=%d\n",
		ag.Kills, ag.Shots, hitRate*100, ag.Retreats)
	return sb.String()
}
