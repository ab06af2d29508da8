package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded event during a simulation.
type SimLogEntry struct {
	Tick     int
	Actor    string  // actor name, or "--" for global events
	Faction  string  // faction, or "--"
	Category string  // combat, squad, weather, move, stats
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric payload
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] Bandit     combat    hit              Loner torso
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-10s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog is the unbounded, machine-readable event record of a run. The
// recorder persists it; MessageLog is the bounded player-facing view.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-tick movement.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, faction, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick: tick, Actor: actor, Faction: faction,
		Category: category, Key: key, Value: value, NumVal: numVal,
	})
}

// AddVerbose is Add for high-volume events; it is a no-op unless verbose.
func (sl *SimLog) AddVerbose(tick int, actor, faction, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, actor, faction, category, key, value, numVal)
	}
}

// Entries returns every recorded entry in insertion order.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries of category and key; an empty string matches any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool {
		return (category == "" || e.Category == category) && (key == "" || e.Key == key)
	})
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// Summary renders faction survival, squad states and active effects at tick.
func (sl *SimLog) Summary(tick int, actors []*Actor, squads []*Squad) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%d events) ---\n", tick, len(sl.entries))

	type tally struct{ alive, total int }
	byFaction := map[string]*tally{}
	var affected []string
	for _, a := range actors {
		t := byFaction[a.Faction]
		if t == nil {
			t = &tally{}
			byFaction[a.Faction] = t
		}
		t.total++
		if a.Dead {
			continue
		}
		t.alive++
		if len(a.Combat.Effects) > 0 {
			names := make([]string, 0, len(a.Combat.Effects))
			for n := range a.Combat.Effects {
				names = append(names, n)
			}
			sort.Strings(names)
			affected = append(affected, fmt.Sprintf("%s [%s]", a.Name, strings.Join(names, ", ")))
		}
	}
	factions := make([]string, 0, len(byFaction))
	for f := range byFaction {
		factions = append(factions, f)
	}
	sort.Strings(factions)
	for _, f := range factions {
		fmt.Fprintf(&sb, "%-10s alive=%d/%d\n", f, byFaction[f].alive, byFaction[f].total)
	}

	for _, sq := range squads {
		fmt.Fprintf(&sb, "squad %d %-9s %-8s health=%.2f known=%d\n",
			sq.ID, sq.Faction, sq.State, sq.AverageHealth(), len(sq.Shared.KnownEnemies))
	}

	if len(affected) == 0 {
		sb.WriteString("effects: none\n")
	} else {
		fmt.Fprintf(&sb, "effects: %s\n", strings.Join(affected, "; "))
	}
	return sb.String()
}
