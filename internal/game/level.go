package game

import "github.com/Garsondee/Zone-Sense/internal/world"

// Terrain is the read-only map surface the AI and movement need.
// *world.Zone implements it.
type Terrain interface {
	InBounds(x, y int) bool
	IsWalkable(x, y int) bool
	TileProperties(x, y int) world.TileProps
	TerrainAt(x, y int) world.Terrain
	Size() (int, int)
}

var _ Terrain = (*world.Zone)(nil)

// Level is a zone plus the actors in it.
type Level struct {
	Zone   *world.Zone
	Actors []*Actor
}

// NewLevel wraps zone with no actors.
func NewLevel(z *world.Zone) *Level {
	return &Level{Zone: z}
}

// Entities returns every actor in the level, dead ones included.
func (l *Level) Entities() []*Actor { return l.Actors }

// Add puts a into the level.
func (l *Level) Add(a *Actor) { l.Actors = append(l.Actors, a) }

// ActorAt returns the first living actor standing on (x, y).
func (l *Level) ActorAt(x, y int) *Actor {
	for _, a := range l.Actors {
		if !a.Dead && a.X == x && a.Y == y {
			return a
		}
	}
	return nil
}

// ActorByID returns the actor with id, dead or alive.
func (l *Level) ActorByID(id string) *Actor {
	for _, a := range l.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Alive counts living actors, optionally restricted to a faction.
func (l *Level) Alive(faction string) int {
	n := 0
	for _, a := range l.Actors {
		if !a.Dead && (faction == "" || a.Faction == faction) {
			n++
		}
	}
	return n
}

// RemoveDead drops dead actors from the level and returns them.
func (l *Level) RemoveDead() []*Actor {
	var dead []*Actor
	kept := l.Actors[:0]
	for _, a := range l.Actors {
		if a.Dead {
			dead = append(dead, a)
			continue
		}
		kept = append(kept, a)
	}
	l.Actors = kept
	return dead
}
