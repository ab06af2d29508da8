package game

import (
	"math"
	"slices"

	"github.com/Garsondee/Zone-Sense/internal/world"
)

// Role fixes a member's engagement band and target preferences.
type Role struct {
	Name     string
	MinDist  float64
	MaxDist  float64
	Priority []string // enemy kinds or classes, most wanted first
}

// Prefers reports whether e matches the role's priority list.
func (r Role) Prefers(e *Actor) bool {
	return slices.Contains(r.Priority, e.Kind) || slices.Contains(r.Priority, e.Class)
}

// LeaderRole is the fixed role of every squad leader.
func LeaderRole() Role {
	return Role{Name: "leader", MinDist: 3, MaxDist: 8, Priority: []string{"player"}}
}

// RoleFor returns the role named name, or assault when unknown.
func RoleFor(name string) Role {
	switch name {
	case "support":
		return Role{Name: "support", MinDist: 6, MaxDist: 12, Priority: []string{"sniper", "support"}}
	case "sniper":
		return Role{Name: "sniper", MinDist: 10, MaxDist: 20, Priority: []string{"sniper", "player"}}
	default:
		return Role{Name: "assault", MinDist: 2, MaxDist: 5, Priority: []string{"player", "heavy"}}
	}
}

const flankDistance = 5

func (sq *Squad) validPosition(z *world.Zone, x, y int) bool {
	return z.InBounds(x, y) && z.IsWalkable(x, y) && !sq.Shared.DangerZones[world.Point{X: x, Y: y}]
}

// supportPositions rings every other living member at member's minimum
// engagement distance.
func (sq *Squad) supportPositions(member *Actor, z *world.Zone) []world.Point {
	r := sq.Roles[member.ID].MinDist
	var out []world.Point
	for _, ally := range sq.Members {
		if ally == member || ally.Dead {
			continue
		}
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			x := ally.X + int(r*math.Cos(a))
			y := ally.Y + int(r*math.Sin(a))
			if sq.validPosition(z, x, y) {
				out = append(out, world.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// flankPositions offsets each shared enemy sighting to either side of the
// line from the formation centre.
func (sq *Squad) flankPositions(z *world.Zone) []world.Point {
	var out []world.Point
	for _, m := range sq.Members {
		s, ok := sq.Shared.LastKnown[m.ID]
		if !ok {
			continue
		}
		dx := float64(s.Pos.X) - sq.Center.X
		dy := float64(s.Pos.Y) - sq.Center.Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		px, py := -dy/d, dx/d
		for _, side := range []float64{-1, 1} {
			x := int(float64(s.Pos.X) + px*flankDistance*side)
			y := int(float64(s.Pos.Y) + py*flankDistance*side)
			if sq.validPosition(z, x, y) {
				out = append(out, world.Point{X: x, Y: y})
			}
		}
	}
	return out
}
