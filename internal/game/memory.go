package game

import "github.com/Garsondee/Zone-Sense/internal/world"

// Memory is everything one actor's AI remembers between ticks. Only that
// actor's behaviour tree writes to it; squads read it.
type Memory struct {
	LastKnownEnemy  *world.Point
	LastSeenEnemyID string

	PatrolPoints    []world.Point
	PatrolIndex     int
	PatrolGenerated bool

	Shelter *world.Point

	SearchPoints    []world.Point
	SearchIndex     int
	SearchGenerated bool
}

// SawEnemy records a sighting.
func (m *Memory) SawEnemy(e *Actor) {
	p := e.Pos()
	m.LastKnownEnemy = &p
	m.LastSeenEnemyID = e.ID
}

// ForgetEnemy clears the last sighting and any search in progress.
func (m *Memory) ForgetEnemy() {
	m.LastKnownEnemy = nil
	m.LastSeenEnemyID = ""
	m.SearchPoints = nil
	m.SearchIndex = 0
	m.SearchGenerated = false
}
