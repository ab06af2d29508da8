package game

import "math"

const (
	coverSightBonus   = 0.8
	coverDistanceCap  = 0.2
	coverDistanceNorm = 20.0
)

// CoverScore rates standing on (x, y) against an enemy at (ex, ey), in
// [0, 1]. Concealment dominates; distance adds a little.
func CoverScore(t Terrain, x, y, ex, ey int) float64 {
	score := 0.0
	if t.TileProperties(x, y).BlocksSight {
		score += coverSightBonus
	}
	d := math.Hypot(float64(x-ex), float64(y-ey))
	return score + min(coverDistanceCap, d/coverDistanceNorm)
}

// validMove reports whether an actor could stand on (x, y).
func validMove(t Terrain, x, y int) bool {
	return t.InBounds(x, y) && t.IsWalkable(x, y)
}

// bestCover scans the 5x5 neighbourhood around (x, y) for a tile scoring
// strictly better than (x, y) itself.
func bestCover(t Terrain, x, y, ex, ey int) (int, int, bool) {
	best := CoverScore(t, x, y, ex, ey)
	bx, by, found := 0, 0, false
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			nx, ny := x+dx, y+dy
			if !validMove(t, nx, ny) {
				continue
			}
			if s := CoverScore(t, nx, ny, ex, ey); s > best {
				best, bx, by, found = s, nx, ny, true
			}
		}
	}
	return bx, by, found
}
