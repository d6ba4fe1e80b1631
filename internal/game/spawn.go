package game

import (
	"math"
	"math/rand"
)

const (
	// spawnAttempts bounds random placement tries before falling back to
	// a deterministic scan.
	spawnAttempts = 200

	// defaultSpawnSeparation is the minimum pairwise distance, in world
	// units, enforced between entities placed during level setup.
	defaultSpawnSeparation = 3 * TileSize
)

// SampleSpawn picks a safe world position for an actor of the given radius:
// a floor tile center where the actor fits and which keeps at least minSep
// distance from every position in taken.
//
// After spawnAttempts random tries the separation requirement is dropped
// and the grid is scanned for any fitting floor tile; if even that fails
// (degenerate grid) a fixed coordinate valid in the fallback layout is
// returned. Placement never errors out — a level must always start.
func SampleSpawn(g *Grid, rng *rand.Rand, radius, minSep float64, taken []Pose) Pose {
	for i := 0; i < spawnAttempts; i++ {
		col := 1 + rng.Intn(g.Cols-2)
		row := 1 + rng.Intn(g.Rows-2)
		if !g.IsFloor(col, row) {
			continue
		}
		x, y := TileCenter(col, row)
		if Blocked(g, x, y, radius) {
			continue
		}
		if !separated(x, y, minSep, taken) {
			continue
		}
		return Pose{X: x, Y: y}
	}

	// Bounded retries exhausted: take any fitting floor tile.
	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			if !g.IsFloor(col, row) {
				continue
			}
			x, y := TileCenter(col, row)
			if !Blocked(g, x, y, radius) {
				return Pose{X: x, Y: y}
			}
		}
	}

	// No floor cell fits at all. The fallback layout keeps (1,1) open.
	x, y := TileCenter(1, 1)
	return Pose{X: x, Y: y}
}

// separated returns true if (x, y) keeps at least minSep distance from
// every taken position.
func separated(x, y, minSep float64, taken []Pose) bool {
	for _, p := range taken {
		if math.Hypot(p.X-x, p.Y-y) < minSep {
			return false
		}
	}
	return true
}
