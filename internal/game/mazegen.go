package game

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

const (
	// corridorKeepProb is the chance each cell of a seeded main corridor
	// stays floor rather than being walled for texture.
	corridorKeepProb = 0.9

	// diagonalSeedCount is how many extra diagonal seed cells are carved
	// before organic growth begins.
	diagonalSeedCount = 6
)

// GenerateMaze builds a maze grid with guaranteed full connectivity.
// complexity controls how many extra carves the secondary pass attempts;
// density gates each of those carves. Output is deterministic for a given
// rng. The border is always wall and every floor cell is reachable from
// every other floor cell.
func GenerateMaze(cols, rows, complexity int, density float64, rng *rand.Rand) *Grid {
	g := NewGrid(cols, rows)
	if complexity < 0 {
		complexity = 0
	}
	if density < 0 {
		density = 0
	} else if density > 1 {
		density = 1
	}

	seedCorridors(g, rng)
	growFromSeeds(g, rng)
	carveComplexity(g, complexity, density, rng)
	openDiagonalPinches(g, rng)
	connectRegions(g)

	if g.FloorCount() == 0 {
		// Pathological parameters. A playable maze must always come back,
		// so hand out the guaranteed-valid open room instead.
		simLogger().WithFields(logrus.Fields{
			"cols": cols, "rows": rows,
		}).Warn("maze generation produced no floor cells, using fallback layout")
		return FallbackLayout(cols, rows)
	}
	return g
}

// FallbackLayout returns the minimal guaranteed-valid grid: a wall border
// around an open room. Used when generation degenerates and as a fixture
// base in tests.
func FallbackLayout(cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	for row := 1; row < rows-1; row++ {
		for col := 1; col < cols-1; col++ {
			g.setFloor(col, row)
		}
	}
	return g
}

// seedCorridors carves the maze backbone: one horizontal corridor through
// the mid-row, one vertical through the mid-column (each cell kept with
// high probability), plus a few diagonal seed cells.
func seedCorridors(g *Grid, rng *rand.Rand) {
	midRow := g.Rows / 2
	midCol := g.Cols / 2
	for col := 1; col < g.Cols-1; col++ {
		if rng.Float64() < corridorKeepProb {
			g.setFloor(col, midRow)
		}
	}
	for row := 1; row < g.Rows-1; row++ {
		if rng.Float64() < corridorKeepProb {
			g.setFloor(midCol, row)
		}
	}
	for i := 0; i < diagonalSeedCount; i++ {
		col := 1 + rng.Intn(g.Cols-2)
		row := 1 + rng.Intn(g.Rows-2)
		g.setFloor(col, row)
	}
}

// cardinal neighbour offsets, used by growth and flood fill.
var cardinals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// floorNeighbors returns how many of the four cardinal neighbours of
// (col, row) are floor.
func floorNeighbors(g *Grid, col, row int) int {
	n := 0
	for _, d := range cardinals {
		if g.IsFloor(col+d[0], row+d[1]) {
			n++
		}
	}
	return n
}

// growFromSeeds runs randomized Prim's-style frontier expansion from the
// four corners and the center. A frontier cell is carved only while it
// still borders exactly one floor cell, which keeps growth corridor-like
// instead of merging into open 2-wide areas.
func growFromSeeds(g *Grid, rng *rand.Rand) {
	seeds := [5][2]int{
		{1, 1},
		{g.Cols - 2, 1},
		{1, g.Rows - 2},
		{g.Cols - 2, g.Rows - 2},
		{g.Cols / 2, g.Rows / 2},
	}

	var frontier [][2]int
	queued := make(map[[2]int]bool)
	push := func(col, row int) {
		c := [2]int{col, row}
		if !g.interior(col, row) || queued[c] || g.IsFloor(col, row) {
			return
		}
		queued[c] = true
		frontier = append(frontier, c)
	}

	for _, s := range seeds {
		g.setFloor(s[0], s[1])
	}
	// Corridor seeding already carved cells; every carved cell contributes
	// its wall neighbours to the initial frontier.
	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			if !g.IsFloor(col, row) {
				continue
			}
			for _, d := range cardinals {
				push(col+d[0], row+d[1])
			}
		}
	}

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		c := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if floorNeighbors(g, c[0], c[1]) != 1 {
			continue
		}
		g.setFloor(c[0], c[1])
		for _, d := range cardinals {
			push(c[0]+d[0], c[1]+d[1])
		}
	}
}

// carveComplexity is the secondary pass: up to complexity random carves,
// each gated by density and by a 1-2 floor-neighbour filter so it neither
// grows dead-end blobs nor accidentally opens large rooms.
func carveComplexity(g *Grid, complexity int, density float64, rng *rand.Rand) {
	for i := 0; i < complexity; i++ {
		if rng.Float64() >= density {
			continue
		}
		col := 1 + rng.Intn(g.Cols-2)
		row := 1 + rng.Intn(g.Rows-2)
		if g.IsFloor(col, row) {
			continue
		}
		if n := floorNeighbors(g, col, row); n >= 1 && n <= 2 {
			g.setFloor(col, row)
		}
	}
}

// openDiagonalPinches removes single-tile choke points. A 2x2 block shaped
// like a diagonal pinch (wall/floor over floor/wall, or the mirror) forces
// actors through a zero-width corner; opening one of the two wall corners
// restores a passable gap.
func openDiagonalPinches(g *Grid, rng *rand.Rand) {
	for row := 1; row < g.Rows-2; row++ {
		for col := 1; col < g.Cols-2; col++ {
			tl := g.IsWall(col, row)
			tr := g.IsWall(col+1, row)
			bl := g.IsWall(col, row+1)
			br := g.IsWall(col+1, row+1)

			switch {
			case tl && br && !tr && !bl:
				if rng.Intn(2) == 0 {
					g.setFloor(col, row)
				} else {
					g.setFloor(col+1, row+1)
				}
			case tr && bl && !tl && !br:
				if rng.Intn(2) == 0 {
					g.setFloor(col+1, row)
				} else {
					g.setFloor(col, row+1)
				}
			}
		}
	}
}

// floodCount returns how many floor cells are reachable from (col, row)
// by cardinal steps.
func floodCount(g *Grid, col, row int) int {
	if !g.IsFloor(col, row) {
		return 0
	}
	return len(floodRegion(g, col, row, make([]bool, g.Cols*g.Rows)))
}

// floodRegion collects the connected floor region containing (col, row)
// via breadth-first search, marking cells in visited.
func floodRegion(g *Grid, col, row int, visited []bool) [][2]int {
	start := [2]int{col, row}
	region := [][2]int{start}
	visited[row*g.Cols+col] = true
	for head := 0; head < len(region); head++ {
		c := region[head]
		for _, d := range cardinals {
			nc, nr := c[0]+d[0], c[1]+d[1]
			if !g.IsFloor(nc, nr) || visited[nr*g.Cols+nc] {
				continue
			}
			visited[nr*g.Cols+nc] = true
			region = append(region, [2]int{nc, nr})
		}
	}
	return region
}

// floorRegions partitions all floor cells into connected regions.
func floorRegions(g *Grid) [][][2]int {
	visited := make([]bool, g.Cols*g.Rows)
	var regions [][][2]int
	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			if g.IsFloor(col, row) && !visited[row*g.Cols+col] {
				regions = append(regions, floodRegion(g, col, row, visited))
			}
		}
	}
	return regions
}

// FullyConnected reports whether every floor cell is reachable from every
// other floor cell. A grid with no floor cells is vacuously connected.
func FullyConnected(g *Grid) bool {
	total := g.FloorCount()
	if total == 0 {
		return true
	}
	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			if g.IsFloor(col, row) {
				return floodCount(g, col, row) == total
			}
		}
	}
	return true
}

// connectRegions merges disconnected floor regions until one remains.
// Each round joins the two regions with the shortest Manhattan distance
// between any pair of their cells, carving a straight-stepped path.
func connectRegions(g *Grid) {
	for {
		regions := floorRegions(g)
		if len(regions) <= 1 {
			return
		}

		bestDist := -1
		var bestFrom, bestTo [2]int
		for i := 0; i < len(regions); i++ {
			for j := i + 1; j < len(regions); j++ {
				for _, a := range regions[i] {
					for _, b := range regions[j] {
						d := abs(a[0]-b[0]) + abs(a[1]-b[1])
						if bestDist < 0 || d < bestDist {
							bestDist = d
							bestFrom, bestTo = a, b
						}
					}
				}
			}
		}

		carvePath(g, bestFrom, bestTo)
	}
}

// carvePath carves floor one axis-step at a time from a toward b,
// resolving the column offset first, then the row offset.
func carvePath(g *Grid, a, b [2]int) {
	col, row := a[0], a[1]
	for col != b[0] {
		col += sign(b[0] - col)
		g.setFloor(col, row)
	}
	for row != b[1] {
		row += sign(b[1] - row)
		g.setFloor(col, row)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
