package game

import "fmt"

// edgeSampleThreshold is the radius above which extra points are sampled
// along each edge of the probe circle. A circle wider than a tile could
// otherwise straddle a wall between two clear samples.
const edgeSampleThreshold = TileSize / 2

// Blocked reports whether a circular actor of the given radius centered at
// (x, y) overlaps a wall or leaves the grid. The circle is point-sampled:
// center, the four axis-aligned extremes and the four diagonal corners,
// with additional edge points for large radii. Sampling is deliberately
// conservative: false positives are preferred over letting an actor clip
// through a thin diagonal wall.
//
// A negative radius is a caller bug and panics.
func Blocked(g *Grid, x, y, radius float64) bool {
	if g == nil {
		panic("game: Blocked called with nil grid")
	}
	if radius < 0 {
		panic(fmt.Sprintf("game: Blocked called with negative radius %v", radius))
	}

	for _, p := range probeOffsets(radius) {
		col, row := WorldToTile(x+p[0], y+p[1])
		if g.IsWall(col, row) {
			// IsWall treats out-of-bounds as wall, so escaping the grid
			// is impossible.
			return true
		}
	}
	return false
}

// probeOffsets returns the sample offsets for a probe circle of the given
// radius.
func probeOffsets(radius float64) [][2]float64 {
	if radius == 0 {
		return [][2]float64{{0, 0}}
	}
	// 0.7071 ≈ 1/sqrt2 puts the corner samples on the circle.
	d := radius * 0.7071
	offsets := [][2]float64{
		{0, 0},
		{radius, 0}, {-radius, 0}, {0, radius}, {0, -radius},
		{d, d}, {d, -d}, {-d, d}, {-d, -d},
	}
	if radius > edgeSampleThreshold {
		// Midpoints between the axis extremes and the corners.
		a := radius * 0.9239 // cos(pi/8)
		b := radius * 0.3827 // sin(pi/8)
		offsets = append(offsets,
			[2]float64{a, b}, [2]float64{a, -b}, [2]float64{-a, b}, [2]float64{-a, -b},
			[2]float64{b, a}, [2]float64{b, -a}, [2]float64{-b, a}, [2]float64{-b, -a},
		)
	}
	return offsets
}
