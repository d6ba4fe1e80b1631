package game

// Cell identifies the contents of one maze tile.
type Cell uint8

const (
	Wall  Cell = iota // blocks movement and sight; the zero value, so a fresh grid is solid
	Floor             // traversable
)

// TileSize is the width of one grid cell in world units. Actor positions
// are continuous world coordinates; dividing by TileSize yields the tile.
const TileSize = 50.0

// Grid is the wall/floor tile map for one maze instance.
// Row-major storage: index = row*Cols + col. A grid is mutated only while
// the generator builds it; once published it is read-only and safe to share.
type Grid struct {
	Cols  int
	Rows  int
	cells []Cell
}

// NewGrid creates a grid of the given dimensions with every cell set to Wall.
// The generator carves floor out of this solid block.
func NewGrid(cols, rows int) *Grid {
	if cols < 5 || rows < 5 {
		panic("game: grid dimensions must be at least 5x5")
	}
	return &Grid{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
}

// inBounds returns true if (col, row) is within the grid.
func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// interior returns true if (col, row) is inside the permanent wall border.
func (g *Grid) interior(col, row int) bool {
	return col >= 1 && col < g.Cols-1 && row >= 1 && row < g.Rows-1
}

// At returns the cell at (col, row). Out-of-bounds reads as Wall, so the
// world is effectively surrounded by infinite wall.
func (g *Grid) At(col, row int) Cell {
	if !g.inBounds(col, row) {
		return Wall
	}
	return g.cells[row*g.Cols+col]
}

// IsWall returns true if (col, row) is a wall or out of bounds.
func (g *Grid) IsWall(col, row int) bool {
	return g.At(col, row) == Wall
}

// IsFloor returns true if (col, row) is a traversable floor cell.
func (g *Grid) IsFloor(col, row int) bool {
	return g.At(col, row) == Floor
}

// setFloor carves a cell. Border cells are never carved.
func (g *Grid) setFloor(col, row int) {
	if !g.interior(col, row) {
		return
	}
	g.cells[row*g.Cols+col] = Floor
}

// setWall fills a cell back in. Only used by test fixtures.
func (g *Grid) setWall(col, row int) {
	if !g.inBounds(col, row) {
		return
	}
	g.cells[row*g.Cols+col] = Wall
}

// FloorCount returns the number of floor cells.
func (g *Grid) FloorCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Floor {
			n++
		}
	}
	return n
}

// WorldToTile converts world coordinates to tile coordinates.
func WorldToTile(wx, wy float64) (int, int) {
	return int(wx / TileSize), int(wy / TileSize)
}

// TileCenter returns the world coordinates of a tile's center.
func TileCenter(col, row int) (float64, float64) {
	return float64(col)*TileSize + TileSize/2, float64(row)*TileSize + TileSize/2
}
