package sim

// Grid is the battlefield occupancy map. A cell is occupied when the path
// crosses it or a tower stands on it.
type Grid struct {
	cols, rows int
	occupied   []bool
	path       []bool
}

// NewGrid creates a grid and seeds it from the path polyline.
func NewGrid(cols, rows int, path []Point) *Grid {
	g := &Grid{
		cols:     cols,
		rows:     rows,
		occupied: make([]bool, cols*rows),
		path:     make([]bool, cols*rows),
	}
	g.Rebuild(path)
	return g
}

// Rebuild clears every cell and marks the tiles whose rectangle touches
// any segment of the path.
func (g *Grid) Rebuild(path []Point) {
	clear(g.occupied)
	clear(g.path)

	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		for row := range g.rows {
			for col := range g.cols {
				minX := float64(col * TileSize)
				minY := float64(row * TileSize)
				if segmentIntersectsRect(a, b, minX, minY, minX+TileSize, minY+TileSize) {
					idx := g.index(col, row)
					g.occupied[idx] = true
					g.path[idx] = true
				}
			}
		}
	}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (col, row) is a cell of this grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// CanPlace reports whether a tower may be built at (col, row).
func (g *Grid) CanPlace(col, row int) bool {
	return g.InBounds(col, row) && !g.occupied[g.index(col, row)]
}

// Occupy marks a cell as taken. Repeated calls and out-of-range cells are no-ops.
func (g *Grid) Occupy(col, row int) {
	if !g.InBounds(col, row) {
		return
	}
	g.occupied[g.index(col, row)] = true
}

// Occupied reports whether a cell is taken. Out-of-range cells report false.
func (g *Grid) Occupied(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.occupied[g.index(col, row)]
}

// OnPath reports whether the path crosses the cell.
func (g *Grid) OnPath(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.path[g.index(col, row)]
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, o := range g.occupied {
		if o {
			n++
		}
	}
	return n
}

func (g *Grid) index(col, row int) int {
	return row*g.cols + col
}
