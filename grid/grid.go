package grid

import "fmt"

// Build allocates a rows×rows grid whose cells share the pixel size
// width/rows, so the whole board spans width pixels.
// Returns ErrInvalidSize when rows ≤ 0 or width < 0.
// Complexity: O(rows²) time and memory.
func Build(rows, width int) (*Grid, error) {
	if rows <= 0 || width < 0 {
		return nil, fmt.Errorf("%w: rows=%d width=%d", ErrInvalidSize, rows, width)
	}
	return New(rows, rows, width/rows)
}

// New allocates a rows×cols grid with the given per-cell pixel size hint.
// The search itself ignores size and works on any rectangular grid.
// Complexity: O(rows×cols) time and memory.
func New(rows, cols, size int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || size < 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d size=%d", ErrInvalidSize, rows, cols, size)
	}
	g := &Grid{rows: rows, cols: cols, size: size}
	g.cells = make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		g.cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			g.cells[r][c] = &Cell{
				row:   r,
				col:   c,
				x:     r * size,
				y:     c * size,
				size:  size,
				owner: g,
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the per-cell pixel size hint.
func (g *Grid) Size() int { return g.size }

// Start returns the current start cell, or nil.
func (g *Grid) Start() *Cell { return g.start }

// End returns the current end cell, or nil.
func (g *Grid) End() *Cell { return g.end }

// InBounds reports whether (row, col) lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col), or ErrOutOfBounds.
func (g *Grid) At(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[row][col], nil
}

// Index maps c to its row-major index row*Cols + col.
func (g *Grid) Index(c *Cell) int {
	return c.row*g.cols + c.col
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(*Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// NeighborsOf returns the adjacency snapshot of c: up to four axis-aligned
// cells in the order down, up, right, left, excluding cells that were
// Barrier when the snapshot was taken. The snapshot is built on first use
// and kept until UpdateNeighbors runs.
func (g *Grid) NeighborsOf(c *Cell) []*Cell {
	if !c.built {
		c.neighbors = g.collect(c)
		c.built = true
	}
	return c.neighbors
}

// UpdateNeighbors rebuilds the adjacency snapshot of every cell from the
// current barrier layout. Snapshots are replaced, never appended to.
// Complexity: O(rows×cols).
func (g *Grid) UpdateNeighbors() {
	g.Each(func(c *Cell) {
		c.neighbors = g.collect(c)
		c.built = true
	})
	g.adjacencyVer = g.version
	g.adjacencyOK = true
}

// AdjacencyStale reports whether barrier edits happened since the last
// UpdateNeighbors, or whether it never ran.
func (g *Grid) AdjacencyStale() bool {
	return !g.adjacencyOK || g.adjacencyVer != g.version
}

func (g *Grid) collect(c *Cell) []*Cell {
	out := make([]*Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		r, col := c.row+d[0], c.col+d[1]
		if !g.InBounds(r, col) {
			continue
		}
		if n := g.cells[r][col]; !n.Is(Barrier) {
			out = append(out, n)
		}
	}
	return out
}
