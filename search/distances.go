package search

import "github.com/katalvlaran/gridpath/grid"

// Unreachable is the DistanceMap value of cells the flood never reached.
const Unreachable = -1

// DistanceMap holds breadth-first step counts from one origin, row-major.
type DistanceMap struct {
	rows, cols int
	dist       []int
}

// At returns the distance to (row, col), or Unreachable when the cell was
// not reached or lies outside the grid.
func (d DistanceMap) At(row, col int) int {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return Unreachable
	}
	return d.dist[row*d.cols+col]
}

// To returns the distance to c.
func (d DistanceMap) To(c *grid.Cell) int { return d.At(c.Pos()) }

// Reached counts the cells with a finite distance, origin included.
func (d DistanceMap) Reached() int {
	n := 0
	for _, v := range d.dist {
		if v != Unreachable {
			n++
		}
	}
	return n
}

// Distances floods g breadth-first from origin over the same adjacency the
// search uses and returns the step count to every cell. It is the plain
// BFS counterpart of Search: no frontier priorities, no display changes.
//
// Adjacency is rebuilt first if stale.
// Complexity: O(rows×cols) time and memory.
func Distances(g *grid.Grid, origin *grid.Cell) (DistanceMap, error) {
	if g == nil {
		return DistanceMap{}, ErrNilGrid
	}
	if origin == nil {
		return DistanceMap{}, ErrNoStart
	}
	if !g.Owns(origin) {
		return DistanceMap{}, ErrForeignCell
	}
	if g.AdjacencyStale() {
		g.UpdateNeighbors()
	}

	d := DistanceMap{rows: g.Rows(), cols: g.Cols(), dist: make([]int, g.Rows()*g.Cols())}
	for i := range d.dist {
		d.dist[i] = Unreachable
	}
	if origin.Is(grid.Barrier) {
		return d, nil
	}

	queue := []*grid.Cell{origin}
	d.dist[g.Index(origin)] = 0
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		du := d.dist[g.Index(u)]
		for _, v := range g.NeighborsOf(u) {
			vi := g.Index(v)
			if d.dist[vi] != Unreachable {
				continue
			}
			d.dist[vi] = du + 1
			queue = append(queue, v)
		}
	}
	return d, nil
}
