package grid

import "fmt"

// setState changes the display state of c and bumps the topology version
// whenever c enters or leaves the Barrier state.
func (g *Grid) setState(c *Cell, s State) {
	if (c.state == Barrier) != (s == Barrier) {
		g.version++
	}
	c.state = s
}

// Owns reports whether c is a cell of g.
func (g *Grid) Owns(c *Cell) bool { return c != nil && c.owner == g }

// own is Owns as an error.
func (g *Grid) own(c *Cell) error {
	if !g.Owns(c) {
		return ErrForeignCell
	}
	return nil
}

// SetStart makes (row, col) the start cell. A previous start reverts to
// Default. Returns ErrOccupied when the cell is the current end.
func (g *Grid) SetStart(row, col int) error {
	c, err := g.At(row, col)
	if err != nil {
		return err
	}
	if c == g.end {
		return fmt.Errorf("%w: (%d,%d) is the end", ErrOccupied, row, col)
	}
	if g.start != nil && g.start != c {
		g.setState(g.start, Default)
	}
	g.setState(c, Start)
	g.start = c
	return nil
}

// SetEnd makes (row, col) the end cell. A previous end reverts to Default.
// Returns ErrOccupied when the cell is the current start.
func (g *Grid) SetEnd(row, col int) error {
	c, err := g.At(row, col)
	if err != nil {
		return err
	}
	if c == g.start {
		return fmt.Errorf("%w: (%d,%d) is the start", ErrOccupied, row, col)
	}
	if g.end != nil && g.end != c {
		g.setState(g.end, Default)
	}
	g.setState(c, End)
	g.end = c
	return nil
}

// SetBarrier turns (row, col) into a barrier.
// Returns ErrOccupied when the cell is the current start or end.
func (g *Grid) SetBarrier(row, col int) error {
	c, err := g.At(row, col)
	if err != nil {
		return err
	}
	if c == g.start || c == g.end {
		return fmt.Errorf("%w: (%d,%d)", ErrOccupied, row, col)
	}
	g.setState(c, Barrier)
	return nil
}

// Paint applies the primary-click rule of the editor: the first painted
// cell becomes the start, the next distinct one the end, and every further
// cell a barrier. Painting the start or end itself is a no-op.
// Returns the resulting state of the cell.
func (g *Grid) Paint(row, col int) (State, error) {
	c, err := g.At(row, col)
	if err != nil {
		return Default, err
	}
	switch {
	case g.start == nil && c != g.end:
		g.setState(c, Start)
		g.start = c
	case g.end == nil && c != g.start:
		g.setState(c, End)
		g.end = c
	case c != g.start && c != g.end:
		g.setState(c, Barrier)
	}
	return c.state, nil
}

// Erase resets (row, col) to Default, releasing the start or end role.
func (g *Grid) Erase(row, col int) error {
	c, err := g.At(row, col)
	if err != nil {
		return err
	}
	return g.Reset(c)
}

// Reset returns c to Default. If c was the start or end, the grid-level
// reference is cleared as well.
func (g *Grid) Reset(c *Cell) error {
	if err := g.own(c); err != nil {
		return err
	}
	switch c {
	case g.start:
		g.start = nil
	case g.end:
		g.end = nil
	}
	g.setState(c, Default)
	return nil
}

// Clear resets every cell to Default and drops start and end.
func (g *Grid) Clear() {
	g.Each(func(c *Cell) { g.setState(c, Default) })
	g.start, g.end = nil, nil
	g.version++
}

// ClearSearch turns Open, Closed and Path cells back into Default cells,
// leaving start, end and barriers untouched. Adjacency stays valid.
func (g *Grid) ClearSearch() {
	g.Each(func(c *Cell) {
		if c.state.Transient() {
			c.state = Default
		}
	})
}

// Mark projects a search state (Open, Closed or Path) onto c. Start, end
// and barrier cells keep their state. Reports whether c changed.
func (g *Grid) Mark(c *Cell, s State) bool {
	if !s.Transient() || g.own(c) != nil {
		return false
	}
	switch c.state {
	case Start, End, Barrier:
		return false
	}
	c.state = s
	return true
}
