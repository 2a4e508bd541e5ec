package grid

import (
	"fmt"
	"math/rand"
)

// Scatter turns each free cell of g into a barrier with probability
// density, drawing from rng in row-major order. Start, end and existing
// barriers are left alone. A fixed seed yields the same layout every time.
// Returns the number of barriers placed, or ErrBadDensity.
func Scatter(g *Grid, density float64, rng *rand.Rand) (int, error) {
	if !(density >= 0 && density <= 1) { // also rejects NaN
		return 0, fmt.Errorf("%w: %v", ErrBadDensity, density)
	}
	placed := 0
	g.Each(func(c *Cell) {
		// draw for every cell so the sequence does not depend on the layout
		hit := rng.Float64() < density
		if !hit || c.state != Default {
			return
		}
		g.setState(c, Barrier)
		placed++
	})
	return placed, nil
}

// Random builds a rows×rows grid with start at the top-left corner, end at
// the bottom-right corner and barriers scattered with the given density.
func Random(rows, width int, density float64, seed int64) (*Grid, error) {
	g, err := Build(rows, width)
	if err != nil {
		return nil, err
	}
	if err = g.SetStart(0, 0); err != nil {
		return nil, err
	}
	if rows > 1 {
		if err = g.SetEnd(rows-1, rows-1); err != nil {
			return nil, err
		}
	}
	if _, err = Scatter(g, density, rand.New(rand.NewSource(seed))); err != nil {
		return nil, err
	}
	return g, nil
}
