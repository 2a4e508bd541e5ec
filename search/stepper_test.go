package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// TestStepper_Sequence pins the step kinds on a 2×2 grid.
func TestStepper_Sequence(t *testing.T) {
	g := mustParse(t, "S.\n.E\n")
	s, err := search.NewStepper(g)
	require.NoError(t, err)

	var kinds []search.StepKind
	for !s.Done() {
		kinds = append(kinds, s.Step())
	}
	assert.Equal(t, []search.StepKind{
		search.StepExpanded, search.StepExpanded, search.StepExpanded,
		search.StepGoal, search.StepTraced, search.StepTraced, search.StepDone,
	}, kinds)
	assert.Equal(t, search.StepDone, s.Step(), "finished stepper stays done")

	res := s.Result()
	assert.True(t, res.Found())
	assert.Equal(t, 3, res.Length)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {1, 1}}, coords(res.Path))
}

// TestStepper_Observer records every hook on a 2×2 grid. Cells are opened
// in discovery order with their tentative cost, and the trace walks one
// predecessor per unit of cost, ending at the start. The hooks fire the
// same way with Display off.
func TestStepper_Observer(t *testing.T) {
	type event struct {
		cell [2]int
		cost int
	}
	for _, display := range []bool{true, false} {
		g := mustParse(t, "S.\n.E\n")
		var opened, expanded []event
		var traced [][2]int
		s, err := search.NewStepper(g, search.WithDisplay(display), search.WithObserver(search.Observer{
			OnOpen:   func(c *grid.Cell, cost int) { opened = append(opened, event{pos(c), cost}) },
			OnExpand: func(c *grid.Cell, cost int) { expanded = append(expanded, event{pos(c), cost}) },
			OnTrace:  func(c *grid.Cell) { traced = append(traced, pos(c)) },
		}))
		require.NoError(t, err)
		for !s.Done() {
			s.Step()
		}

		assert.Equal(t, []event{{[2]int{1, 0}, 1}, {[2]int{0, 1}, 1}, {[2]int{1, 1}, 2}}, opened)
		assert.Equal(t, []event{{[2]int{0, 0}, 0}, {[2]int{1, 0}, 1}, {[2]int{0, 1}, 1}}, expanded)

		res := s.Result()
		require.True(t, res.Found())
		assert.Len(t, traced, res.Cost)
		assert.Equal(t, [][2]int{{1, 0}, {0, 0}}, traced)
		assert.Equal(t, pos(g.Start()), traced[len(traced)-1])
	}
}

// TestStepper_Tracing is false while cells are expanded, true from the goal
// step until the path is complete, and false again once done.
func TestStepper_Tracing(t *testing.T) {
	g := mustParse(t, "S.\n.E\n")
	s, err := search.NewStepper(g)
	require.NoError(t, err)
	assert.False(t, s.Tracing())

	var tracing []bool
	for !s.Done() {
		kind := s.Step()
		tracing = append(tracing, s.Tracing())
		if kind == search.StepGoal {
			assert.True(t, s.Tracing())
		}
	}
	assert.Equal(t, []bool{false, false, false, true, true, true, false}, tracing)
	assert.False(t, s.Tracing())

	g = mustParse(t, "S#E\n")
	s, err = search.NewStepper(g)
	require.NoError(t, err)
	for !s.Done() {
		s.Step()
		assert.False(t, s.Tracing(), "no goal, no trace")
	}
}

// TestStepper_ClosedAfterNextStep: the expanded cell is projected Closed
// only when the following step begins, so a frame drawn between steps shows
// the current cell still open.
func TestStepper_ClosedAfterNextStep(t *testing.T) {
	g := mustParse(t, "S..\n...\n..E\n")
	s, err := search.NewStepper(g)
	require.NoError(t, err)

	require.Equal(t, search.StepExpanded, s.Step()) // start
	require.Equal(t, search.StepExpanded, s.Step()) // (1,0)
	down := cellAt(t, g, 1, 0)
	assert.Equal(t, grid.Open, down.State())

	require.Equal(t, search.StepExpanded, s.Step()) // (0,1)
	assert.Equal(t, grid.Closed, down.State())
	assert.Equal(t, 3, s.Result().Expanded)

	cost, ok := s.Cost(cellAt(t, g, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, 2, cost)
	_, ok = s.Cost(cellAt(t, g, 2, 2))
	assert.False(t, ok)

	pred := s.Predecessors()
	assert.Same(t, g.Start(), pred[down])
}

// TestStepper_Exhausted and Cancel.
func TestStepper_ExhaustedAndCancel(t *testing.T) {
	g := mustParse(t, "S#E\n")
	s, err := search.NewStepper(g)
	require.NoError(t, err)
	assert.Equal(t, search.StepExpanded, s.Step())
	assert.Equal(t, search.StepExhausted, s.Step())
	assert.Equal(t, search.NotFound, s.Result().Outcome)

	s.Cancel() // no effect once done
	assert.Equal(t, search.NotFound, s.Result().Outcome)

	g = mustParse(t, "S..E\n")
	s, err = search.NewStepper(g)
	require.NoError(t, err)
	s.Step()
	s.Cancel()
	assert.True(t, s.Done())
	assert.Equal(t, search.Cancelled, s.Result().Outcome)
	assert.Equal(t, "So.E\n", g.String())
}

// TestStepper_Truncated stops at the expansion budget.
func TestStepper_Truncated(t *testing.T) {
	g := mustParse(t, "S...E\n")
	s, err := search.NewStepper(g, search.WithMaxExpansions(2))
	require.NoError(t, err)
	assert.Equal(t, search.StepExpanded, s.Step())
	assert.Equal(t, search.StepExpanded, s.Step())
	assert.Equal(t, search.StepTruncated, s.Step())
	assert.True(t, s.Result().Truncated)
}

// TestReconstruct walks predecessors and reports each step once.
func TestReconstruct(t *testing.T) {
	g := mustParse(t, "S..\n..E\n")
	a, b, c, d := cellAt(t, g, 0, 0), cellAt(t, g, 0, 1), cellAt(t, g, 0, 2), cellAt(t, g, 1, 2)
	pred := map[*grid.Cell]*grid.Cell{b: a, c: b, d: c}

	var visited [][2]int
	chain := search.Reconstruct(pred, d, func(x *grid.Cell) { visited = append(visited, pos(x)) })
	assert.Equal(t, [][2]int{{1, 2}, {0, 2}, {0, 1}, {0, 0}}, coords(chain))
	assert.Equal(t, [][2]int{{0, 2}, {0, 1}, {0, 0}}, visited)

	assert.Equal(t, [][2]int{{0, 0}}, coords(search.Reconstruct(pred, a, nil)))
}
