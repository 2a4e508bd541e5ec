package search_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// mustParse builds a grid from an ASCII layout or fails the test.
func mustParse(t testing.TB, layout string) *grid.Grid {
	t.Helper()
	g, err := grid.ParseString(layout)
	require.NoError(t, err)
	return g
}

// cellAt returns the cell at (row, col) or fails the test.
func cellAt(t testing.TB, g *grid.Grid, row, col int) *grid.Cell {
	t.Helper()
	c, err := g.At(row, col)
	require.NoError(t, err)
	return c
}

func pos(c *grid.Cell) [2]int {
	r, col := c.Pos()
	return [2]int{r, col}
}

func coords(cells []*grid.Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = pos(c)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// requireValidPath checks the reconstruction round-trip: the path starts at
// start, ends at end, moves one axis-aligned unit step at a time, never
// repeats a cell and never crosses a barrier.
func requireValidPath(t *testing.T, g *grid.Grid, res search.Result) {
	t.Helper()
	require.True(t, res.Found())
	require.Len(t, res.Path, res.Length)
	assert.Equal(t, res.Cost+1, res.Length)
	assert.Same(t, g.Start(), res.Path[0])
	assert.Same(t, g.End(), res.Path[len(res.Path)-1])

	seen := make(map[*grid.Cell]bool, len(res.Path))
	for i, c := range res.Path {
		require.False(t, seen[c], "cell %v repeated", pos(c))
		seen[c] = true
		require.NotEqual(t, grid.Barrier, c.State())
		if i == 0 {
			continue
		}
		from, to := pos(res.Path[i-1]), pos(c)
		require.Equal(t, 1, abs(to[0]-from[0])+abs(to[1]-from[1]),
			"step %v->%v is not a unit move", from, to)
	}
}

//----------------------------------------------------------------------------//
// Invocation errors
//----------------------------------------------------------------------------//

func TestSearch_InvalidInvocation(t *testing.T) {
	ctx := context.Background()

	_, err := search.Search(ctx, nil)
	assert.ErrorIs(t, err, search.ErrNilGrid)
	assert.ErrorIs(t, err, search.ErrInvalidInvocation)

	g := mustParse(t, "...\n..E\n")
	_, err = search.Search(ctx, g)
	assert.ErrorIs(t, err, search.ErrNoStart)

	g = mustParse(t, "S..\n...\n")
	_, err = search.Search(ctx, g)
	assert.ErrorIs(t, err, search.ErrNoEnd)

	other := mustParse(t, "S.E\n")
	_, err = search.Search(ctx, g, search.To(cellAt(t, other, 0, 2)))
	assert.ErrorIs(t, err, search.ErrForeignCell)

	walled := mustParse(t, "S#E\n")
	_, err = search.Search(ctx, walled, search.From(cellAt(t, walled, 0, 1)))
	assert.ErrorIs(t, err, search.ErrBarrierEndpoint)

	_, err = search.Search(ctx, walled, search.WithMaxExpansions(-1))
	assert.ErrorIs(t, err, search.ErrOptionViolation)
}

//----------------------------------------------------------------------------//
// End-to-end scenarios
//----------------------------------------------------------------------------//

// TestSearch_EmptyCornerToCorner: 5×5 empty grid, corner to corner.
func TestSearch_EmptyCornerToCorner(t *testing.T) {
	g, err := grid.Build(5, 500)
	require.NoError(t, err)
	require.NoError(t, g.SetStart(0, 0))
	require.NoError(t, g.SetEnd(4, 4))

	calls := 0
	res, err := search.Search(context.Background(), g, search.WithProgress(func() { calls++ }))
	require.NoError(t, err)

	assert.Equal(t, search.Found, res.Outcome)
	assert.Equal(t, 9, res.Length)
	assert.Equal(t, 8, res.Cost)
	assert.LessOrEqual(t, res.Expanded, 25)
	assert.Equal(t, res.Expanded+res.Length-1, calls, "one call per expansion plus one per traced step")
	assert.NotEmpty(t, res.RunID)
	requireValidPath(t, g, res)

	for _, c := range res.Path[1 : len(res.Path)-1] {
		assert.Equal(t, grid.Path, c.State())
	}
	assert.Equal(t, grid.Start, g.Start().State())
	assert.Equal(t, grid.End, g.End().State())
}

// TestSearch_WalledOff: the middle row walls off the goal.
func TestSearch_WalledOff(t *testing.T) {
	g := mustParse(t, `
		S..
		###
		..E
	`)
	calls := 0
	res, err := search.Search(context.Background(), g, search.WithProgress(func() { calls++ }))
	require.NoError(t, err)

	assert.Equal(t, search.NotFound, res.Outcome)
	assert.False(t, res.Found())
	assert.Nil(t, res.Path)
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, 3, calls)
	assert.False(t, res.Truncated)
	assert.Equal(t, "Sxx\n###\n..E\n", g.String())
}

// TestSearch_StartIsGoal: start and goal are the same cell.
func TestSearch_StartIsGoal(t *testing.T) {
	g := mustParse(t, "S..\n...\n..E\n")
	calls := 0
	res, err := search.Search(context.Background(), g,
		search.To(g.Start()),
		search.WithProgress(func() { calls++ }),
	)
	require.NoError(t, err)

	assert.True(t, res.Found())
	assert.Equal(t, 1, res.Length)
	assert.Equal(t, 0, res.Cost)
	assert.Equal(t, 0, res.Expanded)
	assert.Equal(t, 0, calls)
	assert.Equal(t, [][2]int{{0, 0}}, coords(res.Path))
}

// TestSearch_FromToPlainCells searches between two Default cells. Neither
// endpoint takes a bookkeeping state, so the finished grid shows only the
// path between them.
func TestSearch_FromToPlainCells(t *testing.T) {
	g := mustParse(t, "S...\n....\n...E\n")
	from, to := cellAt(t, g, 0, 1), cellAt(t, g, 1, 3)

	var traced [][2]int
	res, err := search.Search(context.Background(), g,
		search.From(from),
		search.To(to),
		search.WithObserver(search.Observer{OnTrace: func(c *grid.Cell) { traced = append(traced, pos(c)) }}),
	)
	require.NoError(t, err)

	require.True(t, res.Found())
	assert.Equal(t, 3, res.Cost)
	assert.Equal(t, 4, res.Length)
	assert.Equal(t, 10, res.Expanded)
	assert.Equal(t, [][2]int{{0, 1}, {1, 1}, {1, 2}, {1, 3}}, coords(res.Path))
	assert.Equal(t, [][2]int{{1, 2}, {1, 1}, {0, 1}}, traced)

	assert.Equal(t, grid.Default, from.State())
	assert.Equal(t, grid.Default, to.State())
	assert.Equal(t, "S.xx\nx**.\nxxxE\n", g.String())
}

//----------------------------------------------------------------------------//
// Ordering and determinism
//----------------------------------------------------------------------------//

// TestSearch_TieBreak pins the expansion order on a 2×2 grid: equal-cost
// cells expand in discovery order (down before right) and the path follows
// the first discovery.
func TestSearch_TieBreak(t *testing.T) {
	g := mustParse(t, "S.\n.E\n")

	var order [][2]int
	obs := search.Observer{OnExpand: func(c *grid.Cell, _ int) { order = append(order, pos(c)) }}
	res, err := search.Search(context.Background(), g, search.WithObserver(obs))
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {0, 1}}, order)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {1, 1}}, coords(res.Path))
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, "Sx\n*E\n", g.String())
}

// TestSearch_Idempotent runs twice on an unmodified grid.
func TestSearch_Idempotent(t *testing.T) {
	g, err := grid.Random(12, 120, 0.25, 3)
	require.NoError(t, err)

	first, err := search.Search(context.Background(), g)
	require.NoError(t, err)
	rendered := g.String()

	second, err := search.Search(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, first.Expanded, second.Expanded)
	assert.Equal(t, coords(first.Path), coords(second.Path))
	assert.Equal(t, rendered, g.String())
	assert.NotEqual(t, first.RunID, second.RunID)
}

//----------------------------------------------------------------------------//
// Optimality
//----------------------------------------------------------------------------//

// TestSearch_ManhattanOnEmptyGrids: without barriers the cost equals the
// Manhattan distance for every start/end pair.
func TestSearch_ManhattanOnEmptyGrids(t *testing.T) {
	const n = 4
	for sr := 0; sr < n; sr++ {
		for sc := 0; sc < n; sc++ {
			for er := 0; er < n; er++ {
				for ec := 0; ec < n; ec++ {
					if sr == er && sc == ec {
						continue
					}
					g, err := grid.New(n, n, 1)
					require.NoError(t, err)
					require.NoError(t, g.SetStart(sr, sc))
					require.NoError(t, g.SetEnd(er, ec))

					res, err := search.Search(context.Background(), g, search.WithDisplay(false))
					require.NoError(t, err)
					require.True(t, res.Found())
					assert.Equal(t, abs(sr-er)+abs(sc-ec), res.Length-1)
					requireValidPath(t, g, res)
				}
			}
		}
	}
}

// TestSearch_MatchesBFS compares search costs with the breadth-first flood
// on random small grids.
func TestSearch_MatchesBFS(t *testing.T) {
	for seed := int64(1); seed <= 60; seed++ {
		g, err := grid.Random(7, 70, 0.3, seed)
		require.NoError(t, err)

		dist, err := search.Distances(g, g.Start())
		require.NoError(t, err)
		res, err := search.Search(context.Background(), g)
		require.NoError(t, err)

		want := dist.To(g.End())
		if want == search.Unreachable {
			assert.Equal(t, search.NotFound, res.Outcome, "seed %d", seed)
			assert.Equal(t, dist.Reached(), res.Expanded, "seed %d: exhaustive search expands the whole region", seed)
			continue
		}
		assert.Equal(t, want, res.Cost, "seed %d", seed)
		requireValidPath(t, g, res)
	}
}

//----------------------------------------------------------------------------//
// Adjacency, budget, cancellation
//----------------------------------------------------------------------------//

// TestSearch_RebuildsStaleAdjacency: a wall added after the adjacency build
// is honoured because the search rebuilds stale adjacency.
func TestSearch_RebuildsStaleAdjacency(t *testing.T) {
	g := mustParse(t, "S..\n...\n..E\n")
	g.UpdateNeighbors()
	for c := 0; c < 3; c++ {
		require.NoError(t, g.SetBarrier(1, c))
	}
	require.True(t, g.AdjacencyStale())

	res, err := search.Search(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, search.NotFound, res.Outcome)
	assert.False(t, g.AdjacencyStale())
}

func TestSearch_MaxExpansions(t *testing.T) {
	g, err := grid.Build(5, 50)
	require.NoError(t, err)
	require.NoError(t, g.SetStart(0, 0))
	require.NoError(t, g.SetEnd(4, 4))

	res, err := search.Search(context.Background(), g, search.WithMaxExpansions(3))
	require.NoError(t, err)
	assert.Equal(t, search.NotFound, res.Outcome)
	assert.True(t, res.Truncated)
	assert.Equal(t, 3, res.Expanded)
}

// TestSearch_CancelledBeforeStart reports Cancelled without expanding.
func TestSearch_CancelledBeforeStart(t *testing.T) {
	g := mustParse(t, "S..\n..E\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := search.Search(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, search.Cancelled, res.Outcome)
	assert.Equal(t, 0, res.Expanded)
	assert.Nil(t, res.Path)
}

// TestSearch_CancelledMidway cancels from the progress callback; the search
// stops at the next iteration boundary with the last expansion projected.
func TestSearch_CancelledMidway(t *testing.T) {
	g, err := grid.Build(5, 50)
	require.NoError(t, err)
	require.NoError(t, g.SetStart(0, 0))
	require.NoError(t, g.SetEnd(4, 4))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	res, err := search.Search(ctx, g, search.WithProgress(func() {
		calls++
		if calls == 3 {
			cancel()
		}
	}))
	require.NoError(t, err)

	assert.Equal(t, search.Cancelled, res.Outcome)
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, grid.Start, cellAt(t, g, 0, 0).State())
	assert.Equal(t, grid.Closed, cellAt(t, g, 1, 0).State())
	assert.Equal(t, grid.Closed, cellAt(t, g, 0, 1).State())
	assert.Equal(t, grid.Open, cellAt(t, g, 2, 0).State())
	assert.Equal(t, grid.Open, cellAt(t, g, 0, 2).State())
}

// TestSearch_NoDisplay leaves cell states untouched.
func TestSearch_NoDisplay(t *testing.T) {
	layout := "S.#\n...\n#.E\n"
	g := mustParse(t, layout)
	res, err := search.Search(context.Background(), g, search.WithDisplay(false))
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, layout, g.String())
}

// TestSearch_Logs emits one debug record per search.
func TestSearch_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := mustParse(t, "S.E\n")
	_, err := search.Search(context.Background(), g, search.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "search finished")
	assert.Contains(t, buf.String(), "outcome=found")
	assert.Contains(t, buf.String(), "length=3")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "found", search.Found.String())
	assert.Equal(t, "not_found", search.NotFound.String())
	assert.Equal(t, "cancelled", search.Cancelled.String())
	assert.Equal(t, "unknown", search.Outcome(9).String())
}
