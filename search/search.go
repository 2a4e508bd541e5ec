package search

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/gridpath/grid"
)

// Search runs the best-first search from the start cell to the end cell of
// g (or the cells given by From/To) until the goal is reached, the frontier
// is exhausted, or ctx is done.
//
// Per outer iteration, in order:
//  1. ctx is checked; if done the result is Cancelled.
//  2. The lowest (cost, sequence) entry is popped and leaves the open set.
//  3. If it is the goal, the path is reconstructed (one Progress call per
//     predecessor walked) and the result is Found.
//  4. Each neighbour is relaxed with unit cost; newly opened neighbours are
//     pushed with a fresh sequence number and projected as Open.
//  5. Progress is called exactly once.
//  6. The cell is projected as Closed unless it is an endpoint.
//
// Returns an error wrapping ErrInvalidInvocation when the grid or an
// endpoint is missing; NotFound and Cancelled are outcomes, not errors.
//
// Complexity: O(V log V) time and O(V) memory for V = rows×cols.
func Search(ctx context.Context, g *grid.Grid, opts ...Option) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := NewStepper(g, opts...)
	if err != nil {
		return Result{}, err
	}
	progress := s.opts.Progress

	for !s.Done() {
		if ctx.Err() != nil {
			s.Cancel()
			break
		}
		switch s.Step() {
		case StepExpanded:
			progress()
		case StepGoal:
			s.traceAll(progress)
		}
	}

	res := s.Result()
	s.opts.Logger.LogAttrs(ctx, slog.LevelDebug, "search finished",
		slog.String("run", res.RunID),
		slog.String("outcome", res.Outcome.String()),
		slog.Int("expanded", res.Expanded),
		slog.Int("length", res.Length),
		slog.Bool("truncated", res.Truncated),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Reconstruct walks pred backwards from goal until it reaches a cell with no
// predecessor (the start) and returns the cells in goal→start order, both
// ends included. visit, if non-nil, is called once for every predecessor
// walked, i.e. for every cell except goal.
func Reconstruct(pred map[*grid.Cell]*grid.Cell, goal *grid.Cell, visit func(*grid.Cell)) []*grid.Cell {
	chain := []*grid.Cell{goal}
	for cur := goal; len(chain) <= len(pred)+1; {
		p, ok := pred[cur]
		if !ok {
			break
		}
		chain = append(chain, p)
		if visit != nil {
			visit(p)
		}
		cur = p
	}
	return chain
}
