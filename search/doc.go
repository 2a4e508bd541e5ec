// Package search finds shortest paths on a grid.Grid with a best-first
// relaxation loop over a (cost, sequence) frontier.
//
// What:
//
//   - Search runs the loop from the grid's start to its end (or the cells
//     named by From/To) and returns a Result with an Outcome of Found,
//     NotFound or Cancelled.
//   - Stepper exposes the same loop one expansion or one reconstruction
//     step at a time, for callers that animate it on their own clock.
//   - Distances floods the grid from one origin and returns the step count
//     to every reachable cell; it shares no state with Search and is used
//     to check its results.
//
// Ordering:
//
//	With unit edge costs the loop is Dijkstra's algorithm and expands cells
//	in the same order as breadth-first search; the priority queue keeps it
//	open to weighted costs. Ties between equal-cost cells are broken by
//	discovery order, so every run on the same grid expands the same cells in
//	the same order and returns the same path.
//
// Display:
//
//	With Display on (the default) the search paints Open, Closed and Path
//	onto the grid as it goes. The search's own endpoints are never painted.
//	Observer hooks see every opened, expanded and traced cell whether or
//	not Display is on.
//
// Complexity:
//
//   - Search, Distances: O(V log V) time, O(V) memory for V = rows×cols.
//   - Stepper.Step: O(log V) per call.
//
// Errors:
//
//   - Every invocation error wraps ErrInvalidInvocation: ErrNilGrid,
//     ErrNoStart, ErrNoEnd, ErrForeignCell, ErrBarrierEndpoint and
//     ErrOptionViolation.
//   - NotFound and Cancelled are outcomes, not errors.
package search
