// Package grid models the mutable 2D board the path search runs on.
//
// What:
//
//   - Grid owns a rows×cols matrix of Cells, addressed row-major by (row, col).
//   - Each Cell carries a display State (Default, Start, End, Barrier, Open,
//     Closed, Path) and a lazily built 4-neighbour adjacency snapshot.
//   - Editing follows the visualizer's rules: one start, one end, any number
//     of barriers; Paint/Erase mirror the primary and secondary click.
//   - Layouts can be read from ASCII (Parse) and rendered back (String).
//
// Adjacency:
//
//	Neighbour lists are snapshots of the barrier layout at build time, in the
//	order down, up, right, left. Barrier edits bump a topology version, so
//	AdjacencyStale reports when UpdateNeighbors must run again. The search
//	package performs that rebuild itself before it starts.
//
// Complexity:
//
//   - Build/New, UpdateNeighbors, Clear, ClearSearch: O(rows×cols).
//   - At, NeighborsOf (after first build), editing calls: O(1).
//
// Errors:
//
//   - ErrInvalidSize, ErrOutOfBounds, ErrForeignCell, ErrOccupied.
//   - ErrEmptyLayout, ErrNonRectangular, ErrBadGlyph, ErrDuplicateStart,
//     ErrDuplicateEnd for Parse; ErrBadDensity for Scatter.
//
// A Grid is not safe for concurrent use.
package grid
