// Package gridpath finds and visualizes shortest paths on obstacle grids.
//
// A grid is a rows×cols matrix of cells connected to their four orthogonal
// neighbours; barriers are impassable. The search expands cells in order of
// path cost, breaking ties by discovery order, and projects its progress
// onto the cells (Open, Closed, Path) so the exploration can be drawn.
//
// Packages:
//
//	grid/     cells, states, adjacency, editing rules, ASCII layouts
//	frontier/ (cost, sequence) priority queue
//	search/   Search, Stepper, Reconstruct, Distances
//	internal/ config, metrics, render, tui
//	cmd/      the gridpath command: solve, tui, bench
//
// Quick example:
//
//	g, _ := grid.ParseString("S.#.\n..#.\n...E")
//	res, _ := search.Search(ctx, g)
//	fmt.Print(g)           // Sx#.
//	                       // *x#.
//	                       // ***E
//	fmt.Println(res.Length) // 6
//
// Complexity: O(V log V) time and O(V) memory per search for V = rows×cols.
package gridpath
