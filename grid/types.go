package grid

import "errors"

// Sentinel errors for grid construction, layout parsing and editing.
var (
	// ErrInvalidSize indicates a non-positive row/column count or a negative size hint.
	ErrInvalidSize = errors.New("grid: rows and cols must be positive and size non-negative")
	// ErrOutOfBounds indicates a (row, col) outside the grid.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrForeignCell indicates a cell that does not belong to this grid.
	ErrForeignCell = errors.New("grid: cell belongs to another grid")
	// ErrEmptyLayout indicates a layout with no rows or no columns.
	ErrEmptyLayout = errors.New("grid: layout must have at least one row and one column")
	// ErrNonRectangular indicates layout rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all layout rows must have the same length")
	// ErrBadGlyph indicates an unknown character in a layout.
	ErrBadGlyph = errors.New("grid: unknown layout glyph")
	// ErrDuplicateStart indicates a second start cell in a layout.
	ErrDuplicateStart = errors.New("grid: more than one start cell")
	// ErrDuplicateEnd indicates a second end cell in a layout.
	ErrDuplicateEnd = errors.New("grid: more than one end cell")
	// ErrOccupied indicates an edit targeting the current start or end cell.
	ErrOccupied = errors.New("grid: cell is the current start or end")
	// ErrBadDensity indicates a barrier density outside [0, 1].
	ErrBadDensity = errors.New("grid: density must be within [0, 1]")
)

// Default construction parameters: a 25×25 board on an 800-pixel window.
const (
	DefaultRows  = 25
	DefaultWidth = 800
)

// State is the display state of a cell.
//
// Start, End and Barrier are set by the editing layer; Open, Closed and Path
// are projections of search bookkeeping and are cleared by ClearSearch.
type State int

const (
	// Default is an empty, walkable cell.
	Default State = iota
	// Start marks the search origin.
	Start
	// End marks the search goal.
	End
	// Barrier marks an impassable cell.
	Barrier
	// Open marks a cell currently in the search frontier.
	Open
	// Closed marks an expanded cell.
	Closed
	// Path marks a cell on the reconstructed shortest path.
	Path
)

var stateNames = [...]string{"default", "start", "end", "barrier", "open", "closed", "path"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Transient reports whether s is a search projection (Open, Closed, Path).
func (s State) Transient() bool {
	return s == Open || s == Closed || s == Path
}

// Cell is one grid position. Position and size are fixed at construction
// and only readable through Pos, XY and Size.
//
// The neighbor list is a snapshot taken when adjacency is built: a cell that
// becomes a Barrier later stays in its neighbors' lists until the grid
// rebuilds adjacency.
type Cell struct {
	row, col int // position within the grid
	x, y     int // pixel layout hint: x = row*size, y = col*size
	size     int // pixel edge length hint

	state     State
	neighbors []*Cell
	built     bool // neighbors holds a snapshot
	owner     *Grid
}

// State returns the current display state.
func (c *Cell) State() State { return c.state }

// Is reports whether the cell is currently in state s.
func (c *Cell) Is(s State) bool { return c.state == s }

// Pos returns (row, col).
func (c *Cell) Pos() (row, col int) { return c.row, c.col }

// XY returns the pixel layout hint: the row maps to x, the column to y.
func (c *Cell) XY() (x, y int) { return c.x, c.y }

// Size returns the pixel edge length hint.
func (c *Cell) Size() int { return c.size }

// Grid is a rows×cols matrix of cells, addressed row-major by (row, col).
//
// Grid is not safe for concurrent use. It tracks a topology version that is
// bumped on every Start/End/Barrier edit; adjacency built for an older
// version is reported stale by AdjacencyStale.
type Grid struct {
	rows, cols int
	size       int
	cells      [][]*Cell

	start, end *Cell

	version      uint64 // bumped on topology edits
	adjacencyVer uint64 // version the last full rebuild saw
	adjacencyOK  bool   // a full rebuild has happened at adjacencyVer
}

// neighborOffsets lists (dRow, dCol) in the order neighbors are appended:
// down, up, right, left. Expansion order, and therefore tie-breaking between
// equal-cost cells, follows this order.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
