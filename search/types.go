package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors. Every invocation error wraps ErrInvalidInvocation and is
// returned before the search loop starts.
var (
	// ErrInvalidInvocation is the root of all invocation errors.
	ErrInvalidInvocation = errors.New("search: invalid invocation")

	// ErrNilGrid indicates a nil *grid.Grid.
	ErrNilGrid = fmt.Errorf("%w: grid is nil", ErrInvalidInvocation)

	// ErrNoStart indicates that neither the grid nor From supplied a start cell.
	ErrNoStart = fmt.Errorf("%w: start cell not set", ErrInvalidInvocation)

	// ErrNoEnd indicates that neither the grid nor To supplied an end cell.
	ErrNoEnd = fmt.Errorf("%w: end cell not set", ErrInvalidInvocation)

	// ErrForeignCell indicates an endpoint that does not belong to the grid.
	ErrForeignCell = fmt.Errorf("%w: endpoint is not a cell of this grid", ErrInvalidInvocation)

	// ErrBarrierEndpoint indicates a start or end cell that is a barrier.
	ErrBarrierEndpoint = fmt.Errorf("%w: endpoint is a barrier", ErrInvalidInvocation)

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = fmt.Errorf("%w: invalid option supplied", ErrInvalidInvocation)
)

// Outcome is the terminal state of a search.
type Outcome int

const (
	// NotFound means the frontier was exhausted (or the expansion budget
	// ran out) without reaching the goal. It is a normal result, not an error.
	NotFound Outcome = iota
	// Found means the goal was reached and Result.Path is set.
	Found
	// Cancelled means the context was done at an iteration boundary; the
	// search neither succeeded nor proved that no path exists.
	Cancelled
)

// String returns a lower-case outcome label, also used as a metrics label.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result reports one search invocation.
type Result struct {
	RunID   string
	Outcome Outcome

	// Path lists the cells from start to goal inclusive. Nil unless Found.
	Path []*grid.Cell

	// Cost is the number of unit steps from start to goal.
	Cost int

	// Length is Cost+1: the number of cells on the path, start included.
	// This is the "path length" the visualizer has always printed.
	Length int

	// Expanded counts cells whose neighbours were relaxed.
	Expanded int

	// Truncated is set when MaxExpansions stopped the search.
	Truncated bool

	Elapsed time.Duration
}

// Found reports whether the goal was reached.
func (r Result) Found() bool { return r.Outcome == Found }

// Observer receives bookkeeping events. Nil fields are skipped.
type Observer struct {
	// OnOpen fires when a cell enters the frontier with its tentative cost.
	OnOpen func(c *grid.Cell, cost int)
	// OnExpand fires after a cell's neighbours have been relaxed.
	OnExpand func(c *grid.Cell, cost int)
	// OnTrace fires for each predecessor walked during path reconstruction.
	OnTrace func(c *grid.Cell)
}

// Options holds the parameters of one search.
type Options struct {
	// Progress is invoked once per expansion (after relaxation) and once per
	// reconstruction step. It must not edit the grid topology.
	Progress func()

	// Display projects bookkeeping onto cell display states
	// (Open, Closed, Path). Default true.
	Display bool

	// Logger receives one debug record per finished search. Default discards.
	Logger *slog.Logger

	Observer Observer

	// MaxExpansions, if > 0, stops the search after that many expansions.
	MaxExpansions int

	// From and To override the grid's start and end cells.
	From, To *grid.Cell

	// internal error recorded during option parsing
	err error
}

// Option configures a search.
type Option func(*Options)

// DefaultOptions returns no-op progress, display on, a discarding logger,
// no expansion limit and the grid's own endpoints.
func DefaultOptions() Options {
	return Options{
		Progress: func() {},
		Display:  true,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithProgress registers the progress callback.
func WithProgress(fn func()) Option {
	return func(o *Options) {
		if fn != nil {
			o.Progress = fn
		}
	}
}

// WithDisplay enables or disables display-state projection.
func WithDisplay(on bool) Option {
	return func(o *Options) { o.Display = on }
}

// WithLogger sets the logger used for the completion record.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers bookkeeping hooks.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithMaxExpansions bounds the number of expansions.
//
//	n > 0: stop after n expansions (Result.Truncated)
//	n == 0: no limit
//	n < 0: ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// From searches from c instead of the grid's start cell.
func From(c *grid.Cell) Option {
	return func(o *Options) { o.From = c }
}

// To searches towards c instead of the grid's end cell.
func To(c *grid.Cell) Option {
	return func(o *Options) { o.To = c }
}
