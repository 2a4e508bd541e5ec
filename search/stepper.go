package search

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/frontier"
	"github.com/katalvlaran/gridpath/grid"
)

// stepCost is the cost of moving between adjacent cells.
const stepCost = 1

// StepKind tells what a call to Stepper.Step did.
type StepKind int

const (
	// StepExpanded: one cell was popped and its neighbours relaxed.
	StepExpanded StepKind = iota
	// StepGoal: the goal was popped; reconstruction starts next.
	StepGoal
	// StepTraced: one predecessor was walked during reconstruction.
	StepTraced
	// StepExhausted: the frontier ran empty; the result is NotFound.
	StepExhausted
	// StepTruncated: the expansion budget ran out; the result is NotFound.
	StepTruncated
	// StepDone: the search had already finished; nothing happened.
	StepDone
)

type phase int

const (
	phaseSearch phase = iota
	phaseTrace
	phaseDone
)

// Stepper runs the search one step at a time, for callers that drive their
// own loop (a UI tick, a debugger). Search is a Stepper driven to the end.
//
// A Stepper exclusively uses its grid until Done; the grid must not be
// edited in between steps.
type Stepper struct {
	g     *grid.Grid
	opts  Options
	start *grid.Cell
	goal  *grid.Cell

	gScore map[*grid.Cell]int
	pred   map[*grid.Cell]*grid.Cell
	open   map[*grid.Cell]struct{}
	closed map[*grid.Cell]struct{}
	queue  *frontier.Queue[*grid.Cell]

	pending *grid.Cell // expanded cell whose Closed projection is still due
	cursor  *grid.Cell // reconstruction position
	chain   []*grid.Cell

	phase  phase
	began  time.Time
	result Result
}

// NewStepper validates the invocation and seeds the frontier with the start
// cell. Adjacency is rebuilt first when the grid reports it stale, and old
// Open/Closed/Path projections are cleared when Display is on.
func NewStepper(g *grid.Grid, opts ...Option) (*Stepper, error) {
	// 1) Validate the grid is non-nil
	if g == nil {
		return nil, ErrNilGrid
	}
	// 2) Build Options; the first option error wins
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 3) Resolve endpoints: From/To override the grid's own start and end
	start, goal := g.Start(), g.End()
	if o.From != nil {
		start = o.From
	}
	if o.To != nil {
		goal = o.To
	}
	if start == nil {
		return nil, ErrNoStart
	}
	if goal == nil {
		return nil, ErrNoEnd
	}
	// 4) Both endpoints must belong to g and be passable
	for _, c := range []*grid.Cell{start, goal} {
		if !g.Owns(c) {
			return nil, ErrForeignCell
		}
		if c.Is(grid.Barrier) {
			return nil, ErrBarrierEndpoint
		}
	}

	// 5) Rebuild adjacency after barrier edits and wipe old projections
	if g.AdjacencyStale() {
		g.UpdateNeighbors()
	}
	if o.Display {
		g.ClearSearch()
	}

	// 6) Seed the frontier with the start at cost zero
	n := g.Rows() * g.Cols()
	s := &Stepper{
		g:      g,
		opts:   o,
		start:  start,
		goal:   goal,
		gScore: make(map[*grid.Cell]int, n),
		pred:   make(map[*grid.Cell]*grid.Cell, n),
		open:   make(map[*grid.Cell]struct{}, n),
		closed: make(map[*grid.Cell]struct{}, n),
		queue:  frontier.New[*grid.Cell](n),
		began:  time.Now(),
		result: Result{RunID: uuid.NewString()},
	}
	s.gScore[start] = 0
	s.queue.Push(0, start)
	s.open[start] = struct{}{}
	return s, nil
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.phase == phaseDone }

// Tracing reports whether the goal was reached and the path is being walked.
func (s *Stepper) Tracing() bool { return s.phase == phaseTrace }

// Result returns the final result once Done, or the running counters.
func (s *Stepper) Result() Result {
	r := s.result
	r.Expanded = len(s.closed)
	return r
}

// Cost returns the best known cost of c and whether c has been reached.
func (s *Stepper) Cost(c *grid.Cell) (int, bool) {
	v, ok := s.gScore[c]
	return v, ok
}

// Predecessors returns a copy of the predecessor links found so far.
func (s *Stepper) Predecessors() map[*grid.Cell]*grid.Cell {
	out := make(map[*grid.Cell]*grid.Cell, len(s.pred))
	for k, v := range s.pred {
		out[k] = v
	}
	return out
}

// Step advances the search by one expansion or one reconstruction step.
func (s *Stepper) Step() StepKind {
	switch s.phase {
	case phaseSearch:
		return s.expand()
	case phaseTrace:
		return s.traceOne()
	}
	return StepDone
}

// Cancel stops an unfinished search with the Cancelled outcome. The last
// completed expansion stays fully projected on the grid.
func (s *Stepper) Cancel() {
	if s.phase == phaseDone {
		return
	}
	s.flush()
	s.finish(Cancelled)
}

// expand performs one outer iteration of the relaxation loop.
func (s *Stepper) expand() StepKind {
	// 1) Close the cell expanded by the previous step
	s.flush()

	// 2) Pop the cheapest live entry, skipping stale duplicates
	var cur *grid.Cell
	for {
		e, ok := s.queue.PopMin()
		if !ok {
			s.finish(NotFound)
			return StepExhausted
		}
		if e.Cost > s.gScore[e.Item] {
			continue // stale duplicate
		}
		if _, done := s.closed[e.Item]; done {
			continue
		}
		cur = e.Item
		break
	}
	delete(s.open, cur)

	// 3) The goal ends the search phase; reconstruction starts next step
	if cur == s.goal {
		s.phase = phaseTrace
		s.cursor = cur
		s.chain = []*grid.Cell{cur}
		return StepGoal
	}
	// 4) Stop when the expansion budget is spent
	if s.opts.MaxExpansions > 0 && len(s.closed) >= s.opts.MaxExpansions {
		s.result.Truncated = true
		s.finish(NotFound)
		return StepTruncated
	}

	// 5) Relax each neighbour; a cheaper cost replaces the predecessor
	base := s.gScore[cur]
	for _, n := range s.g.NeighborsOf(cur) {
		tentative := base + stepCost
		if old, seen := s.gScore[n]; seen && tentative >= old {
			continue
		}
		s.pred[n] = cur
		s.gScore[n] = tentative
		if _, isOpen := s.open[n]; isOpen {
			continue
		}
		s.queue.Push(tentative, n)
		s.open[n] = struct{}{}
		s.project(n, grid.Open)
		if s.opts.Observer.OnOpen != nil {
			s.opts.Observer.OnOpen(n, tentative)
		}
	}

	// 6) Mark cur expanded; its Closed projection waits for the next flush
	s.closed[cur] = struct{}{}
	s.pending = cur
	if s.opts.Observer.OnExpand != nil {
		s.opts.Observer.OnExpand(cur, base)
	}
	return StepExpanded
}

// flush applies the Closed projection of the previously expanded cell.
// It runs after the progress callback has seen that expansion.
func (s *Stepper) flush() {
	if s.pending == nil {
		return
	}
	s.project(s.pending, grid.Closed)
	s.pending = nil
}

// traceOne walks one predecessor link, or finishes when the start is reached.
func (s *Stepper) traceOne() StepKind {
	p, ok := s.pred[s.cursor]
	if !ok || s.cursor == s.start {
		s.complete(s.chain)
		return StepDone
	}
	s.cursor = p
	s.chain = append(s.chain, p)
	s.visitPath(p)
	return StepTraced
}

// traceAll reconstructs the remaining path in one go, calling progress after
// every step.
func (s *Stepper) traceAll(progress func()) {
	rest := Reconstruct(s.pred, s.cursor, func(c *grid.Cell) {
		s.visitPath(c)
		progress()
	})
	s.complete(append(s.chain, rest[1:]...))
}

func (s *Stepper) visitPath(c *grid.Cell) {
	s.project(c, grid.Path)
	if s.opts.Observer.OnTrace != nil {
		s.opts.Observer.OnTrace(c)
	}
}

// complete turns a goal→start chain into the Found result.
func (s *Stepper) complete(chain []*grid.Cell) {
	path := make([]*grid.Cell, len(chain))
	for i, c := range chain {
		path[len(chain)-1-i] = c
	}
	cost := s.gScore[s.goal]
	s.result.Path = path
	s.result.Cost = cost
	s.result.Length = cost + 1
	s.finish(Found)
}

func (s *Stepper) finish(o Outcome) {
	s.phase = phaseDone
	s.result.Outcome = o
	s.result.Expanded = len(s.closed)
	s.result.Elapsed = time.Since(s.began)
}

// project paints a bookkeeping state onto c. The search's own endpoints are
// never painted, so cells named by From or To keep their state.
func (s *Stepper) project(c *grid.Cell, st grid.State) {
	if !s.opts.Display || c == s.start || c == s.goal {
		return
	}
	s.g.Mark(c, st)
}
