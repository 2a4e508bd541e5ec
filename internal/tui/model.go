// Package tui is the interactive grid editor. The cursor paints Start, End
// and Barriers, space runs an animated search, and quitting mid-search
// cancels it cooperatively.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/metrics"
	"github.com/katalvlaran/gridpath/internal/render"
	"github.com/katalvlaran/gridpath/search"
)

// Config configures the editor.
type Config struct {
	// Delay between animation frames; 0 steps as fast as ticks allow.
	Delay time.Duration
	// StepsPerFrame is the number of Stepper steps taken per frame.
	StepsPerFrame int
	// MaxExpansions is forwarded to the search; 0 disables the budget.
	MaxExpansions int
	Logger        *slog.Logger
	// Metrics, when set, receives every finished search.
	Metrics *metrics.Recorder
}

// tickMsg advances the running search. gen ties it to the search that
// scheduled it; ticks from a cancelled search are dropped.
type tickMsg struct{ gen int }

// Model is the bubbletea model of the editor.
type Model struct {
	cfg      Config
	grid     *grid.Grid
	renderer *render.Renderer
	keys     KeyMap
	help     help.Model

	row, col int

	stepper *search.Stepper
	gen     int
	last    *search.Result
	status  string
	err     error

	quitting bool
}

// New returns an editor over g drawn with r.
func New(g *grid.Grid, r *render.Renderer, cfg Config) Model {
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		cfg:      cfg,
		grid:     g,
		renderer: r,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		status:   "place start, end and barriers; space to search",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Searching reports whether a search is in progress.
func (m Model) Searching() bool { return m.stepper != nil }

// Cursor returns the cursor position.
func (m Model) Cursor() (row, col int) { return m.row, m.col }

// LastResult returns the most recent finished search, if any.
func (m Model) LastResult() (search.Result, bool) {
	if m.last == nil {
		return search.Result{}, false
	}
	return *m.last, true
}

// Err returns the last editing or search error shown in the status line.
func (m Model) Err() error { return m.err }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || m.stepper == nil {
			return m, nil
		}
		return m.advance()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.stepper != nil {
			m.stepper.Cancel()
			m.finish()
		}
		m.quitting = true
		return m, tea.Quit
	}
	// The grid belongs to the search until it finishes.
	if m.stepper != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Paint):
		st, err := m.grid.Paint(m.row, m.col)
		m.report(err, fmt.Sprintf("(%d,%d) %s", m.row, m.col, st))
	case key.Matches(msg, m.keys.Erase):
		m.report(m.grid.Erase(m.row, m.col), fmt.Sprintf("(%d,%d) erased", m.row, m.col))
	case key.Matches(msg, m.keys.Clear):
		m.grid.Clear()
		m.last = nil
		m.report(nil, "cleared")
	case key.Matches(msg, m.keys.Search):
		return m.begin()
	}
	return m, nil
}

func (m *Model) move(dr, dc int) {
	if m.grid.InBounds(m.row+dr, m.col+dc) {
		m.row += dr
		m.col += dc
	}
}

func (m *Model) report(err error, ok string) {
	m.err = err
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ok
}

func (m Model) begin() (tea.Model, tea.Cmd) {
	st, err := search.NewStepper(m.grid,
		search.WithDisplay(true),
		search.WithMaxExpansions(m.cfg.MaxExpansions),
		search.WithLogger(m.cfg.Logger),
	)
	if err != nil {
		m.report(err, "")
		return m, nil
	}
	m.stepper = st
	m.gen++
	m.last = nil
	m.report(nil, "searching...")
	return m, m.tick()
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	for i := 0; i < m.cfg.StepsPerFrame && !m.stepper.Done(); i++ {
		m.stepper.Step()
	}
	if !m.stepper.Done() {
		if m.stepper.Tracing() {
			m.status = "tracing path..."
		} else {
			m.status = fmt.Sprintf("searching... (cells checked: %d)", m.stepper.Result().Expanded)
		}
		return m, m.tick()
	}
	m.finish()
	return m, nil
}

// finish publishes the stepper's result and releases the grid.
func (m *Model) finish() {
	res := m.stepper.Result()
	m.stepper = nil
	m.last = &res
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.Observe(res)
	}
	m.cfg.Logger.Debug("tui search finished",
		slog.String("run", res.RunID),
		slog.String("outcome", res.Outcome.String()),
		slog.Int("expanded", res.Expanded),
	)
	switch res.Outcome {
	case search.Found:
		m.status = fmt.Sprintf("cells checked: %d  path length: %d  time: %s",
			res.Expanded, res.Length, res.Elapsed.Round(time.Microsecond))
	case search.NotFound:
		m.status = fmt.Sprintf("no path (cells checked: %d)", res.Expanded)
	default:
		m.status = "search cancelled"
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.cfg.Delay, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	status := statusStyle.Render(m.status)
	if m.err != nil {
		status = errorStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("gridpath %d×%d", m.grid.Rows(), m.grid.Cols())),
		m.renderer.GridCursor(m.grid, m.row, m.col),
		m.renderer.Legend(),
		status,
		m.help.View(m.keys),
	)
}
