// Package render draws a grid in the terminal, either as plain layout glyphs
// or as coloured blocks using the visualizer's palette.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/gridpath/grid"
)

// Palette colours, one per display state.
const (
	ColorDefault = lipgloss.Color("#1B1A17")
	ColorStart   = lipgloss.Color("#FFA500")
	ColorEnd     = lipgloss.Color("#40E0D0")
	ColorClosed  = lipgloss.Color("#222831")
	ColorOpen    = lipgloss.Color("#393E46")
	ColorBarrier = lipgloss.Color("#E6D5B8")
	ColorPath    = lipgloss.Color("#6173F4")
	ColorGrid    = lipgloss.Color("#323232")
)

// cellWidth is two columns so cells look roughly square.
const cellWidth = 2

// Renderer turns a grid into a string. The zero value is not usable; build
// one with New or Plain.
type Renderer struct {
	plain  bool
	styles [grid.Path + 1]lipgloss.Style
}

// New returns a colour renderer bound to the output's colour profile.
func New(out io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(out)
	r := &Renderer{}
	colors := map[grid.State]lipgloss.Color{
		grid.Default: ColorDefault,
		grid.Start:   ColorStart,
		grid.End:     ColorEnd,
		grid.Barrier: ColorBarrier,
		grid.Open:    ColorOpen,
		grid.Closed:  ColorClosed,
		grid.Path:    ColorPath,
	}
	for s, c := range colors {
		r.styles[s] = lr.NewStyle().Background(c).Foreground(ColorGrid)
	}
	return r
}

// Plain returns a renderer that writes layout glyphs only; its output is
// accepted back by grid.Parse.
func Plain() *Renderer { return &Renderer{plain: true} }

// Grid renders g without a cursor.
func (r *Renderer) Grid(g *grid.Grid) string { return r.GridCursor(g, -1, -1) }

// GridCursor renders g and highlights (row, col). Out-of-range positions
// draw no cursor.
func (r *Renderer) GridCursor(g *grid.Grid, row, col int) string {
	if r.plain {
		return plainCursor(g, row, col)
	}
	var b strings.Builder
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			c, _ := g.At(i, j)
			b.WriteString(r.cell(c, i == row && j == col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) cell(c *grid.Cell, cursor bool) string {
	st := r.styles[c.State()]
	if cursor {
		return st.Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Render("[]")
	}
	return st.Render(strings.Repeat(" ", cellWidth))
}

// Legend renders one swatch per state with its name.
func (r *Renderer) Legend() string {
	parts := make([]string, 0, len(r.styles))
	for s := grid.Default; s <= grid.Path; s++ {
		if r.plain {
			parts = append(parts, string(s.Glyph())+" "+s.String())
			continue
		}
		parts = append(parts, r.styles[s].Render(strings.Repeat(" ", cellWidth))+" "+s.String())
	}
	return strings.Join(parts, "  ")
}

func plainCursor(g *grid.Grid, row, col int) string {
	if !g.InBounds(row, col) {
		return g.String()
	}
	lines := strings.Split(g.String(), "\n")
	line := []byte(lines[row])
	if line[col] == grid.GlyphDefault {
		line[col] = '@'
	}
	lines[row] = string(line)
	return strings.Join(lines, "\n")
}
