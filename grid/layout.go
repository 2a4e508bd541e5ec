package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout glyphs. Parse accepts every glyph; the transient ones (o, x, *)
// load as Default so a rendered grid can be fed back in.
const (
	GlyphDefault = '.'
	GlyphBarrier = '#'
	GlyphStart   = 'S'
	GlyphEnd     = 'E'
	GlyphOpen    = 'o'
	GlyphClosed  = 'x'
	GlyphPath    = '*'
)

var stateGlyphs = [...]byte{
	Default: GlyphDefault,
	Start:   GlyphStart,
	End:     GlyphEnd,
	Barrier: GlyphBarrier,
	Open:    GlyphOpen,
	Closed:  GlyphClosed,
	Path:    GlyphPath,
}

// Glyph returns the layout character for s.
func (s State) Glyph() byte {
	if s < 0 || int(s) >= len(stateGlyphs) {
		return '?'
	}
	return stateGlyphs[s]
}

// Parse reads an ASCII layout, one grid row per line. Blank lines are
// skipped and surrounding whitespace is trimmed. The pixel size hint is
// DefaultWidth divided by the row count.
//
// Errors: ErrEmptyLayout, ErrNonRectangular, ErrBadGlyph,
// ErrDuplicateStart, ErrDuplicateEnd, or the reader's error.
func Parse(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read layout: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyLayout
	}
	cols := len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, i, len(line), cols)
		}
	}

	g, err := New(len(lines), cols, DefaultWidth/len(lines))
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		for c := 0; c < cols; c++ {
			if err := g.place(r, c, line[c]); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

func (g *Grid) place(r, c int, glyph byte) error {
	switch glyph {
	case GlyphDefault, GlyphOpen, GlyphClosed, GlyphPath:
		return nil
	case GlyphBarrier:
		return g.SetBarrier(r, c)
	case GlyphStart:
		if g.start != nil {
			return fmt.Errorf("%w: (%d,%d)", ErrDuplicateStart, r, c)
		}
		return g.SetStart(r, c)
	case GlyphEnd:
		if g.end != nil {
			return fmt.Errorf("%w: (%d,%d)", ErrDuplicateEnd, r, c)
		}
		return g.SetEnd(r, c)
	}
	return fmt.Errorf("%w: %q at (%d,%d)", ErrBadGlyph, glyph, r, c)
}

// String renders every cell's display state as a glyph, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for _, row := range g.cells {
		for _, c := range row {
			b.WriteByte(c.state.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
