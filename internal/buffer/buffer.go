// Package buffer holds the cell grid a frame renders into, plus the color
// and styled-text primitives shared by the compiler, layout, and
// transition packages.
package buffer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Inner returns the rectangle inset by mx columns and my rows on each side.
func (r Rect) Inner(mx, my int) Rect {
	w := r.W - 2*mx
	h := r.H - 2*my
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + mx, Y: r.Y + my, W: w, H: h}
}

// Contains reports whether the cell at (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Cell is one character cell. A zero rune marks the shadow cell behind a
// wide rune and is skipped during serialization.
type Cell struct {
	Rune  rune
	Style Style
}

// Buffer is a rectangular grid of cells, origin top-left.
type Buffer struct {
	Width  int
	Height int
	Cells  []Cell
}

// New returns a buffer of the given size filled with spaces.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{Width: width, Height: height, Cells: make([]Cell, width*height)}
	for i := range b.Cells {
		b.Cells[i].Rune = ' '
	}
	return b
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Cells: make([]Cell, len(b.Cells))}
	copy(c.Cells, b.Cells)
	return c
}

// Area returns the buffer's bounds as a rectangle at the origin.
func (b *Buffer) Area() Rect { return Rect{W: b.Width, H: b.Height} }

// Cell returns the cell at (x, y), or a space cell when out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Cell{Rune: ' '}
	}
	return b.Cells[y*b.Width+x]
}

// SetCell stores the cell at (x, y). Out-of-bounds writes are dropped.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = c
}

// SetString writes s starting at (x, y) with the given style, clipped to
// the buffer. Wide runes occupy two cells; the shadow cell gets rune 0.
// Returns the x position after the last written cell.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetCell(x, y, Cell{Rune: r, Style: style})
		for i := 1; i < w; i++ {
			b.SetCell(x+i, y, Cell{Rune: 0, Style: style})
		}
		x += w
	}
	return x
}

// FillBg paints the background color of every cell in the rectangle,
// leaving runes and foregrounds alone.
func (b *Buffer) FillBg(r Rect, bg Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := b.Cell(x, y)
			c.Style.Bg = bg
			b.SetCell(x, y, c)
		}
	}
}

// String serializes the grid to ANSI-styled lines. Consecutive cells with
// equal style are rendered as one run to keep escape sequences down.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(styleFor(runStyle).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < b.Width; x++ {
			c := b.Cell(x, y)
			if c.Rune == 0 {
				continue
			}
			if run.Len() > 0 && c.Style != runStyle {
				flush()
			}
			runStyle = c.Style
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return sb.String()
}

func styleFor(s Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Fg.IsRGB() {
		st = st.Foreground(lipgloss.Color(s.Fg.Hex()))
	}
	if s.Bg.IsRGB() {
		st = st.Background(lipgloss.Color(s.Bg.Hex()))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Strike {
		st = st.Strikethrough(true)
	}
	return st
}
