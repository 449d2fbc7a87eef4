package buffer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style is the visual attribute set of a span or cell.
type Style struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
}

// Span is a run of text carrying one style.
type Span struct {
	Text  string
	Style Style
}

// Width returns the display width of the span in cells.
func (s Span) Width() int { return runewidth.StringWidth(s.Text) }

// Line is an ordered sequence of spans. Fill, when set to an RGB color,
// extends that background across the whole content width (used for code
// block rows).
type Line struct {
	Spans []Span
	Fill  Color
}

// NewLine builds a line from the given spans.
func NewLine(spans ...Span) Line { return Line{Spans: spans} }

// Blank reports whether the line holds no spans and no fill. Blank lines
// are what trailing-trim removes; a filled padding row is not blank.
func (l Line) Blank() bool { return len(l.Spans) == 0 && !l.Fill.IsRGB() }

// Text returns the unstyled text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the display width of the line in cells.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}
