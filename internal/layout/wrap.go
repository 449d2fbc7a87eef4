package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gosain/tride/internal/buffer"
)

// Wrap word-wraps styled lines to the given width. Span styles survive
// the break points; continuation rows of filled (code) lines keep their
// fill. Width <= 0 returns the input untouched.
func Wrap(lines []buffer.Line, width int) []buffer.Line {
	if width <= 0 {
		return lines
	}
	var out []buffer.Line
	for _, line := range lines {
		if line.Width() <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line buffer.Line, width int) []buffer.Line {
	var rows []buffer.Line
	cur := buffer.Line{Fill: line.Fill}
	curWidth := 0

	flush := func() {
		for len(cur.Spans) > 0 && strings.TrimSpace(cur.Spans[len(cur.Spans)-1].Text) == "" {
			cur.Spans = cur.Spans[:len(cur.Spans)-1]
		}
		rows = append(rows, cur)
		cur = buffer.Line{Fill: line.Fill}
		curWidth = 0
	}

	for _, atom := range atoms(line) {
		w := runewidth.StringWidth(atom.Text)
		if curWidth+w <= width {
			cur.Spans = append(cur.Spans, atom)
			curWidth += w
			continue
		}
		if strings.TrimSpace(atom.Text) == "" {
			// break at whitespace; the space itself is dropped
			flush()
			continue
		}
		if w > width {
			// an unbreakable atom wider than the row is hard-split
			for _, part := range hardSplit(atom, width-curWidth, width) {
				pw := runewidth.StringWidth(part.Text)
				if curWidth+pw > width {
					flush()
				}
				cur.Spans = append(cur.Spans, part)
				curWidth += pw
			}
			continue
		}
		flush()
		cur.Spans = append(cur.Spans, atom)
		curWidth = w
	}
	if len(cur.Spans) > 0 || len(rows) == 0 {
		rows = append(rows, cur)
	}
	return rows
}

// atoms splits a line's spans into word and whitespace chunks, each
// keeping its span's style.
func atoms(line buffer.Line) []buffer.Span {
	var out []buffer.Span
	for _, span := range line.Spans {
		start := 0
		text := span.Text
		inSpace := false
		for i, r := range text {
			space := r == ' '
			if i > 0 && space != inSpace {
				out = append(out, buffer.Span{Text: text[start:i], Style: span.Style})
				start = i
			}
			inSpace = space
		}
		if start < len(text) {
			out = append(out, buffer.Span{Text: text[start:], Style: span.Style})
		}
	}
	return out
}

// hardSplit cuts a single oversized atom into width-bounded pieces. The
// first piece is at most first cells wide so it can finish the current
// row.
func hardSplit(atom buffer.Span, first, width int) []buffer.Span {
	if first <= 0 {
		first = width
	}
	var parts []buffer.Span
	limit := first
	var cur strings.Builder
	curWidth := 0
	for _, r := range atom.Text {
		w := runewidth.RuneWidth(r)
		if curWidth+w > limit && cur.Len() > 0 {
			parts = append(parts, buffer.Span{Text: cur.String(), Style: atom.Style})
			cur.Reset()
			curWidth = 0
			limit = width
		}
		cur.WriteRune(r)
		curWidth += w
	}
	if cur.Len() > 0 {
		parts = append(parts, buffer.Span{Text: cur.String(), Style: atom.Style})
	}
	return parts
}
