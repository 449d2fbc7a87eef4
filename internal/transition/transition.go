// Package transition animates the change between two rendered frames.
// An Effect is created when the visible page changes and rewrites cells
// of each freshly rendered grid as a function of elapsed time, reading
// the previous frame's grid where the kind blends old and new content.
// Once the elapsed time passes the effect's duration the grid is left
// exactly as rendered.
package transition

import (
	"math"
	"time"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/deck"
	"github.com/gosain/tride/internal/styles"
)

const (
	slideInDuration  = 400 * time.Millisecond
	fadeDuration     = 600 * time.Millisecond
	dissolveDuration = 500 * time.Millisecond
	sweepDuration    = 600 * time.Millisecond
	slideRgbDuration = 600 * time.Millisecond

	// lines-style kinds run each row for lineDuration, starting
	// lineStagger after the row above it
	lineDuration = 500 * time.Millisecond
	lineStagger  = 50 * time.Millisecond

	sweepBand = 15
	rgbBand   = 12
)

// Effect is one running transition. The zero value is not usable; create
// with New at the moment the page changes.
type Effect struct {
	kind     deck.Transition
	prev     *buffer.Buffer
	theme    styles.Theme
	duration time.Duration
}

// New starts an effect of the given kind. prev is the last frame drawn
// before the page changed and may be nil on the very first render. rows
// is the grid height, which the lines kinds need to size their stagger.
func New(kind deck.Transition, prev *buffer.Buffer, theme styles.Theme, rows int) *Effect {
	e := &Effect{kind: kind, prev: prev, theme: theme}
	switch kind {
	case deck.TransitionFade:
		e.duration = fadeDuration
	case deck.TransitionDissolve, deck.TransitionCoalesce:
		e.duration = dissolveDuration
	case deck.TransitionSweepIn:
		e.duration = sweepDuration
	case deck.TransitionLines, deck.TransitionLinesCross, deck.TransitionLinesRgb:
		if rows < 1 {
			rows = 1
		}
		e.duration = lineDuration + lineStagger*time.Duration(rows-1)
	case deck.TransitionSlideRgb:
		e.duration = slideRgbDuration
	default:
		e.duration = slideInDuration
	}
	return e
}

// Duration is the total running time of the effect.
func (e *Effect) Duration() time.Duration { return e.duration }

// Done reports whether the effect has finished at the given elapsed time.
func (e *Effect) Done(elapsed time.Duration) bool { return elapsed >= e.duration }

// Apply rewrites target in place for the given elapsed time. A finished
// effect leaves the grid untouched.
func (e *Effect) Apply(elapsed time.Duration, target *buffer.Buffer) {
	if e == nil || e.Done(elapsed) {
		return
	}
	alpha := progress(elapsed, e.duration)
	switch e.kind {
	case deck.TransitionFade:
		e.fadeFromBg(target, sineOut(alpha))
	case deck.TransitionDissolve:
		e.dissolve(target, alpha, false)
	case deck.TransitionCoalesce:
		e.dissolve(target, quadOut(alpha), true)
	case deck.TransitionSweepIn:
		e.sweep(target, quadOut(alpha))
	case deck.TransitionLines:
		e.lines(elapsed, target, false, false)
	case deck.TransitionLinesCross:
		e.lines(elapsed, target, true, false)
	case deck.TransitionLinesRgb:
		e.lines(elapsed, target, false, true)
	case deck.TransitionSlideRgb:
		e.slideRgb(target, quadOut(alpha))
	default:
		e.fadeFromBg(target, quadOut(alpha))
	}
}

// fadeFromBg pulls every cell's colors from the theme background toward
// their rendered values. Default (non-RGB) colors are never interpolated.
func (e *Effect) fadeFromBg(buf *buffer.Buffer, t float64) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.Cell(x, y)
			c.Style.Fg = buffer.Blend(e.theme.Bg, c.Style.Fg, t)
			c.Style.Bg = buffer.Blend(e.theme.Bg, c.Style.Bg, t)
			buf.SetCell(x, y, c)
		}
	}
}

// dissolve conceals the cells whose hash falls beyond the current
// progress. The hash is a pure function of the cell position, so the
// reveal order is stable across frames; reverse flips the ordering so
// coalesce uncovers cells in the opposite sequence.
func (e *Effect) dissolve(buf *buffer.Buffer, t float64, reverse bool) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r := cellHash(x, y)
			revealed := r < t
			if reverse {
				revealed = r >= 1-t
			}
			if !revealed {
				buf.SetCell(x, y, buffer.Cell{Rune: ' '})
			}
		}
	}
}

// sweep moves a reveal edge left to right. Cells inside the trailing band
// fade up from the background; cells ahead of the edge stay hidden.
func (e *Effect) sweep(buf *buffer.Buffer, t float64) {
	edge := t * float64(buf.Width+sweepBand)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			f := (edge - float64(x)) / sweepBand
			if f >= 1 {
				continue
			}
			if f <= 0 {
				buf.SetCell(x, y, buffer.Cell{Rune: ' '})
				continue
			}
			c := buf.Cell(x, y)
			c.Style.Fg = buffer.Blend(e.theme.Bg, c.Style.Fg, f)
			c.Style.Bg = buffer.Blend(e.theme.Bg, c.Style.Bg, f)
			buf.SetCell(x, y, c)
		}
	}
}

// lines reveals each row behind its own moving edge, rows starting top to
// bottom with a fixed stagger. The unrevealed remainder shows the old
// frame faded toward the background by its distance from the edge. cross
// flips the direction on odd rows; rgb trails the edge with a hue band.
func (e *Effect) lines(elapsed time.Duration, buf *buffer.Buffer, cross, rgb bool) {
	w := float64(buf.Width)
	for y := 0; y < buf.Height; y++ {
		start := lineStagger * time.Duration(y)
		eased := quadOut(progress(elapsed-start, lineDuration))

		edge := eased * w
		if rgb {
			// the band enters and leaves the row fully
			edge = eased*(w+rgbBand) - rgbBand
		}
		rightward := !cross || y%2 == 0

		for x := 0; x < buf.Width; x++ {
			ahead := float64(x) - edge
			if !rightward {
				ahead = float64(buf.Width-1-x) - edge
			}
			if ahead < 0 {
				continue
			}
			if rgb && ahead < rgbBand {
				hue := 300 * ahead / rgbBand
				buf.SetCell(x, y, buffer.Cell{Rune: '█', Style: buffer.Style{Fg: buffer.HSV(hue)}})
				continue
			}
			old := e.prevCell(x, y)
			f := ahead / w
			old.Style.Fg = fadeToward(old.Style.Fg, e.theme.Bg, f)
			old.Style.Bg = fadeToward(old.Style.Bg, e.theme.Bg, f)
			buf.SetCell(x, y, old)
		}
	}
}

// slideRgb wipes new content in behind a single vertical edge trailed by
// a full-saturation hue band; the old frame stays visible ahead of it.
func (e *Effect) slideRgb(buf *buffer.Buffer, t float64) {
	edge := t*float64(buf.Width+rgbBand) - rgbBand
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			ahead := float64(x) - edge
			if ahead < 0 {
				continue
			}
			if ahead < rgbBand {
				hue := 300 * ahead / rgbBand
				buf.SetCell(x, y, buffer.Cell{Rune: '█', Style: buffer.Style{Fg: buffer.HSV(hue)}})
				continue
			}
			buf.SetCell(x, y, e.prevCell(x, y))
		}
	}
}

func (e *Effect) prevCell(x, y int) buffer.Cell {
	if e.prev == nil {
		return buffer.Cell{Rune: ' '}
	}
	return e.prev.Cell(x, y)
}

// fadeToward blends c toward bg, leaving default colors alone so the
// terminal's own background is never painted over.
func fadeToward(c, bg buffer.Color, f float64) buffer.Color {
	if !c.IsRGB() {
		return c
	}
	return buffer.Blend(c, bg, f)
}

func progress(elapsed, duration time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= duration {
		return 1
	}
	return float64(elapsed) / float64(duration)
}

func quadOut(t float64) float64 { return 1 - (1-t)*(1-t) }

func sineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// cellHash maps a cell position to a stable value in [0, 1).
func cellHash(x, y int) float64 {
	h := uint64(x+1)*0x9e3779b97f4a7c15 ^ uint64(y+1)*0xc2b2ae3d27d4eb4f
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return float64(h%100000) / 100000
}
