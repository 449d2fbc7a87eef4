// Package layout turns a compiled slide into grid content for one frame:
// content sub-rectangles, wrapping, scrolling, the scrollbar, and the
// image placement rectangles the backend draws into.
package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/deck"
	"github.com/gosain/tride/internal/styles"
)

// ImagePlacement is the per-frame rectangle for one image. Recomputed
// every frame; never persisted.
type ImagePlacement struct {
	X, Y   int
	Width  int
	Height int
	Path   string
	// MaxWidth is the slide image's width-cap hint, passed through for
	// whatever sizes the image.
	MaxWidth float64
	// OffsetRows counts placeholder rows scrolled above the visible
	// window; FullHeight is the unclipped region height. Together they
	// let the backend draw only the visible part of a clipped image.
	OffsetRows int
	FullHeight int
}

const (
	marginX = 2
	marginY = 1
)

// RenderSlide draws the slide's content area into buf for the current
// scroll offset and returns the image placements the backend must draw.
func RenderSlide(buf *buffer.Buffer, s deck.Slide, scroll int, area buffer.Rect, theme styles.Theme) []ImagePlacement {
	switch s.Layout {
	case deck.LayoutCenter:
		return renderCenter(buf, s, scroll, area)
	case deck.LayoutTwoColumn:
		renderTwoColumn(buf, s, scroll, area)
		return nil
	default:
		return renderDefault(buf, s, scroll, area, theme)
	}
}

// WrappedLen returns how many content rows the slide occupies once
// wrapped for the given area, so callers can bound scrolling. For
// two-column slides it is the taller pane.
func WrappedLen(s deck.Slide, area buffer.Rect) int {
	content := area.Inner(marginX, marginY)
	if s.Layout == deck.LayoutTwoColumn {
		leftW := content.W * 48 / 100
		gap := content.W * 4 / 100
		left := len(Wrap(s.Content, leftW))
		right := len(Wrap(s.RightContent, content.W-leftW-gap))
		if right > left {
			return right
		}
		return left
	}
	return len(Wrap(s.Content, content.W))
}

func renderDefault(buf *buffer.Buffer, s deck.Slide, scroll int, area buffer.Rect, theme styles.Theme) []ImagePlacement {
	content := area.Inner(marginX, marginY)
	wrapped := Wrap(s.Content, content.W)
	renderLines(buf, wrapped, content, scroll, false)
	renderScrollbar(buf, area, scroll, len(wrapped), content.H, theme)

	var placements []ImagePlacement
	for _, img := range s.Images {
		if p, ok := placeImage(content, img, scroll); ok {
			placements = append(placements, p)
		}
	}
	return placements
}

func renderCenter(buf *buffer.Buffer, s deck.Slide, scroll int, area buffer.Rect) []ImagePlacement {
	content := area.Inner(marginX, marginY)

	// The content block shrinks to its natural height and floats to the
	// vertical middle; no scrollbar in this layout.
	natural := len(s.Content)
	centered := content
	if natural < content.H {
		centered.Y = content.Y + (content.H-natural)/2
		centered.H = natural
	}

	wrapped := Wrap(s.Content, centered.W)
	renderLines(buf, wrapped, centered, scroll, true)

	var placements []ImagePlacement
	for _, img := range s.Images {
		if p, ok := placeImage(centered, img, scroll); ok {
			placements = append(placements, p)
		}
	}
	return placements
}

func renderTwoColumn(buf *buffer.Buffer, s deck.Slide, scroll int, area buffer.Rect) {
	content := area.Inner(marginX, marginY)

	leftW := content.W * 48 / 100
	gap := content.W * 4 / 100
	left := buffer.Rect{X: content.X, Y: content.Y, W: leftW, H: content.H}
	right := buffer.Rect{
		X: content.X + leftW + gap,
		Y: content.Y,
		W: content.W - leftW - gap,
		H: content.H,
	}

	renderLines(buf, Wrap(s.Content, left.W), left, scroll, false)
	if s.RightContent != nil {
		renderLines(buf, Wrap(s.RightContent, right.W), right, scroll, false)
	}
}

// renderLines paints wrapped lines into the given rectangle, offset by
// scroll rows. Filled lines paint their background across the full width.
func renderLines(buf *buffer.Buffer, lines []buffer.Line, area buffer.Rect, scroll int, center bool) {
	for row := 0; row < area.H; row++ {
		idx := row + scroll
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := lines[idx]
		y := area.Y + row
		if line.Fill.IsRGB() {
			buf.FillBg(buffer.Rect{X: area.X, Y: y, W: area.W, H: 1}, line.Fill)
		}
		x := area.X
		if center {
			if pad := (area.W - line.Width()) / 2; pad > 0 {
				x += pad
			}
		}
		for _, span := range line.Spans {
			x = setSpanClipped(buf, x, y, span, area)
		}
	}
}

func setSpanClipped(buf *buffer.Buffer, x, y int, span buffer.Span, area buffer.Rect) int {
	limit := area.X + area.W
	for _, r := range span.Text {
		w := runewidth.RuneWidth(r)
		if x+w > limit {
			break
		}
		x = buf.SetString(x, y, string(r), span.Style)
	}
	return x
}

// renderScrollbar draws a proportional vertical scrollbar on the area's
// right edge, only when the content overflows the visible height.
func renderScrollbar(buf *buffer.Buffer, area buffer.Rect, scroll, contentLen, visible int, theme styles.Theme) {
	if contentLen <= visible || visible <= 0 {
		return
	}
	x := area.X + area.W - 1
	track := area.H
	if track <= 0 {
		return
	}

	thumb := track * visible / contentLen
	if thumb < 1 {
		thumb = 1
	}
	maxScroll := contentLen - visible
	pos := 0
	if maxScroll > 0 {
		pos = (track - thumb) * clampInt(scroll, 0, maxScroll) / maxScroll
	}

	trackStyle := buffer.Style{Fg: theme.Surface}
	thumbStyle := buffer.Style{Fg: theme.ListBullet}
	for row := 0; row < track; row++ {
		ch := '│'
		st := trackStyle
		if row >= pos && row < pos+thumb {
			ch = '█'
			st = thumbStyle
		}
		buf.SetCell(x, area.Y+row, buffer.Cell{Rune: ch, Style: st})
	}
}

// placeImage maps a placeholder region to an absolute rectangle for the
// current scroll, clipping to the visible rows. Regions scrolled fully
// out of view produce no placement.
func placeImage(content buffer.Rect, img deck.SlideImage, scroll int) (ImagePlacement, bool) {
	yStart := img.LineIndex - scroll
	yEnd := yStart + img.Height

	if yEnd <= 0 || yStart >= content.H {
		return ImagePlacement{}, false
	}

	top := yStart
	if top < 0 {
		top = 0
	}
	bottom := yEnd
	if bottom > content.H {
		bottom = content.H
	}
	h := bottom - top
	if h <= 0 {
		return ImagePlacement{}, false
	}

	return ImagePlacement{
		X:          content.X,
		Y:          content.Y + top,
		Width:      content.W,
		Height:     h,
		Path:       img.Path,
		MaxWidth:   img.MaxWidth,
		OffsetRows: top - yStart,
		FullHeight: img.Height,
	}, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
