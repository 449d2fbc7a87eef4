// Package deck compiles a markdown document into presentation slides:
// styled lines, per-slide layout and transition directives, and reserved
// image regions.
package deck

import "github.com/gosain/tride/internal/buffer"

// Layout selects how a slide's content is arranged on screen.
type Layout int

const (
	LayoutDefault Layout = iota
	LayoutCenter
	LayoutTwoColumn
)

// String returns the directive spelling of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutCenter:
		return "center"
	case LayoutTwoColumn:
		return "two-column"
	default:
		return "default"
	}
}

// Transition selects the animation used when entering a slide.
type Transition int

const (
	TransitionSlideIn Transition = iota
	TransitionFade
	TransitionDissolve
	TransitionCoalesce
	TransitionSweepIn
	TransitionLines
	TransitionLinesCross
	TransitionLinesRgb
	TransitionSlideRgb
)

// ImagePlaceholderHeight is the number of blank rows reserved for an
// image inside a slide's content.
const ImagePlaceholderHeight = 15

// SlideImage is an image reference found in a slide. LineIndex is fixed at
// parse time; the layout engine recomputes the on-screen rectangle from it
// every frame.
type SlideImage struct {
	Path string
	// LineIndex is the content line where the placeholder region starts.
	LineIndex int
	// Height is the number of placeholder rows reserved.
	Height int
	// MaxWidth caps the drawn width as a fraction of the content area.
	// Zero means no cap. Passed through to the image backend untouched.
	MaxWidth float64
}

// Slide is one presentable unit, bounded by horizontal rules. Never
// mutated after compilation.
type Slide struct {
	Layout  Layout
	Content []buffer.Line
	// RightContent holds the right column for TwoColumn slides; nil
	// otherwise, and nil when the slide has no ||| separator.
	RightContent []buffer.Line
	Images       []SlideImage
	Transition   Transition
}

// ParseLayout maps a directive value to a layout. Anything unrecognized
// is the default layout.
func ParseLayout(s string) Layout {
	switch s {
	case "center":
		return LayoutCenter
	case "two-column":
		return LayoutTwoColumn
	default:
		return LayoutDefault
	}
}

// ParseTransition maps a directive value to a transition kind. Anything
// unrecognized is SlideIn.
func ParseTransition(s string) Transition {
	switch s {
	case "fade":
		return TransitionFade
	case "dissolve":
		return TransitionDissolve
	case "coalesce":
		return TransitionCoalesce
	case "sweep", "sweep-in":
		return TransitionSweepIn
	case "lines":
		return TransitionLines
	case "lines-cross":
		return TransitionLinesCross
	case "lines-rgb":
		return TransitionLinesRgb
	case "slide-rgb":
		return TransitionSlideRgb
	default:
		return TransitionSlideIn
	}
}
