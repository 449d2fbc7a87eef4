package deck

import (
	"strconv"
	"strings"
)

// A directive is an inline instruction carried in an HTML comment. It is
// captured when encountered and applied at the next slide boundary.
type directive interface{ isDirective() }

type layoutDirective struct{ layout Layout }

type transitionDirective struct{ transition Transition }

// figletDirective turns banner headings on; an empty font selects the
// figlet default.
type figletDirective struct{ font string }

type imageWidthDirective struct{ fraction float64 }

func (layoutDirective) isDirective()     {}
func (transitionDirective) isDirective() {}
func (figletDirective) isDirective()     {}
func (imageWidthDirective) isDirective() {}

// parseComment inspects an HTML fragment for a directive comment.
// Unrecognized comment bodies return nil and are silently ignored.
func parseComment(html string) directive {
	trimmed := strings.TrimSpace(html)
	inner, ok := strings.CutPrefix(trimmed, "<!--")
	if !ok {
		return nil
	}
	inner, ok = strings.CutSuffix(inner, "-->")
	if !ok {
		return nil
	}
	inner = strings.TrimSpace(inner)

	if value, ok := strings.CutPrefix(inner, "layout:"); ok {
		return layoutDirective{layout: ParseLayout(strings.TrimSpace(value))}
	}
	if value, ok := strings.CutPrefix(inner, "transition:"); ok {
		return transitionDirective{transition: ParseTransition(strings.TrimSpace(value))}
	}
	if inner == "figlet" {
		return figletDirective{}
	}
	if font, ok := strings.CutPrefix(inner, "figlet:"); ok {
		return figletDirective{font: strings.TrimSpace(font)}
	}
	if value, ok := strings.CutPrefix(inner, "image_max_width:"); ok {
		if f, ok := ParsePercent(strings.TrimSpace(value)); ok {
			return imageWidthDirective{fraction: f}
		}
	}
	return nil
}

// ParsePercent parses a percentage like "60%" (or "60") into a fraction
// clamped to [0, 1].
func ParsePercent(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	f := n / 100
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}
