package buffer

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single terminal color. The zero value is the terminal's own
// default color, which carries no RGB channels.
type Color struct {
	R, G, B uint8
	rgb     bool
}

// RGB returns a true-color value.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, rgb: true}
}

// Hex parses a "rrggbb" or "#rrggbb" string. Invalid input yields the
// default color.
func Hex(s string) Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return Color{}
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}
	}
	return RGB(r, g, b)
}

// IsRGB reports whether the color carries RGB channels.
func (c Color) IsRGB() bool { return c.rgb }

// Hex renders the color as "#rrggbb". The default color has no hex form
// and returns "".
func (c Color) Hex() string {
	if !c.rgb {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSV returns the full-saturation, full-value color at hue h (degrees).
func HSV(h float64) Color {
	cc := colorful.Hsv(h, 1, 1).Clamped()
	return RGB(uint8(cc.R*255+0.5), uint8(cc.G*255+0.5), uint8(cc.B*255+0.5))
}

// Blend linearly interpolates from -> to per RGB channel. When either side
// is not an RGB color there is nothing meaningful to interpolate against,
// so the target color is returned outright.
func Blend(from, to Color, t float64) Color {
	if t <= 0 && from.IsRGB() && to.IsRGB() {
		return from
	}
	if t >= 1 || !from.IsRGB() || !to.IsRGB() {
		return to
	}
	a := colorful.Color{R: float64(from.R) / 255, G: float64(from.G) / 255, B: float64(from.B) / 255}
	b := colorful.Color{R: float64(to.R) / 255, G: float64(to.G) / 255, B: float64(to.B) / 255}
	m := a.BlendRgb(b, t).Clamped()
	return RGB(uint8(m.R*255+0.5), uint8(m.G*255+0.5), uint8(m.B*255+0.5))
}
