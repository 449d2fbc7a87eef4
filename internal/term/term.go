// Package term probes the attached terminal and draws images into the
// cell grid. Pixels are rendered two per cell with the upper half block,
// the foreground carrying the top pixel and the background the bottom.
package term

import (
	"image"
	"os"

	"github.com/muesli/termenv"
)

// Protocol identifies how the terminal can display images.
type Protocol int

const (
	// ProtocolHalfBlocks works everywhere a truecolor palette does.
	ProtocolHalfBlocks Protocol = iota
	// ProtocolITerm marks iTerm-style terminals with an inline image
	// escape sequence of their own.
	ProtocolITerm
)

// Detect inspects the environment for a known terminal program.
func Detect() Protocol {
	if os.Getenv("TERM_PROGRAM") == "iTerm.app" || os.Getenv("LC_TERMINAL") == "iTerm2" {
		return ProtocolITerm
	}
	return ProtocolHalfBlocks
}

// ColorProfile reports the terminal's color capability.
func ColorProfile() termenv.Profile {
	return termenv.ColorProfile()
}

// Bounds returns an image's size in pixels.
func Bounds(img image.Image) (w, h int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
