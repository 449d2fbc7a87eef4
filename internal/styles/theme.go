// Package styles defines the presentation color themes.
package styles

import (
	"regexp"
	"strings"

	"github.com/muesli/termenv"

	"github.com/gosain/tride/internal/buffer"
)

// Theme is the set of role colors one presentation uses. Immutable after
// construction.
type Theme struct {
	Fg               buffer.Color
	Bg               buffer.Color
	H1               buffer.Color
	H2               buffer.Color
	H3               buffer.Color
	H4               buffer.Color
	InlineCodeFg     buffer.Color
	Surface          buffer.Color
	BlockQuotePrefix buffer.Color
	ListBullet       buffer.Color
	StatusFg         buffer.Color
	StatusBg         buffer.Color
}

// Base returns the theme's default text style.
func (t Theme) Base() buffer.Style { return buffer.Style{Fg: t.Fg} }

// Mocha is the catppuccin mocha flavor, the default on dark terminals.
func Mocha() Theme {
	return Theme{
		Fg:               buffer.Hex("cdd6f4"),
		Bg:               buffer.Hex("1e1e2e"),
		H1:               buffer.Hex("94e2d5"),
		H2:               buffer.Hex("cba6f7"),
		H3:               buffer.Hex("89b4fa"),
		H4:               buffer.Hex("f38ba8"),
		InlineCodeFg:     buffer.Hex("a6e3a1"),
		Surface:          buffer.Hex("313244"),
		BlockQuotePrefix: buffer.Hex("f9e2af"),
		ListBullet:       buffer.Hex("6c7086"),
		StatusFg:         buffer.Hex("cdd6f4"),
		StatusBg:         buffer.Hex("313244"),
	}
}

// Macchiato is the catppuccin macchiato flavor.
func Macchiato() Theme {
	return Theme{
		Fg:               buffer.Hex("cad3f5"),
		Bg:               buffer.Hex("24273a"),
		H1:               buffer.Hex("8bd5ca"),
		H2:               buffer.Hex("c6a0f6"),
		H3:               buffer.Hex("8aadf4"),
		H4:               buffer.Hex("ed8796"),
		InlineCodeFg:     buffer.Hex("a6da95"),
		Surface:          buffer.Hex("363a4f"),
		BlockQuotePrefix: buffer.Hex("eed49f"),
		ListBullet:       buffer.Hex("6e738d"),
		StatusFg:         buffer.Hex("cad3f5"),
		StatusBg:         buffer.Hex("363a4f"),
	}
}

// Frappe is the catppuccin frappé flavor.
func Frappe() Theme {
	return Theme{
		Fg:               buffer.Hex("c6d0f5"),
		Bg:               buffer.Hex("303446"),
		H1:               buffer.Hex("81c8be"),
		H2:               buffer.Hex("ca9ee6"),
		H3:               buffer.Hex("8caaee"),
		H4:               buffer.Hex("e78284"),
		InlineCodeFg:     buffer.Hex("a6d189"),
		Surface:          buffer.Hex("414559"),
		BlockQuotePrefix: buffer.Hex("e5c890"),
		ListBullet:       buffer.Hex("737994"),
		StatusFg:         buffer.Hex("c6d0f5"),
		StatusBg:         buffer.Hex("414559"),
	}
}

// Latte is the catppuccin latte flavor, the default on light terminals.
func Latte() Theme {
	return Theme{
		Fg:               buffer.Hex("4c4f69"),
		Bg:               buffer.Hex("eff1f5"),
		H1:               buffer.Hex("179299"),
		H2:               buffer.Hex("8839ef"),
		H3:               buffer.Hex("1e66f5"),
		H4:               buffer.Hex("d20f39"),
		InlineCodeFg:     buffer.Hex("40a02b"),
		Surface:          buffer.Hex("ccd0da"),
		BlockQuotePrefix: buffer.Hex("df8e1d"),
		ListBullet:       buffer.Hex("9ca0b0"),
		StatusFg:         buffer.Hex("4c4f69"),
		StatusBg:         buffer.Hex("ccd0da"),
	}
}

// Default picks the flavor matching the terminal background.
func Default() Theme {
	if termenv.HasDarkBackground() {
		return Mocha()
	}
	return Latte()
}

// FromName resolves a theme name. Accepts both "catppuccin-mocha" and
// "mocha" forms. Unknown names report false.
func FromName(name string) (Theme, bool) {
	short := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "catppuccin-")
	switch short {
	case "mocha":
		return Mocha(), true
	case "macchiato":
		return Macchiato(), true
	case "frappe", "frappé":
		return Frappe(), true
	case "latte":
		return Latte(), true
	}
	return Theme{}, false
}

// ChromaStyle names the chroma highlight style matching this theme,
// identified by its background color.
func (t Theme) ChromaStyle() string {
	switch t.Bg {
	case buffer.Hex("24273a"):
		return "catppuccin-macchiato"
	case buffer.Hex("303446"):
		return "catppuccin-frappe"
	case buffer.Hex("eff1f5"):
		return "catppuccin-latte"
	default:
		return "catppuccin-mocha"
	}
}

var themeCommentRe = regexp.MustCompile(`<!--\s*theme:\s*([A-Za-zé-]+)\s*-->`)

// FromMarkdown scans the document for a `<!-- theme: name -->` comment.
func FromMarkdown(content string) (Theme, bool) {
	m := themeCommentRe.FindStringSubmatch(content)
	if m == nil {
		return Theme{}, false
	}
	return FromName(m[1])
}
