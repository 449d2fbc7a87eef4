// Package code handles fenced code blocks: extraction for clipboard copy,
// syntax highlighting into styled spans, and `qr` block rendering.
package code

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/mdp/qrterminal/v3"
)

// Block represents a fenced code block.
type Block struct {
	Code     string
	Language string
}

// ?: means non-capture group
var re = regexp.MustCompile("(?s)(?:```|~~~)(\\w*)\n(.*?)\n(?:```|~~~)\\s?")

// ErrParse is the returned error when there is no code block in the given
// markdown.
var ErrParse = errors.New("could not parse code block")

// Parse takes a block of markdown and returns the fenced code blocks it
// contains with their languages.
func Parse(markdown string) ([]Block, error) {
	matches := re.FindAllStringSubmatch(markdown, -1)

	var rv []Block
	for _, match := range matches {
		if len(match) < 3 {
			continue
		}
		rv = append(rv, Block{
			Language: match[1],
			Code:     match[2],
		})
	}

	if len(rv) == 0 {
		return nil, ErrParse
	}

	return rv, nil
}

// QRLines renders each non-empty input line as a QR code and returns the
// half-block art lines with the source text underneath each code.
func QRLines(content string) []string {
	var out []string
	for _, target := range strings.Split(content, "\n") {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}

		var buff bytes.Buffer
		qrterminal.GenerateWithConfig(target, qrterminal.Config{
			Level:          qrterminal.L,
			Writer:         &buff,
			HalfBlocks:     true,
			BlackChar:      qrterminal.BLACK_BLACK,
			WhiteBlackChar: qrterminal.WHITE_BLACK,
			WhiteChar:      qrterminal.WHITE_WHITE,
			BlackWhiteChar: qrterminal.BLACK_WHITE,
			QuietZone:      1,
		})

		art := strings.TrimRight(buff.String(), "\n")
		out = append(out, strings.Split(art, "\n")...)
		out = append(out, target)
	}
	return out
}
