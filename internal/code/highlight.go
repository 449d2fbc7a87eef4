package code

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/gosain/tride/internal/buffer"
)

// Highlight tokenizes src with the lexer for language and returns styled
// spans per line. Every span keeps the given background; tokens without a
// color fall back to the provided base foreground. Unknown languages and
// tokenizer failures degrade to a single plain span per line.
func Highlight(src, language, styleName string, base buffer.Style) [][]buffer.Span {
	lexer := lexers.Get(language)
	if lexer == nil {
		return plainLines(src, base)
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plainLines(src, base)
	}

	lines := [][]buffer.Span{{}}
	for _, tok := range it.Tokens() {
		entry := style.Get(tok.Type)
		st := base
		if entry.Colour.IsSet() {
			st.Fg = buffer.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		}
		st.Bold = st.Bold || entry.Bold == chroma.Yes
		st.Italic = st.Italic || entry.Italic == chroma.Yes

		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []buffer.Span{})
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], buffer.Span{Text: part, Style: st})
		}
	}

	// Tokenizers emit a trailing newline; drop the empty line it opens.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines
}

func plainLines(src string, base buffer.Style) [][]buffer.Span {
	raw := strings.Split(strings.TrimRight(src, "\n"), "\n")
	lines := make([][]buffer.Span, len(raw))
	for i, l := range raw {
		if l == "" {
			continue
		}
		lines[i] = []buffer.Span{{Text: l, Style: base}}
	}
	return lines
}
