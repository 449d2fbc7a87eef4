package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/meta"
	"github.com/gosain/tride/internal/styles"
)

func compile(t *testing.T, body string, m meta.Meta, opts ...Option) []Slide {
	t.Helper()
	return Compile(body, m, styles.Mocha(), opts...)
}

func lineTexts(lines []buffer.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func TestRuleBoundariesProduceNPlusOneSlides(t *testing.T) {
	body := "one\n\n---\n\ntwo\n\n---\n\nthree\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 3)
	assert.Equal(t, "one", slides[0].Content[0].Text())
	assert.Equal(t, "two", slides[1].Content[0].Text())
	assert.Equal(t, "three", slides[2].Content[0].Text())
}

func TestNoRuleEmitsSingleSlide(t *testing.T) {
	slides := compile(t, "just one slide\n", meta.Meta{})
	require.Len(t, slides, 1)
}

func TestBlankSegmentsEmitNoSlide(t *testing.T) {
	slides := compile(t, "one\n\n---\n\n---\n\ntwo\n", meta.Meta{})
	require.Len(t, slides, 2)

	assert.Empty(t, compile(t, "", meta.Meta{}))
	assert.Empty(t, compile(t, "   \n\n  \n", meta.Meta{}))
}

func TestTrailingBlanksTrimmed(t *testing.T) {
	slides := compile(t, "text\n\n\n\n---\n\nnext\n", meta.Meta{})
	require.Len(t, slides, 2)
	last := slides[0].Content[len(slides[0].Content)-1]
	assert.False(t, last.Blank())
}

func TestHeadingStyles(t *testing.T) {
	theme := styles.Mocha()
	slides := compile(t, "# One\n\n## Two\n\n#### Four\n\n##### Five\n", meta.Meta{})
	require.Len(t, slides, 1)

	texts := lineTexts(slides[0].Content)
	assert.Equal(t, "# One", texts[0])

	h1 := slides[0].Content[0].Spans[0]
	assert.Equal(t, theme.H1, h1.Style.Fg)
	assert.True(t, h1.Style.Bold)

	var h2, h5 buffer.Line
	for _, l := range slides[0].Content {
		switch l.Text() {
		case "# Two":
			h2 = l
		case "# Five":
			h5 = l
		}
	}
	require.NotEmpty(t, h2.Spans)
	assert.Equal(t, theme.H2, h2.Spans[0].Style.Fg)
	require.NotEmpty(t, h5.Spans)
	// levels past four reuse the fourth heading color
	assert.Equal(t, theme.H4, h5.Spans[0].Style.Fg)
}

func TestEmphasisStyleStack(t *testing.T) {
	slides := compile(t, "plain *it* **bold** ~~gone~~\n", meta.Meta{})
	require.Len(t, slides, 1)
	line := slides[0].Content[0]

	var italic, bold, strike bool
	for _, s := range line.Spans {
		switch s.Text {
		case "it":
			italic = s.Style.Italic
		case "bold":
			bold = s.Style.Bold
		case "gone":
			strike = s.Style.Strike
		}
	}
	assert.True(t, italic)
	assert.True(t, bold)
	assert.True(t, strike)
}

func TestInlineCodePadding(t *testing.T) {
	theme := styles.Mocha()
	slides := compile(t, "use `go vet` often\n", meta.Meta{})
	require.Len(t, slides, 1)

	var found bool
	for _, s := range slides[0].Content[0].Spans {
		if s.Text == " go vet " {
			found = true
			assert.Equal(t, theme.InlineCodeFg, s.Style.Fg)
			assert.Equal(t, theme.Surface, s.Style.Bg)
		}
	}
	assert.True(t, found, "inline code span with surrounding spaces")
}

func TestCodeBlockPaddingRows(t *testing.T) {
	theme := styles.Mocha()
	body := "```\nfirst\n```\n\n```\nsecond\n```\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)

	lines := slides[0].Content
	var fillRows []int
	for i, l := range lines {
		if l.Fill == theme.Surface && len(l.Spans) == 0 {
			fillRows = append(fillRows, i)
		}
	}
	// two padding rows per block
	require.Len(t, fillRows, 4)

	// adjacent blocks keep a non-background row between their padding rows
	gapStart, gapEnd := fillRows[1], fillRows[2]
	require.Greater(t, gapEnd, gapStart+1, "padding rows must not touch")
	for i := gapStart + 1; i < gapEnd; i++ {
		assert.False(t, lines[i].Fill.IsRGB(), "gap row %d must not carry the surface background", i)
	}
}

func TestCodeBlockTrailingPaddingAtEndOfInput(t *testing.T) {
	theme := styles.Mocha()
	slides := compile(t, "intro\n\n```\nlast block\n```", meta.Meta{})
	require.Len(t, slides, 1)

	lines := slides[0].Content
	last := lines[len(lines)-1]
	assert.Equal(t, theme.Surface, last.Fill)
	assert.Empty(t, last.Spans)
}

func TestCodeBlockContentIndented(t *testing.T) {
	slides := compile(t, "```\nhello\n```\n", meta.Meta{})
	require.Len(t, slides, 1)
	var content string
	for _, l := range slides[0].Content {
		if strings.Contains(l.Text(), "hello") {
			content = l.Text()
		}
	}
	assert.True(t, strings.HasPrefix(content, "  "), "code rows carry a 2-space indent: %q", content)
}

func TestUnorderedListBullets(t *testing.T) {
	body := "- top\n  - inner\n- next\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)

	texts := lineTexts(slides[0].Content)
	assert.Contains(t, texts, "• top")
	assert.Contains(t, texts, "  • inner")
	assert.Contains(t, texts, "• next")
}

func TestNestedOrderedListNumbering(t *testing.T) {
	body := "1. a\n2. b\n   1. x\n   2. y\n3. c\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)

	texts := lineTexts(slides[0].Content)
	assert.Contains(t, texts, "1. a")
	assert.Contains(t, texts, "2. b")
	assert.Contains(t, texts, "  1. x")
	assert.Contains(t, texts, "  2. y")
	assert.Contains(t, texts, "3. c")
}

func TestOrderedListStartValue(t *testing.T) {
	slides := compile(t, "4. four\n5. five\n", meta.Meta{})
	require.Len(t, slides, 1)
	texts := lineTexts(slides[0].Content)
	assert.Contains(t, texts, "4. four")
	assert.Contains(t, texts, "5. five")
}

func TestBlockquotePrefix(t *testing.T) {
	theme := styles.Mocha()
	slides := compile(t, "> wisdom here\n", meta.Meta{})
	require.Len(t, slides, 1)

	line := slides[0].Content[0]
	require.NotEmpty(t, line.Spans)
	assert.Equal(t, "│ ", line.Spans[0].Text)
	assert.Equal(t, theme.BlockQuotePrefix, line.Spans[0].Style.Fg)
}

func TestImagePlaceholderReservation(t *testing.T) {
	body := "before\n\n![diagram](assets/d.png)\n\nafter\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)

	require.Len(t, slides[0].Images, 1)
	img := slides[0].Images[0]
	assert.Equal(t, "assets/d.png", img.Path)
	assert.Equal(t, 2, img.LineIndex)
	assert.Equal(t, ImagePlaceholderHeight, img.Height)
	assert.Zero(t, img.MaxWidth)

	// the reserved region is blank lines
	for i := img.LineIndex; i < img.LineIndex+img.Height; i++ {
		assert.True(t, slides[0].Content[i].Blank(), "line %d should be reserved blank", i)
	}
	// alt text is discarded
	assert.NotContains(t, lineTexts(slides[0].Content), "diagram")
}

func TestImageMaxWidthResolution(t *testing.T) {
	body := "<!-- image_max_width: 40% -->\n\n![a](a.png)\n\ncaption a\n\n---\n\n![b](b.png)\n\ncaption b\n"
	slides := compile(t, body, meta.Meta{ImageMaxWidth: "60%"})
	require.Len(t, slides, 2)

	require.Len(t, slides[0].Images, 1)
	assert.InDelta(t, 0.4, slides[0].Images[0].MaxWidth, 1e-9)

	// second slide falls back to the document default
	require.Len(t, slides[1].Images, 1)
	assert.InDelta(t, 0.6, slides[1].Images[0].MaxWidth, 1e-9)
}

func TestImageOnlySlideIsDropped(t *testing.T) {
	// placeholder rows are blank lines, so a slide with nothing else is
	// trimmed empty and never emitted
	slides := compile(t, "![a](a.png)\n\n---\n\ntext\n", meta.Meta{})
	require.Len(t, slides, 1)
	assert.Equal(t, "text", slides[0].Content[0].Text())
}

func TestDirectivePrecedence(t *testing.T) {
	body := "<!-- transition: dissolve -->\n\nfirst\n\n---\n\nsecond\n"
	slides := compile(t, body, meta.Meta{Transition: "fade"})
	require.Len(t, slides, 2)
	assert.Equal(t, TransitionDissolve, slides[0].Transition)
	assert.Equal(t, TransitionFade, slides[1].Transition)
}

func TestDirectiveClearedAtBoundary(t *testing.T) {
	body := "<!-- layout: center -->\n\nfirst\n\n---\n\nsecond\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 2)
	assert.Equal(t, LayoutCenter, slides[0].Layout)
	assert.Equal(t, LayoutDefault, slides[1].Layout)
}

func TestHardDefaults(t *testing.T) {
	slides := compile(t, "content\n", meta.Meta{})
	require.Len(t, slides, 1)
	assert.Equal(t, LayoutDefault, slides[0].Layout)
	assert.Equal(t, TransitionSlideIn, slides[0].Transition)
}

func TestUnrecognizedDirectiveIgnored(t *testing.T) {
	body := "<!-- speakernotes: hello -->\n\ncontent\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)
	assert.Equal(t, LayoutDefault, slides[0].Layout)
	assert.Equal(t, TransitionSlideIn, slides[0].Transition)
}

func TestFigletBannerInsertion(t *testing.T) {
	banner := func(text, font string) ([]string, error) {
		assert.Equal(t, "Title", text)
		assert.Equal(t, "slant", font)
		return []string{"ART LINE 1", "ART LINE 2", "   "}, nil
	}
	body := "<!-- figlet:slant -->\n\n# Title\n"
	slides := compile(t, body, meta.Meta{}, WithBanner(banner))
	require.Len(t, slides, 1)

	texts := lineTexts(slides[0].Content)
	assert.Equal(t, []string{"ART LINE 1", "ART LINE 2"}, texts[:2])
	assert.NotContains(t, texts, "# Title")
}

func TestFigletFallbackToPlainText(t *testing.T) {
	banner := func(string, string) ([]string, error) {
		return nil, errors.New("spawn failed")
	}
	body := "<!-- figlet -->\n\n# Title\n"
	slides := compile(t, body, meta.Meta{}, WithBanner(banner))
	require.Len(t, slides, 1)

	texts := lineTexts(slides[0].Content)
	assert.Equal(t, "Title", texts[0], "fallback is the raw heading text without the # prefix")
}

func TestFigletFrontmatterDefault(t *testing.T) {
	var calls int
	banner := func(text, font string) ([]string, error) {
		calls++
		assert.Empty(t, font)
		return []string{text + "!"}, nil
	}
	body := "# One\n\n---\n\n# Two\n"
	slides := compile(t, body, meta.Meta{Figlet: &meta.FigletOption{Enabled: true}}, WithBanner(banner))
	require.Len(t, slides, 2)
	assert.Equal(t, 2, calls, "frontmatter figlet applies to every slide")
}

func TestTwoColumnLayoutCompile(t *testing.T) {
	body := "<!-- layout: two-column -->\n\nleft side\n\n|||\n\nright side\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)

	s := slides[0]
	assert.Equal(t, LayoutTwoColumn, s.Layout)
	require.NotNil(t, s.RightContent)
	assert.Contains(t, lineTexts(s.Content), "left side")
	assert.Contains(t, lineTexts(s.RightContent), "right side")
	assert.NotContains(t, lineTexts(s.Content), "|||")
}

func TestQRBlock(t *testing.T) {
	body := "```qr\nhttps://example.com\n```\n"
	slides := compile(t, body, meta.Meta{})
	require.Len(t, slides, 1)
	texts := lineTexts(slides[0].Content)
	assert.Contains(t, texts, "https://example.com")
}
