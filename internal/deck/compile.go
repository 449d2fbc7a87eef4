package deck

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/code"
	"github.com/gosain/tride/internal/figlet"
	"github.com/gosain/tride/internal/meta"
	"github.com/gosain/tride/internal/styles"
)

// BannerFunc renders heading text into banner art lines. Errors signal
// the plain-text fallback, never a compile failure.
type BannerFunc func(text, font string) ([]string, error)

// Option configures a single compile pass.
type Option func(*converter)

// WithBanner swaps the banner collaborator (tests use this to avoid
// depending on an installed figlet).
func WithBanner(fn BannerFunc) Option {
	return func(c *converter) { c.banner = fn }
}

// Compile turns a markdown body (frontmatter already stripped) into the
// ordered slide list. Document-wide defaults come from m; per-slide
// directives override them.
func Compile(body string, m meta.Meta, theme styles.Theme, opts ...Option) []Slide {
	c := newConverter(m, theme)
	for _, o := range opts {
		o(c)
	}

	source := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return c.walk(source, n, entering), nil
	})
	return c.finish()
}

type listKind struct {
	ordered bool
	counter int
}

// converter is the single-pass compile context. One is built per document
// and discarded once the slide list is produced.
type converter struct {
	theme  styles.Theme
	banner BannerFunc

	// document-wide defaults from frontmatter
	docLayout     *Layout
	docTransition *Transition
	docFiglet     *string
	docImageWidth float64

	slides     []Slide
	lines      []buffer.Line
	spans      []buffer.Span
	styleStack []buffer.Style
	listStack  []listKind

	inBlockquote bool
	inHeading    bool
	headingBuf   strings.Builder
	headingFont  string

	pendingLayout     *Layout
	pendingTransition *Transition
	pendingFiglet     *string
	pendingImageWidth *float64

	images []SlideImage
}

func newConverter(m meta.Meta, theme styles.Theme) *converter {
	c := &converter{
		theme:      theme,
		banner:     figlet.Render,
		styleStack: []buffer.Style{theme.Base()},
	}
	if m.Layout != "" {
		l := ParseLayout(m.Layout)
		c.docLayout = &l
	}
	if m.Transition != "" {
		t := ParseTransition(m.Transition)
		c.docTransition = &t
	}
	if m.Figlet != nil && m.Figlet.Enabled {
		font := m.Figlet.Font
		c.docFiglet = &font
	}
	if f, ok := ParsePercent(m.ImageMaxWidth); ok {
		c.docImageWidth = f
	}
	return c
}

func (c *converter) currentStyle() buffer.Style {
	return c.styleStack[len(c.styleStack)-1]
}

func (c *converter) pushStyle(mod func(buffer.Style) buffer.Style) {
	c.styleStack = append(c.styleStack, mod(c.currentStyle()))
}

func (c *converter) popStyle() {
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

func (c *converter) pushSpan(text string, style buffer.Style) {
	c.spans = append(c.spans, buffer.Span{Text: text, Style: style})
}

// flushLine moves the in-flight spans into a finished content line,
// prefixing the quote marker inside blockquotes.
func (c *converter) flushLine() {
	spans := c.spans
	c.spans = nil
	if c.inBlockquote {
		prefixed := make([]buffer.Span, 0, len(spans)+1)
		prefixed = append(prefixed, buffer.Span{
			Text:  "│ ",
			Style: buffer.Style{Fg: c.theme.BlockQuotePrefix},
		})
		prefixed = append(prefixed, spans...)
		c.lines = append(c.lines, buffer.Line{Spans: prefixed})
		return
	}
	c.lines = append(c.lines, buffer.Line{Spans: spans})
}

func (c *converter) blankLine() {
	c.lines = append(c.lines, buffer.Line{})
}

func (c *converter) listIndent() string {
	depth := len(c.listStack) - 1
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("  ", depth)
}

// Three-tier directive resolution: per-slide directive, then frontmatter
// default, then the hard-coded default.

func (c *converter) resolveLayout() Layout {
	if c.pendingLayout != nil {
		return *c.pendingLayout
	}
	if c.docLayout != nil {
		return *c.docLayout
	}
	return LayoutDefault
}

func (c *converter) resolveTransition() Transition {
	if c.pendingTransition != nil {
		return *c.pendingTransition
	}
	if c.docTransition != nil {
		return *c.docTransition
	}
	return TransitionSlideIn
}

func (c *converter) resolveFiglet() (font string, ok bool) {
	if c.pendingFiglet != nil {
		return *c.pendingFiglet, true
	}
	if c.docFiglet != nil {
		return *c.docFiglet, true
	}
	return "", false
}

func (c *converter) resolveImageWidth() float64 {
	if c.pendingImageWidth != nil {
		return *c.pendingImageWidth
	}
	return c.docImageWidth
}

// flushSlide closes the slide under construction at a rule boundary or at
// end of input. Pending directives are consumed here whether or not a
// slide is emitted.
func (c *converter) flushSlide() {
	if len(c.spans) > 0 {
		c.flushLine()
	}
	for len(c.lines) > 0 && c.lines[len(c.lines)-1].Blank() {
		c.lines = c.lines[:len(c.lines)-1]
	}

	lines := c.lines
	images := c.images
	layout := c.resolveLayout()
	transition := c.resolveTransition()
	c.lines = nil
	c.images = nil
	c.pendingLayout = nil
	c.pendingTransition = nil
	c.pendingFiglet = nil
	c.pendingImageWidth = nil

	if len(lines) == 0 {
		return
	}

	s := Slide{Layout: layout, Content: lines, Images: images, Transition: transition}
	if layout == LayoutTwoColumn {
		left, right, found := splitTwoColumn(lines)
		s.Content = left
		if found {
			s.RightContent = right
		}
	}
	c.slides = append(c.slides, s)
}

func (c *converter) finish() []Slide {
	c.flushSlide()
	return c.slides
}

func (c *converter) walk(source []byte, n ast.Node, entering bool) ast.WalkStatus {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			c.openHeading(n.Level)
		} else {
			c.closeHeading()
		}

	case *ast.Paragraph:
		if !entering {
			c.flushLine()
			c.blankLine()
		}

	case *ast.Text:
		if entering {
			c.text(n, source)
		}

	case *ast.String:
		if entering {
			c.pushSpan(string(n.Value), c.currentStyle())
		}

	case *ast.CodeSpan:
		if entering {
			c.inlineCode(childText(n, source))
		}
		return ast.WalkSkipChildren

	case *ast.Emphasis:
		if entering {
			if n.Level >= 2 {
				c.pushStyle(func(s buffer.Style) buffer.Style { s.Bold = true; return s })
			} else {
				c.pushStyle(func(s buffer.Style) buffer.Style { s.Italic = true; return s })
			}
		} else {
			c.popStyle()
		}

	case *east.Strikethrough:
		if entering {
			c.pushStyle(func(s buffer.Style) buffer.Style { s.Strike = true; return s })
		} else {
			c.popStyle()
		}

	case *ast.FencedCodeBlock:
		if entering {
			c.codeBlock(string(n.Language(source)), segmentsText(n.Lines(), source))
		}
		return ast.WalkSkipChildren

	case *ast.CodeBlock:
		if entering {
			c.codeBlock("", segmentsText(n.Lines(), source))
		}
		return ast.WalkSkipChildren

	case *ast.List:
		if entering {
			if len(c.spans) > 0 {
				c.flushLine()
			}
			kind := listKind{ordered: n.IsOrdered(), counter: n.Start}
			if kind.ordered && kind.counter <= 0 {
				kind.counter = 1
			}
			c.listStack = append(c.listStack, kind)
		} else {
			c.listStack = c.listStack[:len(c.listStack)-1]
			if len(c.listStack) == 0 {
				c.blankLine()
			}
		}

	case *ast.ListItem:
		if entering {
			c.openItem()
		} else if len(c.spans) > 0 {
			c.flushLine()
		}

	case *ast.Blockquote:
		if entering {
			c.inBlockquote = true
		} else {
			c.inBlockquote = false
			c.blankLine()
		}

	case *ast.ThematicBreak:
		if entering {
			c.flushSlide()
		}

	case *ast.Image:
		if entering {
			c.image(string(n.Destination))
		}
		return ast.WalkSkipChildren

	case *ast.HTMLBlock:
		if entering {
			c.applyDirective(htmlBlockText(n, source))
		}
		return ast.WalkSkipChildren

	case *ast.RawHTML:
		if entering {
			c.applyDirective(rawHTMLText(n, source))
		}
		return ast.WalkSkipChildren

	case *ast.AutoLink:
		if entering {
			c.pushSpan(string(n.URL(source)), c.currentStyle())
		}
		return ast.WalkSkipChildren
	}
	return ast.WalkContinue
}

func (c *converter) text(n *ast.Text, source []byte) {
	val := string(n.Segment.Value(source))
	if c.inHeading {
		c.headingBuf.WriteString(val)
		if n.SoftLineBreak() {
			c.headingBuf.WriteByte(' ')
		}
		return
	}
	if val != "" {
		c.pushSpan(val, c.currentStyle())
	}
	if n.SoftLineBreak() {
		c.pushSpan(" ", c.currentStyle())
	} else if n.HardLineBreak() {
		c.flushLine()
	}
}

func (c *converter) openHeading(level int) {
	var fg buffer.Color
	switch level {
	case 1:
		fg = c.theme.H1
	case 2:
		fg = c.theme.H2
	case 3:
		fg = c.theme.H3
	default:
		fg = c.theme.H4
	}
	style := buffer.Style{Fg: fg, Bold: true}
	c.styleStack = append(c.styleStack, style)

	if font, ok := c.resolveFiglet(); ok {
		c.inHeading = true
		c.headingFont = font
		c.headingBuf.Reset()
	} else if c.resolveLayout() != LayoutCenter {
		c.pushSpan("# ", style)
	}
}

func (c *converter) closeHeading() {
	if c.inHeading {
		c.inHeading = false
		style := c.currentStyle()
		c.spans = nil
		c.renderBanner(c.headingBuf.String(), c.headingFont, style)
		c.blankLine()
	} else {
		c.flushLine()
		c.blankLine()
	}
	c.popStyle()
}

// renderBanner diverts heading text through the banner collaborator. On
// failure the raw text is inserted as a single plain line.
func (c *converter) renderBanner(text, font string, style buffer.Style) {
	art, err := c.banner(text, font)
	if err != nil {
		c.pushSpan(text, style)
		c.flushLine()
		return
	}
	for _, line := range figlet.TrimTrailingBlank(art) {
		c.lines = append(c.lines, buffer.NewLine(buffer.Span{Text: line, Style: style}))
	}
}

func (c *converter) inlineCode(codeText string) {
	c.pushSpan(" "+codeText+" ", buffer.Style{
		Fg: c.theme.InlineCodeFg,
		Bg: c.theme.Surface,
	})
}

// codeBlock emits a fenced block: a full-width surface padding row, the
// highlighted content rows with a 2-space indent, a matching padding row,
// and a blank line keeping adjacent blocks visually separate.
func (c *converter) codeBlock(lang, src string) {
	if len(c.spans) > 0 {
		c.flushLine()
	}

	if lang == "qr" {
		base := c.theme.Base()
		for _, line := range code.QRLines(src) {
			c.lines = append(c.lines, buffer.NewLine(buffer.Span{Text: line, Style: base}))
		}
		c.blankLine()
		return
	}

	surface := c.theme.Surface
	base := buffer.Style{Fg: c.theme.Fg, Bg: surface}

	c.lines = append(c.lines, buffer.Line{Fill: surface})
	for _, spans := range code.Highlight(src, lang, c.theme.ChromaStyle(), base) {
		line := buffer.Line{Fill: surface}
		line.Spans = append(line.Spans, buffer.Span{Text: "  ", Style: base})
		line.Spans = append(line.Spans, spans...)
		c.lines = append(c.lines, line)
	}
	c.lines = append(c.lines, buffer.Line{Fill: surface})
	c.blankLine()
}

func (c *converter) openItem() {
	indent := c.listIndent()
	top := &c.listStack[len(c.listStack)-1]
	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%s%d. ", indent, top.counter)
		top.counter++
	} else {
		bullet = indent + "• "
	}
	c.pushSpan(bullet, buffer.Style{Fg: c.theme.ListBullet})
}

// image records a placeholder region: the current line index plus a fixed
// number of reserved blank rows the layout engine maps to a rectangle.
func (c *converter) image(path string) {
	if len(c.spans) > 0 {
		c.flushLine()
	}
	c.images = append(c.images, SlideImage{
		Path:      path,
		LineIndex: len(c.lines),
		Height:    ImagePlaceholderHeight,
		MaxWidth:  c.resolveImageWidth(),
	})
	for i := 0; i < ImagePlaceholderHeight; i++ {
		c.blankLine()
	}
}

func (c *converter) applyDirective(html string) {
	switch d := parseComment(html).(type) {
	case layoutDirective:
		l := d.layout
		c.pendingLayout = &l
	case transitionDirective:
		t := d.transition
		c.pendingTransition = &t
	case figletDirective:
		font := d.font
		c.pendingFiglet = &font
	case imageWidthDirective:
		f := d.fraction
		c.pendingImageWidth = &f
	}
}

func childText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func segmentsText(lines *text.Segments, source []byte) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		sb.Write(seg.Value(source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(source))
	}
	return sb.String()
}

func rawHTMLText(n *ast.RawHTML, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
