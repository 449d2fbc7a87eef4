// Package model drives the presentation: it owns the compiled deck, the
// frame loop, key handling, and the per-frame pipeline of layout,
// images, and transitions that produces each rendered grid.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/code"
	"github.com/gosain/tride/internal/deck"
	"github.com/gosain/tride/internal/figlet"
	"github.com/gosain/tride/internal/file"
	"github.com/gosain/tride/internal/layout"
	"github.com/gosain/tride/internal/meta"
	"github.com/gosain/tride/internal/navigation"
	"github.com/gosain/tride/internal/styles"
	"github.com/gosain/tride/internal/term"
	"github.com/gosain/tride/internal/transition"
)

const (
	frameInterval   = time.Second / 60
	statusBarHeight = 1
	scrollJump      = 10

	delimiter = "\n---\n"
)

type keyMap struct {
	Quit       key.Binding
	Copy       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	JumpDown   key.Binding
	JumpUp     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	Copy:       key.NewBinding(key.WithKeys("y")),
	ScrollDown: key.NewBinding(key.WithKeys("j", "down")),
	ScrollUp:   key.NewBinding(key.WithKeys("k", "up")),
	JumpDown:   key.NewBinding(key.WithKeys("d", "ctrl+d")),
	JumpUp:     key.NewBinding(key.WithKeys("u", "ctrl+u")),
}

// Model holds all presentation state. FileName, ThemeName, and Watcher
// are set by the command layer before Load.
type Model struct {
	FileName  string
	ThemeName string
	Watcher   *fsnotify.Watcher

	Author string
	Date   string

	theme    styles.Theme
	slides   []deck.Slide
	rawPages []string
	page     int
	scroll   map[int]int
	buffer   string

	width  int
	height int
	booted bool

	effect *transition.Effect
	start  time.Time
	images *term.Images
}

type frameMsg time.Time

type fileWatchMsg struct{}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Load reads and compiles the presentation. It is called once at
// startup and again on every live reload; scroll offsets and the page
// index survive a reload where they still fit.
func (m *Model) Load() error {
	var content string
	var err error
	if m.FileName != "" {
		content, err = file.Read(m.FileName)
	} else {
		content, err = file.ReadStdin()
	}
	if err != nil {
		return err
	}

	md, body := meta.Extract(content)
	m.theme = m.resolveTheme(md, body)
	m.Author = md.Author
	m.Date = md.Date
	m.slides = deck.Compile(body, md, m.theme, deck.WithBanner(figlet.Render))
	m.rawPages = strings.Split(body, delimiter)

	if m.scroll == nil {
		m.scroll = make(map[int]int)
	}
	if m.images == nil {
		m.images = term.NewImages()
	}
	if m.FileName != "" {
		m.images.SetBaseDir(filepath.Dir(m.FileName))
	}
	if last := len(m.slides) - 1; m.page > last && last >= 0 {
		m.page = last
	}
	if len(m.slides) == 0 {
		m.page = 0
	}
	return nil
}

// resolveTheme picks the color theme: a command-line flag wins, then
// the frontmatter theme key, then a theme comment anywhere in the
// document, then the terminal-background default.
func (m *Model) resolveTheme(md meta.Meta, body string) styles.Theme {
	if m.ThemeName != "" {
		if t, ok := styles.FromName(m.ThemeName); ok {
			return t
		}
		log.Warn("unknown theme", "name", m.ThemeName)
	}
	if md.Theme != "" {
		if t, ok := styles.FromName(md.Theme); ok {
			return t
		}
		log.Warn("unknown theme", "name", md.Theme)
	}
	if t, ok := styles.FromMarkdown(body); ok {
		return t
	}
	return styles.Default()
}

// Init starts the frame ticker and, when a watcher is attached, the
// file watch loop.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd()}
	if m.Watcher != nil {
		cmds = append(cmds, m.watchCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) watchCmd() tea.Cmd {
	w := m.Watcher
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return fileWatchMsg{}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// Update advances the presentation state for one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.booted {
			// the first slide gets its entrance effect too
			m.booted = true
			m.startTransition(nil)
		}
		return m, tea.ClearScreen

	case frameMsg:
		if m.effect != nil && m.effect.Done(time.Since(m.start)) {
			m.effect = nil
		}
		return m, frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileWatchMsg:
		if err := m.Load(); err != nil {
			log.Error("reload failed", "file", m.FileName, "err", err)
		} else {
			log.Debug("reloaded", "file", m.FileName, "slides", len(m.slides))
			m.images.Invalidate()
		}
		// editors that replace the file drop the watch with it
		_ = m.Watcher.Add(m.FileName)
		return m, m.watchCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Copy):
		if blocks, err := code.Parse(m.rawPage()); err == nil {
			for _, b := range blocks {
				_ = clipboard.WriteAll(b.Code)
			}
		}
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.scrollBy(1)
		return m, nil

	case key.Matches(msg, keys.ScrollUp):
		m.scrollBy(-1)
		return m, nil

	case key.Matches(msg, keys.JumpDown):
		m.scrollBy(scrollJump)
		return m, nil

	case key.Matches(msg, keys.JumpUp):
		m.scrollBy(-scrollJump)
		return m, nil
	}

	state := navigation.Navigate(navigation.State{
		Buffer:      m.buffer,
		Page:        m.page,
		TotalSlides: len(m.slides),
	}, msg.String())

	m.buffer = state.Buffer
	if state.Page != m.page {
		prev := m.renderFrame()
		m.page = state.Page
		m.startTransition(prev)
	}
	return m, nil
}

// startTransition begins the entering slide's effect, replacing any
// effect still running from the previous page change.
func (m *Model) startTransition(prev *buffer.Buffer) {
	if len(m.slides) == 0 {
		m.effect = nil
		return
	}
	m.effect = transition.New(m.slides[m.page].Transition, prev, m.theme, m.gridHeight())
	m.start = time.Now()
}

func (m *Model) scrollBy(delta int) {
	s := m.scroll[m.page] + delta
	if max := m.maxScroll(); s > max {
		s = max
	}
	if s < 0 {
		s = 0
	}
	m.scroll[m.page] = s
}

// maxScroll bounds scrolling by the wrapped row count at the current
// width, not the unwrapped line count: narrow terminals wrap lines into
// more rows than the slide carries.
func (m Model) maxScroll() int {
	if len(m.slides) == 0 {
		return 0
	}
	area := buffer.Rect{W: m.width, H: m.gridHeight()}
	max := layout.WrappedLen(m.slides[m.page], area) - 1
	if max < 0 {
		max = 0
	}
	return max
}

func (m Model) gridHeight() int {
	h := m.height - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// rawPage returns the markdown source of the current page, used for
// copying code blocks. Raw pages are split on the same rule delimiter
// the compiler uses for slide boundaries.
func (m Model) rawPage() string {
	if len(m.rawPages) == 0 {
		return ""
	}
	i := m.page
	if i >= len(m.rawPages) {
		i = len(m.rawPages) - 1
	}
	return m.rawPages[i]
}

// renderFrame builds the grid for the current instant: layout, images,
// then the running transition.
func (m Model) renderFrame() *buffer.Buffer {
	grid := buffer.New(m.width, m.gridHeight())
	if m.width < 1 || len(m.slides) == 0 {
		return grid
	}
	s := m.slides[m.page]
	placements := layout.RenderSlide(grid, s, m.scroll[m.page], grid.Area(), m.theme)
	for _, p := range placements {
		m.images.Draw(grid, p)
	}
	if m.effect != nil {
		m.effect.Apply(time.Since(m.start), grid)
	}
	return grid
}

// View renders the current frame plus the status bar.
func (m Model) View() string {
	if m.width < 1 || m.height < 2 {
		return ""
	}
	return m.renderFrame().String() + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	left := strings.TrimSpace(m.Author + "  " + m.Date)
	if left == "" {
		left = "h/l: slides  j/k: scroll  q: quit"
	}
	right := "[0/0]"
	if len(m.slides) > 0 {
		right = fmt.Sprintf("[%d/%d]", m.page+1, len(m.slides))
		if l := m.slides[m.page].Layout; l != deck.LayoutDefault {
			right = l.String() + "  " + right
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := " " + left + strings.Repeat(" ", gap) + right + " "

	style := lipgloss.NewStyle()
	if fg := m.theme.StatusFg.Hex(); fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bg := m.theme.StatusBg.Hex(); bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	return style.Render(bar)
}

// CurrentPage returns the page the presentation is on.
func (m *Model) CurrentPage() int {
	return m.page
}

// Pages returns the compiled slides.
func (m *Model) Pages() []deck.Slide {
	return m.slides
}
