package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosain/tride/internal/styles"
)

const testDeck = `---
author: Ada
date: June 1
theme: mocha
---

# One

first slide

---

# Two

second slide
`

func loadModel(t *testing.T, content string) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	m := Model{FileName: path}
	require.NoError(t, m.Load())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestLoadCompilesSlides(t *testing.T) {
	m := loadModel(t, testDeck)
	assert.Len(t, m.Pages(), 2)
	assert.Equal(t, "Ada", m.Author)
	assert.Equal(t, "June 1", m.Date)
}

func TestThemeFlagOverridesFrontmatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	require.NoError(t, os.WriteFile(path, []byte(testDeck), 0644))
	m := Model{FileName: path, ThemeName: "latte"}
	require.NoError(t, m.Load())
	assert.Equal(t, styles.Latte(), m.theme)
}

func TestStartupPlaysFirstTransition(t *testing.T) {
	m := loadModel(t, testDeck)
	assert.Nil(t, m.effect)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	assert.NotNil(t, m.effect, "the first slide enters with its transition")

	// later resizes must not replay it
	m.effect = nil
	next, _ = m.Update(tea.WindowSizeMsg{Width: 50, Height: 18})
	m = next.(Model)
	assert.Nil(t, m.effect)
}

func TestNavigationStartsTransition(t *testing.T) {
	m := loadModel(t, testDeck)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	next, _ = m.Update(keyMsg("l"))
	m = next.(Model)

	assert.Equal(t, 1, m.CurrentPage())
	assert.NotNil(t, m.effect)
}

func TestNumericJump(t *testing.T) {
	m := loadModel(t, testDeck)
	for _, k := range []string{"2", "g"} {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	assert.Equal(t, 1, m.CurrentPage())
}

func TestQuitKey(t *testing.T) {
	m := loadModel(t, testDeck)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestScrollStaysInBounds(t *testing.T) {
	m := loadModel(t, testDeck)
	next, _ := m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, 0, m.scroll[0])

	for i := 0; i < 50; i++ {
		next, _ = m.Update(keyMsg("j"))
		m = next.(Model)
	}
	assert.LessOrEqual(t, m.scroll[0], m.maxScroll())
}

func TestScrollReachesWrappedTail(t *testing.T) {
	long := strings.Repeat("word ", 40)
	m := loadModel(t, "# T\n\n"+long+"\n")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 24, Height: 8})
	m = next.(Model)

	unwrapped := len(m.slides[0].Content)
	for i := 0; i < 100; i++ {
		next, _ = m.Update(keyMsg("j"))
		m = next.(Model)
	}
	assert.Greater(t, m.scroll[0], unwrapped-1,
		"scroll bound follows the wrapped row count, not the line count")
	assert.Equal(t, m.maxScroll(), m.scroll[0])
}

func TestViewShowsStatusBar(t *testing.T) {
	m := loadModel(t, testDeck)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "[1/2]")
	assert.Contains(t, view, "Ada")
}

func TestEmptyDeckRendersWithoutSlides(t *testing.T) {
	m := loadModel(t, "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(Model)

	assert.Empty(t, m.Pages())
	assert.Contains(t, m.View(), "[0/0]")

	// navigation on an empty deck must not move or panic
	next, _ = m.Update(keyMsg("l"))
	m = next.(Model)
	assert.Equal(t, 0, m.CurrentPage())
}

func TestRawPageForClipboard(t *testing.T) {
	deck := "# A\n\n```go\nfmt.Println(1)\n```\n\n---\n\n# B\n"
	m := loadModel(t, deck)
	assert.True(t, strings.Contains(m.rawPage(), "fmt.Println"))
}
