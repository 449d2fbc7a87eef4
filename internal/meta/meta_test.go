package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	content := `---
theme: macchiato
layout: center
transition: fade
image_max_width: 60%
author: Ada
---

# First slide
`
	m, body := Extract(content)
	assert.Equal(t, "macchiato", m.Theme)
	assert.Equal(t, "center", m.Layout)
	assert.Equal(t, "fade", m.Transition)
	assert.Equal(t, "60%", m.ImageMaxWidth)
	assert.Equal(t, "Ada", m.Author)
	assert.Nil(t, m.Figlet)
	assert.Equal(t, "# First slide\n", body)
}

func TestExtractNoFrontmatter(t *testing.T) {
	content := "# Just a slide\n\ncontent\n"
	m, body := Extract(content)
	assert.Equal(t, Meta{}, m)
	assert.Equal(t, content, body)
}

func TestExtractUnclosedBlockIsNotFrontmatter(t *testing.T) {
	content := "---\ntheme: mocha\nno closing line\n"
	m, body := Extract(content)
	assert.Equal(t, Meta{}, m)
	assert.Equal(t, content, body)
}

func TestExtractMalformedYamlIgnored(t *testing.T) {
	content := "---\n: : :\n---\nbody\n"
	m, body := Extract(content)
	assert.Equal(t, Meta{}, m)
	assert.Equal(t, content, body)
}

func TestFigletForms(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want *FigletOption
	}{
		{"absent", "theme: mocha", nil},
		{"false", "figlet: false", &FigletOption{Enabled: false}},
		{"true", "figlet: true", &FigletOption{Enabled: true}},
		{"empty", "figlet:", &FigletOption{Enabled: true}},
		{"font", "figlet: slant", &FigletOption{Enabled: true, Font: "slant"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := Extract("---\n" + tt.yaml + "\n---\nbody")
			if tt.want == nil {
				assert.Nil(t, m.Figlet)
				return
			}
			require.NotNil(t, m.Figlet)
			assert.Equal(t, *tt.want, *m.Figlet)
		})
	}
}
