// Package meta extracts and parses the optional yaml frontmatter block at
// the top of a deck.
package meta

import (
	"strings"

	"gopkg.in/yaml.v2"
)

// Meta holds the document-wide defaults a deck may declare. Directive-like
// values stay raw strings here; the compiler interprets them with the same
// rules as inline directives.
type Meta struct {
	Theme         string        `yaml:"theme"`
	Layout        string        `yaml:"layout"`
	Transition    string        `yaml:"transition"`
	ImageMaxWidth string        `yaml:"image_max_width"`
	Figlet        *FigletOption `yaml:"figlet"`
	Author        string        `yaml:"author"`
	Date          string        `yaml:"date"`
}

// FigletOption models the three-state figlet key: absent or false means
// no banner headings, true or an empty value means the default font, and
// anything else names a font.
type FigletOption struct {
	Enabled bool
	Font    string
}

// UnmarshalYAML accepts `figlet: true`, `figlet:` and `figlet: slant`.
func (f *FigletOption) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		f.Enabled = t
	case string:
		f.Enabled = true
		f.Font = strings.TrimSpace(t)
	default:
		// Bare `figlet:` means the default font.
		f.Enabled = true
	}
	return nil
}

const delimiter = "---"

// Extract splits an optional leading frontmatter block off the document.
// It returns the parsed defaults and the remaining body. A missing or
// malformed block yields zero defaults and the untouched input.
func Extract(content string) (Meta, string) {
	var m Meta

	rest, ok := strings.CutPrefix(content, delimiter+"\n")
	if !ok {
		if content == delimiter {
			return m, ""
		}
		return m, content
	}

	end := -1
	if strings.HasPrefix(rest, delimiter+"\n") || rest == delimiter {
		end = 0
	} else if i := strings.Index(rest, "\n"+delimiter+"\n"); i >= 0 {
		end = i + 1
	} else if strings.HasSuffix(rest, "\n"+delimiter) {
		end = len(rest) - len(delimiter)
	}
	if end < 0 {
		return m, content
	}

	block := rest[:end]
	body := rest[end+len(delimiter):]
	body = strings.TrimLeft(body, "\n")

	if err := yaml.Unmarshal([]byte(block), &m); err != nil {
		return Meta{}, content
	}

	// A bare `figlet:` key decodes as yaml null, which leaves the pointer
	// nil without ever reaching the unmarshaler. Presence of the key with
	// no value still means "banner headings with the default font".
	if m.Figlet == nil {
		var raw map[string]interface{}
		if yaml.Unmarshal([]byte(block), &raw) == nil {
			if v, present := raw["figlet"]; present && v == nil {
				m.Figlet = &FigletOption{Enabled: true}
			}
		}
	}
	return m, body
}
