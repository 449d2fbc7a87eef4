package styles

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Theme
		ok   bool
	}{
		{"mocha", Mocha(), true},
		{"catppuccin-mocha", Mocha(), true},
		{"  Latte ", Latte(), true},
		{"MACCHIATO", Macchiato(), true},
		{"frappe", Frappe(), true},
		{"dracula", Theme{}, false},
		{"", Theme{}, false},
	}
	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FromName(%q) = %v, %v", tt.name, got, ok)
		}
	}
}

func TestFromMarkdown(t *testing.T) {
	md := "# Hello\n\n<!-- theme: frappe -->\n\ncontent\n"
	got, ok := FromMarkdown(md)
	if !ok || got != Frappe() {
		t.Errorf("expected frappe theme, got %v, %v", got, ok)
	}

	if _, ok := FromMarkdown("# no directive"); ok {
		t.Error("expected no theme")
	}
}
