// Package figlet shells out to the figlet banner generator. The caller is
// expected to fall back to plain text when rendering fails; a missing
// binary is an expected condition, not a fault.
package figlet

import (
	"fmt"
	"os/exec"
	"strings"
)

// Render pipes text through figlet and returns the banner art lines with
// trailing all-whitespace lines removed. An empty font selects figlet's
// default.
func Render(text, font string) ([]string, error) {
	args := []string{}
	if font != "" {
		args = append(args, "-f", font)
	}
	cmd := exec.Command("figlet", args...)
	cmd.Stdin = strings.NewReader(text)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("figlet: %w", err)
	}
	return TrimTrailingBlank(strings.Split(string(out), "\n")), nil
}

// TrimTrailingBlank drops trailing lines that contain only whitespace.
func TrimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
