// Package file loads presentation sources from disk or a pipe.
package file

import (
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Read loads a presentation file. Carriage returns are stripped so CRLF
// files compile the same as LF files. Executable files get their shebang
// line removed so a self-presenting script shows only its content.
func Read(path string) (string, error) {
	s, err := os.Stat(path)
	if err != nil {
		return "", errors.New("could not read file")
	}
	if s.IsDir() {
		return "", errors.New("can not read directory")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.ReplaceAll(string(b), "\r", "")

	if s.Mode()&0111 != 0 && strings.HasPrefix(content, "#!") {
		if _, rest, ok := strings.Cut(content, "\n"); ok {
			content = rest
		}
	}
	return content, nil
}

// ReadStdin consumes piped input. An interactive terminal on stdin means
// nothing was piped, which is reported as an error rather than blocking.
func ReadStdin() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no file and no piped input")
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(b), "\r", ""), nil
}
