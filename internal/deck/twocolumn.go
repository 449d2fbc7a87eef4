package deck

import (
	"strings"

	"github.com/gosain/tride/internal/buffer"
)

// columnSeparator is the sentinel line dividing a two-column slide.
const columnSeparator = "|||"

// splitTwoColumn divides lines at the first ||| marker into left and
// right blocks. Trailing blanks are trimmed from both sides and leading
// blanks from the right. With no marker the whole content stays left.
func splitTwoColumn(lines []buffer.Line) (left, right []buffer.Line, found bool) {
	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line.Text()) == columnSeparator {
			sep = i
			break
		}
	}
	if sep < 0 {
		return lines, nil, false
	}

	left = append([]buffer.Line{}, lines[:sep]...)
	right = append([]buffer.Line{}, lines[sep+1:]...)

	for len(left) > 0 && left[len(left)-1].Blank() {
		left = left[:len(left)-1]
	}
	for len(right) > 0 && right[len(right)-1].Blank() {
		right = right[:len(right)-1]
	}
	for len(right) > 0 && right[0].Blank() {
		right = right[1:]
	}
	return left, right, true
}
