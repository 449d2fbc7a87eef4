// Package navigation maps key presses to page movement. A numeric
// buffer lets the viewer type a count before a movement key, vim style:
// "3" then "l" advances three pages, "12" then "g" jumps to page 12.
package navigation

import "strconv"

// State is the navigation-relevant slice of presentation state.
type State struct {
	Buffer      string
	Page        int
	TotalSlides int
}

// Navigate applies one key press to the state. Unrecognized keys clear
// the numeric buffer; movement keys consume it.
func Navigate(state State, keyPress string) State {
	switch keyPress {
	case "right", "l", "pgdown", " ", "enter", "n":
		return state.move(state.count())
	case "left", "h", "pgup", "p":
		return state.move(-state.count())
	case "g", "home":
		if n, ok := state.number(); ok {
			return state.jump(n - 1)
		}
		return state.jump(0)
	case "G", "end":
		if n, ok := state.number(); ok {
			return state.jump(n - 1)
		}
		return state.jump(state.TotalSlides - 1)
	default:
		if len(keyPress) == 1 && keyPress[0] >= '0' && keyPress[0] <= '9' {
			state.Buffer += keyPress
			return state
		}
		state.Buffer = ""
		return state
	}
}

func (s State) count() int {
	if n, ok := s.number(); ok {
		return n
	}
	return 1
}

func (s State) number() (int, bool) {
	n, err := strconv.Atoi(s.Buffer)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (s State) move(delta int) State {
	return s.jump(s.Page + delta)
}

func (s State) jump(page int) State {
	if last := s.TotalSlides - 1; page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	s.Page = page
	s.Buffer = ""
	return s
}
