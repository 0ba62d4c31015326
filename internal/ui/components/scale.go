package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// ScaleSelector picks an integer in [Min, Max]. It starts unset; the first
// arrow press or digit sets a value.
type ScaleSelector struct {
	Min, Max int
	Value    int
	Set      bool
}

// NewScaleSelector creates a selector, preset to value when set is true.
func NewScaleSelector(lo, hi, value int, set bool) ScaleSelector {
	s := ScaleSelector{Min: lo, Max: hi}
	if set && value >= lo && value <= hi {
		s.Value = value
		s.Set = true
	}
	return s
}

// Update handles left/right and digit keys. The second return value reports
// whether Value changed. For scales reaching 10, "0" selects 10.
func (s ScaleSelector) Update(msg tea.Msg) (ScaleSelector, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	key := kmsg.String()
	switch key {
	case "left", "h":
		if !s.Set {
			return s.set(s.Min)
		}
		if s.Value > s.Min {
			return s.set(s.Value - 1)
		}
		return s, false
	case "right", "l":
		if !s.Set {
			return s.set(s.Min)
		}
		if s.Value < s.Max {
			return s.set(s.Value + 1)
		}
		return s, false
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		n := int(key[0] - '0')
		if n == 0 && s.Max >= 10 && s.Min <= 10 && s.Min > 0 {
			n = 10
		}
		if n >= s.Min && n <= s.Max {
			return s.set(n)
		}
	}
	return s, false
}

func (s ScaleSelector) set(n int) (ScaleSelector, bool) {
	changed := !s.Set || s.Value != n
	s.Value = n
	s.Set = true
	return s, changed
}

// View renders the scale as a row of numbers with the value highlighted.
func (s ScaleSelector) View() string {
	cells := make([]string, 0, s.Max-s.Min+1)
	for n := s.Min; n <= s.Max; n++ {
		label := fmt.Sprintf(" %d ", n)
		if s.Set && n == s.Value {
			cells = append(cells, lipgloss.NewStyle().
				Background(theme.Secondary).
				Foreground(theme.BgDark).
				Bold(true).
				Render(label))
			continue
		}
		cells = append(cells, theme.Unselected.Render(label))
	}

	row := strings.Join(cells, " ")
	ends := theme.Hint.Render(fmt.Sprintf("%d = lowest, %d = highest", s.Min, s.Max))
	return row + "\n\n" + ends
}
