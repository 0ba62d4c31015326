package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// ChoiceList is a single-choice selector over option labels. The cursor
// moves freely; Chosen holds the label the user committed to.
type ChoiceList struct {
	Options []string
	Cursor  int
	Chosen  string
}

// NewChoiceList creates a list with the cursor on chosen when it is one of
// the options, otherwise on the first option.
func NewChoiceList(options []string, chosen string) ChoiceList {
	c := ChoiceList{Options: options}
	for i, o := range options {
		if o == chosen {
			c.Cursor = i
			c.Chosen = chosen
			break
		}
	}
	return c
}

// Update handles navigation and selection. Space or a number key commits a
// choice; the second return value reports whether Chosen changed.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, false
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, false
	case "space", " ":
		return c.choose(c.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(c.Options) {
			c.Cursor = idx
			return c.choose(idx)
		}
	}
	return c, false
}

func (c ChoiceList) choose(idx int) (ChoiceList, bool) {
	label := c.Options[idx]
	changed := c.Chosen != label
	c.Chosen = label
	return c, changed
}

// View renders the options with the cursor and the committed choice marked.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		mark := "( )"
		if opt == c.Chosen {
			mark = "(●)"
		}

		line := fmt.Sprintf("%s%s %d. %s", cursor, mark, i+1, opt)
		switch {
		case opt == c.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
