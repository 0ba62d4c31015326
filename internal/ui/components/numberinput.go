package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a focused text field that only accepts an optionally
// negative integer.
type NumberInput struct {
	field textinput.Model
}

// NewNumberInput limits the field to digits characters (0 = unlimited).
func NewNumberInput(placeholder string, digits int) NumberInput {
	f := textinput.New()
	f.Placeholder = placeholder
	f.CharLimit = max(digits, 0)
	f.Focus()
	return NumberInput{field: f}
}

func (n NumberInput) Init() tea.Cmd {
	return n.field.Focus()
}

// Update drops printable keys that could not be part of an integer.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if s := k.String(); len(s) == 1 && !n.accepts(s[0]) {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.field, cmd = n.field.Update(msg)
	return n, cmd
}

func (n NumberInput) accepts(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-':
		return n.field.Position() == 0 && !strings.HasPrefix(n.field.Value(), "-")
	}
	return false
}

func (n NumberInput) View() string {
	return n.field.View()
}

// Text is the raw field contents.
func (n NumberInput) Text() string {
	return n.field.Value()
}

// Set fills the field with v.
func (n *NumberInput) Set(v int) {
	n.field.SetValue(strconv.Itoa(v))
}

// Int parses the field. ok is false while the field is empty or holds only
// a sign.
func (n NumberInput) Int() (v int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.field.Value()))
	return v, err == nil
}
