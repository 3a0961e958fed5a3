package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/anerkennung/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the form styling.
type TextInput struct {
	Model textinput.Model
	// GradeOnly drops every typed character except digits, comma and dot.
	GradeOnly bool
	MaxWidth  int
	warn      string
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, gradeOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:     ti,
		GradeOnly: gradeOnly,
		MaxWidth:  maxWidth,
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.GradeOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			if r := []rune(kmsg.String()); len(r) == 1 && !gradeRune(r[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input with its warning, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.warn != "" {
		view += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ "+t.warn)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Reset clears the value and any warning.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
	t.warn = ""
}

// Warn shows a soft warning next to the input. An empty text clears it.
func (t *TextInput) Warn(text string) {
	t.warn = text
}

func gradeRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == ',' || r == '.'
}
