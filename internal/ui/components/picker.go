package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/ui/theme"
)

// Picker is a type-to-filter selection list, used for choosing a course.
type Picker struct {
	Options  []string
	Filter   string
	Selected int
	// Height is the maximum number of visible options.
	Height int
	focused bool
}

// NewPicker creates a picker over options.
func NewPicker(options []string, height int) Picker {
	return Picker{Options: options, Height: height}
}

// SetOptions replaces the options and keeps the selection in range.
func (p *Picker) SetOptions(options []string) {
	p.Options = options
	p.clamp()
}

// Focus and Blur toggle whether the picker reacts to keys.
func (p *Picker) Focus() { p.focused = true }
func (p *Picker) Blur()  { p.focused = false }

// Matches returns the options containing the filter, case-insensitively.
func (p Picker) Matches() []string {
	if p.Filter == "" {
		return p.Options
	}
	needle := strings.ToLower(p.Filter)
	var out []string
	for _, o := range p.Options {
		if strings.Contains(strings.ToLower(o), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Current returns the highlighted option, if any.
func (p Picker) Current() (string, bool) {
	m := p.Matches()
	if p.Selected < 0 || p.Selected >= len(m) {
		return "", false
	}
	return m[p.Selected], true
}

// Reset clears the filter and selection.
func (p *Picker) Reset() {
	p.Filter = ""
	p.Selected = 0
}

// Select sets the filter so that exactly the given option is highlighted.
func (p *Picker) Select(option string) {
	p.Filter = option
	p.Selected = 0
	for i, m := range p.Matches() {
		if m == option {
			p.Selected = i
			return
		}
	}
}

// Update handles keyboard navigation and filtering.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !p.focused {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "up":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down":
		if p.Selected < len(p.Matches())-1 {
			p.Selected++
		}
	case "backspace":
		if r := []rune(p.Filter); len(r) > 0 {
			p.Filter = string(r[:len(r)-1])
			p.Selected = 0
		}
	default:
		if kmsg.Text != "" {
			p.Filter += kmsg.Text
			p.Selected = 0
		}
	}
	p.clamp()
	return p, nil
}

// View renders the filter line and the visible options.
func (p Picker) View(width int) string {
	var b strings.Builder

	filter := p.Filter
	if filter == "" {
		filter = theme.Hint.Render("Kurs suchen…")
	}
	b.WriteString(filter)
	if p.focused {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("▏"))
	}
	b.WriteString("\n")

	matches := p.Matches()
	if len(matches) == 0 {
		b.WriteString(theme.Hint.Render("  keine passenden Kurse"))
		return b.String()
	}

	start := 0
	if p.Height > 0 && p.Selected >= p.Height {
		start = p.Selected - p.Height + 1
	}
	end := len(matches)
	if p.Height > 0 && end > start+p.Height {
		end = start + p.Height
	}

	for i := start; i < end; i++ {
		line := layout.Truncate(matches[i], width-4)
		if i == p.Selected && p.focused {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else if i == p.Selected {
			b.WriteString(theme.Unselected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *Picker) clamp() {
	n := len(p.Matches())
	if p.Selected >= n {
		p.Selected = n - 1
	}
	if p.Selected < 0 {
		p.Selected = 0
	}
}
