package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/anerkennung/internal/ui/theme"
)

// MenuItem is a single choice in a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a list of choices, stacked or in one row.
type Menu struct {
	Items      []MenuItem
	Selected   int
	Horizontal bool
}

// NewMenu creates a vertical menu selecting the first enabled item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// NewButtonRow creates a horizontal menu, e.g. a Ja/Nein choice.
func NewButtonRow(items []MenuItem) Menu {
	m := NewMenu(items)
	m.Horizontal = true
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	prev, next := "up", "down"
	if m.Horizontal {
		prev, next = "left", "right"
	}

	switch kmsg.String() {
	case prev, "shift+tab":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case next, "tab":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	parts := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case m.Horizontal && i == m.Selected:
			parts[i] = theme.ButtonActive.Render(item.Label)
		case m.Horizontal:
			parts[i] = theme.ButtonInactive.Render(item.Label)
		case i == m.Selected:
			parts[i] = theme.Selected.Render("  ▸ " + item.Label)
		case item.Disabled:
			parts[i] = theme.Excluded.Render("    " + item.Label)
		default:
			parts[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	if m.Horizontal {
		return strings.Join(parts, "  ")
	}
	return strings.Join(parts, "\n")
}
