package confirm

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/anerkennung/internal/router"
	"github.com/abhisek/anerkennung/internal/screen"
	"github.com/abhisek/anerkennung/internal/ui/components"
	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/ui/theme"
)

// ConfirmScreen asks a yes/no question. On yes it pops itself and then
// delivers onYes to the screen below.
type ConfirmScreen struct {
	title    string
	question string
	menu     components.Menu
}

var _ screen.Screen = (*ConfirmScreen)(nil)
var _ screen.KeyHintProvider = (*ConfirmScreen)(nil)

// New creates a ConfirmScreen. "Nein" is preselected.
func New(title, question string, onYes tea.Msg) *ConfirmScreen {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	menu := components.NewButtonRow([]components.MenuItem{
		{Label: "Ja", Action: func() tea.Cmd {
			return tea.Sequence(pop, func() tea.Msg { return onYes })
		}},
		{Label: "Nein", Action: func() tea.Cmd { return pop }},
	})
	menu.Selected = 1
	return &ConfirmScreen{title: title, question: question, menu: menu}
}

func (c *ConfirmScreen) Init() tea.Cmd {
	return nil
}

func (c *ConfirmScreen) Title() string {
	return c.title
}

func (c *ConfirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Auswahl"},
		{Key: "Enter", Description: "Bestätigen"},
		{Key: "Esc", Description: "Abbrechen"},
	}
}

func (c *ConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "j", "y":
			c.menu.Selected = 0
			return c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		case "n":
			return c, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *ConfirmScreen) View(width, height int) string {
	body := theme.Body.Render(c.question) + "\n\n" + c.menu.View()
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
