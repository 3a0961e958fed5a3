// Package app wires the interactive form into a Bubble Tea program.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/mapping"
	"github.com/abhisek/anerkennung/internal/router"
	"github.com/abhisek/anerkennung/internal/screen"
	"github.com/abhisek/anerkennung/internal/screens/form"
	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/workspace"
)

// Options holds the dependencies of the interactive form.
type Options struct {
	Form form.Options
	// Watcher, if set, reloads the mapping whenever its file changes.
	Watcher *mapping.Watcher
}

// mappingChangedMsg is sent when the watcher saw the mapping file change.
type mappingChangedMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ws      *workspace.Workspace
	watcher *mapping.Watcher
	path    string
	logger  *zap.Logger
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	logger := opts.Form.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		router:  router.New(form.New(opts.Form)),
		ws:      opts.Form.Workspace,
		watcher: opts.Watcher,
		path:    opts.Form.MappingPath,
		logger:  logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher until the next change. It returns
// nil once the watcher is closed.
func (m AppModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return mappingChangedMsg{}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case mappingChangedMsg:
		m.logger.Info("mapping file changed", zap.String("path", m.path))
		return m, tea.Batch(form.LoadMapping(m.path, true), m.waitForChange())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	info := ""
	if m.ws != nil {
		info = fmt.Sprintf("%d Module", len(m.ws.Mapping()))
	}
	header := layout.RenderHeader(title, info, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Beenden"})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
