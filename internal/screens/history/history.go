package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/anerkennung/internal/router"
	"github.com/abhisek/anerkennung/internal/screen"
	"github.com/abhisek/anerkennung/internal/store"
	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/ui/theme"
)

// Limit is the number of events shown.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.GenerationEventData
	Err    error
}

// HistoryScreen lists previously generated documents.
type HistoryScreen struct {
	repo     store.HistoryRepo
	events   []store.GenerationEventData
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.repo.RecentGenerations(context.Background(), Limit)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Verlauf"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigieren"},
		{Key: "Esc", Description: "Zurück"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nFehler: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Verlauf wird geladen...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Noch keine Dokumente erstellt.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s (%s)  %d von %d Kursen, %d Zeilen entfernt",
			prefix, ev.Timestamp.Local().Format("02.01.2006 15:04"),
			ev.StudentName, ev.MatriculationNumber,
			ev.ActiveCount, ev.RecordCount, ev.RowsRemoved)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(layout.Truncate(line, width-2)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim)
			b.WriteString(detail.Render(layout.Truncate("    Dokument: "+ev.OutputPath, width-2)))
			b.WriteString("\n")
			b.WriteString(detail.Render(layout.Truncate("    Vorlage:  "+filepath.Base(ev.TemplatePath), width-2)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
