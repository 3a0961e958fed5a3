package form

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/anerkennung/internal/generate"
	"github.com/abhisek/anerkennung/internal/mapping"
)

// MappingReloadedMsg carries a freshly loaded module mapping. It is a
// router broadcast so the form picks it up under any overlay.
type MappingReloadedMsg struct {
	Mapping mapping.Mapping
	Source  mapping.Source
	Err     error
	// Auto is set when the reload was triggered by a file change.
	Auto bool
}

func (MappingReloadedMsg) Broadcast() {}

// ClearConfirmedMsg is sent by the confirmation dialog to drop all records.
type ClearConfirmedMsg struct{}

// generatedMsg is sent when a generation attempt finished.
type generatedMsg struct {
	Result *generate.Result
	Err    error
}

// LoadMapping reads the mapping file at path in the background.
func LoadMapping(path string, auto bool) tea.Cmd {
	return func() tea.Msg {
		m, src, err := mapping.Load(path)
		return MappingReloadedMsg{Mapping: m, Source: src, Err: err, Auto: auto}
	}
}
