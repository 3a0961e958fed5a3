// Package form is the main entry screen: student details, course entry,
// the record list and document generation.
package form

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/generate"
	"github.com/abhisek/anerkennung/internal/grade"
	"github.com/abhisek/anerkennung/internal/router"
	"github.com/abhisek/anerkennung/internal/screen"
	"github.com/abhisek/anerkennung/internal/screens/confirm"
	"github.com/abhisek/anerkennung/internal/screens/history"
	"github.com/abhisek/anerkennung/internal/store"
	"github.com/abhisek/anerkennung/internal/ui/components"
	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/workspace"
)

type field int

const (
	fieldGender field = iota
	fieldName
	fieldMatrikel
	fieldPrevious
	fieldSemester
	fieldTarget
	fieldCourse
	fieldGrade
	fieldRecords
	fieldGenerate
	fieldCount
)

func (f field) student() bool { return f <= fieldTarget }

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// Options configures the form.
type Options struct {
	Workspace *workspace.Workspace
	Generator *generate.Generator
	// History is optional; without it the history screen is unavailable.
	History      store.HistoryRepo
	TemplatePath string
	OutputDir    string
	MappingPath  string
	Open         bool
	Logger       *zap.Logger
}

// FormScreen implements screen.Screen for the entry form.
type FormScreen struct {
	opts   Options
	ws     *workspace.Workspace
	logger *zap.Logger

	gender   string
	name     components.TextInput
	matrikel components.TextInput
	previous components.TextInput
	semester components.TextInput
	target   components.TextInput

	course components.Picker
	grade  components.TextInput
	button components.Button

	focus  field
	cursor int
	busy   bool

	status     string
	statusKind statusKind
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates the form, prefilled from the workspace's student.
func New(opts Options) *FormScreen {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FormScreen{
		opts:     opts,
		ws:       opts.Workspace,
		logger:   logger,
		name:     components.NewTextInput("Vorname Nachname", false, 80),
		matrikel: components.NewTextInput("z.B. 3012345", false, 20),
		previous: components.NewTextInput("", false, 120),
		semester: components.NewTextInput("z.B. 2. Fachsemester", false, 40),
		target:   components.NewTextInput("", false, 120),
		course:   components.NewPicker(nil, 6),
		grade:    components.NewTextInput("z.B. 1,7", true, 5),
	}
	s.button = components.NewButton("Word Dokument erstellen", false, s.generate)

	st := s.ws.Student()
	s.gender = st.Gender
	if s.gender == "" {
		s.gender = filler.GenderMale
	}
	s.name.SetValue(st.Name)
	s.matrikel.SetValue(st.MatriculationNumber)
	s.previous.SetValue(st.PreviousStudies)
	s.semester.SetValue(st.Semester)
	s.target.SetValue(st.TargetProgram)

	s.focus = fieldName
	s.name.Focus()
	s.refresh()
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return nil
}

func (s *FormScreen) Title() string {
	return "Anerkennung"
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Weiter"}}
	switch s.focus {
	case fieldGender:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Anrede"})
	case fieldCourse:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Kurs"}, layout.KeyHint{Key: "Enter", Description: "Wählen"})
	case fieldGrade:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Hinzufügen"})
	case fieldRecords:
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Bearbeiten"}, layout.KeyHint{Key: "D", Description: "Löschen"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+G", Description: "Erstellen"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Config neu laden"},
		layout.KeyHint{Key: "Ctrl+L", Description: "Alle löschen"},
		layout.KeyHint{Key: "F2", Description: "Verlauf"},
	)
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case MappingReloadedMsg:
		return s, s.handleMappingReloaded(msg)

	case ClearConfirmedMsg:
		if err := s.ws.Clear(context.Background()); err != nil {
			s.setStatus(statusError, "Fehler: "+err.Error())
			return s, nil
		}
		s.cursor = 0
		s.refresh()
		s.setStatus(statusInfo, "Alle Einträge gelöscht.")
		return s, nil

	case generatedMsg:
		return s, s.handleGenerated(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	return s, s.updateFocused(msg)
}

func (s *FormScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab":
		return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "ctrl+g":
		return s.generate()
	case "ctrl+r":
		if s.opts.MappingPath == "" {
			return nil
		}
		return LoadMapping(s.opts.MappingPath, false)
	case "ctrl+l":
		if s.ws.Len() == 0 {
			return nil
		}
		dialog := confirm.New("Löschen", "Alle Einträge löschen?", ClearConfirmedMsg{})
		return func() tea.Msg { return router.PushScreenMsg{Screen: dialog} }
	case "f2":
		if s.opts.History == nil {
			return nil
		}
		return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(s.opts.History)} }
	}

	switch s.focus {
	case fieldGender:
		switch msg.String() {
		case "left", "right", "space", "enter":
			s.toggleGender()
		}
		return nil

	case fieldName, fieldMatrikel, fieldPrevious, fieldSemester, fieldTarget:
		if msg.String() == "enter" {
			return s.setFocus(s.focus + 1)
		}

	case fieldCourse:
		if msg.String() == "enter" {
			if _, ok := s.course.Current(); !ok {
				return nil
			}
			return s.setFocus(fieldGrade)
		}

	case fieldGrade:
		switch msg.String() {
		case "enter":
			return s.addRecord()
		case "esc":
			return s.setFocus(fieldCourse)
		}

	case fieldRecords:
		return s.handleRecordKey(msg)

	case fieldGenerate:
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return cmd
	}

	return s.updateFocused(msg)
}

func (s *FormScreen) handleRecordKey(msg tea.KeyPressMsg) tea.Cmd {
	n := s.ws.Len()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "e", "enter":
		if n == 0 {
			return nil
		}
		return s.editRecord()
	case "d", "delete":
		if n == 0 {
			return nil
		}
		if err := s.ws.Remove(context.Background(), s.cursor); err != nil {
			s.setStatus(statusError, "Fehler: "+err.Error())
			return nil
		}
		s.refresh()
	}
	return nil
}

// updateFocused forwards msg to the focused input.
func (s *FormScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldCourse:
		s.course, cmd = s.course.Update(msg)
	case fieldGrade:
		s.grade, cmd = s.grade.Update(msg)
		s.checkGrade()
	default:
		if in := s.input(s.focus); in != nil {
			*in, cmd = in.Update(msg)
		}
	}
	return cmd
}

func (s *FormScreen) input(f field) *components.TextInput {
	switch f {
	case fieldName:
		return &s.name
	case fieldMatrikel:
		return &s.matrikel
	case fieldPrevious:
		return &s.previous
	case fieldSemester:
		return &s.semester
	case fieldTarget:
		return &s.target
	case fieldGrade:
		return &s.grade
	}
	return nil
}

func (s *FormScreen) setFocus(f field) tea.Cmd {
	if f == s.focus {
		return nil
	}
	prev := s.focus
	if in := s.input(prev); in != nil {
		in.Blur()
	}
	if prev == fieldCourse {
		s.course.Blur()
	}
	if prev.student() && !f.student() {
		s.saveStudent()
	}

	s.focus = f
	s.button.Focused = f == fieldGenerate
	if f == fieldCourse {
		s.course.Focus()
	}
	if in := s.input(f); in != nil {
		return in.Focus()
	}
	return nil
}

func (s *FormScreen) toggleGender() {
	if s.gender == filler.GenderMale {
		s.gender = filler.GenderFemale
	} else {
		s.gender = filler.GenderMale
	}
}

// student returns the student as currently entered.
func (s *FormScreen) student() filler.Student {
	return filler.Student{
		Gender:              s.gender,
		Name:                s.name.Value(),
		MatriculationNumber: s.matrikel.Value(),
		PreviousStudies:     s.previous.Value(),
		Semester:            s.semester.Value(),
		TargetProgram:       s.target.Value(),
	}
}

func (s *FormScreen) saveStudent() {
	if err := s.ws.SetStudent(context.Background(), s.student()); err != nil {
		s.logger.Warn("save student", zap.Error(err))
	}
}

func (s *FormScreen) checkGrade() {
	v := s.grade.Value()
	if v != "" && !grade.Valid(v) {
		s.grade.Warn("keine Zahl, zählt als schlechteste Note")
		return
	}
	s.grade.Warn("")
}

func (s *FormScreen) addRecord() tea.Cmd {
	course, ok := s.course.Current()
	if !ok {
		return s.setFocus(fieldCourse)
	}
	rec, err := s.ws.Add(context.Background(), course, s.grade.Value())
	if err != nil {
		if errors.Is(err, workspace.ErrUnknownCourse) {
			s.setStatus(statusWarn, "Kurs nicht im Mapping: "+course)
		} else {
			s.setStatus(statusError, "Fehler: "+err.Error())
		}
		return nil
	}

	s.course.Reset()
	s.grade.Reset()
	s.refresh()
	s.setStatus(statusInfo, fmt.Sprintf("%s → %s (%s)", rec.SourceKey, rec.TargetID, rec.Status()))
	return s.setFocus(fieldCourse)
}

func (s *FormScreen) editRecord() tea.Cmd {
	rec, err := s.ws.Take(context.Background(), s.cursor)
	if err != nil {
		s.setStatus(statusError, "Fehler: "+err.Error())
		return nil
	}
	s.refresh()
	s.course.Select(rec.SourceKey)
	s.grade.SetValue(rec.Grade)
	s.checkGrade()
	s.setStatus(statusInfo, "Bearbeiten: "+rec.SourceKey)
	return s.setFocus(fieldGrade)
}

// refresh re-syncs the picker, list cursor and button with the workspace.
func (s *FormScreen) refresh() {
	s.course.SetOptions(s.ws.Available())
	if n := s.ws.Len(); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
	s.button.Active = s.ws.Len() > 0 && !s.busy
}

func (s *FormScreen) generate() tea.Cmd {
	if s.busy || s.opts.Generator == nil {
		return nil
	}
	s.saveStudent()

	req := generate.Request{
		Student:      s.student(),
		Records:      s.ws.Records(),
		TemplatePath: s.opts.TemplatePath,
		OutputDir:    s.opts.OutputDir,
		Open:         s.opts.Open,
	}
	gen := s.opts.Generator
	s.busy = true
	s.refresh()
	s.setStatus(statusInfo, "Dokument wird erstellt...")
	return func() tea.Msg {
		res, err := gen.Generate(context.Background(), req)
		return generatedMsg{Result: res, Err: err}
	}
}

func (s *FormScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.busy = false
	s.refresh()

	switch {
	case msg.Err == nil:
		s.setStatus(statusInfo, "Dokument erstellt: "+msg.Result.OutputPath)
	case errors.Is(msg.Err, generate.ErrMissingField):
		s.setStatus(statusWarn, "Bitte Name und Matrikelnummer ausfüllen.")
	case errors.Is(msg.Err, generate.ErrNoRecords):
		s.setStatus(statusWarn, "Keine Einträge vorhanden.")
	case errors.Is(msg.Err, filler.ErrTemplateMissing):
		s.setStatus(statusError, "Template nicht gefunden.")
	default:
		s.logger.Error("generate document", zap.Error(msg.Err))
		s.setStatus(statusError, "Fehler: "+msg.Err.Error())
	}
	return nil
}

func (s *FormScreen) handleMappingReloaded(msg MappingReloadedMsg) tea.Cmd {
	before := len(s.ws.Mapping())
	s.ws.SetMapping(msg.Mapping)
	s.refresh()

	if msg.Err != nil {
		s.logger.Warn("reload mapping", zap.Error(msg.Err))
		s.setStatus(statusWarn, fmt.Sprintf("Config fehlerhaft, Standard-Mapping aktiv (%d Module)", len(msg.Mapping)))
		return nil
	}
	prefix := "Module Mapping aktualisiert"
	if msg.Auto {
		prefix = "Config geändert, Mapping neu geladen"
	}
	s.setStatus(statusInfo, fmt.Sprintf("%s: vorher %d, jetzt %d Module", prefix, before, len(msg.Mapping)))
	return nil
}

func (s *FormScreen) setStatus(kind statusKind, text string) {
	s.statusKind = kind
	s.status = text
}
