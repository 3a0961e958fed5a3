package form

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/ui/layout"
	"github.com/abhisek/anerkennung/internal/ui/theme"
)

func (s *FormScreen) View(width, height int) string {
	inner := max(width-6, 20)

	sections := []string{
		s.section(s.focus.student(), s.renderStudent()),
		s.section(s.focus == fieldCourse || s.focus == fieldGrade, s.renderEntry(inner, layout.IsCompactHeight(height))),
		s.section(s.focus == fieldRecords, s.renderRecords(inner)),
		"  " + s.button.View(),
	}
	if s.status != "" {
		sections = append(sections, "  "+s.renderStatus(inner))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *FormScreen) section(focused bool, body string) string {
	if focused {
		return theme.FocusedSection.Render(body)
	}
	return theme.Section.Render(body)
}

func (s *FormScreen) label(f field, text string) string {
	if s.focus == f {
		return theme.Label.Foreground(theme.Primary).Render(text)
	}
	return theme.Label.Render(text)
}

func (s *FormScreen) renderStudent() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Student"))
	b.WriteString("\n")

	herr, frau := theme.Unselected.Render(filler.GenderMale), theme.Unselected.Render(filler.GenderFemale)
	if s.gender == filler.GenderMale {
		herr = theme.Selected.Render("[" + filler.GenderMale + "]")
	} else {
		frau = theme.Selected.Render("[" + filler.GenderFemale + "]")
	}
	fmt.Fprintf(&b, "%s %s  %s\n", s.label(fieldGender, "Anrede:"), herr, frau)
	fmt.Fprintf(&b, "%s %s\n", s.label(fieldName, "Name:"), s.name.View())
	fmt.Fprintf(&b, "%s %s\n", s.label(fieldMatrikel, "Matrikelnummer:"), s.matrikel.View())
	fmt.Fprintf(&b, "%s %s\n", s.label(fieldPrevious, "Bisheriges Studium:"), s.previous.View())
	fmt.Fprintf(&b, "%s %s\n", s.label(fieldSemester, "Fachsemester:"), s.semester.View())
	fmt.Fprintf(&b, "%s %s", s.label(fieldTarget, "Ziel-Studiengang:"), s.target.View())
	return b.String()
}

func (s *FormScreen) renderEntry(width int, compact bool) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Kurs hinzufügen"))
	b.WriteString("\n")

	pickerWidth := max(width-lipgloss.Width(theme.Label.Render(""))-1, 10)
	if s.focus == fieldCourse {
		p := s.course
		if compact {
			p.Height = 3
		}
		picker := p.View(pickerWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, s.label(fieldCourse, "Kurs:"), " ", picker))
	} else {
		current, _ := s.course.Current()
		current = layout.Truncate(current, pickerWidth)
		if s.course.Filter == "" && s.focus != fieldGrade {
			current = theme.Hint.Render("Kurs suchen…")
		}
		fmt.Fprintf(&b, "%s %s", s.label(fieldCourse, "Kurs:"), current)
	}
	b.WriteString("\n")

	target := ""
	if current, ok := s.course.Current(); ok && (s.focus == fieldCourse || s.focus == fieldGrade) {
		if _, mod, found := s.ws.Mapping().Lookup(current); found {
			target = fmt.Sprintf("%s (%s)", mod.Name, mod.ID)
		}
	}
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Zielmodul:"), theme.Body.Render(layout.Truncate(target, pickerWidth)))
	fmt.Fprintf(&b, "%s %s", s.label(fieldGrade, "Note:"), s.grade.View())
	return b.String()
}

func (s *FormScreen) renderRecords(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Einträge (%d)", s.ws.Len())))

	records := s.ws.Records()
	if len(records) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Noch keine Kurse eingetragen."))
		return b.String()
	}

	statusWidth := lipgloss.Width("Ignoriert (Limit)")
	gradeWidth := 6
	rest := max(width-statusWidth-gradeWidth-8, 20)
	keyWidth := rest / 2
	nameWidth := rest - keyWidth

	for i, rec := range records {
		line := strings.Join([]string{
			pad(rec.SourceKey, keyWidth),
			pad(rec.Grade, gradeWidth),
			pad(rec.TargetName, nameWidth),
			rec.Status(),
		}, " ")

		prefix := "  "
		if s.focus == fieldRecords && i == s.cursor {
			prefix = "▸ "
		}

		style := theme.Unselected
		switch {
		case !rec.Active:
			style = theme.Excluded
		case s.focus == fieldRecords && i == s.cursor:
			style = theme.Selected
		}
		b.WriteString("\n")
		b.WriteString(style.Render(prefix + line))
	}
	return b.String()
}

func (s *FormScreen) renderStatus(width int) string {
	text := layout.Truncate(s.status, width)
	switch s.statusKind {
	case statusWarn:
		return theme.Warning.Render(text)
	case statusError:
		return theme.Failure.Render(text)
	default:
		return theme.Info.Render(text)
	}
}

// pad truncates s to width cells and fills up with spaces.
func pad(s string, width int) string {
	s = layout.Truncate(s, width)
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
