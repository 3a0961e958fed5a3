package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func typeText(p Picker, s string) Picker {
	for _, r := range s {
		p, _ = p.Update(key(r, string(r)))
	}
	return p
}

func TestPickerFilters(t *testing.T) {
	p := NewPicker([]string{"Big Data Analytics", "Data Mining", "Elements of Statistics"}, 5)
	p.Focus()

	p = typeText(p, "data")
	if got := len(p.Matches()); got != 2 {
		t.Fatalf("matches = %d, want 2", got)
	}

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	cur, ok := p.Current()
	if !ok || cur != "Data Mining" {
		t.Errorf("current = %q, want Data Mining", cur)
	}

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if p.Filter != "dat" {
		t.Errorf("filter = %q, want dat", p.Filter)
	}
	if p.Selected != 0 {
		t.Errorf("selection not reset after edit: %d", p.Selected)
	}
}

func TestPickerIgnoresKeysWhenBlurred(t *testing.T) {
	p := NewPicker([]string{"Data Mining"}, 5)
	p = typeText(p, "x")
	if p.Filter != "" {
		t.Errorf("blurred picker took input: %q", p.Filter)
	}
}

func TestPickerSelectAndClamp(t *testing.T) {
	p := NewPicker([]string{"Elements of Computer Science (Part 1)", "Elements of Computer Science (Part 2)"}, 5)
	p.Select("Elements of Computer Science (Part 2)")
	if cur, _ := p.Current(); cur != "Elements of Computer Science (Part 2)" {
		t.Errorf("current = %q", cur)
	}

	p.SetOptions(nil)
	if _, ok := p.Current(); ok {
		t.Error("empty picker should have no current option")
	}
}

func TestGradeInputFiltersLetters(t *testing.T) {
	in := NewTextInput("Note", true, 6)
	in.Focus()
	for _, r := range "1a,x7" {
		in, _ = in.Update(key(r, string(r)))
	}
	if in.Value() != "1,7" {
		t.Errorf("value = %q, want 1,7", in.Value())
	}
}

func TestButtonRowNavigation(t *testing.T) {
	var chosen string
	m := NewButtonRow([]MenuItem{
		{Label: "Ja", Action: func() tea.Cmd { chosen = "Ja"; return nil }},
		{Label: "Nein", Action: func() tea.Cmd { chosen = "Nein"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "Nein" {
		t.Errorf("chosen = %q, want Nein", chosen)
	}
}

func TestInactiveButtonIgnoresEnter(t *testing.T) {
	pressed := false
	b := NewButton("Word Dokument erstellen", false, func() tea.Cmd { pressed = true; return nil })
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed {
		t.Error("inactive button fired")
	}
}
