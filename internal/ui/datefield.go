package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/taskboard/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().Foreground(Green).Render("✓")
	cross     = indicator.Copy().Foreground(Red).Render("✗")
)

// DateField is a free-text due date input with a live parse indicator:
// ✓ plus the canonical date when the text parses, ✗ when it doesn't.
type DateField struct {
	input textinput.Model
	value *date.Date
}

func NewDateField() DateField {
	i := textinput.NewModel()
	i.CharLimit = 20
	i.Prompt = ""
	i.Placeholder = "DD.MM.YYYY"
	return DateField{input: i}
}

func (m DateField) Update(msg tea.Msg) (DateField, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if d, err := date.ParseInput(m.input.Value()); err == nil {
		m.value = &d
	} else {
		m.value = nil
	}
	return m, cmd
}

func (m DateField) View() string {
	status := cross
	if m.input.Value() == "" {
		status = ""
	} else if m.value != nil {
		status = checkmark + " " + m.value.String()
	}
	return m.input.View() + status
}

// Raw returns the text as typed; the controller owns parsing on commit.
func (m DateField) Raw() string {
	return m.input.Value()
}

// Value returns the parsed date, nil if the current text doesn't parse.
func (m DateField) Value() *date.Date {
	return m.value
}

func (m *DateField) SetValue(d date.Date, raw string) {
	if raw == "" && !d.IsZero() {
		raw = d.DisplayString()
	}
	m.input.SetValue(raw)
	if d.IsZero() {
		m.value = nil
	} else {
		m.value = &d
	}
}

func (m *DateField) Reset() {
	m.input.SetValue("")
	m.value = nil
}

func (m *DateField) Focus() {
	m.input.Focus()
}

func (m *DateField) Blur() {
	m.input.Blur()
}

func (m DateField) Focused() bool {
	return m.input.Focused()
}
