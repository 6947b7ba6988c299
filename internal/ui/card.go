package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/taskboard/pkg/task"
)

var (
	columnTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
	cardTitle   = lipgloss.NewStyle().Bold(true)
	cardDesc    = lipgloss.NewStyle().Foreground(Secondary)
	cardMeta    = lipgloss.NewStyle().Foreground(Faded)
	cursorMark  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// DueText renders the legend text for a task's due date.
func DueText(daysUntilDue int) string {
	switch {
	case daysUntilDue < 0:
		return "expired"
	case daysUntilDue == 0:
		return "due today"
	case daysUntilDue == 1:
		return "due in 1 day"
	default:
		return "due in " + strconv.Itoa(daysUntilDue) + " days"
	}
}

func Card(t task.Task, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorMark.Render("> ")
	}

	title := cardTitle.Render(t.Title)
	days := t.DaysUntilDue()
	due := lipgloss.NewStyle().Foreground(DueColor(days)).Render(DueText(days))

	s := prefix + title + " " + due + "\n"
	if t.Description != "" {
		s += "  " + cardDesc.Render(t.Description) + "\n"
	}
	if n := len(t.Comments); n > 0 {
		label := " comments"
		if n == 1 {
			label = " comment"
		}
		s += "  " + cardMeta.Render(strconv.Itoa(n)+label) + "\n"
	}
	return s
}

// Column renders one board column. selected is the index of the
// highlighted card, -1 for none.
func Column(title string, tasks []task.Task, width, selected int) string {
	var b strings.Builder
	b.WriteString(columnTitle.Render(title+" ("+strconv.Itoa(len(tasks))+")") + "\n\n")
	if len(tasks) == 0 {
		b.WriteString(cardMeta.Render("  no tasks") + "\n")
	}
	for i, t := range tasks {
		b.WriteString(Card(t, i == selected) + "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// ArchiveItem renders one row of the archive sidebar.
func ArchiveItem(t task.Task, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorMark.Render("> ")
	}
	days := t.DaysUntilDue()
	due := "due was: " + t.DueDate.DisplayString()
	if days >= 0 {
		due = DueText(days)
	}
	s := prefix + cardTitle.Render(t.Title) + " " + cardMeta.Render(due) + "\n"
	if t.Description != "" {
		s += "  " + cardDesc.Render(t.Description) + "\n"
	}
	return s
}
