package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

// Panel is a bordered box with an optional bold title.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
}

// Render returns the styled panel.
func (p Panel) Render() string {
	border := p.BorderColor
	if border == "" {
		border = ColorSecondary
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	content := p.Content
	if p.Title != "" {
		content = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(p.Title) + "\n" + content
	}
	return style.Render(content)
}

// RenderSuggestion prints a suggestion, resolving suggested ids against
// the context lists so the reviewer sees names instead of bare ids.
func RenderSuggestion(w io.Writer, s *suggest.TaskSuggestion, ctx suggest.TaskFormData) {
	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", StyleLabel.Render(padRight(label+":", 12)), value)
	}

	field("Tipo", s.Type)
	field("Prioridad", PriorityBadge(s.Priority))
	if s.TimeEstimate > 0 {
		field("Estimación", FormatMinutes(s.TimeEstimate))
	}
	field("Espacio", lookup(s.SuggestedSpaceID, spaceNames(ctx.AvailableSpaces)))
	field("Sprint", lookup(s.SuggestedSprintID, sprintNames(ctx.AvailableSprints)))
	field("Épica", lookup(s.SuggestedEpicID, epicNames(ctx.AvailableEpics)))
	if s.SuggestedStatus != nil {
		field("Estado", *s.SuggestedStatus)
	}
	field("Asignados", assigneeNames(s.SuggestedAssigneeIDs, ctx.AvailableMembers))
	if len(s.Tags) > 0 {
		field("Tags", strings.Join(s.Tags, ", "))
	}
	if s.Description != "" {
		b.WriteString("\n" + s.Description)
	}

	fmt.Fprintln(w, Panel{Title: s.Name, Content: strings.TrimRight(b.String(), "\n"), BorderColor: ColorCyan}.Render())
}

// RenderCreatedTask prints the confirmation after a successful submission.
func RenderCreatedTask(w io.Writer, task *clickup.CreatedTask) {
	content := StyleLabel.Render("ID: ") + task.ID
	if task.URL != "" {
		content += "\n" + StyleLabel.Render("URL: ") + task.URL
	}
	fmt.Fprintln(w, Panel{Title: "✓ Tarea creada en ClickUp", Content: content, BorderColor: ColorSuccess}.Render())
}

// RenderError prints a one-line error.
func RenderError(w io.Writer, err error) {
	fmt.Fprintln(w, Icon("✗", StyleError)+" "+err.Error())
}

// RenderList prints an id/name table, or a dim notice when rows is empty.
func RenderList(w io.Writer, title string, headers []string, rows [][]string) {
	fmt.Fprintln(w, StyleSectionTitle.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("  (sin resultados)"))
		return
	}
	fmt.Fprint(w, (&Table{Headers: headers, Rows: rows, MaxWidth: 60}).Render())
}

// FormatMinutes renders an estimate like "1h 30m".
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

func lookup(id *string, names map[string]string) string {
	if id == nil || *id == "" {
		return ""
	}
	if name, ok := names[*id]; ok {
		return fmt.Sprintf("%s (%s)", name, *id)
	}
	return *id
}

func spaceNames(refs []suggest.SpaceRef) map[string]string {
	m := make(map[string]string, len(refs))
	for _, r := range refs {
		m[r.ID] = r.Name
	}
	return m
}

func sprintNames(refs []suggest.SprintRef) map[string]string {
	m := make(map[string]string, len(refs))
	for _, r := range refs {
		m[r.ID] = r.Name
	}
	return m
}

func epicNames(refs []suggest.EpicRef) map[string]string {
	m := make(map[string]string, len(refs))
	for _, r := range refs {
		m[r.ID] = r.Name
	}
	return m
}

func assigneeNames(ids []int64, members []suggest.MemberRef) string {
	if len(ids) == 0 {
		return ""
	}
	byID := make(map[int64]string, len(members))
	for _, m := range members {
		byID[m.ID] = m.DisplayName()
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := byID[id]; ok {
			out[i] = name
		} else {
			out[i] = strconv.FormatInt(id, 10)
		}
	}
	return strings.Join(out, ", ")
}
