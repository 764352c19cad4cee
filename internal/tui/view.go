package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quadroqm/quadro/internal/models"
)

// View renders the current state of the application
// This implements the "View" part of the Model-View-Update pattern
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spin.View()+" Fetching board...")
	}

	if form := m.activeForm(); form != nil {
		style := FormBoxStyle
		if m.mode == modeDeleteConfirm {
			style = DeleteConfirmBoxStyle
		}
		box := style.Width(min(m.width-4, 72)).Render(form.View())
		return m.withBanner(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box))
	}

	switch m.mode {
	case modeHelp:
		return m.withBanner(m.renderHelp())
	case modeDetail:
		return m.withBanner(m.renderDetail())
	case modeManage:
		return m.withBanner(m.renderManage())
	}
	return m.withBanner(m.renderBoard())
}

// withBanner appends the transient notice line when one is active
func (m Model) withBanner(view string) string {
	if m.notice == "" {
		return view
	}
	style := InfoBannerStyle
	if m.noticeErr {
		style = ErrorBannerStyle
	}
	return view + "\n" + style.Render(m.notice)
}

func (m Model) renderBoard() string {
	cols := columns()
	rendered := make([]string, 0, len(cols))

	for i, status := range cols {
		tasks := m.store.Column(status)

		cards := make([]string, 0, len(tasks)+1)
		title := fmt.Sprintf("%s (%d)", status.Label(), len(tasks))
		cards = append(cards, ColumnTitleStyle.Render(title))

		for j, t := range tasks {
			selected := i == m.selectedColumn && j == m.selectedTask
			cards = append(cards, m.renderCard(t, selected))
		}

		style := ColumnStyle
		if i == m.selectedColumn {
			style = ActiveColumnStyle
		}
		rendered = append(rendered, style.Render(strings.Join(cards, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderCard renders one task. A card that panics mid-render is replaced
// with a fallback so one bad task cannot take down the whole board.
func (m Model) renderCard(t *models.Task, selected bool) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("task card failed to render", "task_id", t.ID, "panic", r)
			out = CardStyle.Render("unable to display this task")
		}
	}()

	var lines []string
	lines = append(lines, t.Title)
	lines = append(lines, priorityStyle(string(t.Priority)).Render(t.Priority.Label()))

	if t.ProjectName != "" {
		lines = append(lines, MetaStyle.Render(t.ProjectName))
	}
	if t.ResponsibleName != "" {
		lines = append(lines, MetaStyle.Render("@ "+t.ResponsibleName))
	}
	if !t.Deadline.IsZero() {
		deadline := "due " + t.Deadline.String()
		if t.Overdue() {
			lines = append(lines, OverdueStyle.Render(deadline+" (overdue)"))
		} else {
			lines = append(lines, MetaStyle.Render(deadline))
		}
	}
	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, s := range t.Subtasks {
			if s.IsDone {
				done++
			}
		}
		lines = append(lines, MetaStyle.Render(fmt.Sprintf("subtasks %d/%d", done, n)))
	}

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetail() string {
	t := m.currentTask()
	if t == nil {
		return m.renderBoard()
	}

	var b strings.Builder
	b.WriteString(ColumnTitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(priorityStyle(string(t.Priority)).Render(t.Priority.Label()))
	b.WriteString("  ")
	b.WriteString(MetaStyle.Render(t.Status.Label()))
	b.WriteString("\n")

	if t.ProjectName != "" {
		b.WriteString(MetaStyle.Render("Project: " + t.ProjectName))
		b.WriteString("\n")
	}
	if t.ResponsibleName != "" {
		b.WriteString(MetaStyle.Render("Responsible: " + t.ResponsibleName))
		b.WriteString("\n")
	}
	if len(t.AssignedToNames) > 0 {
		b.WriteString(MetaStyle.Render("Assigned: " + strings.Join(t.AssignedToNames, ", ")))
		b.WriteString("\n")
	}
	if !t.StartDate.IsZero() {
		b.WriteString(MetaStyle.Render("Start: " + t.StartDate.String()))
		b.WriteString("\n")
	}
	if !t.Deadline.IsZero() {
		line := "Deadline: " + t.Deadline.String()
		if t.Overdue() {
			b.WriteString(OverdueStyle.Render(line + " (overdue)"))
		} else {
			b.WriteString(MetaStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(renderMarkdown(t.Description, m.width))
	}
	if t.Solution != "" {
		b.WriteString("\n")
		b.WriteString(ColumnTitleStyle.Render("Solution"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(t.Solution, m.width))
	}

	if len(t.Subtasks) > 0 || len(m.store.Drafts(t.ID)) > 0 {
		b.WriteString("\n")
		b.WriteString(ColumnTitleStyle.Render("Subtasks"))
		b.WriteString("\n")
		for i, sub := range t.Subtasks {
			b.WriteString(m.renderSubtask(sub, i == m.selectedSubtask))
			b.WriteString("\n")
		}
		for _, draft := range m.store.Drafts(t.ID) {
			b.WriteString(DraftSubtaskStyle.Render("[ ] " + draft.Title + " (saving...)"))
			b.WriteString("\n")
		}
	}

	box := DetailBoxStyle.Width(min(m.width-4, 90)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderSubtask(sub models.Subtask, selected bool) string {
	check := "[ ]"
	if sub.IsDone {
		check = "[x]"
	}
	line := check + " " + sub.Title

	switch {
	case selected:
		return SelectedSubtaskStyle.Render("> " + line)
	case sub.IsDone:
		return DoneSubtaskStyle.Render("  " + line)
	}
	return "  " + line
}

// renderMarkdown pretty-prints task text. Raw text comes back unchanged
// when the renderer fails.
func renderMarkdown(text string, width int) string {
	wrap := min(max(width-12, 40), 86)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// renderManage shows the reference lists with the active kind highlighted.
func (m Model) renderManage() string {
	var b strings.Builder

	kinds := []catalogKind{catalogProjects, catalogCollaborators, catalogDepartments}
	tabs := make([]string, 0, len(kinds))
	for _, k := range kinds {
		label := k.Label()
		if k == m.manageKind {
			label = ColumnTitleStyle.Render(label)
		} else {
			label = MetaStyle.Render(label)
		}
		tabs = append(tabs, label)
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	entries := m.manageEntries()
	if len(entries) == 0 {
		b.WriteString(MetaStyle.Render("nothing here yet"))
		b.WriteString("\n")
	}
	for i, entry := range entries {
		line := entry.Name
		if i == m.manageIndex {
			b.WriteString(SelectedSubtaskStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	k := m.keys
	b.WriteString("\n")
	b.WriteString(MetaStyle.Render(fmt.Sprintf("%s add  %s rename  %s delete  %s/%s switch  esc back",
		k.AddTask, k.EditTask, k.DeleteTask, k.PrevColumn, k.NextColumn)))

	box := DetailBoxStyle.Width(min(m.width-4, 60)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHelp() string {
	k := m.keys
	rows := [][2]string{
		{k.PrevColumn + "/" + k.NextColumn, "move between columns"},
		{k.PrevTask + "/" + k.NextTask, "move between tasks"},
		{k.MoveTaskLeft + "/" + k.MoveTaskRight, "move task across columns"},
		{strings.TrimSpace(k.ViewTask) + " (space)", "open task detail"},
		{k.AddTask, "add task"},
		{k.EditTask, "edit task"},
		{k.DeleteTask, "delete task"},
		{k.AddSubtask, "add subtask (detail view)"},
		{k.RenameSubtask, "rename subtask (detail view)"},
		{k.ToggleSubtask, "toggle subtask (detail view)"},
		{k.MoveSubtaskUp + "/" + k.MoveSubtaskDown, "reorder subtasks (detail view)"},
		{k.Filter, "filter board"},
		{k.ManageCatalog, "manage projects, people, departments"},
		{k.Refresh, "refresh now"},
		{k.Logout, "log out"},
		{k.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(ColumnTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-8s %s\n", row[0], row[1]))
	}

	box := HelpBoxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
