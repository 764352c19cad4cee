package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quadroqm/quadro/internal/models"
	"github.com/quadroqm/quadro/internal/services/task"
)

const noticeDuration = 4 * time.Second

func clearNoticeAfter() tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// saveSnapshotCmd persists the freshly fetched board for the next warm start.
// Failures only log; the cache is an optimization, never a requirement.
func (m Model) saveSnapshotCmd(tasks []*models.Task) tea.Cmd {
	if m.snapshot == nil {
		return nil
	}
	return func() tea.Msg {
		if err := m.snapshot.SaveTasks(context.Background(), tasks); err != nil {
			slog.Warn("failed to save board snapshot", "error", err)
		}
		return nil
	}
}

func (m Model) createTaskCmd(v taskFormValues) tea.Cmd {
	return func() tea.Msg {
		req := task.CreateTaskRequest{
			Title:       v.Title,
			Description: v.Description,
			Priority:    v.Priority,
			Status:      models.StatusTodo,
			AssignedTo:  v.AssignedTo,
			Departments: v.Departments,
			StartDate:   parseDate(v.StartDate),
			Deadline:    parseDate(v.Deadline),
		}
		if v.Project != 0 {
			req.Project = &v.Project
		}
		if v.Responsible != 0 {
			req.Responsible = &v.Responsible
		}
		created, err := m.svc.CreateTask(context.Background(), req)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg{task: created}
	}
}

func (m Model) updateTaskCmd(taskID int, v taskFormValues) tea.Cmd {
	return func() tea.Msg {
		start := parseDate(v.StartDate)
		deadline := parseDate(v.Deadline)
		req := task.UpdateTaskRequest{
			TaskID:      taskID,
			Title:       &v.Title,
			Description: &v.Description,
			Priority:    &v.Priority,
			AssignedTo:  &v.AssignedTo,
			Departments: &v.Departments,
			StartDate:   &start,
			Deadline:    &deadline,
		}
		if v.Project != 0 {
			req.Project = &v.Project
		}
		if v.Responsible != 0 {
			req.Responsible = &v.Responsible
		}
		updated, err := m.svc.UpdateTask(context.Background(), req)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m Model) deleteTaskCmd(taskID int) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(context.Background(), taskID); err != nil {
			return errMsg{err}
		}
		return taskDeletedMsg{taskID: taskID}
	}
}

func (m Model) moveTaskCmd(t *models.Task, next models.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.MoveTask(context.Background(), t, next)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m Model) completeTaskCmd(taskID int, solution string) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.CompleteTask(context.Background(), taskID, solution)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m Model) reopenTaskCmd(taskID int, next models.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.ReopenTask(context.Background(), taskID, next)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg{task: updated}
	}
}

func (m Model) addSubtaskCmd(taskID int, title, draftID string) tea.Cmd {
	return func() tea.Msg {
		created, err := m.svc.AddSubtask(context.Background(), taskID, title)
		if err != nil {
			return errMsg{err}
		}
		return subtaskSavedMsg{taskID: taskID, subtask: created, draftID: draftID}
	}
}

func (m Model) renameSubtaskCmd(taskID, subtaskID int, title string) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.RenameSubtask(context.Background(), subtaskID, title)
		if err != nil {
			return errMsg{err}
		}
		return subtaskSavedMsg{taskID: taskID, subtask: updated}
	}
}

func (m Model) toggleSubtaskCmd(taskID int, sub models.Subtask) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.ToggleSubtask(context.Background(), sub.ID, !sub.IsDone)
		if err != nil {
			return errMsg{err}
		}
		return subtaskSavedMsg{taskID: taskID, subtask: updated}
	}
}

func (m Model) deleteSubtaskCmd(taskID, subtaskID int) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteSubtask(context.Background(), subtaskID); err != nil {
			return errMsg{err}
		}
		return subtaskDeletedMsg{taskID: taskID, subtaskID: subtaskID}
	}
}

// persistOrderCmd writes back a reorder that is already showing on screen.
func (m Model) persistOrderCmd(taskID int, changed []models.Subtask) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.PersistSubtaskOrder(context.Background(), changed)
		return orderPersistedMsg{taskID: taskID, err: err}
	}
}

// saveCatalogCmd creates or renames an entry of the active reference list.
// A zero id creates.
func (m Model) saveCatalogCmd(kind catalogKind, id int, name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch kind {
		case catalogProjects:
			if id != 0 {
				_, err = m.catalog.RenameProject(ctx, id, name)
			} else {
				_, err = m.catalog.CreateProject(ctx, name)
			}
		case catalogCollaborators:
			if id != 0 {
				_, err = m.catalog.RenameCollaborator(ctx, id, name)
			} else {
				_, err = m.catalog.CreateCollaborator(ctx, name)
			}
		case catalogDepartments:
			if id != 0 {
				_, err = m.catalog.RenameDepartment(ctx, id, name)
			} else {
				_, err = m.catalog.CreateDepartment(ctx, name)
			}
		}
		if err != nil {
			return errMsg{err}
		}
		return catalogChangedMsg{}
	}
}

func (m Model) deleteCatalogCmd(kind catalogKind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch kind {
		case catalogProjects:
			err = m.catalog.DeleteProject(ctx, id)
		case catalogCollaborators:
			err = m.catalog.DeleteCollaborator(ctx, id)
		case catalogDepartments:
			err = m.catalog.DeleteDepartment(ctx, id)
		}
		if err != nil {
			return errMsg{err}
		}
		return catalogChangedMsg{}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if m.logout != nil {
			if err := m.logout(); err != nil {
				slog.Warn("logout failed", "error", err)
			}
		}
		return tea.Quit()
	}
}

func parseDate(s string) models.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return models.Date{}
	}
	return models.Date{Time: t}
}
