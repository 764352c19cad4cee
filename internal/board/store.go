// Package board holds the in-memory board state and the display policies
// layered on top of it: filtering, per-column ordering, and the gating rules
// for moving cards across status columns.
//
// The store is the single source of truth for optimistic UI: mutations apply
// here immediately, persistence happens afterwards, and the periodic refresh
// replaces the whole task list with canonical server state.
package board

import (
	"github.com/google/uuid"

	"github.com/quadroqm/quadro/internal/models"
)

// Store keeps the current task list and transient per-task subtask drafts.
// It is mutated only from the UI loop, so it carries no locking.
type Store struct {
	tasks  []*models.Task
	filter Filter
	drafts map[int][]Draft
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{drafts: make(map[int][]Draft)}
}

// Replace swaps in a freshly fetched task list wholesale. This is the sole
// reconciliation mechanism: optimistic local changes whose writes have not
// landed yet are overwritten by whatever the server returned.
func (s *Store) Replace(tasks []*models.Task) {
	s.tasks = tasks
}

// Tasks returns the unfiltered task list.
func (s *Store) Tasks() []*models.Task {
	return s.tasks
}

// Task returns the task with the given id, or nil.
func (s *Store) Task(id int) *models.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Upsert replaces the task with the same id, or appends it.
func (s *Store) Upsert(task *models.Task) {
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// Remove drops the task with the given id, if present.
func (s *Store) Remove(id int) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// SetSubtasks replaces the subtask list of the given task. Used to apply an
// optimistic reorder before the persistence batch completes.
func (s *Store) SetSubtasks(taskID int, subtasks []models.Subtask) {
	if t := s.Task(taskID); t != nil {
		t.Subtasks = subtasks
	}
}

// UpsertSubtask replaces or appends a subtask on its owning task.
func (s *Store) UpsertSubtask(sub models.Subtask) {
	t := s.Task(sub.TaskID)
	if t == nil {
		return
	}
	for i, existing := range t.Subtasks {
		if existing.ID == sub.ID {
			t.Subtasks[i] = sub
			return
		}
	}
	t.Subtasks = append(t.Subtasks, sub)
}

// RemoveSubtask drops a subtask by id from whichever task owns it.
func (s *Store) RemoveSubtask(id int) {
	for _, t := range s.tasks {
		for i, sub := range t.Subtasks {
			if sub.ID == id {
				t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
				return
			}
		}
	}
}

// SetFilter replaces the active filter.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// Column returns the filtered, display-sorted tasks for one status column.
// The ordering is computed at render time and never persisted.
func (s *Store) Column(status models.Status) []*models.Task {
	var out []*models.Task
	for _, t := range s.tasks {
		if t.Status == status && s.filter.Matches(t) {
			out = append(out, t)
		}
	}
	SortColumn(status, out)
	return out
}

// Draft is an unsaved subtask that exists only in local state. Drafts keep a
// client-generated id until they are either persisted or abandoned.
type Draft struct {
	ID    string
	Title string
}

// AddDraft creates an empty draft subtask under the given task.
func (s *Store) AddDraft(taskID int) Draft {
	draft := Draft{ID: uuid.NewString()}
	s.drafts[taskID] = append(s.drafts[taskID], draft)
	return draft
}

// UpdateDraft sets the working title of a draft.
func (s *Store) UpdateDraft(taskID int, draftID, title string) {
	for i, d := range s.drafts[taskID] {
		if d.ID == draftID {
			s.drafts[taskID][i].Title = title
			return
		}
	}
}

// RemoveDraft discards a draft without persisting it.
func (s *Store) RemoveDraft(taskID int, draftID string) {
	list := s.drafts[taskID]
	for i, d := range list {
		if d.ID == draftID {
			s.drafts[taskID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Drafts returns the pending drafts for a task.
func (s *Store) Drafts(taskID int) []Draft {
	return s.drafts[taskID]
}
