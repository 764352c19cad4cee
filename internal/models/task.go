package models

import "time"

// Task represents a single card on the kanban board.
//
// Association fields carry foreign ids plus denormalized display names so
// cards render without extra lookups. Timestamps and completed_at are
// assigned server-side; the client only reads them.
type Task struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Solution    string   `json:"solution,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`

	Project         *int     `json:"project,omitempty"`
	ProjectName     string   `json:"project_name,omitempty"`
	Responsible     *int     `json:"responsavel,omitempty"`
	ResponsibleName string   `json:"responsavel_name,omitempty"`
	AssignedTo      []int    `json:"assigned_to,omitempty"`
	AssignedToNames []string `json:"assigned_to_names,omitempty"`
	Departments     []int    `json:"department,omitempty"`
	DepartmentNames []string `json:"department_names,omitempty"`

	// Order is the persisted intra-column placement tie-break.
	Order int `json:"order"`

	StartDate Date `json:"start_date,omitempty"`
	Deadline  Date `json:"deadline,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	Subtasks []Subtask `json:"subtasks,omitempty"`
}

// Overdue reports whether the task's deadline has passed. Completed tasks
// are never considered overdue.
func (t *Task) Overdue() bool {
	if t.Status == StatusDone || t.Deadline.IsZero() {
		return false
	}
	return t.Deadline.Before(Today())
}

// DoneAt returns the best-known completion time for board sorting:
// completed_at when present, falling back through updated_at and created_at.
func (t *Task) DoneAt() *time.Time {
	switch {
	case t.CompletedAt != nil:
		return t.CompletedAt
	case t.UpdatedAt != nil:
		return t.UpdatedAt
	case t.CreatedAt != nil:
		return t.CreatedAt
	}
	return nil
}

// Subtask is a checklist item owned by exactly one task. The server cascades
// deletion with the owning task.
type Subtask struct {
	ID     int    `json:"id,omitempty"`
	TaskID int    `json:"task"`
	Title  string `json:"title"`
	IsDone bool   `json:"is_done"`

	// Order is nil for legacy rows created before ordering existed; such
	// subtasks sort after explicitly ordered ones, keeping input order.
	Order *int `json:"order,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// TaskPatch is a partial task update. Nil fields are omitted from the wire
// body, so the server only touches what the client actually changed.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Solution    *string   `json:"solution,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Project     *int      `json:"project,omitempty"`
	Responsible *int      `json:"responsavel,omitempty"`
	AssignedTo  *[]int    `json:"assigned_to,omitempty"`
	Departments *[]int    `json:"department,omitempty"`
	Order       *int      `json:"order,omitempty"`
	StartDate   *Date     `json:"start_date,omitempty"`
	Deadline    *Date     `json:"deadline,omitempty"`
}

// SubtaskPatch is a partial subtask update.
type SubtaskPatch struct {
	Title  *string `json:"title,omitempty"`
	IsDone *bool   `json:"is_done,omitempty"`
	Order  *int    `json:"order,omitempty"`
}
