package board

import (
	"slices"

	"github.com/quadroqm/quadro/internal/models"
)

// Filter narrows the board to one project, assignee, or department.
// A zero field matches everything in that dimension.
type Filter struct {
	Project    int
	Assignee   int
	Department int
}

// IsZero reports whether the filter matches every task.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches reports whether the task passes all active dimensions. The
// assignee dimension matches both the responsible person and the
// assigned-to set.
func (f Filter) Matches(t *models.Task) bool {
	if f.Project != 0 {
		if t.Project == nil || *t.Project != f.Project {
			return false
		}
	}
	if f.Assignee != 0 {
		responsible := t.Responsible != nil && *t.Responsible == f.Assignee
		if !responsible && !slices.Contains(t.AssignedTo, f.Assignee) {
			return false
		}
	}
	if f.Department != 0 && !slices.Contains(t.Departments, f.Department) {
		return false
	}
	return true
}
