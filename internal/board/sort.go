package board

import (
	"sort"

	"github.com/quadroqm/quadro/internal/models"
)

// SortColumn orders tasks in place for display within one status column.
//
// Active columns: priority rank, then overdue-first, then soonest deadline
// (tasks without a deadline after those with one), then persisted order.
// The done column: most recently completed first, falling back through
// updated-at and created-at, then persisted order.
func SortColumn(status models.Status, tasks []*models.Task) {
	if status == models.StatusDone {
		sort.SliceStable(tasks, func(i, j int) bool {
			return doneLess(tasks[i], tasks[j])
		})
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return activeLess(tasks[i], tasks[j])
	})
}

func activeLess(a, b *models.Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	if la, lb := a.Overdue(), b.Overdue(); la != lb {
		return la
	}
	da, db := a.Deadline, b.Deadline
	switch {
	case !da.IsZero() && !db.IsZero():
		if !da.Equal(db.Time) {
			return da.Before(db)
		}
	case !da.IsZero():
		return true
	case !db.IsZero():
		return false
	}
	return a.Order < b.Order
}

func doneLess(a, b *models.Task) bool {
	da, db := a.DoneAt(), b.DoneAt()
	switch {
	case da != nil && db != nil:
		if !da.Equal(*db) {
			return da.After(*db)
		}
	case da != nil:
		return true
	case db != nil:
		return false
	}
	return a.Order < b.Order
}
