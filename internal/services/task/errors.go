package task

import "errors"

// Validation errors, caught before any network call.
var (
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrEmptySolution    = errors.New("a completed task requires a non-empty solution")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidSubtaskID = errors.New("invalid subtask ID")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidPriority  = errors.New("invalid priority")
)

// Policy errors for gated column moves. The UI maps these to the
// confirmation and solution dialogs instead of applying the move.
var (
	// ErrConfirmReopen: the move leaves the done column and needs explicit
	// confirmation via ReopenTask.
	ErrConfirmReopen = errors.New("reopening a completed task requires confirmation")

	// ErrSolutionRequired: the move enters the done column and needs a
	// solution via CompleteTask.
	ErrSolutionRequired = errors.New("completing a task requires a solution")
)

// ErrCrossTaskMove rejects a subtask drop whose resolved source task does
// not match the drop container.
var ErrCrossTaskMove = errors.New("subtask belongs to a different task")
