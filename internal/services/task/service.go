package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/quadroqm/quadro/internal/board"
	"github.com/quadroqm/quadro/internal/models"
	"github.com/quadroqm/quadro/internal/reorder"
)

// API is the slice of the remote adapter this service consumes.
type API interface {
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListCollaborators(ctx context.Context) ([]models.Collaborator, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)

	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id int, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error

	CreateSubtask(ctx context.Context, taskID int, title string) (*models.Subtask, error)
	UpdateSubtask(ctx context.Context, id int, patch models.SubtaskPatch) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, id int) error
}

// BoardData is everything the board screen needs in one load.
type BoardData struct {
	Tasks         []*models.Task
	Projects      []models.Project
	Collaborators []models.Collaborator
	Departments   []models.Department
}

// Service defines all task-related operations of the board.
type Service interface {
	// LoadBoard fetches tasks and the filter dimensions concurrently.
	// Task fetch failure fails the load; dimension failures degrade to
	// empty lists so the board still renders.
	LoadBoard(ctx context.Context) (*BoardData, error)

	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error

	// MoveTask applies an ungated cross-column move as a partial status
	// update. Gated moves return ErrConfirmReopen or ErrSolutionRequired
	// without touching anything.
	MoveTask(ctx context.Context, task *models.Task, next models.Status) (*models.Task, error)

	// ReopenTask moves a completed task back to next after the user
	// confirmed the reopen dialog.
	ReopenTask(ctx context.Context, taskID int, next models.Status) (*models.Task, error)

	// CompleteTask transitions a task to done together with its solution.
	CompleteTask(ctx context.Context, taskID int, solution string) (*models.Task, error)

	AddSubtask(ctx context.Context, taskID int, title string) (*models.Subtask, error)
	RenameSubtask(ctx context.Context, subtaskID int, title string) (*models.Subtask, error)
	ToggleSubtask(ctx context.Context, subtaskID int, done bool) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, subtaskID int) error

	// ReorderSubtasks resolves the drag payload against the drop container
	// and runs the reorder engine. It touches nothing remote: the full
	// renumbered sequence and the minimal changed set come back immediately
	// so the caller applies the new order before any write is issued.
	ReorderSubtasks(container *models.Task, payload board.MovePayload, targetSubtaskID int, side reorder.Side) (ReorderResult, error)

	// PersistSubtaskOrder writes a changed set with one request per item,
	// issued concurrently. A failing sibling neither blocks the batch nor
	// rolls anything back; the next poll reconciles.
	PersistSubtaskOrder(ctx context.Context, changed []models.Subtask) error
}

// ReorderResult is the outcome of running the reorder engine over a
// subtask list.
type ReorderResult struct {
	// Subtasks is the full renumbered sequence.
	Subtasks []models.Subtask
	// Changed holds only the subtasks whose persisted order differs.
	Changed []models.Subtask
	// Moved is false when the drop was a no-op.
	Moved bool
}

// CreateTaskRequest carries the fields of the new-task form.
type CreateTaskRequest struct {
	Title       string
	Description string
	Solution    string
	Status      models.Status
	Priority    models.Priority
	Project     *int
	Responsible *int
	AssignedTo  []int
	Departments []int
	StartDate   models.Date
	Deadline    models.Date
}

// UpdateTaskRequest carries a partial edit. Nil fields are left untouched.
type UpdateTaskRequest struct {
	TaskID      int
	Title       *string
	Description *string
	Solution    *string
	Status      *models.Status
	Priority    *models.Priority
	Project     *int
	Responsible *int
	AssignedTo  *[]int
	Departments *[]int
	StartDate   *models.Date
	Deadline    *models.Date
}

type service struct {
	api API
}

// NewService creates a task service over the remote adapter.
func NewService(api API) Service {
	return &service{api: api}
}

func (s *service) LoadBoard(ctx context.Context) (*BoardData, error) {
	data := &BoardData{}

	var g errgroup.Group
	g.Go(func() error {
		tasks, err := s.api.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("fetch tasks: %w", err)
		}
		data.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		projects, err := s.api.ListProjects(ctx)
		if err != nil {
			slog.Warn("failed to fetch projects", "error", err)
			return nil
		}
		data.Projects = projects
		return nil
	})
	g.Go(func() error {
		collaborators, err := s.api.ListCollaborators(ctx)
		if err != nil {
			slog.Warn("failed to fetch collaborators", "error", err)
			return nil
		}
		data.Collaborators = collaborators
		return nil
	})
	g.Go(func() error {
		departments, err := s.api.ListDepartments(ctx)
		if err != nil {
			slog.Warn("failed to fetch departments", "error", err)
			return nil
		}
		data.Departments = departments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if req.Status == models.StatusDone && strings.TrimSpace(req.Solution) == "" {
		return nil, ErrEmptySolution
	}

	created, err := s.api.CreateTask(ctx, &models.Task{
		Title:       title,
		Description: req.Description,
		Solution:    req.Solution,
		Status:      req.Status,
		Priority:    req.Priority,
		Project:     req.Project,
		Responsible: req.Responsible,
		AssignedTo:  req.AssignedTo,
		Departments: req.Departments,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		// Completion through the edit form still demands a solution.
		if *req.Status == models.StatusDone &&
			(req.Solution == nil || strings.TrimSpace(*req.Solution) == "") {
			return nil, ErrEmptySolution
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	updated, err := s.api.UpdateTask(ctx, req.TaskID, models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Solution:    req.Solution,
		Status:      req.Status,
		Priority:    req.Priority,
		Project:     req.Project,
		Responsible: req.Responsible,
		AssignedTo:  req.AssignedTo,
		Departments: req.Departments,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (s *service) DeleteTask(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *service) MoveTask(ctx context.Context, task *models.Task, next models.Status) (*models.Task, error) {
	if task == nil || task.ID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	if task.Status == next {
		return task, nil
	}

	switch board.GateFor(task.Status, next) {
	case board.GateConfirmReopen:
		return nil, ErrConfirmReopen
	case board.GateRequireSolution:
		return nil, ErrSolutionRequired
	}

	updated, err := s.api.UpdateTask(ctx, task.ID, models.TaskPatch{Status: &next})
	if err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}
	return updated, nil
}

func (s *service) ReopenTask(ctx context.Context, taskID int, next models.Status) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if !next.Valid() || next == models.StatusDone {
		return nil, ErrInvalidStatus
	}

	updated, err := s.api.UpdateTask(ctx, taskID, models.TaskPatch{Status: &next})
	if err != nil {
		return nil, fmt.Errorf("reopen task: %w", err)
	}
	return updated, nil
}

func (s *service) CompleteTask(ctx context.Context, taskID int, solution string) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return nil, ErrEmptySolution
	}

	done := models.StatusDone
	updated, err := s.api.UpdateTask(ctx, taskID, models.TaskPatch{Status: &done, Solution: &solution})
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return updated, nil
}

func (s *service) AddSubtask(ctx context.Context, taskID int, title string) (*models.Subtask, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	created, err := s.api.CreateSubtask(ctx, taskID, title)
	if err != nil {
		return nil, fmt.Errorf("create subtask: %w", err)
	}
	return created, nil
}

func (s *service) RenameSubtask(ctx context.Context, subtaskID int, title string) (*models.Subtask, error) {
	if subtaskID <= 0 {
		return nil, ErrInvalidSubtaskID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	updated, err := s.api.UpdateSubtask(ctx, subtaskID, models.SubtaskPatch{Title: &title})
	if err != nil {
		return nil, fmt.Errorf("rename subtask: %w", err)
	}
	return updated, nil
}

func (s *service) ToggleSubtask(ctx context.Context, subtaskID int, done bool) (*models.Subtask, error) {
	if subtaskID <= 0 {
		return nil, ErrInvalidSubtaskID
	}

	updated, err := s.api.UpdateSubtask(ctx, subtaskID, models.SubtaskPatch{IsDone: &done})
	if err != nil {
		return nil, fmt.Errorf("toggle subtask: %w", err)
	}
	return updated, nil
}

func (s *service) DeleteSubtask(ctx context.Context, subtaskID int) error {
	if subtaskID <= 0 {
		return ErrInvalidSubtaskID
	}
	if err := s.api.DeleteSubtask(ctx, subtaskID); err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}
	return nil
}

func (s *service) ReorderSubtasks(container *models.Task, payload board.MovePayload, targetSubtaskID int, side reorder.Side) (ReorderResult, error) {
	if container == nil || container.ID <= 0 {
		return ReorderResult{}, ErrInvalidTaskID
	}
	if payload.TaskID != container.ID {
		return ReorderResult{}, ErrCrossTaskMove
	}
	if len(container.Subtasks) == 0 {
		return ReorderResult{}, nil
	}

	items := make([]reorder.Item, len(container.Subtasks))
	byID := make(map[int]models.Subtask, len(container.Subtasks))
	for i, sub := range container.Subtasks {
		items[i] = reorder.Item{ID: sub.ID, Order: sub.Order}
		byID[sub.ID] = sub
	}

	res := reorder.Apply(items, reorder.Move{
		SourceID: payload.SubtaskID,
		TargetID: targetSubtaskID,
		Side:     side,
	})

	out := ReorderResult{
		Subtasks: make([]models.Subtask, len(res.Items)),
		Changed:  make([]models.Subtask, 0, len(res.Changed)),
		Moved:    res.Moved,
	}
	for i, it := range res.Items {
		sub := byID[it.ID]
		sub.Order = it.Order
		out.Subtasks[i] = sub
	}
	for _, it := range res.Changed {
		sub := byID[it.ID]
		sub.Order = it.Order
		out.Changed = append(out.Changed, sub)
	}
	return out, nil
}

func (s *service) PersistSubtaskOrder(ctx context.Context, changed []models.Subtask) error {
	var g errgroup.Group
	for _, sub := range changed {
		g.Go(func() error {
			if _, err := s.api.UpdateSubtask(ctx, sub.ID, models.SubtaskPatch{Order: sub.Order}); err != nil {
				return fmt.Errorf("persist order of subtask %d: %w", sub.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
