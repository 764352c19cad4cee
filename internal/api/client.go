// Package api is the HTTP adapter for the remote quality-management REST
// API. It owns wire concerns only: routes, JSON bodies, the paginated list
// envelope, and error mapping. Business rules live server-side; the client
// treats every successful response as canonical state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quadroqm/quadro/internal/models"
)

// API routes, relative to the server base URL. Collection routes use
// trailing slashes to match the server's router.
const (
	tasksPath         = "/api/v1/tasks/"
	tasksPublicPath   = "/api/v1/tasks-public/"
	subtasksPath      = "/api/v1/subtasks/"
	projectsPath      = "/api/v1/projects/"
	collaboratorsPath = "/api/v1/collaborators/"
	departmentsPath   = "/api/v1/departments/"
	currentUserPath   = "/api/users/me/"
)

// Client performs CRUD against the REST API. The supplied http.Client
// carries the authentication transport; a nil client gets a plain one with
// a sane timeout for the unauthenticated public feed.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Error is a non-2xx API response. Detail carries the server's message when
// the body had one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ListTasks fetches all tasks visible to the authenticated user, including
// their subtasks.
func (c *Client) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return listResource[*models.Task](ctx, c, tasksPath)
}

// ListPublicTasks fetches the read-only public feed used by the TV display.
func (c *Client) ListPublicTasks(ctx context.Context) ([]*models.Task, error) {
	return listResource[*models.Task](ctx, c, tasksPublicPath)
}

// ListProjects fetches the projects filter dimension.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return listResource[models.Project](ctx, c, projectsPath)
}

// ListCollaborators fetches the collaborators filter dimension.
func (c *Client) ListCollaborators(ctx context.Context) ([]models.Collaborator, error) {
	return listResource[models.Collaborator](ctx, c, collaboratorsPath)
}

// ListDepartments fetches the departments filter dimension.
func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return listResource[models.Department](ctx, c, departmentsPath)
}

// CreateTask persists a new task and returns the canonical resource with
// its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a partial update and returns the canonical resource.
func (c *Client) UpdateTask(ctx context.Context, id int, patch models.TaskPatch) (*models.Task, error) {
	var updated models.Task
	path := fmt.Sprintf("%s%d/", tasksPath, id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task. Subtasks cascade server-side.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", tasksPath, id), nil, nil)
}

// CreateSubtask persists a new subtask under its owning task.
func (c *Client) CreateSubtask(ctx context.Context, taskID int, title string) (*models.Subtask, error) {
	body := models.Subtask{TaskID: taskID, Title: title}
	var created models.Subtask
	if err := c.do(ctx, http.MethodPost, subtasksPath, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSubtask applies a partial update and returns the canonical resource.
func (c *Client) UpdateSubtask(ctx context.Context, id int, patch models.SubtaskPatch) (*models.Subtask, error) {
	var updated models.Subtask
	path := fmt.Sprintf("%s%d/", subtasksPath, id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSubtask removes a subtask.
func (c *Client) DeleteSubtask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", subtasksPath, id), nil, nil)
}

// CreateProject persists a new project.
func (c *Client) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	return createNamed[models.Project](ctx, c, projectsPath, name)
}

// RenameProject changes a project's name.
func (c *Client) RenameProject(ctx context.Context, id int, name string) (*models.Project, error) {
	return renameNamed[models.Project](ctx, c, projectsPath, id, name)
}

// DeleteProject removes a project. Tasks keep their project id server-side
// until reassigned.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", projectsPath, id), nil, nil)
}

// CreateCollaborator persists a new collaborator.
func (c *Client) CreateCollaborator(ctx context.Context, name string) (*models.Collaborator, error) {
	return createNamed[models.Collaborator](ctx, c, collaboratorsPath, name)
}

// RenameCollaborator changes a collaborator's name.
func (c *Client) RenameCollaborator(ctx context.Context, id int, name string) (*models.Collaborator, error) {
	return renameNamed[models.Collaborator](ctx, c, collaboratorsPath, id, name)
}

// DeleteCollaborator removes a collaborator.
func (c *Client) DeleteCollaborator(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", collaboratorsPath, id), nil, nil)
}

// CreateDepartment persists a new department.
func (c *Client) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	return createNamed[models.Department](ctx, c, departmentsPath, name)
}

// RenameDepartment changes a department's name.
func (c *Client) RenameDepartment(ctx context.Context, id int, name string) (*models.Department, error) {
	return renameNamed[models.Department](ctx, c, departmentsPath, id, name)
}

// DeleteDepartment removes a department.
func (c *Client) DeleteDepartment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", departmentsPath, id), nil, nil)
}

// namePayload is the write body shared by the catalog resources, which
// carry nothing but a display name.
type namePayload struct {
	Name string `json:"name"`
}

func createNamed[T any](ctx context.Context, c *Client, path, name string) (*T, error) {
	var created T
	if err := c.do(ctx, http.MethodPost, path, namePayload{Name: name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func renameNamed[T any](ctx context.Context, c *Client, path string, id int, name string) (*T, error) {
	var updated T
	route := fmt.Sprintf("%s%d/", path, id)
	if err := c.do(ctx, http.MethodPatch, route, namePayload{Name: name}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UserPermissions fetches the flat capability list for the current session.
func (c *Client) UserPermissions(ctx context.Context) ([]string, error) {
	var out struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.do(ctx, http.MethodGet, currentUserPath, nil, &out); err != nil {
		return nil, err
	}
	return out.Permissions, nil
}

// listResource fetches a collection route and normalizes the response shape.
func listResource[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// do runs one request. A nil out skips body decoding, which also covers the
// 204 responses of DELETE.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
