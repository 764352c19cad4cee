// Package catalog manages the board's reference dimensions: projects,
// collaborators, and departments. They are flat name lists server-side;
// this service owns the admin surface over them.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/quadroqm/quadro/internal/models"
)

// API is the slice of the remote adapter this service consumes.
type API interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	RenameProject(ctx context.Context, id int, name string) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error

	CreateCollaborator(ctx context.Context, name string) (*models.Collaborator, error)
	RenameCollaborator(ctx context.Context, id int, name string) (*models.Collaborator, error)
	DeleteCollaborator(ctx context.Context, id int) error

	CreateDepartment(ctx context.Context, name string) (*models.Department, error)
	RenameDepartment(ctx context.Context, id int, name string) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int) error
}

// Service defines the catalog management operations.
type Service interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	RenameProject(ctx context.Context, id int, name string) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error

	CreateCollaborator(ctx context.Context, name string) (*models.Collaborator, error)
	RenameCollaborator(ctx context.Context, id int, name string) (*models.Collaborator, error)
	DeleteCollaborator(ctx context.Context, id int) error

	CreateDepartment(ctx context.Context, name string) (*models.Department, error)
	RenameDepartment(ctx context.Context, id int, name string) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int) error
}

type service struct {
	api API
}

// NewService creates a catalog service over the remote adapter.
func NewService(api API) Service {
	return &service{api: api}
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

func (s *service) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateProject(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (s *service) RenameProject(ctx context.Context, id int, name string) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	updated, err := s.api.RenameProject(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("rename project: %w", err)
	}
	return updated, nil
}

func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *service) CreateCollaborator(ctx context.Context, name string) (*models.Collaborator, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateCollaborator(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create collaborator: %w", err)
	}
	return created, nil
}

func (s *service) RenameCollaborator(ctx context.Context, id int, name string) (*models.Collaborator, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	updated, err := s.api.RenameCollaborator(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("rename collaborator: %w", err)
	}
	return updated, nil
}

func (s *service) DeleteCollaborator(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.api.DeleteCollaborator(ctx, id); err != nil {
		return fmt.Errorf("delete collaborator: %w", err)
	}
	return nil
}

func (s *service) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	created, err := s.api.CreateDepartment(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return created, nil
}

func (s *service) RenameDepartment(ctx context.Context, id int, name string) (*models.Department, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	updated, err := s.api.RenameDepartment(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("rename department: %w", err)
	}
	return updated, nil
}

func (s *service) DeleteDepartment(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.api.DeleteDepartment(ctx, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
