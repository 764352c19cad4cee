package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/quadroqm/quadro/internal/models"
)

type call struct {
	op   string
	id   int
	name string
}

type fakeAPI struct {
	calls []call
	err   error
}

func (f *fakeAPI) record(op string, id int, name string) {
	f.calls = append(f.calls, call{op: op, id: id, name: name})
}

func (f *fakeAPI) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	f.record("create_project", 0, name)
	return &models.Project{ID: 1, Name: name}, f.err
}

func (f *fakeAPI) RenameProject(ctx context.Context, id int, name string) (*models.Project, error) {
	f.record("rename_project", id, name)
	return &models.Project{ID: id, Name: name}, f.err
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id int) error {
	f.record("delete_project", id, "")
	return f.err
}

func (f *fakeAPI) CreateCollaborator(ctx context.Context, name string) (*models.Collaborator, error) {
	f.record("create_collaborator", 0, name)
	return &models.Collaborator{ID: 1, Name: name}, f.err
}

func (f *fakeAPI) RenameCollaborator(ctx context.Context, id int, name string) (*models.Collaborator, error) {
	f.record("rename_collaborator", id, name)
	return &models.Collaborator{ID: id, Name: name}, f.err
}

func (f *fakeAPI) DeleteCollaborator(ctx context.Context, id int) error {
	f.record("delete_collaborator", id, "")
	return f.err
}

func (f *fakeAPI) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	f.record("create_department", 0, name)
	return &models.Department{ID: 1, Name: name}, f.err
}

func (f *fakeAPI) RenameDepartment(ctx context.Context, id int, name string) (*models.Department, error) {
	f.record("rename_department", id, name)
	return &models.Department{ID: id, Name: name}, f.err
}

func (f *fakeAPI) DeleteDepartment(ctx context.Context, id int) error {
	f.record("delete_department", id, "")
	return f.err
}

func TestCreateRejectsBlankName(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)
	ctx := context.Background()

	if _, err := svc.CreateProject(ctx, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("project: err = %v, want ErrEmptyName", err)
	}
	if _, err := svc.CreateCollaborator(ctx, ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("collaborator: err = %v, want ErrEmptyName", err)
	}
	if _, err := svc.CreateDepartment(ctx, "\t"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("department: err = %v, want ErrEmptyName", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("blank names must not reach the API, got %+v", api.calls)
	}
}

func TestRenameRequiresValidID(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)

	if _, err := svc.RenameProject(context.Background(), 0, "x"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
	if err := svc.DeleteDepartment(context.Background(), -1); !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("invalid ids must not reach the API, got %+v", api.calls)
	}
}

func TestCreateTrimsName(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)

	created, err := svc.CreateProject(context.Background(), "  Line B  ")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if created.Name != "Line B" {
		t.Errorf("created name = %q, want trimmed", created.Name)
	}
	if api.calls[0].name != "Line B" {
		t.Errorf("API received %q, want trimmed name", api.calls[0].name)
	}
}

func TestOperationsReachTheRightRoutes(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)
	ctx := context.Background()

	svc.RenameCollaborator(ctx, 3, "Ana")
	svc.DeleteProject(ctx, 7)
	svc.CreateDepartment(ctx, "Quality")

	want := []call{
		{op: "rename_collaborator", id: 3, name: "Ana"},
		{op: "delete_project", id: 7},
		{op: "create_department", name: "Quality"},
	}
	if len(api.calls) != len(want) {
		t.Fatalf("calls = %+v", api.calls)
	}
	for i, c := range want {
		if api.calls[i] != c {
			t.Errorf("call %d = %+v, want %+v", i, api.calls[i], c)
		}
	}
}
