package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/quadroqm/quadro/internal/models"
)

const dateLayout = "2006-01-02"

// taskFormValues backs the create/edit task form. The form binds pointers
// into this struct and the submit handler translates it into a request.
type taskFormValues struct {
	Title       string
	Description string
	Priority    models.Priority
	Project     int
	Responsible int
	AssignedTo  []int
	Departments []int
	StartDate   string
	Deadline    string
	Confirm     bool
}

// newTaskFormValues pre-fills the form from an existing task, or with
// defaults for a new one.
func newTaskFormValues(t *models.Task) *taskFormValues {
	v := &taskFormValues{Priority: models.PriorityMedium}
	if t == nil {
		return v
	}
	v.Title = t.Title
	v.Description = t.Description
	v.Priority = t.Priority
	if t.Project != nil {
		v.Project = *t.Project
	}
	if t.Responsible != nil {
		v.Responsible = *t.Responsible
	}
	v.AssignedTo = append([]int(nil), t.AssignedTo...)
	v.Departments = append([]int(nil), t.Departments...)
	if !t.StartDate.IsZero() {
		v.StartDate = t.StartDate.String()
	}
	if !t.Deadline.IsZero() {
		v.Deadline = t.Deadline.String()
	}
	return v
}

// validDate accepts an empty value or a YYYY-MM-DD date
func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func priorityOptions() []huh.Option[models.Priority] {
	opts := make([]huh.Option[models.Priority], 0, len(models.Priorities()))
	for _, p := range models.Priorities() {
		opts = append(opts, huh.NewOption(p.Label(), p))
	}
	return opts
}

func projectOptions(projects []models.Project) []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("None", 0)}
	for _, p := range projects {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return opts
}

func collaboratorOptions(collaborators []models.Collaborator) []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("Unassigned", 0)}
	for _, c := range collaborators {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts
}

func departmentOptions(departments []models.Department) []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("All", 0)}
	for _, d := range departments {
		opts = append(opts, huh.NewOption(d.Name, d.ID))
	}
	return opts
}

// The multi-selects skip the zero sentinel the single selects carry; an
// empty selection already means "nobody" or "no department".
func assigneeMultiOptions(collaborators []models.Collaborator) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(collaborators))
	for _, c := range collaborators {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts
}

func departmentMultiOptions(departments []models.Department) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(departments))
	for _, d := range departments {
		opts = append(opts, huh.NewOption(d.Name, d.ID))
	}
	return opts
}

// newTaskForm builds the create/edit dialog
func newTaskForm(v *taskFormValues, projects []models.Project, collaborators []models.Collaborator, departments []models.Department) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter task title...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}).
			Value(&v.Title),
		huh.NewText().
			Key("description").
			Title("Description").
			Placeholder("Enter task description...").
			CharLimit(5000).
			Lines(5).
			Value(&v.Description),
		huh.NewSelect[models.Priority]().
			Key("priority").
			Title("Priority").
			Options(priorityOptions()...).
			Value(&v.Priority),
		huh.NewSelect[int]().
			Key("project").
			Title("Project").
			Options(projectOptions(projects)...).
			Value(&v.Project),
		huh.NewSelect[int]().
			Key("responsible").
			Title("Responsible").
			Options(collaboratorOptions(collaborators)...).
			Value(&v.Responsible),
		huh.NewMultiSelect[int]().
			Key("assigned_to").
			Title("Assigned to").
			Options(assigneeMultiOptions(collaborators)...).
			Value(&v.AssignedTo),
		huh.NewMultiSelect[int]().
			Key("departments").
			Title("Departments").
			Options(departmentMultiOptions(departments)...).
			Value(&v.Departments),
		huh.NewInput().
			Key("start_date").
			Title("Start date").
			Placeholder("YYYY-MM-DD").
			Validate(validDate).
			Value(&v.StartDate),
		huh.NewInput().
			Key("deadline").
			Title("Deadline").
			Placeholder("YYYY-MM-DD").
			Validate(validDate).
			Value(&v.Deadline),
		huh.NewConfirm().
			Key("confirm").
			Title("Save this task?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Confirm),
	)).WithShowHelp(false)
}

// newSolutionForm builds the completion dialog. A task cannot enter the
// done column without a solution.
func newSolutionForm(solution *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().
			Key("solution").
			Title("Solution").
			Description("Describe how this task was resolved").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("solution is required to complete a task")
				}
				return nil
			}).
			Lines(4).
			Value(solution),
	)).WithShowHelp(false)
}

// newReopenForm asks for confirmation before a done task leaves its column
func newReopenForm(confirm *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("reopen").
			Title("Reopen this task?").
			Description("The task will move out of Done").
			Affirmative("Reopen").
			Negative("Cancel").
			Value(confirm),
	)).WithShowHelp(false)
}

func newDeleteForm(title string, confirm *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("delete").
			Title(fmt.Sprintf("Delete %q?", title)).
			Description("This cannot be undone").
			Affirmative("Delete").
			Negative("Cancel").
			Value(confirm),
	)).WithShowHelp(false)
}

func newSubtaskForm(title *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title("Subtask").
			Placeholder("Enter subtask title...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}).
			Value(title),
	)).WithShowHelp(false)
}

// newCatalogNameForm builds the single-input dialog shared by catalog
// create and rename.
func newCatalogNameForm(kind string, name *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title(kind + " name").
			Placeholder("Enter name...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}).
			Value(name),
	)).WithShowHelp(false)
}

// filterFormValues backs the board filter dialog. Zero means "no filter"
// on that dimension.
type filterFormValues struct {
	Project    int
	Assignee   int
	Department int
}

func newFilterForm(v *filterFormValues, projects []models.Project, collaborators []models.Collaborator, departments []models.Department) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Key("project").
			Title("Project").
			Options(projectOptions(projects)...).
			Value(&v.Project),
		huh.NewSelect[int]().
			Key("assignee").
			Title("Assignee").
			Options(collaboratorOptions(collaborators)...).
			Value(&v.Assignee),
		huh.NewSelect[int]().
			Key("department").
			Title("Department").
			Options(departmentOptions(departments)...).
			Value(&v.Department),
	)).WithShowHelp(false)
}
