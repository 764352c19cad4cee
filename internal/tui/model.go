package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quadroqm/quadro/internal/access"
	"github.com/quadroqm/quadro/internal/board"
	"github.com/quadroqm/quadro/internal/cache"
	"github.com/quadroqm/quadro/internal/config"
	"github.com/quadroqm/quadro/internal/models"
	"github.com/quadroqm/quadro/internal/services/catalog"
	"github.com/quadroqm/quadro/internal/services/task"
)

// mode is the current interaction mode of the board
type mode int

const (
	modeNormal mode = iota
	modeDetail
	modeTaskForm
	modeSolution
	modeReopen
	modeDeleteConfirm
	modeSubtaskInput
	modeFilter
	modeManage
	modeManageInput
	modeManageDelete
	modeHelp
)

// catalogKind selects which reference list the manage screen operates on.
type catalogKind int

const (
	catalogProjects catalogKind = iota
	catalogCollaborators
	catalogDepartments
)

func (k catalogKind) Label() string {
	switch k {
	case catalogProjects:
		return "Projects"
	case catalogCollaborators:
		return "Collaborators"
	case catalogDepartments:
		return "Departments"
	}
	return ""
}

func (k catalogKind) Singular() string {
	switch k {
	case catalogProjects:
		return "Project"
	case catalogCollaborators:
		return "Collaborator"
	case catalogDepartments:
		return "Department"
	}
	return ""
}

// catalogEntry is one row of the manage screen, whatever its kind.
type catalogEntry struct {
	ID   int
	Name string
}

// pendingMove is a gated column move waiting on its dialog.
type pendingMove struct {
	taskID int
	next   models.Status
}

// Model represents the application state for the TUI
type Model struct {
	svc      task.Service
	catalog  catalog.Service
	store    *board.Store
	access   *access.Cache
	snapshot *cache.Snapshot

	keys    config.KeyMappings
	refresh time.Duration

	width  int
	height int

	// loading is true until the first fetch lands; a warm-start snapshot
	// clears it immediately.
	loading bool
	spin    spinner.Model

	mode           mode
	selectedColumn int
	selectedTask   int
	// selectedSubtask indexes into the detail view's subtask list
	selectedSubtask int

	// Reference data for forms and filters, refreshed with the board
	projects      []models.Project
	collaborators []models.Collaborator
	departments   []models.Department

	// Active dialog state
	form       *huh.Form
	formValues *taskFormValues
	// editingTaskID is 0 when the form creates a new task
	editingTaskID int

	// Dialog values live behind pointers so the huh forms keep writing to
	// the same location as the model value is copied between updates.
	solutionForm *huh.Form
	solution     *string
	// pendingMove holds the gated column move awaiting user input
	pendingMove pendingMove

	reopenForm    *huh.Form
	reopenConfirm *bool

	deleteForm    *huh.Form
	deleteConfirm *bool
	deleteTaskID  int

	subtaskForm  *huh.Form
	subtaskTitle *string
	// editingSubtaskID is 0 when the input adds a new subtask
	editingSubtaskID int

	filterForm   *huh.Form
	filterValues *filterFormValues

	// Manage screen state for the projects/collaborators/departments lists
	manageKind  catalogKind
	manageIndex int
	manageForm  *huh.Form
	manageName  *string
	// manageEditingID is 0 when the input creates a new entry
	manageEditingID int
	manageDeleteID  int
	manageConfirm   *bool

	notice    string
	noticeErr bool

	sessionExpired bool

	// logout revokes the session when the user asks for it
	logout func() error
}

// Deps carries everything the board model needs.
type Deps struct {
	Service  task.Service
	Catalog  catalog.Service
	Access   *access.Cache
	Snapshot *cache.Snapshot
	Config   *config.Config

	// WarmStart is the cached board shown before the first fetch lands.
	WarmStart []*models.Task

	// Logout revokes the current session.
	Logout func() error
}

// InitialModel creates the board model. The warm-start snapshot, when
// present, renders immediately; the first fetch replaces it.
func InitialModel(deps Deps) Model {
	store := board.NewStore()
	if len(deps.WarmStart) > 0 {
		store.Replace(deps.WarmStart)
	}

	refresh := 5 * time.Second
	keys := config.DefaultKeyMappings()
	if deps.Config != nil {
		refresh = deps.Config.Server.BoardRefresh.Std()
		keys = deps.Config.KeyMappings
	}

	return Model{
		svc:      deps.Service,
		catalog:  deps.Catalog,
		store:    store,
		access:   deps.Access,
		snapshot: deps.Snapshot,
		keys:     keys,
		refresh:  refresh,
		logout:   deps.Logout,
		loading:  len(deps.WarmStart) == 0,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init starts the first fetch and the refresh timer
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoardCmd(false), m.refreshTick(), m.spin.Tick)
}

func (m Model) refreshTick() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m Model) loadBoardCmd(silent bool) tea.Cmd {
	return func() tea.Msg {
		data, err := m.svc.LoadBoard(context.Background())
		if err != nil {
			return boardLoadFailedMsg{err: err, silent: silent}
		}
		return boardLoadedMsg{data: data, silent: silent}
	}
}

// columns returns the board statuses in display order
func columns() []models.Status {
	return models.Statuses()
}

// currentColumn returns the status of the selected column
func (m Model) currentColumn() models.Status {
	cols := columns()
	if m.selectedColumn < 0 || m.selectedColumn >= len(cols) {
		return cols[0]
	}
	return cols[m.selectedColumn]
}

// currentTasks returns the sorted tasks of the selected column
func (m Model) currentTasks() []*models.Task {
	return m.store.Column(m.currentColumn())
}

// currentTask returns the selected task, or nil when the column is empty
func (m Model) currentTask() *models.Task {
	tasks := m.currentTasks()
	if len(tasks) == 0 || m.selectedTask >= len(tasks) {
		return nil
	}
	return tasks[m.selectedTask]
}

// clampSelection keeps the cursor inside the column after data changes
func (m *Model) clampSelection() {
	tasks := m.currentTasks()
	if m.selectedTask >= len(tasks) {
		m.selectedTask = len(tasks) - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
	if t := m.currentTask(); t != nil {
		if m.selectedSubtask >= len(t.Subtasks) {
			m.selectedSubtask = len(t.Subtasks) - 1
		}
	}
	if m.selectedSubtask < 0 {
		m.selectedSubtask = 0
	}
	if entries := m.manageEntries(); m.manageIndex >= len(entries) {
		m.manageIndex = len(entries) - 1
	}
	if m.manageIndex < 0 {
		m.manageIndex = 0
	}
}

// manageEntries returns the rows of the manage screen for the active kind.
func (m Model) manageEntries() []catalogEntry {
	switch m.manageKind {
	case catalogProjects:
		out := make([]catalogEntry, len(m.projects))
		for i, p := range m.projects {
			out[i] = catalogEntry{ID: p.ID, Name: p.Name}
		}
		return out
	case catalogCollaborators:
		out := make([]catalogEntry, len(m.collaborators))
		for i, c := range m.collaborators {
			out[i] = catalogEntry{ID: c.ID, Name: c.Name}
		}
		return out
	case catalogDepartments:
		out := make([]catalogEntry, len(m.departments))
		for i, d := range m.departments {
			out[i] = catalogEntry{ID: d.ID, Name: d.Name}
		}
		return out
	}
	return nil
}

// selectedEntry returns the manage row under the cursor.
func (m Model) selectedEntry() (catalogEntry, bool) {
	entries := m.manageEntries()
	if len(entries) == 0 || m.manageIndex >= len(entries) {
		return catalogEntry{}, false
	}
	return entries[m.manageIndex], true
}

// LoggedOut reports whether the program ended because the session was
// force-closed.
func (m Model) LoggedOut() bool {
	return m.sessionExpired
}

// canChangeTasks reports whether the session may mutate the board.
// An unloaded permission set denies nothing; the server still enforces.
func (m Model) canChangeTasks() bool {
	if m.access == nil || !m.access.Loaded() {
		return true
	}
	return m.access.Current().CanChange("task")
}

func (m Model) canDeleteTasks() bool {
	if m.access == nil || !m.access.Loaded() {
		return true
	}
	return m.access.Current().CanDelete("task")
}
