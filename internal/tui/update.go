package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quadroqm/quadro/internal/board"
	"github.com/quadroqm/quadro/internal/models"
	"github.com/quadroqm/quadro/internal/reorder"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshTickMsg:
		// Dialogs suspend the silent refresh so a reconciliation does not
		// yank state out from under an open form.
		cmds := []tea.Cmd{m.refreshTick()}
		if m.mode == modeNormal || m.mode == modeDetail || m.mode == modeManage {
			cmds = append(cmds, m.loadBoardCmd(true))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case boardLoadedMsg:
		m.loading = false
		m.store.Replace(msg.data.Tasks)
		m.projects = msg.data.Projects
		m.collaborators = msg.data.Collaborators
		m.departments = msg.data.Departments
		m.clampSelection()
		return m, m.saveSnapshotCmd(msg.data.Tasks)

	case boardLoadFailedMsg:
		m.loading = false
		if msg.silent {
			slog.Warn("silent board refresh failed", "error", msg.err)
			return m, nil
		}
		return m.withError(msg.err)

	case taskSavedMsg:
		m.store.Upsert(msg.task)
		m.clampSelection()
		return m, nil

	case taskDeletedMsg:
		m.store.Remove(msg.taskID)
		m.clampSelection()
		return m, nil

	case subtaskSavedMsg:
		if msg.draftID != "" {
			m.store.RemoveDraft(msg.taskID, msg.draftID)
		}
		sub := *msg.subtask
		if sub.TaskID == 0 {
			sub.TaskID = msg.taskID
		}
		m.store.UpsertSubtask(sub)
		m.clampSelection()
		return m, nil

	case subtaskDeletedMsg:
		m.store.RemoveSubtask(msg.subtaskID)
		m.clampSelection()
		return m, nil

	case catalogChangedMsg:
		return m, m.loadBoardCmd(true)

	case orderPersistedMsg:
		// The list was applied before the write went out; a failure only
		// surfaces as a notice and the next poll reconciles.
		if msg.err != nil {
			return m.withError(msg.err)
		}
		return m, nil

	case errMsg:
		return m.withError(msg.err)

	case clearNoticeMsg:
		m.notice = ""
		m.noticeErr = false
		return m, nil

	case sessionExpiredMsg:
		m.sessionExpired = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (blink ticks etc.) belongs to the active form
	if m.activeForm() != nil {
		return m.updateActiveForm(msg)
	}
	return m, nil
}

func (m Model) withError(err error) (tea.Model, tea.Cmd) {
	slog.Error("operation failed", "error", err)
	m.notice = err.Error()
	m.noticeErr = true
	return m, clearNoticeAfter()
}

func (m Model) withNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeErr = false
	return m, clearNoticeAfter()
}

// activeForm returns the form owned by the current mode, if any
func (m Model) activeForm() *huh.Form {
	switch m.mode {
	case modeTaskForm:
		return m.form
	case modeSolution:
		return m.solutionForm
	case modeReopen:
		return m.reopenForm
	case modeDeleteConfirm:
		return m.deleteForm
	case modeSubtaskInput:
		return m.subtaskForm
	case modeFilter:
		return m.filterForm
	case modeManageInput, modeManageDelete:
		return m.manageForm
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.activeForm() != nil {
		if key == "esc" {
			return m.cancelDialog()
		}
		return m.updateActiveForm(msg)
	}

	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeDetail:
		return m.handleDetailKey(key)
	case modeManage:
		return m.handleManageKey(key)
	}
	return m.handleNormalKey(key)
}

func (m Model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	k := m.keys
	switch key {
	case k.Quit:
		return m, tea.Quit

	case k.Logout:
		return m, m.logoutCmd()

	case k.ShowHelp:
		m.mode = modeHelp
		return m, nil

	case k.Refresh:
		return m, m.loadBoardCmd(false)

	case k.PrevColumn:
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedTask = 0
		}
		return m, nil

	case k.NextColumn:
		if m.selectedColumn < len(columns())-1 {
			m.selectedColumn++
			m.selectedTask = 0
		}
		return m, nil

	case k.PrevTask:
		if m.selectedTask > 0 {
			m.selectedTask--
		}
		return m, nil

	case k.NextTask:
		if m.selectedTask < len(m.currentTasks())-1 {
			m.selectedTask++
		}
		return m, nil

	case k.ViewTask:
		if m.currentTask() != nil {
			m.mode = modeDetail
			m.selectedSubtask = 0
		}
		return m, nil

	case k.AddTask:
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to add tasks")
		}
		m.editingTaskID = 0
		m.formValues = newTaskFormValues(nil)
		m.form = newTaskForm(m.formValues, m.projects, m.collaborators, m.departments)
		m.mode = modeTaskForm
		return m, m.form.Init()

	case k.EditTask:
		t := m.currentTask()
		if t == nil {
			return m, nil
		}
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to edit tasks")
		}
		m.editingTaskID = t.ID
		m.formValues = newTaskFormValues(t)
		m.form = newTaskForm(m.formValues, m.projects, m.collaborators, m.departments)
		m.mode = modeTaskForm
		return m, m.form.Init()

	case k.DeleteTask:
		t := m.currentTask()
		if t == nil {
			return m, nil
		}
		if !m.canDeleteTasks() {
			return m.withNotice("you do not have permission to delete tasks")
		}
		m.deleteTaskID = t.ID
		m.deleteConfirm = new(bool)
		m.deleteForm = newDeleteForm(t.Title, m.deleteConfirm)
		m.mode = modeDeleteConfirm
		return m, m.deleteForm.Init()

	case k.MoveTaskLeft:
		return m.startMove(-1)

	case k.MoveTaskRight:
		return m.startMove(+1)

	case k.ManageCatalog:
		if m.catalog == nil {
			return m, nil
		}
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to manage the catalog")
		}
		m.mode = modeManage
		m.manageIndex = 0
		return m, nil

	case k.Filter:
		f := m.store.Filter()
		m.filterValues = &filterFormValues{
			Project:    f.Project,
			Assignee:   f.Assignee,
			Department: f.Department,
		}
		m.filterForm = newFilterForm(m.filterValues, m.projects, m.collaborators, m.departments)
		m.mode = modeFilter
		return m, m.filterForm.Init()
	}
	return m, nil
}

// startMove begins a column move one step left or right. Gated transitions
// open their dialog instead of writing anything.
func (m Model) startMove(dir int) (tea.Model, tea.Cmd) {
	t := m.currentTask()
	if t == nil {
		return m, nil
	}
	if !m.canChangeTasks() {
		return m.withNotice("you do not have permission to move tasks")
	}

	cols := columns()
	nextIdx := m.selectedColumn + dir
	if nextIdx < 0 || nextIdx >= len(cols) {
		return m, nil
	}
	next := cols[nextIdx]

	switch board.GateFor(t.Status, next) {
	case board.GateConfirmReopen:
		m.pendingMove.taskID = t.ID
		m.pendingMove.next = next
		m.reopenConfirm = new(bool)
		m.reopenForm = newReopenForm(m.reopenConfirm)
		m.mode = modeReopen
		return m, m.reopenForm.Init()

	case board.GateRequireSolution:
		m.pendingMove.taskID = t.ID
		m.pendingMove.next = next
		m.solution = new(string)
		m.solutionForm = newSolutionForm(m.solution)
		m.mode = modeSolution
		return m, m.solutionForm.Init()
	}

	return m, m.moveTaskCmd(t, next)
}

func (m Model) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	k := m.keys
	t := m.currentTask()
	if t == nil {
		m.mode = modeNormal
		return m, nil
	}

	switch key {
	case "esc", k.ViewTask, k.Quit:
		m.mode = modeNormal
		return m, nil

	case k.PrevTask:
		if m.selectedSubtask > 0 {
			m.selectedSubtask--
		}
		return m, nil

	case k.NextTask:
		if m.selectedSubtask < len(t.Subtasks)-1 {
			m.selectedSubtask++
		}
		return m, nil

	case k.EditTask:
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to edit tasks")
		}
		m.editingTaskID = t.ID
		m.formValues = newTaskFormValues(t)
		m.form = newTaskForm(m.formValues, m.projects, m.collaborators, m.departments)
		m.mode = modeTaskForm
		return m, m.form.Init()

	case k.AddSubtask:
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to edit tasks")
		}
		m.editingSubtaskID = 0
		m.subtaskTitle = new(string)
		m.subtaskForm = newSubtaskForm(m.subtaskTitle)
		m.mode = modeSubtaskInput
		return m, m.subtaskForm.Init()

	case k.RenameSubtask:
		sub, ok := m.selectedSubtaskItem(t)
		if !ok {
			return m, nil
		}
		if !m.canChangeTasks() {
			return m.withNotice("you do not have permission to edit tasks")
		}
		m.editingSubtaskID = sub.ID
		title := sub.Title
		m.subtaskTitle = &title
		m.subtaskForm = newSubtaskForm(m.subtaskTitle)
		m.mode = modeSubtaskInput
		return m, m.subtaskForm.Init()

	case k.ToggleSubtask:
		if sub, ok := m.selectedSubtaskItem(t); ok {
			return m, m.toggleSubtaskCmd(t.ID, sub)
		}
		return m, nil

	case k.DeleteSubtask:
		if sub, ok := m.selectedSubtaskItem(t); ok {
			return m, m.deleteSubtaskCmd(t.ID, sub.ID)
		}
		return m, nil

	case k.MoveSubtaskUp:
		return m.moveSubtask(t, -1)

	case k.MoveSubtaskDown:
		return m.moveSubtask(t, +1)
	}
	return m, nil
}

// handleManageKey drives the projects/collaborators/departments admin
// screen. Left/right switches the list, up/down moves the cursor.
func (m Model) handleManageKey(key string) (tea.Model, tea.Cmd) {
	k := m.keys
	switch key {
	case "esc", k.Quit, k.ManageCatalog:
		m.mode = modeNormal
		return m, nil

	case k.PrevColumn:
		if m.manageKind > catalogProjects {
			m.manageKind--
			m.manageIndex = 0
		}
		return m, nil

	case k.NextColumn:
		if m.manageKind < catalogDepartments {
			m.manageKind++
			m.manageIndex = 0
		}
		return m, nil

	case k.PrevTask:
		if m.manageIndex > 0 {
			m.manageIndex--
		}
		return m, nil

	case k.NextTask:
		if m.manageIndex < len(m.manageEntries())-1 {
			m.manageIndex++
		}
		return m, nil

	case k.AddTask:
		m.manageEditingID = 0
		m.manageName = new(string)
		m.manageForm = newCatalogNameForm(m.manageKind.Singular(), m.manageName)
		m.mode = modeManageInput
		return m, m.manageForm.Init()

	case k.EditTask:
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		m.manageEditingID = entry.ID
		name := entry.Name
		m.manageName = &name
		m.manageForm = newCatalogNameForm(m.manageKind.Singular(), m.manageName)
		m.mode = modeManageInput
		return m, m.manageForm.Init()

	case k.DeleteTask:
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		m.manageDeleteID = entry.ID
		m.manageConfirm = new(bool)
		m.manageForm = newDeleteForm(entry.Name, m.manageConfirm)
		m.mode = modeManageDelete
		return m, m.manageForm.Init()
	}
	return m, nil
}

func (m Model) selectedSubtaskItem(t *models.Task) (models.Subtask, bool) {
	if len(t.Subtasks) == 0 || m.selectedSubtask >= len(t.Subtasks) {
		return models.Subtask{}, false
	}
	return t.Subtasks[m.selectedSubtask], true
}

// moveSubtask swaps the selected subtask with its neighbor by dropping it
// before or after that sibling. The renumbered list hits the store right
// here; persistence follows as a fire-and-report command.
func (m Model) moveSubtask(t *models.Task, dir int) (tea.Model, tea.Cmd) {
	sub, ok := m.selectedSubtaskItem(t)
	if !ok {
		return m, nil
	}
	neighbor := m.selectedSubtask + dir
	if neighbor < 0 || neighbor >= len(t.Subtasks) {
		return m, nil
	}

	side := reorder.SideBefore
	if dir > 0 {
		side = reorder.SideAfter
	}
	res, err := m.svc.ReorderSubtasks(t,
		board.MovePayload{TaskID: t.ID, SubtaskID: sub.ID},
		t.Subtasks[neighbor].ID, side)
	if err != nil {
		return m.withError(err)
	}
	if !res.Moved {
		return m, nil
	}
	m.store.SetSubtasks(t.ID, res.Subtasks)
	m.selectedSubtask = neighbor
	return m, m.persistOrderCmd(t.ID, res.Changed)
}

// cancelDialog closes the open dialog and drops everything it carried, so a
// later dialog never inherits a stale pending move or delete target.
func (m Model) cancelDialog() (tea.Model, tea.Cmd) {
	m.mode = m.dialogReturnMode()
	m.form = nil
	m.solutionForm = nil
	m.reopenForm = nil
	m.deleteForm = nil
	m.subtaskForm = nil
	m.filterForm = nil
	m.manageForm = nil
	m.formValues = nil
	m.filterValues = nil
	m.solution = nil
	m.reopenConfirm = nil
	m.deleteConfirm = nil
	m.subtaskTitle = nil
	m.manageName = nil
	m.manageConfirm = nil
	m.pendingMove = pendingMove{}
	m.deleteTaskID = 0
	m.editingTaskID = 0
	m.editingSubtaskID = 0
	m.manageEditingID = 0
	m.manageDeleteID = 0
	return m, nil
}

// dialogReturnMode picks where a closed dialog drops the user
func (m Model) dialogReturnMode() mode {
	switch m.mode {
	case modeSubtaskInput:
		return modeDetail
	case modeManageInput, modeManageDelete:
		return modeManage
	}
	return modeNormal
}

// updateActiveForm routes a message into the open dialog and reacts when
// the form completes or aborts.
func (m Model) updateActiveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := m.activeForm()

	fm, cmd := form.Update(msg)
	updated, ok := fm.(*huh.Form)
	if !ok {
		return m, cmd
	}
	m.setActiveForm(updated)

	switch updated.State {
	case huh.StateAborted:
		model, _ := m.cancelDialog()
		return model, cmd
	case huh.StateCompleted:
		return m.submitDialog(cmd)
	}
	return m, cmd
}

func (m *Model) setActiveForm(f *huh.Form) {
	switch m.mode {
	case modeTaskForm:
		m.form = f
	case modeSolution:
		m.solutionForm = f
	case modeReopen:
		m.reopenForm = f
	case modeDeleteConfirm:
		m.deleteForm = f
	case modeSubtaskInput:
		m.subtaskForm = f
	case modeFilter:
		m.filterForm = f
	case modeManageInput, modeManageDelete:
		m.manageForm = f
	}
}

// submitDialog translates a completed form into the matching service call
func (m Model) submitDialog(formCmd tea.Cmd) (tea.Model, tea.Cmd) {
	currentMode := m.mode
	returnMode := m.dialogReturnMode()

	switch currentMode {
	case modeTaskForm:
		values := *m.formValues
		editing := m.editingTaskID
		model, _ := m.cancelDialog()
		next := model.(Model)
		next.mode = returnMode
		if !values.Confirm {
			return next, formCmd
		}
		if editing != 0 {
			return next, tea.Batch(formCmd, next.updateTaskCmd(editing, values))
		}
		return next, tea.Batch(formCmd, next.createTaskCmd(values))

	case modeSolution:
		solution := ""
		if m.solution != nil {
			solution = *m.solution
		}
		move := m.pendingMove
		model, _ := m.cancelDialog()
		next := model.(Model)
		return next, tea.Batch(formCmd, next.completeTaskCmd(move.taskID, solution))

	case modeReopen:
		confirmed := m.reopenConfirm != nil && *m.reopenConfirm
		move := m.pendingMove
		model, _ := m.cancelDialog()
		next := model.(Model)
		if !confirmed {
			return next, formCmd
		}
		return next, tea.Batch(formCmd, next.reopenTaskCmd(move.taskID, move.next))

	case modeDeleteConfirm:
		confirmed := m.deleteConfirm != nil && *m.deleteConfirm
		taskID := m.deleteTaskID
		model, _ := m.cancelDialog()
		next := model.(Model)
		if !confirmed {
			return next, formCmd
		}
		return next, tea.Batch(formCmd, next.deleteTaskCmd(taskID))

	case modeSubtaskInput:
		title := ""
		if m.subtaskTitle != nil {
			title = *m.subtaskTitle
		}
		editingID := m.editingSubtaskID
		t := m.currentTask()
		model, _ := m.cancelDialog()
		next := model.(Model)
		if t == nil || title == "" {
			return next, formCmd
		}
		if editingID != 0 {
			return next, tea.Batch(formCmd, next.renameSubtaskCmd(t.ID, editingID, title))
		}
		// Optimistic draft row shows immediately; the round-trip swaps it
		// for the real subtask.
		draft := next.store.AddDraft(t.ID)
		next.store.UpdateDraft(t.ID, draft.ID, title)
		return next, tea.Batch(formCmd, next.addSubtaskCmd(t.ID, title, draft.ID))

	case modeManageInput:
		name := ""
		if m.manageName != nil {
			name = *m.manageName
		}
		kind := m.manageKind
		editingID := m.manageEditingID
		model, _ := m.cancelDialog()
		next := model.(Model)
		if name == "" {
			return next, formCmd
		}
		return next, tea.Batch(formCmd, next.saveCatalogCmd(kind, editingID, name))

	case modeManageDelete:
		confirmed := m.manageConfirm != nil && *m.manageConfirm
		kind := m.manageKind
		deleteID := m.manageDeleteID
		model, _ := m.cancelDialog()
		next := model.(Model)
		if !confirmed {
			return next, formCmd
		}
		return next, tea.Batch(formCmd, next.deleteCatalogCmd(kind, deleteID))

	case modeFilter:
		values := *m.filterValues
		model, _ := m.cancelDialog()
		next := model.(Model)
		next.store.SetFilter(board.Filter{
			Project:    values.Project,
			Assignee:   values.Assignee,
			Department: values.Department,
		})
		next.selectedTask = 0
		return next, formCmd
	}

	model, _ := m.cancelDialog()
	return model, formCmd
}
