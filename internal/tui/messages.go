package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quadroqm/quadro/internal/models"
	"github.com/quadroqm/quadro/internal/services/task"
)

// Messages produced by commands. Every network operation runs as a tea.Cmd
// and reports back through one of these.

// boardLoadedMsg carries a fresh board fetch. silent marks the periodic
// background refresh, which must not surface a spinner or clear notices.
type boardLoadedMsg struct {
	data   *task.BoardData
	silent bool
}

// boardLoadFailedMsg is a failed fetch. Silent refresh failures are logged
// and swallowed; the board keeps its last known state.
type boardLoadFailedMsg struct {
	err    error
	silent bool
}

// refreshTickMsg fires the periodic silent refresh.
type refreshTickMsg struct{}

// taskSavedMsg is a create or update round-trip that came back.
type taskSavedMsg struct {
	task *models.Task
}

type taskDeletedMsg struct {
	taskID int
}

// subtaskSavedMsg is any single-subtask round-trip. draftID is set when the
// save replaces an optimistic draft row.
type subtaskSavedMsg struct {
	taskID  int
	subtask *models.Subtask
	draftID string
}

type subtaskDeletedMsg struct {
	taskID    int
	subtaskID int
}

// orderPersistedMsg reports the write-back of a reorder that was already
// applied locally. err is non-nil on partial persistence failure; nothing is
// rolled back and the next poll reconciles.
type orderPersistedMsg struct {
	taskID int
	err    error
}

// catalogChangedMsg reports a successful write against one of the reference
// lists. The board reloads to pick up the new dimension data.
type catalogChangedMsg struct{}

// errMsg is a generic operation failure shown as a notice.
type errMsg struct {
	err error
}

// clearNoticeMsg expires the transient notice banner.
type clearNoticeMsg struct{}

// sessionExpiredMsg is emitted when a token refresh fails and the session
// was force-closed.
type sessionExpiredMsg struct{}

// SessionExpired builds the message the host sends when the auth layer
// force-closes the session.
func SessionExpired() tea.Msg {
	return sessionExpiredMsg{}
}
