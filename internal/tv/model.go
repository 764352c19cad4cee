// Package tv is the read-only wall display. It polls the public task feed
// on a slow interval and renders the four columns without any interaction
// beyond quitting.
package tv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quadroqm/quadro/internal/board"
	"github.com/quadroqm/quadro/internal/models"
)

// Feed is the slice of the remote adapter the display needs. The public
// endpoint requires no session.
type Feed interface {
	ListPublicTasks(ctx context.Context) ([]*models.Task, error)
}

type tasksLoadedMsg struct {
	tasks []*models.Task
}

type loadFailedMsg struct {
	err error
}

type pollTickMsg struct{}

// Model is the display state
type Model struct {
	feed  Feed
	store *board.Store
	poll  time.Duration

	width   int
	height  int
	updated time.Time
	// stale flags that the last poll failed and the board shows old data
	stale bool
}

// NewModel creates the display model
func NewModel(feed Feed, poll time.Duration) Model {
	if poll <= 0 {
		poll = 30 * time.Second
	}
	return Model{
		feed:  feed,
		store: board.NewStore(),
		poll:  poll,
	}
}

// Init starts the first fetch and the poll timer
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.pollTick())
}

func (m Model) pollTick() tea.Cmd {
	return tea.Tick(m.poll, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.feed.ListPublicTasks(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollTickMsg:
		return m, tea.Batch(m.loadCmd(), m.pollTick())

	case tasksLoadedMsg:
		m.store.Replace(msg.tasks)
		m.updated = time.Now()
		m.stale = false

	case loadFailedMsg:
		// Keep showing the last good board; just mark it stale.
		slog.Warn("public feed poll failed", "error", msg.err)
		m.stale = true
	}
	return m, nil
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(38)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("238")).
			Width(34)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
)

// View renders the current state of the display
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	cols := make([]string, 0, 4)
	for _, status := range models.Statuses() {
		tasks := m.store.Column(status)

		lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))}
		for _, t := range tasks {
			lines = append(lines, renderCard(t))
		}
		cols = append(cols, columnStyle.Render(strings.Join(lines, "\n")))
	}

	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	stamp := "never updated"
	if !m.updated.IsZero() {
		stamp = "updated " + m.updated.Format("15:04:05")
	}
	if m.stale {
		stamp = staleStyle.Render(stamp + " (connection lost)")
	} else {
		stamp = metaStyle.Render(stamp)
	}

	return grid + "\n" + stamp
}

func renderCard(t *models.Task) string {
	lines := []string{t.Title}
	if t.ResponsibleName != "" {
		lines = append(lines, metaStyle.Render(t.ResponsibleName))
	}
	if !t.Deadline.IsZero() {
		due := "due " + t.Deadline.String()
		if t.Overdue() {
			lines = append(lines, overdueStyle.Render(due))
		} else {
			lines = append(lines, metaStyle.Render(due))
		}
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
