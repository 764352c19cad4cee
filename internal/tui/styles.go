package tui

import "github.com/charmbracelet/lipgloss"

// Style definitions for the board UI
// These styles follow Lipgloss conventions for composable terminal styling

var (
	highlight = lipgloss.Color("#874BFD")

	// ColumnStyle defines the appearance of board columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(34)

	// ActiveColumnStyle marks the column holding the cursor
	ActiveColumnStyle = ColumnStyle.
				BorderForeground(highlight)

	// ColumnTitleStyle defines the appearance of column headers
	ColumnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170"))

	// CardStyle defines the appearance of individual tasks as cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(1).
			Width(30)

	// SelectedCardStyle marks the card under the cursor
	SelectedCardStyle = CardStyle.
				BorderForeground(highlight)

	// OverdueStyle flags deadlines that have passed
	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// MetaStyle renders secondary card lines (project, assignee, dates)
	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Priority badge colors, one per level
	priorityStyles = map[string]lipgloss.Style{
		"URGENT": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"HIGH":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"MEDIUM": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"LOW":    lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	}

	// FormBoxStyle wraps dialog forms in a purple border
	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2)

	// DeleteConfirmBoxStyle wraps deletion confirmations in a red border
	DeleteConfirmBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(1)

	// DetailBoxStyle frames the task detail screen
	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	// HelpBoxStyle frames the help screen
	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	// ErrorBannerStyle renders failure notices
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Background(lipgloss.Color("52")).
				Bold(true).
				Padding(0, 1)

	// InfoBannerStyle renders informational notices
	InfoBannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("17")).
			Bold(true).
			Padding(0, 1)

	// SelectedSubtaskStyle marks the checklist cursor
	SelectedSubtaskStyle = lipgloss.NewStyle().
				Foreground(highlight).
				Bold(true)

	// DoneSubtaskStyle strikes through finished checklist items
	DoneSubtaskStyle = lipgloss.NewStyle().
				Strikethrough(true).
				Foreground(lipgloss.Color("245"))

	// DraftSubtaskStyle dims optimistic rows that have not round-tripped yet
	DraftSubtaskStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("245"))
)

func priorityStyle(p string) lipgloss.Style {
	if s, ok := priorityStyles[p]; ok {
		return s
	}
	return MetaStyle
}
