package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = lipgloss.Color("86")  // Cyan
	colorMuted   = lipgloss.Color("241") // Gray
	colorWarning = lipgloss.Color("214") // Orange
	colorGood    = lipgloss.Color("78")  // Green
)

var (
	// titleStyle renders the editor header
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	// selectedStyle highlights the row under the cursor
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// labelStyle renders parameter labels
	labelStyle = lipgloss.NewStyle()

	// descriptionStyle renders parameter descriptions
	descriptionStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				PaddingLeft(4)

	// valueOnStyle renders an enabled boolean value
	valueOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGood)

	// valueOffStyle renders a disabled boolean value
	valueOffStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// dirtyStyle marks a row with unsaved edits
	dirtyStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// helpStyle renders the key help footer
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
