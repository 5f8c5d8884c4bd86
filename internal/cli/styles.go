package cli

import "github.com/charmbracelet/lipgloss"

const (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	// ErrorStyle is for error headers.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	// SuccessStyle is for completed actions.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// MutedStyle is for no-op and secondary output.
	MutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	boldStyle = lipgloss.NewStyle().Bold(true)
)
