// Package common provides shared styles and utilities for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	OnlineIcon = "●"
	ImageIcon  = "🖼"
	SelfMarker = "(you)"
)

// Lipgloss Styles
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle   = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SenderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	SelfStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	TypingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	ImageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Underline(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
)
