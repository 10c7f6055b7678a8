package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
	ColorBlue      = lipgloss.Color("#3B82F6") // Blue
)

// Record kinds shown in the list output.
const (
	KindNameAuthor = "author"
	KindNameBook   = "book"
)

// Kind badge styles (for inline use)
var (
	KindAuthor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorPrimary).
			Padding(0, 1).
			Bold(true)

	KindBook = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorBlue).
			Padding(0, 1)
)

// Kind text styles (for table use, no background/padding)
var (
	KindAuthorText = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	KindBookText   = lipgloss.NewStyle().Foreground(ColorBlue)
)

// Text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Muted     = lipgloss.NewStyle().Foreground(ColorMuted)
	Primary   = lipgloss.NewStyle().Foreground(ColorPrimary)
	Success   = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning   = lipgloss.NewStyle().Foreground(ColorWarning)
	Danger    = lipgloss.NewStyle().Foreground(ColorDanger)
	Secondary = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// ID style - distinctive for record ids
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Title style
var Title = lipgloss.NewStyle().Bold(true)

// Path style - subdued
var Path = lipgloss.NewStyle().Foreground(ColorMuted)

// TreeLine styles the tree connectors
var TreeLine = lipgloss.NewStyle().Foreground(ColorSecondary)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true).
	MarginBottom(1)

// RenderKind returns a styled kind badge ("author" or "book").
func RenderKind(kind string) string {
	switch kind {
	case KindNameAuthor:
		return KindAuthor.Render(kind)
	case KindNameBook:
		return KindBook.Render(kind)
	default:
		return Muted.Render(kind)
	}
}

// RenderKindText returns styled kind text (for tables, no background).
func RenderKindText(kind string) string {
	switch kind {
	case KindNameAuthor:
		return KindAuthorText.Render(kind)
	case KindNameBook:
		return KindBookText.Render(kind)
	default:
		return Muted.Render(kind)
	}
}
