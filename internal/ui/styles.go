package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bulk-renamer/go/internal/types"
)

// Color Palette - Monokai-inspired theme
var (
	ColorPrimary   = lipgloss.Color("#A6E22E") // Green
	ColorSecondary = lipgloss.Color("#66D9EF") // Cyan
	ColorAccent    = lipgloss.Color("#F92672") // Magenta/Pink
	ColorWarning   = lipgloss.Color("#FD971F") // Orange
	ColorError     = lipgloss.Color("#F92672") // Red/Pink
	ColorMuted     = lipgloss.Color("#75715E") // Gray
	ColorHighlight = lipgloss.Color("#E6DB74") // Yellow
	ColorWhite     = lipgloss.Color("#F8F8F2") // White
)

// Base Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	NewNameStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// Status badge styles
var statusStyles = map[types.Status]lipgloss.Style{
	types.StatusReady:           SuccessStyle,
	types.StatusConflict:        ErrorStyle,
	types.StatusNoChange:        MutedStyle,
	types.StatusExtensionLocked: WarningStyle,
}

// Icons
const (
	IconSuccess    = "✓"
	IconError      = "✗"
	IconWarning    = "⚠"
	IconInfo       = "ℹ"
	IconArrowRight = "→"
)

// RenderStatus renders a colored status badge for a preview row.
func RenderStatus(status types.Status) string {
	style, ok := statusStyles[status]
	if !ok {
		style = InfoStyle
	}
	return style.Render(string(status))
}

// RenderSuccess renders a success message
func RenderSuccess(msg string) string {
	return SuccessStyle.Render(fmt.Sprintf("%s %s", IconSuccess, msg))
}

// RenderError renders an error message
func RenderError(msg string) string {
	return ErrorStyle.Render(fmt.Sprintf("%s %s", IconError, msg))
}

// RenderWarning renders a warning message
func RenderWarning(msg string) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, msg))
}

// RenderInfo renders an informational message
func RenderInfo(msg string) string {
	return InfoStyle.Render(fmt.Sprintf("%s %s", IconInfo, msg))
}

// RenderFileRename renders an old → new name pair.
func RenderFileRename(oldName, newName string) string {
	return fmt.Sprintf("%s %s %s",
		FilePathStyle.Render(oldName),
		ArrowStyle.Render(IconArrowRight),
		NewNameStyle.Render(newName))
}

// RenderCount renders a highlighted count.
func RenderCount(count int) string {
	return CountStyle.Render(fmt.Sprintf("%d", count))
}
