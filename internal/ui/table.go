package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bulk-renamer/go/internal/types"
)

// PreviewTable renders preview rows as a fixed-width table with status
// badges.
type PreviewTable struct {
	Rows []types.PreviewRow
}

// View renders the table.
func (t *PreviewTable) View() string {
	if len(t.Rows) == 0 {
		return MutedStyle.Render("(no files)")
	}

	headers := []string{"Old Name", "New Name", "Status"}
	widths := []int{len(headers[0]), len(headers[1]), len(headers[2])}
	for _, row := range t.Rows {
		widths[0] = max(widths[0], min(len(row.OldName), 40))
		widths[1] = max(widths[1], min(len(row.NewName), 40))
		widths[2] = max(widths[2], len(string(row.Status)))
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	var headerCells []string
	for i, h := range headers {
		headerCells = append(headerCells, lipgloss.NewStyle().Width(widths[i]).Render(h))
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(strings.Join(headerCells, "  ")))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		cells := []string{
			lipgloss.NewStyle().Width(widths[0]).Render(truncate(row.OldName, widths[0])),
			lipgloss.NewStyle().Width(widths[1]).Render(truncate(row.NewName, widths[1])),
		}
		line := strings.Join(cells, "  ") + "  " + RenderStatus(row.Status)
		if row.SuggestedName != "" {
			line += MutedStyle.Render(fmt.Sprintf(" (suggest %s)", row.SuggestedName))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// StatusCounts tallies rows per status for the table footer.
func StatusCounts(rows []types.PreviewRow) map[types.Status]int {
	counts := make(map[types.Status]int)
	for _, row := range rows {
		counts[row.Status]++
	}
	return counts
}

// BatchSummary displays the outcome of a rename or undo execution.
type BatchSummary struct {
	Action    types.RenameAction
	Successes int
	Errors    int
	Conflicts int
}

// View returns the formatted summary box.
func (s *BatchSummary) View() string {
	var sb strings.Builder

	title := "Rename Summary"
	if s.Action == types.ActionUndo {
		title = "Undo Summary"
	}
	sb.WriteString(TitleStyle.Render(title) + "\n")

	sb.WriteString(fmt.Sprintf("  %s Renamed:   %s\n", IconSuccess, RenderCount(s.Successes)))
	if s.Errors > 0 {
		sb.WriteString(fmt.Sprintf("  %s Errors:    %s\n", IconError, ErrorStyle.Render(fmt.Sprintf("%d", s.Errors))))
	}
	if s.Conflicts > 0 {
		sb.WriteString(fmt.Sprintf("  %s Conflicts: %s\n", IconWarning, WarningStyle.Render(fmt.Sprintf("%d", s.Conflicts))))
	}

	return BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
