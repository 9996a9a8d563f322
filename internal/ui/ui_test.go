package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/bulk-renamer/go/internal/types"
)

func init() {
	// Force color output for testing
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestRenderSuccess(t *testing.T) {
	msg := "Batch complete"
	output := RenderSuccess(msg)

	assert.Contains(t, output, msg)
	assert.Contains(t, output, IconSuccess)

	// Rough check that styling was applied at all.
	assert.NotEqual(t, IconSuccess+" "+msg, output)
}

func TestRenderError(t *testing.T) {
	msg := "Something went wrong"
	output := RenderError(msg)

	assert.Contains(t, output, msg)
	assert.Contains(t, output, IconError)
}

func TestRenderWarning(t *testing.T) {
	msg := "Check the conflicts"
	output := RenderWarning(msg)

	assert.Contains(t, output, msg)
	assert.Contains(t, output, IconWarning)
}

func TestRenderStatus(t *testing.T) {
	for _, status := range []types.Status{
		types.StatusReady,
		types.StatusConflict,
		types.StatusNoChange,
		types.StatusExtensionLocked,
	} {
		output := RenderStatus(status)
		assert.Contains(t, output, string(status))
		assert.NotEqual(t, string(status), output, "status %s should be styled", status)
	}
}

func TestRenderFileRename(t *testing.T) {
	oldName := "old.txt"
	newName := "new.txt"
	output := RenderFileRename(oldName, newName)

	assert.Contains(t, output, oldName)
	assert.Contains(t, output, newName)
	assert.Contains(t, output, IconArrowRight)
}

func TestRenderCount(t *testing.T) {
	output := RenderCount(42)
	assert.Contains(t, output, "42")
}

func TestPreviewTableShowsRows(t *testing.T) {
	table := PreviewTable{Rows: []types.PreviewRow{
		{OldName: "a.txt", NewName: "new_a.txt", Status: types.StatusReady},
		{OldName: "b.txt", NewName: "same.txt", Status: types.StatusConflict, SuggestedName: "same (1).txt"},
	}}
	output := table.View()

	assert.Contains(t, output, "Old Name")
	assert.Contains(t, output, "new_a.txt")
	assert.Contains(t, output, string(types.StatusReady))
	assert.Contains(t, output, string(types.StatusConflict))
	assert.Contains(t, output, "same (1).txt")
}

func TestPreviewTableEmpty(t *testing.T) {
	table := PreviewTable{}
	assert.Contains(t, table.View(), "(no files)")
}

func TestStatusCounts(t *testing.T) {
	rows := []types.PreviewRow{
		{Status: types.StatusReady},
		{Status: types.StatusReady},
		{Status: types.StatusConflict},
	}
	counts := StatusCounts(rows)

	assert.Equal(t, 2, counts[types.StatusReady])
	assert.Equal(t, 1, counts[types.StatusConflict])
	assert.Zero(t, counts[types.StatusNoChange])
}

func TestBatchSummaryView(t *testing.T) {
	summary := BatchSummary{Action: types.ActionRename, Successes: 3, Errors: 1, Conflicts: 2}
	output := summary.View()

	assert.Contains(t, output, "Rename Summary")
	assert.Contains(t, output, "3")
	assert.Contains(t, output, "1")
	assert.Contains(t, output, "2")
}

func TestBatchSummaryUndoTitle(t *testing.T) {
	summary := BatchSummary{Action: types.ActionUndo, Successes: 1}
	assert.Contains(t, summary.View(), "Undo Summary")
}
