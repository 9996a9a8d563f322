package tui

import (
	"fmt"
	"strings"

	"github.com/bulk-renamer/go/internal/types"
	"github.com/bulk-renamer/go/internal/ui"
)

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(ui.TitleStyle.Render("Bulk File Renamer") + "\n\n")

	sb.WriteString(m.configLine() + "\n")
	sb.WriteString(m.cleanupLine() + "\n\n")

	if m.adding {
		sb.WriteString(fmt.Sprintf(" %s Scanning files... (esc to abort)\n\n", m.spinner.View()))
	}

	table := ui.PreviewTable{Rows: m.rows}
	sb.WriteString(table.View())
	sb.WriteString("\n")
	sb.WriteString(m.countsLine() + "\n")

	if m.job != nil {
		sb.WriteString("\n" + m.progress.ViewAs(float64(m.percent)/100) + "\n")
	}

	if m.summary != nil {
		sb.WriteString("\n" + m.summary.View() + "\n")
	}

	if len(m.notices) > 0 {
		sb.WriteString("\n")
		start := len(m.notices) - 5
		if start < 0 {
			start = 0
		}
		for _, notice := range m.notices[start:] {
			sb.WriteString(ui.MutedStyle.Render(notice) + "\n")
		}
	}

	if m.field != fieldNone {
		sb.WriteString("\n" + fieldPrompts[m.field] + ": " + m.input.View() + "\n")
		sb.WriteString(ui.MutedStyle.Render("enter to apply, esc to cancel") + "\n")
	} else {
		sb.WriteString("\n" + ui.MutedStyle.Render(
			"a add  f/F prefix/suffix  b base  n number  e ext filter  1-4 cleanup  c case  x ext lock  r rename  u undo  S/L profile  q quit") + "\n")
	}

	return sb.String()
}

func (m Model) configLine() string {
	parts := []string{
		fmt.Sprintf("prefix=%q", m.cfg.Prefix),
		fmt.Sprintf("suffix=%q", m.cfg.Suffix),
		fmt.Sprintf("base=%q", m.cfg.BaseName),
	}
	if m.cfg.StartNum != nil {
		parts = append(parts, fmt.Sprintf("start=%d", *m.cfg.StartNum))
	}
	if len(m.cfg.Extensions) > 0 {
		parts = append(parts, "ext="+strings.Join(m.cfg.Extensions, ","))
	}
	if m.cfg.ExtensionLock {
		parts = append(parts, "ext-lock")
	}
	return ui.InfoStyle.Render(strings.Join(parts, "  "))
}

func (m Model) cleanupLine() string {
	flag := func(name string, on bool) string {
		if on {
			return ui.SuccessStyle.Render("[" + name + "]")
		}
		return ui.MutedStyle.Render("[" + name + "]")
	}
	return strings.Join([]string{
		flag("special-chars", m.cfg.RemoveSpecialChars),
		flag("spaces", m.cfg.ReplaceSpaces),
		flag(string(m.cfg.CaseType), m.cfg.ConvertCase),
		flag("accents", m.cfg.RemoveAccents),
	}, " ")
}

func (m Model) countsLine() string {
	counts := ui.StatusCounts(m.rows)
	return fmt.Sprintf("%s files  %s ready  %s conflicts",
		ui.RenderCount(len(m.selected)),
		ui.RenderCount(counts[types.StatusReady]),
		ui.RenderCount(counts[types.StatusConflict]))
}
