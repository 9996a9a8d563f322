package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/bulk-renamer/go/internal/history"
	"github.com/bulk-renamer/go/internal/preview"
	"github.com/bulk-renamer/go/internal/profile"
	"github.com/bulk-renamer/go/internal/rename"
	"github.com/bulk-renamer/go/internal/scanner"
	"github.com/bulk-renamer/go/internal/settings"
	"github.com/bulk-renamer/go/internal/types"
	"github.com/bulk-renamer/go/internal/ui"
)

// inputField identifies which configuration value the text input edits.
type inputField int

const (
	fieldNone inputField = iota
	fieldAddPath
	fieldPrefix
	fieldSuffix
	fieldBaseName
	fieldStartNum
	fieldExtensions
	fieldSaveProfile
	fieldLoadProfile
)

var fieldPrompts = map[inputField]string{
	fieldAddPath:     "Add file or folder path",
	fieldPrefix:      "Prefix",
	fieldSuffix:      "Suffix",
	fieldBaseName:    "Base name",
	fieldStartNum:    "Start number (empty to disable)",
	fieldExtensions:  "Extension filter (comma-separated, empty for all)",
	fieldSaveProfile: "Save profile as",
	fieldLoadProfile: "Load profile",
}

// maxNotices bounds the notice backlog; View only shows the tail.
const maxNotices = 20

type errMsg error

type addResultMsg scanner.Result

type renameProgressMsg int

type renameDoneMsg struct {
	action types.RenameAction
	result rename.Result
}

// Model drives the interactive renamer. Preview computation runs
// synchronously inside Update; file adding and rename/undo execution run on
// worker goroutines and report back through messages. Only one rename or
// undo job is active at a time.
type Model struct {
	fsys     afero.Fs
	store    *settings.Store
	profiles *profile.Manager
	ledger   *history.Ledger
	queue    *scanner.Queue

	cfg      types.NamingConfig
	selected []string
	rows     []types.PreviewRow
	filtered []string

	spinner  spinner.Model
	progress progress.Model
	input    textinput.Model
	field    inputField

	adding      bool
	addCancel   context.CancelFunc
	job         *rename.Job
	jobAction   types.RenameAction
	pendingUndo []int
	percent     int

	summary *ui.BatchSummary
	notices []string
	err     error
}

// NewModel assembles the application model from its collaborators.
func NewModel(fsys afero.Fs, store *settings.Store, profiles *profile.Manager, ledger *history.Ledger) (Model, error) {
	queue, err := scanner.NewQueue(fsys, nil)
	if err != nil {
		return Model{}, err
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.ColorAccent)

	p := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	ti := textinput.New()
	ti.CharLimit = 256

	cfg := types.NamingConfig{
		Prefix:        store.GetString("default_prefix"),
		Suffix:        store.GetString("default_suffix"),
		BaseName:      store.GetString("default_base_name"),
		ExtensionLock: true,
		CaseType:      types.CaseLower,
		AutoResolve:   store.GetBool("auto_resolve_conflicts"),
	}

	return Model{
		fsys:     fsys,
		store:    store,
		profiles: profiles,
		ledger:   ledger,
		queue:    queue,
		cfg:      cfg,
		spinner:  s,
		progress: p,
		input:    ti,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case errMsg:
		m.err = msg

	case addResultMsg:
		m.adding = false
		m.addCancel = nil
		m.selected = append(m.selected, msg.Added...)
		if msg.Duplicates > 0 {
			m.notify(fmt.Sprintf("Skipped %d duplicate(s)", msg.Duplicates))
		}
		if msg.Aborted {
			m.notify("File scan aborted")
		}
		m.refreshPreview()

	case renameProgressMsg:
		m.percent = int(msg)
		cmds = append(cmds, listenJob(m.job, m.jobAction))

	case renameDoneMsg:
		cmds = append(cmds, m.finishJob(msg)...)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.field != fieldNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "a":
		return m.openInput(fieldAddPath, "")
	case "f":
		return m.openInput(fieldPrefix, m.cfg.Prefix)
	case "F":
		return m.openInput(fieldSuffix, m.cfg.Suffix)
	case "b":
		return m.openInput(fieldBaseName, m.cfg.BaseName)
	case "n":
		current := ""
		if m.cfg.StartNum != nil {
			current = strconv.Itoa(*m.cfg.StartNum)
		}
		return m.openInput(fieldStartNum, current)
	case "e":
		return m.openInput(fieldExtensions, strings.Join(m.cfg.Extensions, ","))
	case "S":
		return m.openInput(fieldSaveProfile, "")
	case "L":
		return m.openInput(fieldLoadProfile, "")

	case "1":
		m.cfg.RemoveSpecialChars = !m.cfg.RemoveSpecialChars
		m.refreshPreview()
	case "2":
		m.cfg.ReplaceSpaces = !m.cfg.ReplaceSpaces
		m.refreshPreview()
	case "3":
		m.cfg.ConvertCase = !m.cfg.ConvertCase
		m.refreshPreview()
	case "4":
		m.cfg.RemoveAccents = !m.cfg.RemoveAccents
		m.refreshPreview()
	case "c":
		m.cfg.CaseType = nextCaseType(m.cfg.CaseType)
		m.refreshPreview()
	case "x":
		m.cfg.ExtensionLock = !m.cfg.ExtensionLock
		m.refreshPreview()

	case "esc":
		if m.adding && m.addCancel != nil {
			m.addCancel()
		}

	case "r":
		return m.startRename()
	case "u":
		return m.startUndo()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.field = fieldNone
		m.input.Blur()
		return m, nil
	case "enter":
		return m.applyInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openInput(field inputField, current string) (tea.Model, tea.Cmd) {
	m.field = field
	m.input.Placeholder = fieldPrompts[field]
	m.input.SetValue(current)
	return m, m.input.Focus()
}

func (m Model) applyInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	field := m.field
	m.field = fieldNone
	m.input.Blur()
	m.input.SetValue("")

	switch field {
	case fieldAddPath:
		if value == "" {
			return m, nil
		}
		m.store.AddRecentFolder(value)
		return m.startAdd([]string{value})
	case fieldPrefix:
		m.cfg.Prefix = value
	case fieldSuffix:
		m.cfg.Suffix = value
	case fieldBaseName:
		m.cfg.BaseName = value
	case fieldStartNum:
		if value == "" {
			m.cfg.StartNum = nil
		} else if n, err := strconv.Atoi(value); err == nil {
			m.cfg.StartNum = &n
		} else {
			m.notify("Invalid start number, numbering unchanged")
		}
	case fieldExtensions:
		m.cfg.Extensions = splitExtensions(value)
	case fieldSaveProfile:
		if value != "" {
			if err := m.profiles.Save(value, profile.Profile{Naming: m.cfg}); err != nil {
				m.notify(err.Error())
			} else {
				m.store.AddRecentProfile(value)
				m.notify(fmt.Sprintf("Saved profile %q", value))
			}
		}
	case fieldLoadProfile:
		if value != "" {
			p, err := m.profiles.Load(value)
			if err != nil {
				m.notify(err.Error())
			} else {
				m.cfg = p.Naming
				m.store.AddRecentProfile(value)
			}
		}
	}

	m.refreshPreview()
	return m, nil
}

func (m Model) startAdd(paths []string) (tea.Model, tea.Cmd) {
	// One interactive scan at a time: a second one would clobber addCancel.
	if m.adding {
		m.notify("A file scan is already running")
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.adding = true
	m.addCancel = cancel
	if err := m.queue.Enqueue(ctx, paths, nil); err != nil {
		m.adding = false
		m.addCancel = nil
		cancel()
		m.notify(err.Error())
		return m, nil
	}
	return m, waitForAdd(m.queue)
}

func (m Model) startRename() (tea.Model, tea.Cmd) {
	if m.job != nil {
		return m, nil
	}
	ops := preview.ReadyOps(m.rows)
	if len(ops) == 0 {
		m.notify("Nothing to rename")
		return m, nil
	}
	m.summary = nil
	m.percent = 0
	m.jobAction = types.ActionRename
	m.job = rename.Start(m.fsys, ops)
	return m, listenJob(m.job, m.jobAction)
}

func (m Model) startUndo() (tea.Model, tea.Cmd) {
	if m.job != nil {
		return m, nil
	}
	idx, ok := m.ledger.LastUndoable()
	if !ok {
		m.notify("Nothing left to undo")
		return m, nil
	}
	ops := rename.UndoOps(m.ledger.Batches()[idx])
	m.summary = nil
	m.percent = 0
	m.jobAction = types.ActionUndo
	m.pendingUndo = []int{idx}
	m.job = rename.Start(m.fsys, ops)
	return m, listenJob(m.job, m.jobAction)
}

func (m *Model) finishJob(msg renameDoneMsg) []tea.Cmd {
	m.job = nil
	m.percent = 100

	result := msg.result
	m.summary = &ui.BatchSummary{
		Action:    msg.action,
		Successes: len(result.Successes),
		Errors:    len(result.Errors),
		Conflicts: len(result.Conflicts),
	}
	m.notify(result.Errors...)
	m.notify(result.Conflicts...)

	switch msg.action {
	case types.ActionRename:
		m.ledger.Record(result.Successes)
	case types.ActionUndo:
		// The batch flag flips even when some files failed to restore;
		// individual failures surface as notices above.
		m.ledger.MarkUndone(m.pendingUndo...)
		m.pendingUndo = nil
	}
	if err := m.ledger.Save(); err != nil {
		m.notify(err.Error())
	}

	m.applyRenames(result.Successes)
	m.refreshPreview()
	return nil
}

// applyRenames updates the selection and the duplicate-check set to point at
// the files' new locations.
func (m *Model) applyRenames(successes []types.RenameOp) {
	moved := make(map[string]string, len(successes))
	olds := make([]string, 0, len(successes))
	for _, op := range successes {
		moved[op.OldPath] = op.NewPath
		olds = append(olds, op.OldPath)
	}
	for i, path := range m.selected {
		if newPath, ok := moved[path]; ok {
			m.selected[i] = newPath
		}
	}
	m.queue.Forget(olds)
	m.queue.Track(m.selected)
}

func (m *Model) refreshPreview() {
	m.rows, m.filtered = preview.Generate(m.fsys, m.selected, m.cfg)
}

// notify appends to the notice backlog, keeping only the newest maxNotices
// entries.
func (m *Model) notify(msgs ...string) {
	m.notices = append(m.notices, msgs...)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

func (m *Model) shutdown() {
	if m.addCancel != nil {
		m.addCancel()
	}
	m.queue.Close()
	if err := m.store.Save(); err != nil {
		m.err = err
	}
	if err := m.ledger.Save(); err != nil {
		m.err = err
	}
}

func waitForAdd(queue *scanner.Queue) tea.Cmd {
	return func() tea.Msg {
		return addResultMsg(<-queue.Results())
	}
}

func listenJob(job *rename.Job, action types.RenameAction) tea.Cmd {
	return func() tea.Msg {
		if percent, ok := <-job.Progress; ok {
			return renameProgressMsg(percent)
		}
		return renameDoneMsg{action: action, result: <-job.Done}
	}
}

func nextCaseType(c types.CaseType) types.CaseType {
	switch c {
	case types.CaseLower:
		return types.CaseTitle
	case types.CaseTitle:
		return types.CaseUpper
	default:
		return types.CaseLower
	}
}

func splitExtensions(value string) []string {
	if value == "" {
		return nil
	}
	var exts []string
	for _, ext := range strings.Split(value, ",") {
		ext = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
