package types

import (
	"time"
)

// Status classifies a single preview row. The status of a row depends on the
// whole batch, not just the file itself, because conflict detection compares
// every planned name against all other planned names.
type Status string

const (
	StatusReady           Status = "Ready"
	StatusConflict        Status = "Conflict"
	StatusNoChange        Status = "No Change"
	StatusExtensionLocked Status = "Extension Locked"
)

// CaseType selects the case conversion applied by the name cleaner.
type CaseType string

const (
	CaseLower CaseType = "lowercase"
	CaseUpper CaseType = "UPPERCASE"
	CaseTitle CaseType = "Title Case"
)

// SizeOp is a size filter comparison operator.
type SizeOp string

const (
	SizeGreater SizeOp = ">"
	SizeLess    SizeOp = "<"
	SizeEqual   SizeOp = "="
)

// SizeFilter restricts candidate files by size in bytes. Comparisons for
// ">" and "<" are strict; boundary values only pass for "=".
type SizeFilter struct {
	Op    SizeOp `json:"op"`
	Bytes int64  `json:"bytes"`
}

// DateOp is a date filter comparison operator.
type DateOp string

const (
	DateBefore DateOp = "before"
	DateAfter  DateOp = "after"
)

// DateFilter restricts candidate files by modification time with strict
// inequality in both directions.
type DateFilter struct {
	Op   DateOp    `json:"op"`
	When time.Time `json:"when"`
}

// NamingConfig is the immutable per-preview-call configuration.
type NamingConfig struct {
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
	BaseName string `json:"base_name"`

	// StartNum, when set, appends a sequential "_N" counter to every file.
	// Values below 1 are clamped to 1.
	StartNum *int `json:"start_num,omitempty"`

	// ExtensionLock preserves the original extension regardless of other
	// transforms.
	ExtensionLock bool `json:"extension_lock"`

	// Extensions, when non-empty, restricts which files are considered at
	// all (case-insensitive, without leading dot).
	Extensions []string `json:"extensions,omitempty"`

	SizeFilter *SizeFilter `json:"size_filter,omitempty"`
	DateFilter *DateFilter `json:"date_filter,omitempty"`

	RemoveSpecialChars bool     `json:"remove_special_chars"`
	ReplaceSpaces      bool     `json:"replace_spaces"`
	ConvertCase        bool     `json:"convert_case"`
	CaseType           CaseType `json:"case_type"`
	RemoveAccents      bool     `json:"remove_accents"`

	// AutoResolve enables counter-suffix suggestions for conflicting rows.
	// Off by default.
	AutoResolve bool `json:"auto_resolve"`
}

// HasCleanup reports whether any cleanup transform is enabled.
func (c NamingConfig) HasCleanup() bool {
	return c.RemoveSpecialChars || c.ReplaceSpaces || c.ConvertCase || c.RemoveAccents
}

// PreviewRow is one line of the computed preview.
type PreviewRow struct {
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
	Status     Status `json:"status"`
	SourcePath string `json:"source_path"`

	// SuggestedName carries the auto-resolve counter suggestion when the
	// feature is enabled and the row conflicted.
	SuggestedName string `json:"suggested_name,omitempty"`
}

// RenameAction distinguishes forward renames from undo replays.
type RenameAction string

const (
	ActionRename RenameAction = "rename"
	ActionUndo   RenameAction = "undo"
)

// RenameOp is a single planned filesystem rename. Constructed transiently
// from Ready preview rows (or a history batch's inverse), consumed once by
// the rename worker.
type RenameOp struct {
	OldPath string       `json:"old_path"`
	NewPath string       `json:"new_path"`
	Action  RenameAction `json:"action"`
}

// RenamedFile records one executed rename inside a history batch.
type RenamedFile struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// HistoryBatch is one executed rename batch. Batches are append-only: they
// are never deleted, only flagged undone.
type HistoryBatch struct {
	ID         string        `json:"id"`
	Files      []RenamedFile `json:"files"`
	Undone     bool          `json:"undone"`
	ExecutedAt time.Time     `json:"executed_at"`
}
