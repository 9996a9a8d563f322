package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/bulk-renamer/go/internal/rename"
	"github.com/bulk-renamer/go/internal/types"
)

// Ledger is the append-only log of executed rename batches. Entries are
// never deleted, only flagged undone.
type Ledger struct {
	fsys    afero.Fs
	path    string
	batches []types.HistoryBatch
}

// NewLedger creates a ledger persisted at the given JSON file path.
func NewLedger(fsys afero.Fs, path string) *Ledger {
	return &Ledger{fsys: fsys, path: path}
}

// Load reads the ledger file. A missing file leaves the ledger empty and is
// not an error.
func (l *Ledger) Load() error {
	data, err := afero.ReadFile(l.fsys, l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.batches = nil
			return nil
		}
		return fmt.Errorf("failed to read history: %w", err)
	}

	var batches []types.HistoryBatch
	if err := json.Unmarshal(data, &batches); err != nil {
		return fmt.Errorf("failed to parse history: %w", err)
	}
	l.batches = batches
	return nil
}

// Save writes the full ledger to disk.
func (l *Ledger) Save() error {
	if err := l.fsys.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	batches := l.batches
	if batches == nil {
		batches = []types.HistoryBatch{}
	}
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := afero.WriteFile(l.fsys, l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Record appends a batch built from the successful operations of one
// execution run. Nothing is recorded when there were no successes.
func (l *Ledger) Record(successes []types.RenameOp) *types.HistoryBatch {
	if len(successes) == 0 {
		return nil
	}

	files := make([]types.RenamedFile, 0, len(successes))
	for _, op := range successes {
		files = append(files, types.RenamedFile{OldPath: op.OldPath, NewPath: op.NewPath})
	}
	batch := types.HistoryBatch{
		ID:         uuid.NewString(),
		Files:      files,
		ExecutedAt: time.Now(),
	}
	l.batches = append(l.batches, batch)
	log.Info().Str("batch", batch.ID).Int("files", len(files)).Msg("Recorded rename batch")
	return &batch
}

// Batches returns the batches in chronological order.
func (l *Ledger) Batches() []types.HistoryBatch {
	return l.batches
}

// LastUndoable returns the index of the most recent batch not yet undone.
func (l *Ledger) LastUndoable() (int, bool) {
	for i := len(l.batches) - 1; i >= 0; i-- {
		if !l.batches[i].Undone {
			return i, true
		}
	}
	return 0, false
}

// UndoSelectedOps builds one combined inverse operation list for the
// selected batches, most recent batch first and each batch's files in
// reverse order, so multi-step renames of the same file unwind safely.
// Already-undone and out-of-range indices are skipped.
func (l *Ledger) UndoSelectedOps(indices []int) []types.RenameOp {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var ops []types.RenameOp
	seen := make(map[int]struct{}, len(sorted))
	for _, idx := range sorted {
		if idx < 0 || idx >= len(l.batches) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		if l.batches[idx].Undone {
			continue
		}
		ops = append(ops, rename.UndoOps(l.batches[idx])...)
	}
	return ops
}

// MarkUndone flags the given batches undone. The flag is per batch, applied
// after the whole undo run regardless of partial failures.
func (l *Ledger) MarkUndone(indices ...int) {
	for _, idx := range indices {
		if idx >= 0 && idx < len(l.batches) {
			l.batches[idx].Undone = true
		}
	}
}

// HasUndoable reports whether any batch can still be undone.
func (l *Ledger) HasUndoable() bool {
	_, ok := l.LastUndoable()
	return ok
}
