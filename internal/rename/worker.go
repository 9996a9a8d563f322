package rename

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/bulk-renamer/go/internal/types"
)

// Result is the outcome of one execution batch. Successes keep the original
// operations; errors and conflicts are human-readable strings. A batch never
// fails as a whole: each operation's failure is isolated.
type Result struct {
	Successes []types.RenameOp
	Errors    []string
	Conflicts []string
}

// Run executes the operations in order against the filesystem, reporting
// progress as a completed percentage after each one. Conflicts are detected
// freshly at execution time since the filesystem may have changed since
// preview.
func Run(fsys afero.Fs, ops []types.RenameOp, onProgress func(percent int)) Result {
	result := Result{Successes: []types.RenameOp{}, Errors: []string{}, Conflicts: []string{}}
	total := len(ops)

	for idx, op := range ops {
		if executeOne(fsys, op, &result) {
			result.Successes = append(result.Successes, op)
		}
		if onProgress != nil {
			onProgress((idx + 1) * 100 / total)
		}
	}
	return result
}

func executeOne(fsys afero.Fs, op types.RenameOp, result *Result) bool {
	caseOnly := foldPath(op.OldPath) == foldPath(op.NewPath) && op.OldPath != op.NewPath

	if !caseOnly && op.NewPath != op.OldPath {
		if exists, _ := afero.Exists(fsys, op.NewPath); exists {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("Conflict: %s already exists", op.NewPath))
			return false
		}
	}

	if err := fsys.Rename(op.OldPath, op.NewPath); err != nil {
		log.Warn().Err(err).Str("old", op.OldPath).Str("new", op.NewPath).Msg("Rename failed")
		result.Errors = append(result.Errors, fmt.Sprintf("Failed: %s → %s (%v)", op.OldPath, op.NewPath, err))
		return false
	}
	return true
}

// Job is a handle to an execution batch running on its own goroutine.
// Progress carries completed percentages; Done delivers the final result and
// is closed afterwards. There is no cancellation: once started, all queued
// operations run to completion.
type Job struct {
	Progress <-chan int
	Done     <-chan Result
}

// Start launches the batch asynchronously and returns its handle.
func Start(fsys afero.Fs, ops []types.RenameOp) *Job {
	progress := make(chan int, len(ops)+1)
	done := make(chan Result, 1)

	go func() {
		defer close(progress)
		defer close(done)
		result := Run(fsys, ops, func(percent int) {
			progress <- percent
		})
		done <- result
	}()

	return &Job{Progress: progress, Done: done}
}

// UndoOps builds the inverse operations for a batch, iterating its files in
// reverse order so chained renames within the batch unwind correctly.
func UndoOps(batch types.HistoryBatch) []types.RenameOp {
	ops := make([]types.RenameOp, 0, len(batch.Files))
	for i := len(batch.Files) - 1; i >= 0; i-- {
		f := batch.Files[i]
		ops = append(ops, types.RenameOp{OldPath: f.NewPath, NewPath: f.OldPath, Action: types.ActionUndo})
	}
	return ops
}

func foldPath(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
