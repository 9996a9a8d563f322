package preview

import (
	"path/filepath"

	"github.com/bulk-renamer/go/internal/types"
)

// ReadyOps converts the Ready rows of a preview into rename operations.
// Rows with any other status are left untouched on disk.
func ReadyOps(rows []types.PreviewRow) []types.RenameOp {
	var ops []types.RenameOp
	for _, row := range rows {
		if row.Status != types.StatusReady {
			continue
		}
		ops = append(ops, types.RenameOp{
			OldPath: row.SourcePath,
			NewPath: filepath.Join(filepath.Dir(row.SourcePath), row.NewName),
			Action:  types.ActionRename,
		})
	}
	return ops
}
