package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/bulk-renamer/go/internal/cleaner"
	"github.com/bulk-renamer/go/internal/types"
)

// Generate computes the preview for a batch of candidate files. It returns
// one row per file that survives filtering, plus the filtered file list
// itself. The computation is pure apart from filesystem metadata reads, so
// identical inputs always produce identical rows.
func Generate(fsys afero.Fs, paths []string, cfg types.NamingConfig) ([]types.PreviewRow, []string) {
	if len(paths) == 0 {
		return nil, nil
	}

	filtered := filterFiles(fsys, paths, cfg)
	p := buildPlan(filtered, cfg)

	rows := make([]types.PreviewRow, 0, len(filtered))
	for _, src := range filtered {
		tgt, ok := p.targets[src]
		if !ok {
			continue
		}
		rows = append(rows, classify(fsys, p, cfg, src, tgt))
	}
	return rows, filtered
}

// filterFiles drops paths that are missing from disk or fail the
// extension/size/date filters.
func filterFiles(fsys afero.Fs, paths []string, cfg types.NamingConfig) []string {
	var filtered []string
	for _, path := range paths {
		info, err := fsys.Stat(path)
		if err != nil {
			log.Debug().Str("path", path).Msg("Skipping missing file")
			continue
		}
		if info.IsDir() {
			continue
		}
		if len(cfg.Extensions) > 0 && !matchesExtension(filepath.Base(path), cfg.Extensions) {
			continue
		}
		if cfg.SizeFilter != nil && !passesSizeFilter(info.Size(), *cfg.SizeFilter) {
			continue
		}
		if cfg.DateFilter != nil && !passesDateFilter(info.ModTime(), *cfg.DateFilter) {
			continue
		}
		filtered = append(filtered, path)
	}
	return filtered
}

func matchesExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// Boundary values only pass for "=": ">" and "<" are strict.
func passesSizeFilter(size int64, f types.SizeFilter) bool {
	switch f.Op {
	case types.SizeGreater:
		return size > f.Bytes
	case types.SizeLess:
		return size < f.Bytes
	case types.SizeEqual:
		return size == f.Bytes
	}
	return true
}

func passesDateFilter(mtime time.Time, f types.DateFilter) bool {
	switch f.Op {
	case types.DateBefore:
		return mtime.Before(f.When)
	case types.DateAfter:
		return mtime.After(f.When)
	}
	return true
}

// target is one file's planned outcome.
type target struct {
	newName  string
	destPath string
}

// plan is the immutable result of the planning pass: every file's computed
// target plus the collision indices the classification pass needs.
type plan struct {
	targets map[string]target
	// byFold groups source paths by case-folded planned name.
	byFold map[string][]string
	// destByFold maps a folded source path to its folded planned
	// destination, for swap-chain detection.
	destByFold map[string]string
}

// buildPlan computes every file's planned name in one pass. The sequence
// counter starts at StartNum (clamped to 1) and advances per file.
func buildPlan(filtered []string, cfg types.NamingConfig) plan {
	p := plan{
		targets:    make(map[string]target, len(filtered)),
		byFold:     make(map[string][]string, len(filtered)),
		destByFold: make(map[string]string, len(filtered)),
	}

	count := 1
	if cfg.StartNum != nil && *cfg.StartNum > 1 {
		count = *cfg.StartNum
	}

	opts := cleaner.FromConfig(cfg)
	for _, src := range filtered {
		oldName := filepath.Base(src)
		ext := filepath.Ext(oldName)

		body := cfg.BaseName
		if body == "" {
			body = strings.TrimSuffix(oldName, ext)
		}

		numberPart := ""
		if cfg.StartNum != nil {
			numberPart = "_" + strconv.Itoa(count)
			count++
		}

		// The naming formula always carries the original extension;
		// extension changes can only come from cleanup transforms.
		newName := cfg.Prefix + body + numberPart + cfg.Suffix + ext
		if cfg.HasCleanup() {
			newName = cleaner.Clean(newName, opts)
		}
		if strings.TrimSpace(newName) == "" {
			newName = oldName
		}

		destPath := filepath.Join(filepath.Dir(src), newName)
		p.targets[src] = target{newName: newName, destPath: destPath}
		fold := foldName(newName)
		p.byFold[fold] = append(p.byFold[fold], src)
		p.destByFold[foldPath(src)] = foldPath(destPath)
	}
	return p
}

func classify(fsys afero.Fs, p plan, cfg types.NamingConfig, src string, tgt target) types.PreviewRow {
	oldName := filepath.Base(src)
	newName := tgt.newName
	row := types.PreviewRow{OldName: oldName, NewName: newName, SourcePath: src}

	switch {
	case foldName(oldName) == foldName(newName) && oldName != newName:
		// Case-only identity change: the destination is this same file.
		row.Status = types.StatusReady
	case oldName == newName:
		row.Status = types.StatusNoChange
	case cfg.ExtensionLock && extensionChanged(oldName, newName):
		row.Status = types.StatusExtensionLocked
	case collides(p, src, newName):
		row.Status = types.StatusConflict
	case destOccupied(fsys, p, src, tgt.destPath):
		row.Status = types.StatusConflict
	default:
		row.Status = types.StatusReady
	}

	if cfg.AutoResolve && (row.Status == types.StatusConflict || row.Status == types.StatusNoChange) {
		row.SuggestedName = suggestName(fsys, p, filepath.Dir(src), newName)
	}
	return row
}

// collides reports whether another distinct source file plans the same
// case-folded name. The same file appearing twice in the batch is not a
// collision.
func collides(p plan, src, newName string) bool {
	entries := p.byFold[foldName(newName)]
	if len(entries) < 2 {
		return false
	}
	unique := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		unique[foldPath(entry)] = struct{}{}
	}
	if len(unique) == 1 {
		_, self := unique[foldPath(src)]
		return !self
	}
	return true
}

// destOccupied reports whether the planned destination is blocked by an
// existing file. A destination occupied by the source itself, or by another
// batch member that is being renamed away (a swap chain), is not blocking.
func destOccupied(fsys afero.Fs, p plan, src, destPath string) bool {
	exists, err := afero.Exists(fsys, destPath)
	if err != nil || !exists {
		return false
	}
	if foldPath(destPath) == foldPath(src) {
		return false
	}
	if sameFile(fsys, destPath, src) {
		return false
	}
	if occupantDest, ok := p.destByFold[foldPath(destPath)]; ok && occupantDest != foldPath(destPath) {
		// The occupant is itself being renamed elsewhere in this batch.
		return false
	}
	return true
}

// suggestName searches counter suffixes " (1)", " (2)", ... for the first
// candidate absent from both the planned-name set and the filesystem.
func suggestName(fsys afero.Fs, p plan, dir, newName string) string {
	ext := filepath.Ext(newName)
	base := strings.TrimSuffix(newName, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, counter, ext)
		if _, taken := p.byFold[foldName(candidate)]; taken {
			continue
		}
		if exists, _ := afero.Exists(fsys, filepath.Join(dir, candidate)); exists {
			continue
		}
		return candidate
	}
}

func extensionChanged(oldName, newName string) bool {
	oldExt := strings.ToLower(filepath.Ext(oldName))
	newExt := strings.ToLower(filepath.Ext(newName))
	return oldExt != newExt && oldExt != "" && newExt != ""
}

// Collision detection folds case on every platform so previews behave the
// same everywhere; case-only self renames are likewise treated as safe
// everywhere.
func foldName(name string) string {
	return strings.ToLower(name)
}

func foldPath(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// sameFile checks inode identity where the filesystem provides it, falling
// back to folded path equality for in-memory filesystems.
func sameFile(fsys afero.Fs, a, b string) bool {
	ai, errA := fsys.Stat(a)
	bi, errB := fsys.Stat(b)
	if errA != nil || errB != nil {
		return foldPath(a) == foldPath(b)
	}
	if ai.Sys() != nil && bi.Sys() != nil {
		return os.SameFile(ai, bi)
	}
	return foldPath(a) == foldPath(b)
}
