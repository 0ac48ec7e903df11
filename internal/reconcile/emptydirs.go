package reconcile

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

// EmptyDirsReport is the outcome of an empty-directory reclamation run. Paths
// are relative to the scanned root.
type EmptyDirsReport struct {
	Dir       string `json:"directory"`
	DryRun    bool   `json:"dry_run"`
	BatchSize int    `json:"batch_size"`

	Found             []string    `json:"empty_folders"`
	Removed           []string    `json:"removed_folders"`
	FoundCount        int         `json:"empty_folders_found"`
	RemovedCount      int         `json:"empty_folders_removed"`
	BatchLimitReached bool        `json:"batch_limit_reached"`
	ErrorDetails      []ItemError `json:"error_details"`
}

// FindEmptyDirs enumerates directories under root that hold zero files and
// only (transitively) empty subdirectories, deepest first. Removing a leaf can
// make its parent eligible within the same pass, so emptiness is re-evaluated
// bottom-up against the set of directories already known to be empty rather
// than against a single top-down snapshot. Symlinks and special files count as
// content. The root itself is never included. A max > 0 caps the scan.
func FindEmptyDirs(root string, max int) ([]string, error) {
	// Collect every directory first, then judge them deepest-first.
	var dirs []string
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, err
			}
			// Unreadable subtrees are simply not candidates.
			continue
		}
		for _, e := range entries {
			if e.IsDir() && e.Type()&fs.ModeSymlink == 0 {
				sub := filepath.Join(dir, e.Name())
				dirs = append(dirs, sub)
				stack = append(stack, sub)
			}
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		di := strings.Count(dirs[i], string(filepath.Separator))
		dj := strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})

	knownEmpty := make(map[string]struct{})
	var empty []string
	for _, dir := range dirs {
		if max > 0 && len(empty) >= max {
			break
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		isEmpty := true
		for _, e := range entries {
			if e.Type()&fs.ModeSymlink != 0 || !e.IsDir() {
				isEmpty = false
				break
			}
			if _, ok := knownEmpty[filepath.Join(dir, e.Name())]; !ok {
				isEmpty = false
				break
			}
		}
		if isEmpty {
			knownEmpty[dir] = struct{}{}
			empty = append(empty, dir)
		}
	}
	return empty, nil
}

// RemoveEmptyDirs removes up to BatchSize leaf-empty directories under root,
// deepest first. Directories that became non-empty (or vanished with a parent
// already removed) since the scan are silently skipped; the operation is
// re-entrant, with parents that became empty picked up by the next call or
// later in the same deepest-first pass.
func RemoveEmptyDirs(root string, opts BatchOptions) (*EmptyDirsReport, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	found, err := FindEmptyDirs(root, opts.BatchSize)
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}

	report := &EmptyDirsReport{
		Dir:          root,
		DryRun:       opts.DryRun,
		BatchSize:    opts.BatchSize,
		Found:        make([]string, 0, len(found)),
		Removed:      []string{},
		ErrorDetails: []ItemError{},
	}
	for _, p := range found {
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			rel = p
		}
		report.Found = append(report.Found, rel)
	}
	report.FoundCount = len(found)
	report.BatchLimitReached = opts.BatchSize > 0 && len(found) >= opts.BatchSize

	if opts.DryRun {
		return report, nil
	}

	for i, path := range found {
		rel := report.Found[i]
		err := os.Remove(path)
		switch {
		case err == nil:
			slog.Info("removed empty folder", "path", rel)
			report.Removed = append(report.Removed, rel)
		case errors.Is(err, fs.ErrNotExist):
			// Already gone, removed along with a parent.
		case errors.Is(err, syscall.ENOTEMPTY):
			// Gained content since the scan; leave it alone.
			slog.Debug("skip folder, no longer empty", "path", rel)
		default:
			slog.Error("remove empty folder failed", "path", rel, "error", err)
			report.ErrorDetails = append(report.ErrorDetails, itemErr(rel, err))
		}
	}
	report.RemovedCount = len(report.Removed)
	return report, nil
}
