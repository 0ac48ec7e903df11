package reconcile

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultUnwantedPatterns match the release-group droppings and OS noise that
// tend to ride along in downloaded movie folders. Patterns are doublestar
// globs tested against both the file's base name and its path relative to the
// scanned root.
func DefaultUnwantedPatterns() []string {
	return []string{
		"www.YTS.*.jpg",
		"WWW.YTS.*.jpg",
		"WWW.YIFY-TORRENTS.COM.jpg",
		"YIFYStatus.com.txt",
		"YTSProxies.com.txt",
		"YTSYifyUP*\\(TOR\\).txt",
		".DS_Store",
		"Thumbs.db",
		"desktop.ini",
		"*.tmp",
		"*.temp",
		"*.log",
		"*.cache",
		"*.bak",
		"*.backup",
	}
}

// UnwantedFile is one match from an unwanted-file scan.
type UnwantedFile struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern"`
	Size    int64  `json:"size"`
}

// UnwantedReport is the outcome of an unwanted-file scan or cleanup.
type UnwantedReport struct {
	Dir      string   `json:"directory"`
	DryRun   bool     `json:"dry_run"`
	Patterns []string `json:"patterns"`

	Found        []UnwantedFile `json:"files_found"`
	Removed      []string       `json:"removed_files"`
	FoundCount   int            `json:"files_found_count"`
	RemovedCount int            `json:"files_removed"`
	TotalBytes   int64          `json:"total_bytes"`
	ErrorDetails []ItemError    `json:"error_details"`
}

// FindUnwantedFiles walks root and returns every file whose base name or
// relative path matches one of the glob patterns. First matching pattern wins.
func FindUnwantedFiles(root string, patterns []string) ([]UnwantedFile, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	var found []UnwantedFile
	err := walkFiles(root, func(p string, d fs.DirEntry) error {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			nameOK, _ := doublestar.Match(pattern, d.Name())
			relOK, _ := doublestar.Match(pattern, rel)
			if !nameOK && !relOK {
				continue
			}
			size := int64(0)
			if info, err := d.Info(); err == nil {
				size = info.Size()
			}
			found = append(found, UnwantedFile{Path: rel, Pattern: pattern, Size: size})
			break
		}
		return nil
	})
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}
	return found, nil
}

// CleanUnwantedFiles deletes the files matched by FindUnwantedFiles (or just
// reports them, in dry-run). Per-file failures do not stop the sweep.
func CleanUnwantedFiles(root string, patterns []string, dryRun bool) (*UnwantedReport, error) {
	if len(patterns) == 0 {
		patterns = DefaultUnwantedPatterns()
	}

	found, err := FindUnwantedFiles(root, patterns)
	if err != nil {
		return nil, err
	}

	report := &UnwantedReport{
		Dir:          root,
		DryRun:       dryRun,
		Patterns:     patterns,
		Found:        found,
		Removed:      []string{},
		FoundCount:   len(found),
		ErrorDetails: []ItemError{},
	}
	for _, f := range found {
		report.TotalBytes += f.Size
	}

	if dryRun {
		return report, nil
	}

	for _, f := range found {
		if err := os.Remove(filepath.Join(root, filepath.FromSlash(f.Path))); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			slog.Error("unwanted file removal failed", "file", f.Path, "error", err)
			report.ErrorDetails = append(report.ErrorDetails, itemErr(f.Path, err))
			continue
		}
		slog.Info("removed unwanted file", "file", f.Path, "pattern", f.Pattern)
		report.Removed = append(report.Removed, f.Path)
	}
	report.RemovedCount = len(report.Removed)
	return report, nil
}
