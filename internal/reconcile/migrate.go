package reconcile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// MigratePolicy selects what happens when a migration candidate's name already
// exists under the migrated root. The flags collapse into a small closed set
// of mutually exclusive conflict actions; merge takes precedence over
// delete-if-match when both are requested.
type MigratePolicy struct {
	DeleteSourceIfMatch            bool `json:"delete_source_if_match"`
	MergeMissingFiles              bool `json:"merge_missing_files"`
	DeleteSourceAfterMerge         bool `json:"delete_source_after_merge"`
	DeleteSourceWhenNothingToMerge bool `json:"delete_source_when_nothing_to_merge"`
}

type conflictAction int

const (
	conflictSkip conflictAction = iota
	conflictMerge
	conflictDeleteIfMatch
)

func (p MigratePolicy) onConflict() conflictAction {
	switch {
	case p.MergeMissingFiles:
		return conflictMerge
	case p.DeleteSourceIfMatch:
		return conflictDeleteIfMatch
	default:
		return conflictSkip
	}
}

// MigrateOptions parameterize a non-movie migration run.
type MigrateOptions struct {
	BatchOptions
	Policy MigratePolicy

	// MovieExtensions classifies a folder as a movie folder. Defaults to
	// MovieExtensions() when empty.
	MovieExtensions ExtSet
}

// MigrateReport is the outcome of a non-movie migration run.
type MigrateReport struct {
	TargetDir   string        `json:"target_directory"`
	MigratedDir string        `json:"migrated_directory"`
	DryRun      bool          `json:"dry_run"`
	BatchSize   int           `json:"batch_size"`
	Policy      MigratePolicy `json:"policy"`

	FoldersFound      int         `json:"folders_found"`
	Moved             []string    `json:"moved_folders"`
	Merged            []string    `json:"merged_folders"`
	Deleted           []string    `json:"deleted_folders"`
	Skipped           []string    `json:"skipped_folders"`
	FilesMerged       int         `json:"files_merged"`
	RemainingFolders  int         `json:"remaining_folders"`
	BatchLimitReached bool        `json:"batch_limit_reached"`
	ErrorDetails      []ItemError `json:"error_details"`
}

// MigrateNonMovieFolders scans the first-level children of targetRoot and
// relocates those that contain at least one file but no movie file anywhere
// within them into migratedRoot. Classification is recursive: a movie file
// five levels deep disqualifies its first-level ancestor, and a candidate is
// always migrated as one atomic unit regardless of how deep its non-movie
// content is nested. Empty folders are left for RemoveEmptyDirs.
//
// When the candidate's name already exists under migratedRoot the configured
// policy decides between merging missing files, deleting an exact-match
// source, or skipping. Batch budget is consumed only by moves, merges that
// copied at least one file, and deletions. The migrated root is created
// lazily, just before the first real payload lands in it.
func MigrateNonMovieFolders(targetRoot, migratedRoot string, opts MigrateOptions) (*MigrateReport, error) {
	if err := checkRoot(targetRoot); err != nil {
		return nil, err
	}
	if info, err := os.Stat(migratedRoot); err == nil && !info.IsDir() {
		return nil, &RootError{Root: migratedRoot, Err: ErrNotADirectory}
	}

	movieExts := opts.MovieExtensions
	if len(movieExts) == 0 {
		movieExts = MovieExtensions()
	}

	report := &MigrateReport{
		TargetDir:    targetRoot,
		MigratedDir:  migratedRoot,
		DryRun:       opts.DryRun,
		BatchSize:    opts.BatchSize,
		Policy:       opts.Policy,
		Moved:        []string{},
		Merged:       []string{},
		Deleted:      []string{},
		Skipped:      []string{},
		ErrorDetails: []ItemError{},
	}

	eligible, classifyErrs := findNonMovieFolders(targetRoot, migratedRoot, movieExts)
	report.ErrorDetails = append(report.ErrorDetails, classifyErrs...)
	report.FoldersFound = len(eligible)

	processed := 0
	for i, name := range eligible {
		if opts.exhausted(processed) {
			report.BatchLimitReached = true
			report.RemainingFolders = len(eligible) - i
			slog.Info("migrate batch limit reached",
				"batch_size", opts.BatchSize, "remaining", report.RemainingFolders)
			break
		}

		src := filepath.Join(targetRoot, name)
		dst := filepath.Join(migratedRoot, name)

		if destinationExists(dst) {
			mutated := migrateConflict(name, src, dst, opts, report)
			if mutated {
				processed++
			}
			continue
		}

		if opts.DryRun {
			report.Moved = append(report.Moved, name)
			processed++
			continue
		}

		// The source may have vanished since the scan (another replica).
		if !destinationExists(src) {
			slog.Info("migrate skip, source gone", "name", name)
			continue
		}

		if err := os.MkdirAll(migratedRoot, 0o755); err != nil {
			return nil, &RootError{Root: migratedRoot, Err: err}
		}
		if err := moveEntry(src, dst); err != nil {
			if err == errDestExists {
				report.Skipped = append(report.Skipped, name)
				continue
			}
			slog.Error("migrate move failed", "name", name, "error", err)
			report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
			continue
		}
		slog.Info("migrated folder", "name", name)
		report.Moved = append(report.Moved, name)
		processed++
	}

	return report, nil
}

// migrateConflict resolves a candidate whose name already exists at the
// migrated root. Returns true when the resolution mutated the filesystem (or
// would have, in dry-run) and therefore consumes batch budget.
func migrateConflict(name, src, dst string, opts MigrateOptions, report *MigrateReport) bool {
	switch opts.Policy.onConflict() {
	case conflictMerge:
		return migrateMerge(name, src, dst, opts, report)

	case conflictDeleteIfMatch:
		srcSet, err := ListTree(src)
		if err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
			return false
		}
		dstSet, err := ListTree(dst)
		if err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
			return false
		}
		if !srcSet.Equal(dstSet) {
			slog.Info("migrate skip, contents differ", "name", name)
			report.Skipped = append(report.Skipped, name)
			return false
		}
		if !opts.DryRun {
			if err := removeTree(src); err != nil {
				report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
				return false
			}
		}
		slog.Info("deleted source, exact match at destination", "name", name)
		report.Deleted = append(report.Deleted, name)
		return true

	default:
		slog.Info("migrate skip, destination exists", "name", name)
		report.Skipped = append(report.Skipped, name)
		return false
	}
}

func migrateMerge(name, src, dst string, opts MigrateOptions, report *MigrateReport) bool {
	srcSet, err := ListTree(src)
	if err != nil {
		report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
		return false
	}
	dstSet, err := ListTree(dst)
	if err != nil {
		report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
		return false
	}

	missing := srcSet.Missing(dstSet)
	if len(missing) == 0 {
		if opts.Policy.DeleteSourceWhenNothingToMerge {
			if !opts.DryRun {
				if err := removeTree(src); err != nil {
					report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
					return false
				}
			}
			slog.Info("deleted source, nothing to merge", "name", name)
			report.Deleted = append(report.Deleted, name)
			return true
		}
		slog.Info("migrate skip, nothing to merge", "name", name)
		report.Skipped = append(report.Skipped, name)
		return false
	}

	if opts.DryRun {
		report.Merged = append(report.Merged, name)
		report.FilesMerged += len(missing)
		if opts.Policy.DeleteSourceAfterMerge {
			report.Deleted = append(report.Deleted, name)
		}
		return true
	}

	res := copyMissing(src, dst, missing)
	report.FilesMerged += res.FilesCopied
	report.ErrorDetails = append(report.ErrorDetails, res.Errors...)
	slog.Info("merged folder", "name", name,
		"files", res.FilesCopied, "bytes", humanize.Bytes(uint64(res.BytesCopied)))

	if res.FilesCopied == 0 && len(res.Errors) > 0 {
		return false
	}
	report.Merged = append(report.Merged, name)

	// Only drop the source once every file landed cleanly.
	if opts.Policy.DeleteSourceAfterMerge && len(res.Errors) == 0 {
		if err := removeTree(src); err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
			return true
		}
		report.Deleted = append(report.Deleted, name)
	}
	return true
}

// findNonMovieFolders picks the first-level children of targetRoot that hold
// at least one file but no movie file, sorted by name. The migrated root is
// excluded when it lives inside the target, so a folder is never migrated
// into itself. Unreadable folders are treated as if they contained movies:
// never migrate what cannot be fully classified.
func findNonMovieFolders(targetRoot, migratedRoot string, movieExts ExtSet) ([]string, []ItemError) {
	var errs []ItemError

	names, err := subdirNames(targetRoot)
	if err != nil {
		return nil, []ItemError{itemErr(targetRoot, err)}
	}

	excluded := ""
	if rel, err := filepath.Rel(targetRoot, migratedRoot); err == nil &&
		rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		excluded = strings.Split(filepath.ToSlash(rel), "/")[0]
	}

	var eligible []string
	for _, name := range names {
		if name == excluded && excluded != "." {
			continue
		}
		path := filepath.Join(targetRoot, name)

		hasFiles, err := TreeContainsFiles(path)
		if err != nil {
			errs = append(errs, itemErr(name, err))
			continue
		}
		if !hasFiles {
			continue
		}

		hasMovie, err := TreeContainsExt(path, movieExts)
		if err != nil {
			errs = append(errs, itemErr(name, err))
			continue
		}
		if hasMovie {
			continue
		}
		eligible = append(eligible, name)
	}
	return eligible, errs
}
