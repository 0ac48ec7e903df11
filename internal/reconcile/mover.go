package reconcile

import (
	"log/slog"
	"path/filepath"
)

// MoveReport is the outcome of a non-duplicate relocation run.
type MoveReport struct {
	SourceDir string `json:"source_directory"`
	TargetDir string `json:"target_directory"`
	DryRun    bool   `json:"dry_run"`
	BatchSize int    `json:"batch_size"`

	Found             int         `json:"non_duplicates_found"`
	Moved             []string    `json:"moved_subdirectories"`
	Skipped           []string    `json:"skipped_subdirectories"`
	Remaining         int         `json:"remaining"`
	BatchLimitReached bool        `json:"batch_limit_reached"`
	ErrorDetails      []ItemError `json:"error_details"`
}

// MoveNonDuplicates moves every first-level directory of srcRoot whose name
// does not exist under dstRoot, whole subtree at a time, in lexicographic
// order so repeated calls over an unchanged set make consistent progress.
//
// An entry that already exists at the destination is recorded as skipped and
// does not consume batch budget. Once BatchSize real moves have happened the
// loop stops and the report flags batch_limit_reached with the count of
// eligible items left. A second call over the resulting state finds the moved
// names now duplicate the destination, so it converges to zero moves.
func MoveNonDuplicates(srcRoot, dstRoot string, opts BatchOptions) (*MoveReport, error) {
	cmp, err := CompareDirs(srcRoot, dstRoot)
	if err != nil {
		return nil, err
	}

	report := &MoveReport{
		SourceDir:    srcRoot,
		TargetDir:    dstRoot,
		DryRun:       opts.DryRun,
		BatchSize:    opts.BatchSize,
		Found:        cmp.NonDuplicateCount,
		Moved:        []string{},
		Skipped:      []string{},
		ErrorDetails: []ItemError{},
	}

	processed := 0
	for i, name := range cmp.NonDuplicates {
		dst := filepath.Join(dstRoot, name)

		// The destination may have gained this name since the comparison.
		if destinationExists(dst) {
			slog.Debug("move skip, destination exists", "name", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		if opts.exhausted(processed) {
			report.BatchLimitReached = true
			report.Remaining = len(cmp.NonDuplicates) - i
			slog.Info("move batch limit reached",
				"batch_size", opts.BatchSize, "remaining", report.Remaining)
			break
		}

		if opts.DryRun {
			report.Moved = append(report.Moved, name)
			processed++
			continue
		}

		src := filepath.Join(srcRoot, name)
		if err := moveEntry(src, dst); err != nil {
			if err == errDestExists {
				report.Skipped = append(report.Skipped, name)
				continue
			}
			slog.Error("move failed", "name", name, "error", err)
			report.ErrorDetails = append(report.ErrorDetails, itemErr(name, err))
			continue
		}
		slog.Info("moved directory", "name", name, "to", dst)
		report.Moved = append(report.Moved, name)
		processed++
	}

	return report, nil
}
