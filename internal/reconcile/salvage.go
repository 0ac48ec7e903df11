package reconcile

import (
	"log/slog"
	"path"
	"path/filepath"
)

// SalvageOptions parameterize a subtitle salvage run.
type SalvageOptions struct {
	BatchOptions
	SubtitleExtensions ExtSet
}

// SalvageReport is the outcome of a salvage run.
type SalvageReport struct {
	RecycledDir string `json:"recycled_directory"`
	SalvagedDir string `json:"salvaged_directory"`
	DryRun      bool   `json:"dry_run"`
	BatchSize   int    `json:"batch_size"`

	FoldersScanned       int         `json:"folders_scanned"`
	FoldersWithSubtitles []string    `json:"folders_with_subtitles"`
	CopiedFolders        []string    `json:"copied_folders"`
	SkippedFolders       []string    `json:"skipped_folders"`
	FilesCopied          int         `json:"subtitle_files_copied"`
	FilesSkipped         int         `json:"subtitle_files_skipped"`
	BatchLimitReached    bool        `json:"batch_limit_reached"`
	ErrorDetails         []ItemError `json:"error_details"`
}

// SalvageSubtitleFolders copies subtitle files out of recycledRoot into
// salvagedRoot, preserving each folder's structure, for every first-level
// folder that has at least one subtitle file sitting in its root. Originals
// are left untouched; only subtitle files travel, and nothing is ever
// overwritten. Destination directories come into being only when a file is
// about to be placed in them. The batch budget counts files actually copied.
func SalvageSubtitleFolders(recycledRoot, salvagedRoot string, opts SalvageOptions) (*SalvageReport, error) {
	if err := checkRoot(recycledRoot); err != nil {
		return nil, err
	}

	subExts := opts.SubtitleExtensions
	if len(subExts) == 0 {
		subExts = SubtitleExtensions()
	}

	folders, err := subdirNames(recycledRoot)
	if err != nil {
		return nil, &RootError{Root: recycledRoot, Err: err}
	}

	report := &SalvageReport{
		RecycledDir:          recycledRoot,
		SalvagedDir:          salvagedRoot,
		DryRun:               opts.DryRun,
		BatchSize:            opts.BatchSize,
		FoldersScanned:       len(folders),
		FoldersWithSubtitles: []string{},
		CopiedFolders:        []string{},
		SkippedFolders:       []string{},
		ErrorDetails:         []ItemError{},
	}

	var candidates []string
	for _, folder := range folders {
		has, err := rootContainsExt(filepath.Join(recycledRoot, folder), subExts)
		if err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(folder, err))
			continue
		}
		if has {
			candidates = append(candidates, folder)
			report.FoldersWithSubtitles = append(report.FoldersWithSubtitles, folder)
		}
	}

	copied := 0
	for _, folder := range candidates {
		if opts.exhausted(copied) {
			report.BatchLimitReached = true
			slog.Info("salvage batch limit reached", "batch_size", opts.BatchSize)
			break
		}

		srcFolder := filepath.Join(recycledRoot, folder)
		dstFolder := filepath.Join(salvagedRoot, folder)

		files, err := collectByExt(srcFolder, subExts)
		if err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(folder, err))
			continue
		}

		folderCopied, folderSkipped := 0, 0
		for _, rel := range files {
			if opts.exhausted(copied) {
				report.BatchLimitReached = true
				break
			}

			dst := filepath.Join(dstFolder, filepath.FromSlash(rel))
			if destinationExists(dst) {
				folderSkipped++
				report.FilesSkipped++
				continue
			}

			if opts.DryRun {
				copied++
				folderCopied++
				report.FilesCopied++
				continue
			}

			src := filepath.Join(srcFolder, filepath.FromSlash(rel))
			if _, err := copyFile(src, dst); err != nil {
				if err == errDestExists {
					folderSkipped++
					report.FilesSkipped++
					continue
				}
				slog.Error("salvage copy failed", "file", path.Join(folder, rel), "error", err)
				report.ErrorDetails = append(report.ErrorDetails, itemErr(path.Join(folder, rel), err))
				continue
			}
			copied++
			folderCopied++
			report.FilesCopied++
		}

		switch {
		case folderCopied > 0:
			slog.Info("salvaged folder", "name", folder, "copied", folderCopied, "skipped", folderSkipped)
			report.CopiedFolders = append(report.CopiedFolders, folder)
		case folderSkipped > 0:
			report.SkippedFolders = append(report.SkippedFolders, folder)
		}
	}

	return report, nil
}
