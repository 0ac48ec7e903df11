package reconcile

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
)

// SubtitleSyncOptions parameterize a subtitle sync run.
type SubtitleSyncOptions struct {
	BatchOptions

	// SubtitleExtensions selects which files are carried over. Defaults to
	// SubtitleExtensions(); callers may extend it with MetadataExtensions().
	SubtitleExtensions ExtSet

	// MovieExtensions qualifies a target folder as a real movie folder.
	// Defaults to MovieExtensions().
	MovieExtensions ExtSet
}

// SubtitleSyncReport is the outcome of a subtitle sync run. File paths are
// relative to the source root (folder name included).
type SubtitleSyncReport struct {
	SourceDir string `json:"source_directory"`
	TargetDir string `json:"target_directory"`
	DryRun    bool   `json:"dry_run"`
	BatchSize int    `json:"batch_size"`

	FilesMoved        int         `json:"subtitle_files_moved"`
	FilesSkipped      int         `json:"subtitle_files_skipped"`
	MovedFiles        []string    `json:"moved_files"`
	SkippedFiles      []string    `json:"skipped_files"`
	BatchLimitReached bool        `json:"batch_limit_reached"`
	ErrorDetails      []ItemError `json:"error_details"`
}

// SyncSubtitles walks the first-level movie folders of srcRoot and moves their
// subtitle files into the same-named folder under dstRoot at the identical
// relative path, creating intermediate directories (a Subs/ folder, say) as
// needed but never the movie folder itself. A source folder is skipped
// entirely unless the matching target folder exists and itself contains a
// movie file somewhere within it. Existing destination files are never
// overwritten; skips do not consume batch budget.
func SyncSubtitles(srcRoot, dstRoot string, opts SubtitleSyncOptions) (*SubtitleSyncReport, error) {
	if err := checkRoot(srcRoot); err != nil {
		return nil, err
	}
	if err := checkRoot(dstRoot); err != nil {
		return nil, err
	}

	subExts := opts.SubtitleExtensions
	if len(subExts) == 0 {
		subExts = SubtitleExtensions()
	}
	movieExts := opts.MovieExtensions
	if len(movieExts) == 0 {
		movieExts = MovieExtensions()
	}

	folders, err := subdirNames(srcRoot)
	if err != nil {
		return nil, &RootError{Root: srcRoot, Err: err}
	}

	report := &SubtitleSyncReport{
		SourceDir:    srcRoot,
		TargetDir:    dstRoot,
		DryRun:       opts.DryRun,
		BatchSize:    opts.BatchSize,
		MovedFiles:   []string{},
		SkippedFiles: []string{},
		ErrorDetails: []ItemError{},
	}

	moved := 0
	for _, folder := range folders {
		if opts.exhausted(moved) {
			report.BatchLimitReached = true
			break
		}

		srcFolder := filepath.Join(srcRoot, folder)
		dstFolder := filepath.Join(dstRoot, folder)

		// Never fabricate the movie folder: it must already exist in the
		// target and actually hold a movie.
		if !destinationExists(dstFolder) {
			slog.Debug("subtitle sync skip, no matching target folder", "folder", folder)
			continue
		}
		hasMovie, err := TreeContainsExt(dstFolder, movieExts)
		if err != nil || !hasMovie {
			slog.Debug("subtitle sync skip, target has no movie file", "folder", folder)
			continue
		}

		files, err := collectByExt(srcFolder, subExts)
		if err != nil {
			report.ErrorDetails = append(report.ErrorDetails, itemErr(folder, err))
			continue
		}

		for _, rel := range files {
			if opts.exhausted(moved) {
				report.BatchLimitReached = true
				break
			}

			src := filepath.Join(srcFolder, filepath.FromSlash(rel))
			dst := filepath.Join(dstFolder, filepath.FromSlash(rel))
			relName := path.Join(folder, rel)

			if destinationExists(dst) {
				report.FilesSkipped++
				report.SkippedFiles = append(report.SkippedFiles, relName)
				continue
			}

			if opts.DryRun {
				moved++
				report.MovedFiles = append(report.MovedFiles, relName)
				continue
			}

			if err := moveEntry(src, dst); err != nil {
				if err == errDestExists {
					report.FilesSkipped++
					report.SkippedFiles = append(report.SkippedFiles, relName)
					continue
				}
				slog.Error("subtitle move failed", "file", relName, "error", err)
				report.ErrorDetails = append(report.ErrorDetails, itemErr(relName, err))
				continue
			}
			slog.Debug("moved subtitle", "file", relName)
			moved++
			report.MovedFiles = append(report.MovedFiles, relName)
		}
	}

	report.FilesMoved = moved
	return report, nil
}

// collectByExt gathers the files under root whose extension is in exts, as
// sorted slash-relative paths. Sorted order keeps batch resumption
// deterministic.
func collectByExt(root string, exts ExtSet) ([]string, error) {
	var files []string
	err := walkFiles(root, func(p string, d fs.DirEntry) error {
		if !exts.Has(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
