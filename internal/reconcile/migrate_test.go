package reconcile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateNonMovieFolders_MovesOnlyNonMovie(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "extrasOnly", "notes.txt"), "x")
	writeFile(t, filepath.Join(target, "movieC", "c.mkv"), "x")
	writeFile(t, filepath.Join(target, "movieD", "Extras", "deep", "d.mp4"), "x")
	mkDirs(t, filepath.Join(target, "emptyOne"))

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{
		BatchOptions: BatchOptions{BatchSize: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.FoldersFound)
	assert.Equal(t, []string{"extrasOnly"}, report.Moved)
	assert.Empty(t, report.ErrorDetails)

	assert.FileExists(t, filepath.Join(migrated, "extrasOnly", "notes.txt"))
	assert.NoDirExists(t, filepath.Join(target, "extrasOnly"))
	// Movie folders stay, even with the movie file nested deep.
	assert.FileExists(t, filepath.Join(target, "movieC", "c.mkv"))
	assert.FileExists(t, filepath.Join(target, "movieD", "Extras", "deep", "d.mp4"))
	// Folders with no files at all are left for the empty-dir pass.
	assert.DirExists(t, filepath.Join(target, "emptyOne"))
}

func TestMigrateNonMovieFolders_SecondRunConverges(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "extrasOnly", "notes.txt"), "x")

	_, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.FoldersFound)
	assert.Empty(t, report.Moved)
}

func TestMigrateNonMovieFolders_ConflictDefaultSkips(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "a.srt"), "src")
	writeFile(t, filepath.Join(migrated, "dup", "a.srt"), "dst")

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, report.Skipped)
	assert.Empty(t, report.Moved)
	// Both sides untouched.
	assert.FileExists(t, filepath.Join(target, "dup", "a.srt"))
}

func TestMigrateNonMovieFolders_DeleteSourceIfMatch(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "Subs", "a.srt"), "abc")
	writeFile(t, filepath.Join(migrated, "dup", "Subs", "a.srt"), "xyz")

	opts := MigrateOptions{Policy: MigratePolicy{DeleteSourceIfMatch: true}}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	// Same relative paths and same sizes: exact match, source is dropped.
	assert.Equal(t, []string{"dup"}, report.Deleted)
	assert.NoDirExists(t, filepath.Join(target, "dup"))
	assert.FileExists(t, filepath.Join(migrated, "dup", "Subs", "a.srt"))
}

func TestMigrateNonMovieFolders_DeleteSourceIfMatch_SizeMismatchSkips(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "a.srt"), "longer content")
	writeFile(t, filepath.Join(migrated, "dup", "a.srt"), "short")

	opts := MigrateOptions{Policy: MigratePolicy{DeleteSourceIfMatch: true}}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, report.Skipped)
	assert.Empty(t, report.Deleted)
	assert.FileExists(t, filepath.Join(target, "dup", "a.srt"))
}

func TestMigrateNonMovieFolders_MergeMissingFiles(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "a.srt"), "x")
	writeFile(t, filepath.Join(target, "dup", "Subs", "b.srt"), "x")
	writeFile(t, filepath.Join(migrated, "dup", "a.srt"), "x")

	opts := MigrateOptions{Policy: MigratePolicy{MergeMissingFiles: true}}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, report.Merged)
	assert.Equal(t, 1, report.FilesMerged)
	assert.FileExists(t, filepath.Join(migrated, "dup", "Subs", "b.srt"))
	// Source survives without DeleteSourceAfterMerge.
	assert.DirExists(t, filepath.Join(target, "dup"))
}

func TestMigrateNonMovieFolders_MergeThenDeleteSource(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "Subs", "b.srt"), "x")
	mkDirs(t, filepath.Join(migrated, "dup"))

	opts := MigrateOptions{Policy: MigratePolicy{
		MergeMissingFiles:      true,
		DeleteSourceAfterMerge: true,
	}}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, report.Merged)
	assert.Equal(t, []string{"dup"}, report.Deleted)
	assert.NoDirExists(t, filepath.Join(target, "dup"))
	assert.FileExists(t, filepath.Join(migrated, "dup", "Subs", "b.srt"))
}

func TestMigrateNonMovieFolders_NothingToMergePolicies(t *testing.T) {
	mkBoth := func(t *testing.T) (string, string) {
		target := t.TempDir()
		migrated := t.TempDir()
		writeFile(t, filepath.Join(target, "dup", "a.srt"), "x")
		writeFile(t, filepath.Join(migrated, "dup", "a.srt"), "x")
		return target, migrated
	}

	t.Run("keep source", func(t *testing.T) {
		target, migrated := mkBoth(t)
		opts := MigrateOptions{Policy: MigratePolicy{MergeMissingFiles: true}}
		report, err := MigrateNonMovieFolders(target, migrated, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"dup"}, report.Skipped)
		assert.DirExists(t, filepath.Join(target, "dup"))
	})

	t.Run("delete source", func(t *testing.T) {
		target, migrated := mkBoth(t)
		opts := MigrateOptions{Policy: MigratePolicy{
			MergeMissingFiles:              true,
			DeleteSourceWhenNothingToMerge: true,
		}}
		report, err := MigrateNonMovieFolders(target, migrated, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"dup"}, report.Deleted)
		assert.NoDirExists(t, filepath.Join(target, "dup"))
	})
}

func TestMigrateNonMovieFolders_MergeTakesPrecedenceOverDelete(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "dup", "extra.srt"), "x")
	writeFile(t, filepath.Join(migrated, "dup", "other.srt"), "x")

	opts := MigrateOptions{Policy: MigratePolicy{
		DeleteSourceIfMatch: true,
		MergeMissingFiles:   true,
	}}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, report.Merged)
	assert.Empty(t, report.Deleted)
	assert.FileExists(t, filepath.Join(migrated, "dup", "extra.srt"))
}

func TestMigrateNonMovieFolders_DryRunMirrorsCardinality(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	writeFile(t, filepath.Join(target, "fresh", "notes.txt"), "x")
	writeFile(t, filepath.Join(target, "dup", "extra.srt"), "x")
	mkDirs(t, filepath.Join(migrated, "dup"))

	before := treeListing(t, target)
	opts := MigrateOptions{
		BatchOptions: BatchOptions{DryRun: true},
		Policy:       MigratePolicy{MergeMissingFiles: true, DeleteSourceAfterMerge: true},
	}
	report, err := MigrateNonMovieFolders(target, migrated, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"fresh"}, report.Moved)
	assert.Equal(t, []string{"dup"}, report.Merged)
	assert.Equal(t, []string{"dup"}, report.Deleted)
	assert.Equal(t, 1, report.FilesMerged)

	assert.Equal(t, before, treeListing(t, target))
	assert.Empty(t, treeListing(t, migrated))
}

func TestMigrateNonMovieFolders_BatchBudget(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	for _, name := range []string{"n1", "n2", "n3", "n4"} {
		writeFile(t, filepath.Join(target, name, "f.txt"), "x")
	}

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{
		BatchOptions: BatchOptions{BatchSize: 3},
	})
	require.NoError(t, err)

	assert.Len(t, report.Moved, 3)
	assert.True(t, report.BatchLimitReached)
	assert.Equal(t, 1, report.RemainingFolders)
}

func TestMigrateNonMovieFolders_SkipDoesNotConsumeBudget(t *testing.T) {
	target := t.TempDir()
	migrated := t.TempDir()
	// "aaa" conflicts and will be skipped under the default policy.
	writeFile(t, filepath.Join(target, "aaa", "f.txt"), "x")
	writeFile(t, filepath.Join(migrated, "aaa", "f.txt"), "y")
	writeFile(t, filepath.Join(target, "bbb", "f.txt"), "x")

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{
		BatchOptions: BatchOptions{BatchSize: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"aaa"}, report.Skipped)
	assert.Equal(t, []string{"bbb"}, report.Moved)
	assert.False(t, report.BatchLimitReached)
}

func TestMigrateNonMovieFolders_MigratedRootInsideTarget(t *testing.T) {
	target := t.TempDir()
	migrated := filepath.Join(target, "migrated", "movies")
	writeFile(t, filepath.Join(target, "extrasOnly", "notes.txt"), "x")
	writeFile(t, filepath.Join(migrated, "old", "a.txt"), "x")

	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)

	// The migrated subtree is never a migration candidate.
	assert.Equal(t, []string{"extrasOnly"}, report.Moved)
	assert.FileExists(t, filepath.Join(migrated, "old", "a.txt"))
	assert.FileExists(t, filepath.Join(migrated, "extrasOnly", "notes.txt"))
}

func TestMigrateNonMovieFolders_MissingMigratedRootCreatedLazily(t *testing.T) {
	target := t.TempDir()
	migrated := filepath.Join(t.TempDir(), "not", "yet", "there")

	// No candidates: the migrated root must not be created.
	writeFile(t, filepath.Join(target, "movieC", "c.mkv"), "x")
	report, err := MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.FoldersFound)
	assert.NoDirExists(t, migrated)

	// With a candidate, the root appears together with the payload.
	writeFile(t, filepath.Join(target, "extrasOnly", "notes.txt"), "x")
	report, err = MigrateNonMovieFolders(target, migrated, MigrateOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"extrasOnly"}, report.Moved)
	assert.FileExists(t, filepath.Join(migrated, "extrasOnly", "notes.txt"))
}

func TestMigrateNonMovieFolders_FileAsMigratedRootIsFatal(t *testing.T) {
	target := t.TempDir()
	file := filepath.Join(t.TempDir(), "occupied")
	writeFile(t, file, "x")

	_, err := MigrateNonMovieFolders(target, file, MigrateOptions{})
	require.Error(t, err)
	assert.True(t, IsRootError(err))
	assert.ErrorIs(t, err, ErrNotADirectory)
}
