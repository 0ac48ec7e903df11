package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileSet is a flat view of a tree's regular files, keyed by slash-separated
// path relative to the root, with byte sizes. Identity is the relative path;
// contents are never hashed or compared.
type FileSet map[string]int64

// ListTree enumerates every regular file under root into a FileSet, skipping
// ignored noise files.
func ListTree(root string) (FileSet, error) {
	set := make(FileSet)
	err := walkFiles(root, func(path string, d fs.DirEntry) error {
		if _, skip := ignoredNames[d.Name()]; skip {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		set[filepath.ToSlash(rel)] = info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Missing returns the relative paths present in s but absent from other,
// sorted for deterministic processing order.
func (s FileSet) Missing(other FileSet) []string {
	var missing []string
	for rel := range s {
		if _, ok := other[rel]; !ok {
			missing = append(missing, rel)
		}
	}
	sort.Strings(missing)
	return missing
}

// Equal reports whether both sets contain exactly the same relative paths
// with the same sizes. This is the exact-match check used by the migrator's
// delete-source-if-match policy.
func (s FileSet) Equal(other FileSet) bool {
	if len(s) != len(other) {
		return false
	}
	for rel, size := range s {
		if otherSize, ok := other[rel]; !ok || otherSize != size {
			return false
		}
	}
	return true
}

// MergeResult reports a tree merge: which files were copied from source into
// the destination and how many bytes moved.
type MergeResult struct {
	CopiedFiles []string    `json:"copied_files"`
	FilesCopied int         `json:"files_copied"`
	BytesCopied int64       `json:"bytes_copied"`
	Errors      []ItemError `json:"error_details"`
}

// copyMissing copies the named relative paths from srcRoot into dstRoot,
// creating intermediate directories as needed and never overwriting. A file
// that appears at the destination mid-copy is silently left alone. Per-file
// failures are collected; the copy continues with the next file.
func copyMissing(srcRoot, dstRoot string, rels []string) *MergeResult {
	res := &MergeResult{}
	for _, rel := range rels {
		src := filepath.Join(srcRoot, filepath.FromSlash(rel))
		dst := filepath.Join(dstRoot, filepath.FromSlash(rel))
		n, err := copyFile(src, dst)
		if err != nil {
			if err == errDestExists {
				continue
			}
			res.Errors = append(res.Errors, itemErr(rel, err))
			continue
		}
		res.CopiedFiles = append(res.CopiedFiles, rel)
		res.FilesCopied++
		res.BytesCopied += n
	}
	return res
}

// MergeTrees copies into dst every file present in src but missing from dst,
// keyed by relative path. dst must already exist; the merge never creates the
// destination root itself and never touches files already present.
func MergeTrees(src, dst string, dryRun bool) (*MergeResult, error) {
	if err := checkRoot(src); err != nil {
		return nil, err
	}
	if err := checkRoot(dst); err != nil {
		return nil, err
	}

	srcSet, err := ListTree(src)
	if err != nil {
		return nil, &RootError{Root: src, Err: err}
	}
	dstSet, err := ListTree(dst)
	if err != nil {
		return nil, &RootError{Root: dst, Err: err}
	}

	missing := srcSet.Missing(dstSet)
	if dryRun {
		return &MergeResult{
			CopiedFiles: missing,
			FilesCopied: len(missing),
		}, nil
	}
	return copyMissing(src, dst, missing), nil
}

// destinationExists reports whether any entry (file, dir, or symlink) is
// already present at path.
func destinationExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
