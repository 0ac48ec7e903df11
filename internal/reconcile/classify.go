package reconcile

import (
	"io/fs"
	"os"
)

// TreeContainsExt reports whether any file anywhere under root (any depth) has
// an extension in exts. It short-circuits on the first match, so classifying a
// large movie folder usually touches only a fraction of the tree.
func TreeContainsExt(root string, exts ExtSet) (bool, error) {
	found := false
	err := walkFiles(root, func(path string, d fs.DirEntry) error {
		if exts.Has(d.Name()) {
			found = true
			return errStopWalk
		}
		return nil
	})
	return found, err
}

// TreeContainsFiles reports whether root contains at least one regular file at
// any depth. Folders without any files are left for empty-dir reclamation.
func TreeContainsFiles(root string) (bool, error) {
	found := false
	err := walkFiles(root, func(string, fs.DirEntry) error {
		found = true
		return errStopWalk
	})
	return found, err
}

// rootContainsExt checks only the immediate children of root, not the whole
// subtree. Salvage uses it to pick folders with subtitles sitting at top level.
func rootContainsExt(root string, exts ExtSet) (bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Type().IsRegular() && exts.Has(e.Name()) {
			return true, nil
		}
	}
	return false, nil
}
