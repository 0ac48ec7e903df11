package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ignoredNames are filesystem noise excluded from merge and exact-match
// comparisons (macOS Finder metadata and the like).
var ignoredNames = map[string]struct{}{
	".DS_Store": {},
}

func checkRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &RootError{Root: path, Err: err}
	}
	if !info.IsDir() {
		return &RootError{Root: path, Err: ErrNotADirectory}
	}
	return nil
}

// subdirNames lists the immediate subdirectory names of root, sorted.
func subdirNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// walkFiles visits every regular file under root using an explicit work list
// instead of recursion, so arbitrarily deep trees cannot exhaust the call
// stack. Returning errStopWalk from fn ends the walk early without error.
func walkFiles(root string, fn func(path string, d fs.DirEntry) error) error {
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			if e.IsDir() {
				stack = append(stack, p)
				continue
			}
			if !e.Type().IsRegular() {
				continue
			}
			if err := fn(p, e); err != nil {
				if err == errStopWalk {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

// errStopWalk short-circuits walkFiles.
var errStopWalk = fs.SkipAll
