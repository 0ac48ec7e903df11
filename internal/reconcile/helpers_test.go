package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// mkDirs creates each directory path.
func mkDirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}
}

// treeListing flattens a tree into relative-path -> size for state assertions.
func treeListing(t *testing.T, root string) map[string]int64 {
	t.Helper()
	set, err := ListTree(root)
	require.NoError(t, err)
	return set
}
