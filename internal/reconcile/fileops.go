package reconcile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// copyFile copies src to dst, creating parent directories as needed. The
// destination is opened with O_EXCL so an existing file is never overwritten;
// losing the check-then-act race surfaces as errDestExists rather than data
// loss. Returns bytes copied.
func copyFile(src, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, errDestExists
		}
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return 0, err
	}
	return n, nil
}

// moveEntry moves a file or whole directory subtree from src to dst. It tries
// a rename first and falls back to copy+delete when the two paths are on
// different devices. dst must not exist; an existing dst surfaces as
// errDestExists.
func moveEntry(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return errDestExists
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		return moveAcrossDevices(src, dst)
	}

	// The rename itself may have lost the race against a concurrent writer.
	if _, statErr := os.Lstat(dst); statErr == nil {
		return errDestExists
	}
	return err
}

// moveAcrossDevices emulates a rename across filesystems: copy the tree, then
// remove the source. The source is only removed after the whole copy
// succeeded, so a mid-copy failure never loses data.
func moveAcrossDevices(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if _, err := copyFile(src, dst); err != nil {
			return err
		}
		return os.Remove(src)
	}

	if err := copyTree(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// copyTree copies the directory subtree at src to dst using an explicit work
// list. dst must not exist.
func copyTree(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return errDestExists
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	type pair struct{ from, to string }
	stack := []pair{{src, dst}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(p.from)
		if err != nil {
			return err
		}
		for _, e := range entries {
			from := filepath.Join(p.from, e.Name())
			to := filepath.Join(p.to, e.Name())
			switch {
			case e.IsDir():
				if err := os.MkdirAll(to, 0o755); err != nil {
					return err
				}
				stack = append(stack, pair{from, to})
			case e.Type().IsRegular():
				if _, err := copyFile(from, to); err != nil {
					return err
				}
			default:
				// Symlinks and special files are not carried across devices.
			}
		}
	}
	return nil
}

// removeTree deletes a source folder (or unlinks it, if it is a symlink).
func removeTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return os.Remove(path)
	}
	return os.RemoveAll(path)
}
