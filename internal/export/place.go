package export

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/scansep/internal/config"
)

// Place puts src at dst using mode. It returns false without error when dst
// already exists; existing entries are never replaced. Symlinks point at the
// absolute source path so the tree stays valid wherever it is read from.
func Place(src, dst string, mode config.CopyMode) (bool, int64, error) {
	if _, err := os.Lstat(dst); err == nil {
		return false, 0, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, 0, err
	}

	switch mode {
	case config.CopyLink:
		if err := os.Link(src, dst); err != nil {
			return false, 0, err
		}
		return true, 0, nil
	case config.CopyCopy:
		n, err := copyFile(src, dst)
		if err != nil {
			return false, 0, err
		}
		return true, n, nil
	default:
		abs, err := filepath.Abs(src)
		if err != nil {
			return false, 0, err
		}
		if err := os.Symlink(abs, dst); err != nil {
			return false, 0, err
		}
		return true, 0, nil
	}
}

// copyFile copies src to a new file dst. A partial dst is removed on error.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return 0, fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return n, nil
}
