package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Recognized scan extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
	".gif":  true,
}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover collects image paths from inputs. A file input is taken as is
// when it has an image extension; a directory input is walked recursively.
// The combined list is returned in natural order (see SortPaths), so pages
// of one directory stay contiguous.
func Discover(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrInputNotFound, in)
			}
			return nil, err
		}
		if !fi.IsDir() {
			if IsImage(in) {
				files = append(files, in)
			}
			continue
		}
		found, err := walkImages(in)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	SortPaths(files)
	return dedupe(files), nil
}

// walkImages returns every image below dir, unsorted.
func walkImages(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsImage(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

// dedupe drops adjacent duplicates from a sorted list; the same file can be
// named both directly and through its directory.
func dedupe(files []string) []string {
	out := files[:0]
	for i, f := range files {
		if i > 0 && filepath.Clean(f) == filepath.Clean(files[i-1]) {
			continue
		}
		out = append(out, f)
	}
	return out
}
