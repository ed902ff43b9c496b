package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Inventory is one scanned archival unit: a subdirectory of an input root.
// Name is its identifier and must be unique across all roots.
type Inventory struct {
	Name   string
	Path   string
	Images []string // natural order
}

// CollectInventories treats every immediate subdirectory of each root as an
// inventory and collects its images recursively. Roots must be directories.
// A repeated identifier fails the whole collection with
// ErrDuplicateInventory before anything is probed or written.
func CollectInventories(roots []string) ([]Inventory, error) {
	var invs []Inventory
	seen := make(map[string]string) // identifier → path

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrInputNotFound, root)
			}
			return nil, err
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", root, err)
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		SortNames(names)

		for _, name := range names {
			path := filepath.Join(root, name)
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateInventory, name, prev, path)
			}
			seen[name] = path

			images, err := walkImages(path)
			if err != nil {
				return nil, err
			}
			SortPaths(images)
			invs = append(invs, Inventory{Name: name, Path: path, Images: images})
		}
	}
	return invs, nil
}
