package pipeline

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a collator that compares digit runs by numeric value,
// so "scan_2" sorts before "scan_10".
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric)
}

// SortPaths orders paths naturally by parent directory, then by file name.
// Grouping across a directory boundary always starts a new document, so
// keeping each directory's files together matters more than a flat order.
func SortPaths(paths []string) {
	c := newCollator()
	sort.SliceStable(paths, func(i, j int) bool {
		return lessPath(c, paths[i], paths[j])
	})
}

// SortNames orders plain names (inventory identifiers) naturally.
func SortNames(names []string) {
	c := newCollator()
	sort.SliceStable(names, func(i, j int) bool {
		if r := c.CompareString(names[i], names[j]); r != 0 {
			return r < 0
		}
		return names[i] < names[j]
	})
}

func lessPath(c *collate.Collator, a, b string) bool {
	da, db := filepath.Dir(a), filepath.Dir(b)
	if da != db {
		if r := c.CompareString(da, db); r != 0 {
			return r < 0
		}
		return da < db
	}
	ba, bb := filepath.Base(a), filepath.Base(b)
	if r := c.CompareString(ba, bb); r != 0 {
		return r < 0
	}
	return strings.Compare(ba, bb) < 0
}
