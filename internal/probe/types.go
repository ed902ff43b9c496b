package probe

import (
	"path/filepath"
	"strconv"
)

// Size is a pixel width and height pair.
type Size struct {
	Width  int
	Height int
}

// String returns "WxH", or "unknown" for a zero size.
func (s Size) String() string {
	if s.Width <= 0 || s.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Image is one scanned page: its path, header dimensions and the name of the
// decoder that read it (e.g. "jpeg", "tiff").
type Image struct {
	Path   string
	Size   Size
	Format string
}

// Name returns the file name of the image.
func (i Image) Name() string { return filepath.Base(i.Path) }

// Dir returns the parent directory of the image.
func (i Image) Dir() string { return filepath.Dir(i.Path) }
