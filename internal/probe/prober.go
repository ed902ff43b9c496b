package probe

import (
	"bufio"
	"fmt"
	"image"
	"os"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats lists the decoder names registered by this package, in the order
// diagnostics print them.
var Formats = []string{"jpeg", "png", "gif", "tiff", "bmp", "webp"}

// Probe reads the header of the image at path and returns its dimensions.
// Only the header is decoded.
func Probe(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return Image{}, fmt.Errorf("decode header %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, fmt.Errorf("decode header %q: invalid size %dx%d", path, cfg.Width, cfg.Height)
	}
	return Image{
		Path:   path,
		Size:   Size{Width: cfg.Width, Height: cfg.Height},
		Format: format,
	}, nil
}
