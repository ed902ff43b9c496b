// Package check provides system diagnostics (--check mode) and pre-pipeline
// validation (CheckOutput) for image decoders, symlink support and inputs.
package check

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/probe"
)

// Sentinel errors returned by the checks.
var (
	ErrSymlinkUnsupported = errors.New("cannot create symlinks in output location")
	ErrDecoderBroken      = errors.New("image decoder self-test failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the --check flow: decoder self-test, symlink support in the
// output location, and input existence. It returns false if any check
// failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkDecoders(log)
	ok = checkSymlinks(cfg, log) && ok
	ok = checkInputs(cfg, log) && ok
	return ok
}

// encoders writes a small test image per format the probe must read.
// webp has no encoder; it is listed but not round-tripped.
var encoders = map[string]func(io.Writer, image.Image) error{
	"jpeg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) },
	"png":  png.Encode,
	"gif":  func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) },
	"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	"bmp":  bmp.Encode,
}

// checkDecoders round-trips a 3x2 image through every encodable format and
// verifies the probe reads its size back.
func checkDecoders(log Logger) bool {
	dir, err := os.MkdirTemp("", "scansep-check-*")
	if err != nil {
		log.Error("Cannot create temp directory: %v", err)
		return false
	}
	defer os.RemoveAll(dir)

	ok := true
	var tested []string
	for _, format := range probe.Formats {
		enc, found := encoders[format]
		if !found {
			log.Info("Decoder %s: registered (no self-test)", format)
			continue
		}
		if err := DecoderSelfTest(dir, format, enc); err != nil {
			log.Error("Decoder %s: %v", format, err)
			ok = false
			continue
		}
		tested = append(tested, format)
	}
	if len(tested) > 0 {
		log.Success("Decoders: %s", strings.Join(tested, ", "))
	}
	return ok
}

// DecoderSelfTest encodes a 3x2 image with enc into dir and probes it.
func DecoderSelfTest(dir, format string, enc func(io.Writer, image.Image) error) error {
	path := filepath.Join(dir, "selftest."+format)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = enc(f, image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	img, err := probe.Probe(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecoderBroken, err)
	}
	if img.Size != (probe.Size{Width: 3, Height: 2}) || img.Format != format {
		return fmt.Errorf("%w: got %s %s", ErrDecoderBroken, img.Format, img.Size)
	}
	return nil
}

// checkSymlinks tests symlink creation where dirs mode would write.
func checkSymlinks(cfg *config.Config, log Logger) bool {
	dir := symlinkTestDir(cfg)
	if err := SymlinkSupported(dir); err != nil {
		if cfg.CopyMode == config.CopySymlink {
			log.Error("%v", err)
			return false
		}
		log.Warn("%v (copy mode %s does not need them)", err, cfg.CopyMode)
		return true
	}
	log.Success("Symlinks work in %s", dir)
	return true
}

// symlinkTestDir returns the nearest existing directory at or above the
// output path, or the system temp directory.
func symlinkTestDir(cfg *config.Config) string {
	if cfg.Output == "" || cfg.OutputMode != config.ModeDirs {
		return os.TempDir()
	}
	dir := cfg.Output
	for {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return os.TempDir()
		}
		dir = parent
	}
}

// SymlinkSupported creates and removes a symlink inside dir.
func SymlinkSupported(dir string) error {
	tmp, err := os.MkdirTemp(dir, ".scansep-check-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSymlinkUnsupported, dir, err)
	}
	defer os.RemoveAll(tmp)

	target := filepath.Join(tmp, "target")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSymlinkUnsupported, dir, err)
	}
	if err := os.Symlink(target, filepath.Join(tmp, "link")); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSymlinkUnsupported, dir, err)
	}
	return nil
}

// checkInputs verifies that every input exists, and is a directory in the
// inventory modes.
func checkInputs(cfg *config.Config, log Logger) bool {
	if len(cfg.Inputs) == 0 {
		log.Info("Inputs: none given")
		return true
	}
	needDir := cfg.OutputMode == config.ModeXLSX || cfg.OutputMode == config.ModeList
	ok := true
	for _, in := range cfg.Inputs {
		fi, err := os.Stat(in)
		switch {
		case err != nil:
			log.Error("Input not found: %s", in)
			ok = false
		case needDir && !fi.IsDir():
			log.Error("Input is not a directory (%s mode): %s", cfg.OutputMode, in)
			ok = false
		default:
			log.Success("Input: %s", in)
		}
	}
	return ok
}

// CheckOutput is the pre-pipeline validation: in dirs mode with symlink
// placement the output location must accept symlinks. Returns a sentinel
// error on failure.
func CheckOutput(cfg *config.Config) error {
	if cfg.OutputMode != config.ModeDirs || cfg.CopyMode != config.CopySymlink || !cfg.WritesOutput() {
		return nil
	}
	return SymlinkSupported(symlinkTestDir(cfg))
}
