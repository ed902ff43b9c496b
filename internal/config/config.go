// Package config holds runtime configuration: defaults, an optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// OutputMode selects what the run produces.
type OutputMode string

const (
	ModeDirs OutputMode = "dirs" // One directory per document (default).
	ModeXLSX OutputMode = "xlsx" // Workbook report per inventory.
	ModePDF  OutputMode = "pdf"  // One PDF per document.
	ModeList OutputMode = "list" // Shuffled inventory listing (.txt).
)

// MatchPolicy selects how two page sizes are compared.
type MatchPolicy string

const (
	MatchTolerant MatchPolicy = "tolerant" // Same, half or double width within margin (default).
	MatchExact    MatchPolicy = "exact"    // Identical width and height.
)

// AnchorPolicy selects which image a new page is compared against.
type AnchorPolicy string

const (
	AnchorPrevious AnchorPolicy = "previous" // Immediately preceding image (default).
	AnchorFirst    AnchorPolicy = "first"    // First image of the current document.
)

// CopyMode controls how images are placed into document directories.
type CopyMode string

const (
	CopySymlink CopyMode = "symlink" // Absolute symlink to the source (default).
	CopyLink    CopyMode = "link"    // Hard link.
	CopyCopy    CopyMode = "copy"    // Byte copy.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultViewerURL is the dossier link template; {inventory} is replaced by
// the inventory identifier.
const DefaultViewerURL = "https://www.nationaalarchief.nl/onderzoeken/archief/1.04.02/invnr/{inventory}/file/"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	Inputs     []string
	Output     string
	OutputMode OutputMode
	ConfigFile string

	// Grouping policy.
	Match  MatchPolicy
	Anchor AnchorPolicy
	Margin float64 // Default: 0.05.
	Border float64 // Default: 0.01 (scan border correction for spreads).

	// Export.
	CopyMode   CopyMode
	Sidecars   bool   // Default: true. Cleared by --no-sidecars.
	SidecarDir string // Default: "page".
	SidecarExt string // Default: ".xml".

	// Report.
	ViewerURL string
	Seed      int64 // Shuffle seed for list mode; 0 picks a random seed.

	// Behavior, display and logging.
	DryRun    bool
	Verbose   bool
	ColorMode ColorMode
	LogFile   string
	CheckOnly bool
}

// DefaultConfig returns a Config with the built-in defaults. Used as the base
// before the config file and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		OutputMode: ModeDirs,
		Match:      MatchTolerant,
		Anchor:     AnchorPrevious,
		Margin:     0.05,
		Border:     0.01,
		CopyMode:   CopySymlink,
		Sidecars:   true,
		SidecarDir: "page",
		SidecarExt: ".xml",
		ViewerURL:  DefaultViewerURL,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and tolerances, and, outside CheckOnly mode,
// that inputs are present and the output path fits the output mode.
func (c *Config) Validate() error {
	switch c.OutputMode {
	case ModeDirs, ModeXLSX, ModePDF, ModeList:
	default:
		return errors.New("invalid output mode (use 'dirs', 'xlsx', 'pdf' or 'list')")
	}

	switch c.Match {
	case MatchTolerant, MatchExact:
	default:
		return errors.New("invalid match policy (use 'tolerant' or 'exact')")
	}

	switch c.Anchor {
	case AnchorPrevious, AnchorFirst:
	default:
		return errors.New("invalid anchor (use 'previous' or 'first')")
	}

	switch c.CopyMode {
	case CopySymlink, CopyLink, CopyCopy:
	default:
		return errors.New("invalid copy mode (use 'symlink', 'link' or 'copy')")
	}

	if c.Margin < 0 || c.Margin >= 1 {
		return fmt.Errorf("margin must be in [0, 1) (got %g)", c.Margin)
	}
	if c.Border < 0 || c.Border >= 1 {
		return fmt.Errorf("border correction must be in [0, 1) (got %g)", c.Border)
	}
	if c.SidecarExt != "" && !strings.HasPrefix(c.SidecarExt, ".") {
		c.SidecarExt = "." + c.SidecarExt
	}
	if c.OutputMode == ModeXLSX && !strings.Contains(c.ViewerURL, "{inventory}") {
		return errors.New("viewer URL template must contain {inventory}")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one input (-i/--input)")
	}
	return c.validateOutput()
}

// validateOutput enforces the output path shape for each mode: file modes
// need a path with the right extension, directory modes accept an empty
// output (statistics only).
func (c *Config) validateOutput() error {
	ext := strings.ToLower(filepath.Ext(c.Output))
	switch c.OutputMode {
	case ModeXLSX:
		if ext != ".xlsx" {
			return fmt.Errorf("output path must be a .xlsx file in xlsx mode (got %q)", c.Output)
		}
	case ModeList:
		if ext != ".txt" {
			return fmt.Errorf("output path must be a .txt file in list mode (got %q)", c.Output)
		}
	case ModePDF:
		if c.Output == "" {
			return errors.New("pdf mode needs an output directory (-o/--output)")
		}
	}
	return nil
}

// WritesOutput reports whether this run will write anything to disk.
func (c *Config) WritesOutput() bool {
	return c.Output != "" && !c.DryRun
}

// ValidatePaths ensures the resolved output path is not inside (or equal to)
// any resolved input directory, so a later run cannot discover its own output.
// Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return fmt.Errorf("output %s must not be inside input %s", outputAbs, inputAbs)
	}
	return nil
}
