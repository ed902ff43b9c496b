package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into IO, grouping, export, report, display, and utility.
// Negated flags (e.g. --no-sidecars) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. A --config file is
// loaded first so that its values become the defaults flags override. On
// --help or --version it prints and exits. On error it returns non-nil.
//
// -i/--input behaves like a greedy list: every bare path after it, up to the
// next flag, is an input too, so "-i a b c -o out" works.
func ParseFlags(cfg *Config, args []string, version string) error {
	if path := configPathFromArgs(args); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return err
		}
	}

	fs := flag.NewFlagSet("scansep", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var negated negatedFlags

	defineIOFlags(fs, cfg)
	defineGroupingFlags(fs, cfg)
	defineExportFlags(fs, cfg, &negated)
	defineReportFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		n := 0
		for n < len(rest) && !strings.HasPrefix(rest[n], "-") {
			cfg.Inputs = append(cfg.Inputs, rest[n])
			n++
		}
		if n == 0 {
			return fmt.Errorf("unexpected argument %q", rest[0])
		}
		rest = rest[n:]
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "scansep v"+version)
		os.Exit(0)
	}

	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = NormalizeDirArg(in)
	}
	if cfg.OutputMode == ModeDirs || cfg.OutputMode == ModePDF {
		cfg.Output = NormalizeDirArg(cfg.Output)
	}
	return nil
}

// configPathFromArgs finds a --config value without a full parse, so the file
// can seed defaults before the real flag definitions are registered.
func configPathFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noSidecars  bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineIOFlags registers -i/--input, -o/--output, --output-mode, --config.
func defineIOFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&inputsValue{&cfg.Inputs}, "input", "Input file or directory (repeatable)")
	fs.Var(&inputsValue{&cfg.Inputs}, "i", "Same as --input")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output directory or file")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Same as --output")
	fs.Var(newEnumValue(&cfg.OutputMode, ModeDirs, ModeXLSX, ModePDF, ModeList), "output-mode", "Output mode: dirs | xlsx | pdf | list")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file")
}

// defineGroupingFlags registers --match, --anchor, --margin, --border.
func defineGroupingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(newEnumValue(&cfg.Match, MatchTolerant, MatchExact), "match", "Size comparison: tolerant | exact")
	fs.Var(newEnumValue(&cfg.Anchor, AnchorPrevious, AnchorFirst), "anchor", "Compare with: previous | first")
	fs.Float64Var(&cfg.Margin, "margin", cfg.Margin, "Size tolerance as a fraction")
	fs.Float64Var(&cfg.Border, "border", cfg.Border, "Scan border correction for spreads")
}

// defineExportFlags registers --copy-mode, --no-sidecars, --sidecar-dir, --sidecar-ext.
func defineExportFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(newEnumValue(&cfg.CopyMode, CopySymlink, CopyLink, CopyCopy), "copy-mode", "Placement: symlink | link | copy")
	fs.BoolVar(&n.noSidecars, "no-sidecars", false, "Do not place sidecar metadata files")
	fs.StringVar(&cfg.SidecarDir, "sidecar-dir", cfg.SidecarDir, "Sidecar directory next to each image")
	fs.StringVar(&cfg.SidecarExt, "sidecar-ext", cfg.SidecarExt, "Sidecar file extension")
}

// defineReportFlags registers --viewer-url and --seed.
func defineReportFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ViewerURL, "viewer-url", cfg.ViewerURL, "Dossier link template ({inventory} is replaced)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Shuffle seed for list mode (0 = random)")
}

// defineDisplayFlags registers dry-run, --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; write nothing")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Show this help and exit")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noSidecars {
		cfg.Sidecars = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 32
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "scansep v" + version + ": group scanned pages into documents"},
		{"", ""},
		{"  scansep [OPTIONS] -i <input>... [-o <output>]", ""},
		{"", ""},
		{"Input & output", ""},
		{"  -i, --input <path>...", "Image files or directories (repeatable)"},
		{"  -o, --output <path>", "Directory (dirs, pdf) or file (.xlsx, .txt)"},
		{"  --output-mode <mode>", "dirs | xlsx | pdf | list (default: dirs)"},
		{"  --config <file.yaml>", "Load defaults from a YAML file"},
		{"", ""},
		{"Grouping", ""},
		{"  --match <tolerant|exact>", "Size comparison (default: tolerant)"},
		{"  --anchor <previous|first>", "Compare with previous page or document start"},
		{"  --margin <fraction>", "Size tolerance (default: 0.05)"},
		{"  --border <fraction>", "Spread border correction (default: 0.01)"},
		{"", ""},
		{"Export", ""},
		{"  --copy-mode <mode>", "symlink | link | copy (default: symlink)"},
		{"  --no-sidecars", "Do not place sidecar metadata files"},
		{"  --sidecar-dir <name>", "Sidecar directory (default: page)"},
		{"  --sidecar-ext <ext>", "Sidecar extension (default: .xml)"},
		{"", ""},
		{"Report", ""},
		{"  --viewer-url <template>", "Dossier link; {inventory} is replaced"},
		{"  --seed <n>", "Listing shuffle seed (default: random)"},
		{"", ""},
		{"Display", ""},
		{"  -d, --dry-run", "Preview only; write nothing"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  -c, --check", "Diagnostics (decoders, symlinks, inputs)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types and repeated inputs with flag.Var.

type inputsValue struct{ p *[]string }

func (v *inputsValue) String() string {
	if v.p == nil {
		return ""
	}
	return strings.Join(*v.p, ",")
}

func (v *inputsValue) Set(s string) error {
	*v.p = append(*v.p, s)
	return nil
}

type enumValue[T ~string] struct {
	p       *T
	allowed []T
}

func newEnumValue[T ~string](p *T, allowed ...T) *enumValue[T] {
	return &enumValue[T]{p: p, allowed: allowed}
}

func (e *enumValue[T]) String() string {
	if e.p == nil {
		return ""
	}
	return string(*e.p)
}

func (e *enumValue[T]) Set(s string) error {
	want := T(strings.ToLower(s))
	for _, a := range e.allowed {
		if a == want {
			*e.p = a
			return nil
		}
	}
	names := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		names[i] = "'" + string(a) + "'"
	}
	return fmt.Errorf("invalid value %q (use %s)", s, strings.Join(names, ", "))
}
