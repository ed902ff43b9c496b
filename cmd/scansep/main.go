// Command scansep is the CLI entrypoint for grouping scanned pages into
// documents.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the grouping pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/scansep/internal/check"
	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/display"
	"github.com/backmassage/scansep/internal/logging"
	"github.com/backmassage/scansep/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "scansep: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "scansep: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scansep: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Document modes write next to the scans; the output must not sit inside
	// an input or a later run would discover its own output.
	if cfg.WritesOutput() && (cfg.OutputMode == config.ModeDirs || cfg.OutputMode == config.ModePDF) {
		if code := validateOutputPath(&cfg, log); code != 0 {
			return code
		}
	}

	log.Info("=== scansep v%s (%s) ===", version, commit)
	for _, in := range cfg.Inputs {
		log.Info("In:  %s", in)
	}
	if cfg.Output != "" {
		log.Info("Out: %s (%s)", cfg.Output, cfg.OutputMode)
	} else {
		log.Info("Out: none (statistics only)")
	}
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config: %s", cfg.ConfigFile)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN, no files will be written")
	}
	log.Info("")

	if err := check.CheckOutput(&cfg); err != nil {
		log.Error("%v", err)
		log.Error("Use --copy-mode link or copy")
		return 1
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline stops between items.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current item…")
		cancel()
	}()

	// Phase 4: Run pipeline (collect → probe → group → write).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if !stats.OK() {
		return 1
	}
	return 0
}

// validateOutputPath creates the output directory and rejects an output
// inside any input. Returns a non-zero exit code on failure.
func validateOutputPath(cfg *config.Config, log *logging.Logger) int {
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.Output)
		return 1
	}
	outputAbs, err := absPath(cfg.Output)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.Output)
		return 1
	}
	for _, in := range cfg.Inputs {
		inputAbs, err := absPath(in)
		if err != nil {
			log.Error("Input not found: %s", in)
			return 1
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			log.Error("%v", err)
			log.Error("Choose an output path outside: %s", in)
			return 1
		}
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
