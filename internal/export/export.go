package export

import "github.com/backmassage/scansep/internal/config"

// Logger is the subset of the console logger the writers use.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Options controls where and how documents are written.
type Options struct {
	Output     string
	CopyMode   config.CopyMode
	Sidecars   bool
	SidecarDir string
	SidecarExt string
	DryRun     bool
	Verbose    bool
}

// OptionsFromConfig extracts the export settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Output:     cfg.Output,
		CopyMode:   cfg.CopyMode,
		Sidecars:   cfg.Sidecars,
		SidecarDir: cfg.SidecarDir,
		SidecarExt: cfg.SidecarExt,
		DryRun:     cfg.DryRun,
		Verbose:    cfg.Verbose,
	}
}

// Result counts what a writer did.
type Result struct {
	Documents int   // documents written (or previewed in dry-run)
	Placed    int   // images placed
	Sidecars  int   // sidecar files placed
	Skipped   int   // destinations that already existed
	Failed    int   // placements or PDFs that failed
	Bytes     int64 // bytes written (copies and PDFs)
}
