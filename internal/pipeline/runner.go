package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/display"
	"github.com/backmassage/scansep/internal/export"
	"github.com/backmassage/scansep/internal/grouping"
	"github.com/backmassage/scansep/internal/logging"
	"github.com/backmassage/scansep/internal/probe"
	"github.com/backmassage/scansep/internal/report"
)

// Run is the top-level entry point. It dispatches on the output mode and
// returns aggregate stats. A returned error is a hard failure (bad input,
// duplicate inventory, unwritable report, interrupt); soft failures such as
// unreadable images are only counted in RunStats.Failed.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats
	var err error

	switch cfg.OutputMode {
	case config.ModeXLSX:
		err = runWorkbook(ctx, cfg, log, &stats)
	case config.ModeList:
		err = runListing(ctx, cfg, log, &stats)
	default:
		err = runDocuments(ctx, cfg, log, &stats)
	}

	if errors.Is(err, context.Canceled) {
		log.Warn("Interrupted")
		logSummary(cfg, log, &stats)
		return stats, err
	}
	if err != nil {
		return stats, err
	}
	logSummary(cfg, log, &stats)
	return stats, nil
}

// runDocuments handles dirs and pdf modes: discover → probe → group → write.
func runDocuments(ctx context.Context, cfg *config.Config, log *logging.Logger, stats *RunStats) error {
	files, err := Discover(cfg.Inputs)
	if err != nil {
		return err
	}
	stats.Images = len(files)
	log.Info("Found %s", display.Plural(len(files), "image", "images"))

	images, err := probeAll(ctx, cfg, log, files, stats)
	if err != nil {
		return err
	}

	policy := grouping.PolicyFromConfig(cfg)
	log.Info("Grouping: %s", policy)
	docs := grouping.Group(images, policy)
	stats.Summary = grouping.Summarize(docs)

	if cfg.Output == "" {
		log.Info("No output path; statistics only")
		return nil
	}

	opts := export.OptionsFromConfig(cfg)
	var res export.Result
	if cfg.OutputMode == config.ModePDF {
		res, err = export.WritePDFs(ctx, docs, opts, log)
	} else {
		res, err = export.WriteDirs(ctx, docs, opts, log)
	}
	stats.addExport(res)
	return err
}

// runWorkbook handles xlsx mode: one report row and sheet per inventory.
func runWorkbook(ctx context.Context, cfg *config.Config, log *logging.Logger, stats *RunStats) error {
	invs, err := CollectInventories(cfg.Inputs)
	if err != nil {
		return err
	}
	stats.Inventories = len(invs)
	log.Info("Found %s", display.Plural(len(invs), "inventory", "inventories"))

	policy := grouping.PolicyFromConfig(cfg)
	log.Info("Grouping: %s", policy)

	reports := make([]report.Inventory, 0, len(invs))
	for i, inv := range invs {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Images += len(inv.Images)
		if len(inv.Images) == 0 {
			log.Warn("[%d/%d] %s: no images", i+1, len(invs), inv.Name)
			stats.Empty++
			reports = append(reports, report.Inventory{ID: inv.Name})
			continue
		}

		images, err := probeAll(ctx, cfg, log, inv.Images, stats)
		if err != nil {
			return err
		}
		docs := grouping.Group(images, policy)
		sum := grouping.Summarize(docs)
		stats.Summary.Merge(sum)
		log.Info("[%d/%d] %s: %s, %s", i+1, len(invs), inv.Name,
			display.Plural(len(inv.Images), "image", "images"),
			display.Plural(sum.Documents, "document", "documents"))
		reports = append(reports, report.Inventory{ID: inv.Name, Images: len(inv.Images), Documents: docs})
	}

	if cfg.DryRun {
		log.Info("[DRY] Would write %s", cfg.Output)
		return nil
	}
	if err := report.WriteWorkbook(cfg.Output, reports, cfg.ViewerURL); err != nil {
		return err
	}
	stats.Written++
	log.Success("Wrote %s", cfg.Output)
	return nil
}

// runListing handles list mode: count images per inventory and write the
// identifiers in shuffled order. No image is decoded.
func runListing(ctx context.Context, cfg *config.Config, log *logging.Logger, stats *RunStats) error {
	invs, err := CollectInventories(cfg.Inputs)
	if err != nil {
		return err
	}
	stats.Inventories = len(invs)

	var ids []string
	counts := make(map[string]int, len(invs))
	for _, inv := range invs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(inv.Images) == 0 {
			log.Warn("%s: no images, left out of the listing", inv.Name)
			stats.Empty++
			continue
		}
		ids = append(ids, inv.Name)
		counts[inv.Name] = len(inv.Images)
		stats.Images += len(inv.Images)
	}

	c := report.CountImages(ids, counts)
	log.Info("Inventories: %d", len(ids))
	log.Info("Total images: %d", c.Total)
	if len(ids) > 0 {
		log.Info("Max images: %d (%s)", c.Max, c.MaxID)
		log.Info("Min images: %d (%s)", c.Min, c.MinID)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug(cfg.Verbose, "Shuffle seed: %d", seed)
	order := report.Shuffle(ids, seed)

	if cfg.DryRun {
		log.Info("[DRY] Would write %s", cfg.Output)
		return nil
	}
	if err := report.WriteListing(cfg.Output, order); err != nil {
		return err
	}
	stats.Written++
	log.Success("Wrote %s", cfg.Output)
	return nil
}

// probeAll reads the dimensions of every path. Unreadable images are logged,
// counted as failed and left out; the context is checked between images.
func probeAll(ctx context.Context, cfg *config.Config, log *logging.Logger, paths []string, stats *RunStats) ([]probe.Image, error) {
	images := make([]probe.Image, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := probe.Probe(path)
		if err != nil {
			log.Error("Cannot read image: %v", err)
			stats.Failed++
			continue
		}
		stats.Probed++
		log.Debug(cfg.Verbose, "[%d/%d] %s %s (%s)", i+1, len(paths), img.Name(), img.Size, img.Format)
		images = append(images, img)
	}
	return images, nil
}

func (s *RunStats) addExport(r export.Result) {
	s.Written += r.Documents
	s.Placed += r.Placed + r.Sidecars
	s.Skipped += r.Skipped
	s.Failed += r.Failed
	s.Bytes += r.Bytes
}

// --- Logging helpers ---

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if stats.Inventories > 0 {
		log.Info("Inventories: %d (%d empty)", stats.Inventories, stats.Empty)
	}
	log.Info("Images: %d found, %d read, %d failed", stats.Images, stats.Probed, stats.Failed)

	if cfg.OutputMode != config.ModeList {
		sum := stats.Summary
		log.Info("Documents: %d (%s)", sum.Documents, display.Plural(sum.Pages, "page", "pages"))
		for _, l := range display.FormatHistogram(sum.Lengths) {
			log.Info("  %s", l)
		}
	}

	switch {
	case cfg.DryRun:
		log.Info("Nothing written (dry run)")
	case cfg.OutputMode == config.ModeDirs && stats.Written > 0:
		log.Success("Wrote %s, placed %s (%d skipped)",
			display.Plural(stats.Written, "directory", "directories"),
			display.Plural(stats.Placed, "file", "files"), stats.Skipped)
	case cfg.OutputMode == config.ModePDF && stats.Written > 0:
		log.Success("Wrote %s, %s (%d skipped)",
			display.Plural(stats.Written, "PDF", "PDFs"),
			display.FormatBytes(stats.Bytes), stats.Skipped)
	}
	if stats.Failed > 0 {
		log.Warn("%d failed", stats.Failed)
	}
}
