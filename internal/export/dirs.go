package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/backmassage/scansep/internal/grouping"
	"github.com/backmassage/scansep/internal/naming"
)

// WriteDirs creates <output>/<document name>/ for every document and places
// its pages there, plus each page's sidecar when one exists. Document names
// shared by two source directories get a "-dupN" suffix. It stops with the
// context's error when ctx is cancelled between documents.
func WriteDirs(ctx context.Context, docs []grouping.Document, opts Options, log Logger) (Result, error) {
	var res Result
	claims := naming.NewClaims()

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		doc := &docs[i]
		dir := claims.Claim(doc.First().Path, naming.DocumentDir(opts.Output, doc.Name))

		if opts.DryRun {
			log.Info("[DRY] %s (%d pages) -> %s", doc.Name, doc.Len(), dir)
			res.Documents++
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("Cannot create %s: %v", dir, err)
			res.Failed++
			continue
		}
		writeDocDir(doc, dir, opts, log, &res)
		res.Documents++
		log.Debug(opts.Verbose, "%s: %d pages", filepath.Base(dir), doc.Len())
	}
	return res, nil
}

func writeDocDir(doc *grouping.Document, dir string, opts Options, log Logger, res *Result) {
	for _, page := range doc.Pages {
		dst := filepath.Join(dir, page.Name())
		place(page.Path, dst, opts, log, res, &res.Placed)

		if !opts.Sidecars {
			continue
		}
		src := naming.SidecarPath(page.Path, opts.SidecarDir, opts.SidecarExt)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		scDst := naming.SidecarPath(dst, opts.SidecarDir, opts.SidecarExt)
		if err := os.MkdirAll(filepath.Dir(scDst), 0o755); err != nil {
			log.Error("Cannot create %s: %v", filepath.Dir(scDst), err)
			res.Failed++
			continue
		}
		place(src, scDst, opts, log, res, &res.Sidecars)
	}
}

func place(src, dst string, opts Options, log Logger, res *Result, counter *int) {
	placed, n, err := Place(src, dst, opts.CopyMode)
	switch {
	case err != nil:
		log.Error("Cannot place %s: %v", filepath.Base(src), err)
		res.Failed++
	case !placed:
		log.Debug(opts.Verbose, "Skip (exists): %s", dst)
		res.Skipped++
	default:
		*counter++
		res.Bytes += n
	}
}
