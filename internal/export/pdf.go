package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Decoders for formats that are transcoded before import.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/backmassage/scansep/internal/grouping"
	"github.com/backmassage/scansep/internal/naming"
)

// Formats pdfcpu imports directly; anything else goes through PNG.
var pdfNative = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// WritePDFs writes one PDF per document to <output>/<first page stem>.pdf,
// one page per image with the page sized to the image. Existing PDFs are
// skipped because pdfcpu would append to them.
func WritePDFs(ctx context.Context, docs []grouping.Document, opts Options, log Logger) (Result, error) {
	var res Result
	claims := naming.NewClaims()

	if !opts.DryRun {
		if err := os.MkdirAll(opts.Output, 0o755); err != nil {
			return res, fmt.Errorf("create output directory: %w", err)
		}
	}

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		doc := &docs[i]
		out := claims.Claim(doc.First().Path, naming.DocumentPDF(opts.Output, doc.Name))

		if _, err := os.Stat(out); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(out))
			res.Skipped++
			continue
		}
		if opts.DryRun {
			log.Info("[DRY] %s (%d pages) -> %s", doc.Name, doc.Len(), filepath.Base(out))
			res.Documents++
			continue
		}

		if err := writePDF(doc, out, log); err != nil {
			log.Error("PDF failed for %s: %v", doc.Name, err)
			os.Remove(out)
			res.Failed++
			continue
		}
		if fi, err := os.Stat(out); err == nil {
			res.Bytes += fi.Size()
		}
		res.Documents++
		res.Placed += doc.Len()
		log.Debug(opts.Verbose, "%s: %d pages", filepath.Base(out), doc.Len())
	}
	return res, nil
}

// writePDF imports the document's pages, retrying once with every page
// transcoded to PNG when pdfcpu rejects an image it claims to support
// (e.g. an unusual TIFF compression).
func writePDF(doc *grouping.Document, out string, log Logger) error {
	for _, stage := range []importStage{stageNative, stageTranscodeAll} {
		err := importPages(doc, out, stage)
		if err == nil {
			return nil
		}
		if stage == stageTranscodeAll {
			return err
		}
		log.Warn("Retry %s: transcode pages to PNG (%v)", doc.Name, err)
		os.Remove(out)
	}
	return nil
}

type importStage int

const (
	stageNative       importStage = iota // pass pdfcpu-native formats through
	stageTranscodeAll                    // transcode every page to PNG
)

func importPages(doc *grouping.Document, out string, stage importStage) error {
	tmp, err := os.MkdirTemp("", "scansep-pdf-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	files := make([]string, 0, doc.Len())
	for i, page := range doc.Pages {
		ext := strings.ToLower(filepath.Ext(page.Path))
		if stage == stageNative && pdfNative[ext] {
			files = append(files, page.Path)
			continue
		}
		dst := filepath.Join(tmp, fmt.Sprintf("%04d.png", i+1))
		if err := transcodePNG(page.Path, dst); err != nil {
			return fmt.Errorf("transcode %s: %w", page.Name(), err)
		}
		files = append(files, dst)
	}

	conf := model.NewDefaultConfiguration()
	return api.ImportImagesFile(files, out, nil, conf)
}

// transcodePNG decodes src with the registered image decoders and writes it
// to dst as PNG.
func transcodePNG(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
