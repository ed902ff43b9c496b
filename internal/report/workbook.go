package report

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// OverviewSheet is the name of the workbook's first sheet.
const OverviewSheet = "Inventories"

var (
	overviewHeader = []string{"Inventory number", "Dossier link", "Number of documents"}
	detailHeader   = []string{"Start of document", "Scan name", "Number of pages", "Page numbers"}
)

const maxColWidth = 80

// WriteWorkbook writes the inventory report to path. The overview sheet
// lists each inventory with an internal link to its detail sheet, an
// external dossier link built from viewerURL, and its document count.
// Inventories without documents still get a row and an empty detail sheet.
func WriteWorkbook(path string, invs []Inventory, viewerURL string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	ids := make([]string, len(invs))
	for i, inv := range invs {
		ids[i] = inv.ID
	}
	sheets := SheetNames(ids, OverviewSheet)

	w := newSheetWriter(f, OverviewSheet, st)
	w.header(overviewHeader)
	for i, inv := range invs {
		row := i + 2
		w.cell(1, row, inv.ID)
		if err := w.link(1, row, fmt.Sprintf("'%s'!A1", sheets[i]), "Location"); err != nil {
			return err
		}
		w.cell(2, row, DossierURL(viewerURL, inv.ID))
		if err := w.link(2, row, DossierURL(viewerURL, inv.ID), "External"); err != nil {
			return err
		}
		w.cell(3, row, len(inv.Documents))
	}
	if err := w.finish(); err != nil {
		return err
	}

	for i, inv := range invs {
		if _, err := f.NewSheet(sheets[i]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheets[i], err)
		}
		w := newSheetWriter(f, sheets[i], st)
		w.header(detailHeader)
		for j, r := range Rows(inv) {
			row := j + 2
			w.cell(1, row, r.Start)
			w.cell(2, row, r.Scan)
			w.cell(3, row, r.Pages)
			w.cell(4, row, r.PageNumbers)
		}
		if err := w.finish(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

type styles struct {
	header int
	link   int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, err
	}
	s.link, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "1265BE", Underline: "single"}})
	return s, err
}

// sheetWriter fills one sheet and tracks column widths. The first error is
// kept and returned by finish.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles styles
	widths map[int]int
	err    error
}

func newSheetWriter(f *excelize.File, sheet string, s styles) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, styles: s, widths: make(map[int]int)}
}

func (w *sheetWriter) header(cols []string) {
	for i, h := range cols {
		w.cell(i+1, 1, h)
	}
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, "A1", last, w.styles.header)
}

func (w *sheetWriter) cell(col, row int, v interface{}) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, name, v); err != nil {
		w.err = err
		return
	}
	if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.widths[col] {
		w.widths[col] = n
	}
}

func (w *sheetWriter) link(col, row int, target, kind string) error {
	if w.err != nil {
		return w.err
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellHyperLink(w.sheet, name, target, kind); err != nil {
		return fmt.Errorf("link %s!%s: %w", w.sheet, name, err)
	}
	return w.f.SetCellStyle(w.sheet, name, name, w.styles.link)
}

// finish applies column widths sized to the longest value plus padding.
func (w *sheetWriter) finish() error {
	if w.err != nil {
		return w.err
	}
	for col, n := range w.widths {
		width := float64(min(n+2, maxColWidth))
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}
