package report

import (
	"strconv"
	"strings"

	"github.com/backmassage/scansep/internal/grouping"
	"github.com/backmassage/scansep/internal/naming"
)

// Inventory is the grouping result for one inventory.
type Inventory struct {
	ID        string
	Images    int
	Documents []grouping.Document
}

// Row is one document line on an inventory's detail sheet.
type Row struct {
	Start       int    // page number of the document's first scan
	Scan        string // file name of the first scan
	Pages       int
	PageNumbers string // comma-separated page numbers
}

// Rows builds the detail rows of inv. Page numbers come from the scan file
// names; a name without digits falls back to its 1-based position in the
// inventory.
func Rows(inv Inventory) []Row {
	rows := make([]Row, 0, len(inv.Documents))
	pos := 0
	for i := range inv.Documents {
		doc := &inv.Documents[i]
		nums := make([]string, doc.Len())
		start := 0
		for j, page := range doc.Pages {
			pos++
			n := naming.PageNumber(page.Name(), pos)
			if j == 0 {
				start = n
			}
			nums[j] = strconv.Itoa(n)
		}
		rows = append(rows, Row{
			Start:       start,
			Scan:        doc.Name,
			Pages:       doc.Len(),
			PageNumbers: strings.Join(nums, ", "),
		})
	}
	return rows
}

// DossierURL fills the {inventory} placeholder of template with id.
func DossierURL(template, id string) string {
	return strings.ReplaceAll(template, "{inventory}", id)
}
