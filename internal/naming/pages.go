package naming

import (
	"regexp"
	"strconv"
)

// pageRule extracts a page number from a filename stem. Rules are tried in
// order; the first match wins.
type pageRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// pageRules, most specific first:
//
//	NL-HaNA_1.04.02_1547_0012   → 12   (trailing digits)
//	scan_0012r, scan-0012_v     → 12   (recto/verso marker)
//	0012_bw, page12-final       → 12   (last digit run)
var pageRules = []pageRule{
	{"trailing digits", regexp.MustCompile(`(\d+)$`)},
	{"recto/verso", regexp.MustCompile(`(?i)(\d+)[_-]?[rv]$`)},
	{"last digit run", regexp.MustCompile(`(\d+)\D*$`)},
}

// PageNumber returns the page number encoded in a scan filename, or
// position when the name carries no digits.
func PageNumber(name string, position int) int {
	stem := Stem(name)
	for _, r := range pageRules {
		m := r.Pattern.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n
	}
	return position
}
