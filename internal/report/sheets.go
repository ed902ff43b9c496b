package report

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxSheetName = 31

// Characters Excel rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_",
	"?", "_", "/", "_", `\`, "_",
)

// SheetNames maps inventory identifiers to valid, unique sheet names.
// reserved names (the overview sheet) are never handed out.
func SheetNames(ids []string, reserved ...string) []string {
	used := make(map[string]bool)
	for _, r := range reserved {
		used[strings.ToLower(r)] = true
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		base := sanitizeSheetName(id)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := " (" + strconv.Itoa(n) + ")"
			name = truncateRunes(base, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func sanitizeSheetName(s string) string {
	s = sheetNameReplacer.Replace(s)
	s = strings.Trim(s, "'")
	s = truncateRunes(s, maxSheetName)
	s = strings.Trim(s, "'")
	if s == "" {
		s = "Sheet"
	}
	return s
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
