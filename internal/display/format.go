package display

import (
	"fmt"
	"sort"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// Plural returns "1 page", "3 pages" and the like.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

const histogramWidth = 30

// FormatHistogram renders a document length histogram (pages → documents)
// as aligned lines, shortest documents first, with bars scaled to the
// largest bucket:
//
//	 1 page  ██████████████ 14
//	 2 pages ██████          6
func FormatHistogram(lengths map[int]int) []string {
	if len(lengths) == 0 {
		return nil
	}
	keys := make([]int, 0, len(lengths))
	maxCount, maxKey := 0, 0
	for k, v := range lengths {
		keys = append(keys, k)
		maxCount = max(maxCount, v)
		maxKey = max(maxKey, k)
	}
	sort.Ints(keys)

	keyWidth := len(fmt.Sprint(maxKey))
	countWidth := len(fmt.Sprint(maxCount))
	lines := make([]string, len(keys))
	for i, k := range keys {
		v := lengths[k]
		bar := v * histogramWidth / maxCount
		if bar == 0 && v > 0 {
			bar = 1
		}
		unit := "pages"
		if k == 1 {
			unit = "page "
		}
		lines[i] = fmt.Sprintf("%*d %s %-*s %*d", keyWidth, k, unit,
			histogramWidth, strings.Repeat("█", bar), countWidth, v)
	}
	return lines
}
