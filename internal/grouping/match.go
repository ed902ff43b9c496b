package grouping

import "github.com/backmassage/scansep/internal/probe"

// DefaultBorder is the fraction of a two-page spread lost to the scan border
// and gutter, applied when comparing a spread with a single page.
const DefaultBorder = 0.01

// SizeMatch reports whether b plausibly belongs to the same scan layout as
// the reference a. The height of b must be within margin of a's height, and
// the width of b must be one of:
//
//	same:           b.W         ≈ a.W
//	page → spread:  b.W / 2     ≈ a.W * (1 - border)
//	spread → page:  b.W*(2-border) ≈ a.W
//
// Every "≈" is the closed interval [ref*(1-margin), ref*(1+margin)], so a
// margin of zero reduces the first hypothesis to exact equality.
func SizeMatch(a, b probe.Size, margin, border float64) bool {
	if !within(float64(b.Height), float64(a.Height), margin) {
		return false
	}
	aw, bw := float64(a.Width), float64(b.Width)
	switch {
	case within(bw, aw, margin):
		return true
	case within(bw/2, aw*(1-border), margin):
		return true
	case within(bw*(2-border), aw, margin):
		return true
	}
	return false
}

// within reports whether v lies in [ref*(1-margin), ref*(1+margin)].
func within(v, ref, margin float64) bool {
	return ref*(1-margin) <= v && v <= ref*(1+margin)
}
