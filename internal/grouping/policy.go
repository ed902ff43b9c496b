package grouping

import (
	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/probe"
)

// Policy holds the knobs that distinguish grouping variants. They change
// which image is compared and how strictly, never the shape of the loop.
type Policy struct {
	Match  config.MatchPolicy
	Anchor config.AnchorPolicy
	Margin float64
	Border float64
}

// DefaultPolicy is tolerant matching against the previous page with a 5%
// margin.
func DefaultPolicy() Policy {
	return Policy{
		Match:  config.MatchTolerant,
		Anchor: config.AnchorPrevious,
		Margin: 0.05,
		Border: DefaultBorder,
	}
}

// PolicyFromConfig copies the grouping fields out of cfg.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		Match:  cfg.Match,
		Anchor: cfg.Anchor,
		Margin: cfg.Margin,
		Border: cfg.Border,
	}
}

// Matches reports whether cur continues a document whose reference page has
// size ref.
func (p Policy) Matches(ref, cur probe.Size) bool {
	if p.Match == config.MatchExact {
		return ref == cur
	}
	return SizeMatch(ref, cur, p.Margin, p.Border)
}

// String returns a short description for log output.
func (p Policy) String() string {
	if p.Match == config.MatchExact {
		return "exact size, compared with " + string(p.Anchor) + " page"
	}
	return "tolerant size, compared with " + string(p.Anchor) + " page"
}
