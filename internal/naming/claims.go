package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Claims tracks output paths handed out during one run. Two documents can
// share a first-page filename when they come from different directories;
// the second one gets a "-dupN" variant instead of merging into the first.
// Not safe for concurrent use.
type Claims struct {
	owners   map[string]string // output path → owner key
	counters map[string]int    // requested path → next dup counter
}

// NewClaims creates an empty registry.
func NewClaims() *Claims {
	return &Claims{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Claim returns the output path owner should use. If requested is free (or
// already owned by owner) it is returned unchanged; otherwise the first free
// "<stem>-dupN<ext>" sibling is claimed.
func (c *Claims) Claim(owner, requested string) string {
	if cur, ok := c.owners[requested]; !ok || cur == owner {
		c.owners[requested] = owner
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	n := c.counters[requested]
	if n == 0 {
		n = 1
	}
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-dup%d%s", stem, n, ext))
		if cur, ok := c.owners[candidate]; !ok || cur == owner {
			c.counters[requested] = n + 1
			c.owners[candidate] = owner
			return candidate
		}
		n++
	}
}
