package report

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Shuffle returns a copy of ids in an order determined by seed.
func Shuffle(ids []string, seed int64) []string {
	out := slices.Clone(ids)
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// WriteListing writes ids to path, one per line.
func WriteListing(path string, ids []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}

// Counts summarizes image counts across inventories.
type Counts struct {
	Total    int
	Max, Min int
	MaxID    string
	MinID    string
}

// CountImages computes total, max and min over counts (identifier → images).
// ids fixes the tie-breaking order: the first inventory wins.
func CountImages(ids []string, counts map[string]int) Counts {
	var c Counts
	for i, id := range ids {
		n := counts[id]
		c.Total += n
		if i == 0 || n > c.Max {
			c.Max, c.MaxID = n, id
		}
		if i == 0 || n < c.Min {
			c.Min, c.MinID = n, id
		}
	}
	return c
}
