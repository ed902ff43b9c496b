package pipeline

import "github.com/backmassage/scansep/internal/grouping"

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Images      int // image paths found
	Probed      int // images whose dimensions were read
	Failed      int // unreadable images and failed writes
	Inventories int
	Empty       int // inventories without images
	Written     int // directories, PDFs, or files produced
	Placed      int // images and sidecars placed (dirs mode)
	Skipped     int // destinations that already existed
	Bytes       int64
	Summary     grouping.Summary
}

// OK reports whether the run finished without soft failures.
func (s *RunStats) OK() bool { return s.Failed == 0 }
