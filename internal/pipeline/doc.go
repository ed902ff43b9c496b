// Package pipeline runs one scansep invocation: it collects image paths (or
// inventories), probes their dimensions, groups them into documents, and
// hands the result to the exporter or reporter selected by the output mode.
//
// Files:
//   - discover.go: image extension filter, recursive walk, input checks
//   - order.go: natural sort order (x/text collate, numeric)
//   - inventory.go: inventory collection for xlsx and list modes
//   - runner.go: Run, per-mode flows and summary logging
//   - stats.go: RunStats
package pipeline
