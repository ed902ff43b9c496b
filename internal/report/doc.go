// Package report writes per-inventory results: an xlsx workbook with one
// overview sheet and one detail sheet per inventory, or a shuffled plain
// text listing of inventory identifiers.
package report
