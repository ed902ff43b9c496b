// Package display holds console presentation helpers: the startup banner
// and formatters for sizes and the document length histogram.
package display
