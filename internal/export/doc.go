// Package export writes grouped documents to disk: one directory per
// document (dirs mode) or one PDF per document (pdf mode).
//
// Both writers are sequential, check the context between documents, count
// soft failures in Result instead of aborting, and never overwrite an
// existing destination.
package export
