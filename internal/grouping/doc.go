// Package grouping decides where one scanned document ends and the next
// begins.
//
// Images arrive in listing order. The first image in a directory always
// starts a document; after that each image is compared with a reference
// image (the previous page, or the first page of the current document) and
// either continues the document or starts a new one named after itself.
//
// Implemented:
//   - SizeMatch: same / spread-to-page / page-to-spread width hypotheses with
//     a shared height check (match.go)
//   - Policy: tolerant vs exact comparison, previous vs first anchor (policy.go)
//   - Grouper, Group, Summarize (grouper.go)
package grouping
