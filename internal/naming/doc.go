// Package naming maps images to their sidecar metadata files, claims unique
// output names for documents, and reads page numbers out of scan filenames.
//
//   - SidecarPath: <dir>/<stem>.<ext> → <dir>/<sidecar dir>/<stem><sidecar ext>
//     (PageXML layout by default: <dir>/page/<stem>.xml).
//   - Claims: in-run output name registry; a second document asking for a
//     taken name gets a "-dupN" variant.
//   - PageNumber: ordered regex rule table over the filename stem, falling
//     back to the scan's position.
package naming
