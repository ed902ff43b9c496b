package naming

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SidecarPath returns the metadata file associated with imagePath:
// <dir>/<sidecarDir>/<stem><ext>. An empty sidecarDir places it next to the
// image.
func SidecarPath(imagePath, sidecarDir, ext string) string {
	dir := filepath.Dir(imagePath)
	if sidecarDir != "" {
		dir = filepath.Join(dir, sidecarDir)
	}
	return filepath.Join(dir, Stem(imagePath)+ext)
}

// DocumentDir is the output directory for a document in dirs mode.
func DocumentDir(outputDir, documentName string) string {
	return filepath.Join(outputDir, documentName)
}

// DocumentPDF is the output file for a document in pdf mode.
func DocumentPDF(outputDir, documentName string) string {
	return filepath.Join(outputDir, Stem(documentName)+".pdf")
}
