package naming

import (
	"path/filepath"
	"testing"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		name       string
		image      string
		sidecarDir string
		ext        string
		want       string
	}{
		{"pagexml layout", "/scans/inv1/0001.jpg", "page", ".xml", "/scans/inv1/page/0001.xml"},
		{"multi-dot name", "/scans/inv1/NL-HaNA_1.04.02_1_0001.tif", "page", ".xml", "/scans/inv1/page/NL-HaNA_1.04.02_1_0001.xml"},
		{"next to image", "/scans/inv1/0001.jpg", "", ".json", "/scans/inv1/0001.json"},
		{"nested sidecar dir", "/s/a.png", "meta/alto", ".xml", "/s/meta/alto/a.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SidecarPath(tt.image, tt.sidecarDir, tt.ext)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("SidecarPath(%q) = %q, want %q", tt.image, got, tt.want)
			}
		})
	}
}

func TestDocumentPaths(t *testing.T) {
	if got := DocumentDir("/out", "0001.jpg"); got != filepath.FromSlash("/out/0001.jpg") {
		t.Errorf("DocumentDir = %q", got)
	}
	if got := DocumentPDF("/out", "0001.jpg"); got != filepath.FromSlash("/out/0001.pdf") {
		t.Errorf("DocumentPDF = %q", got)
	}
}

func TestClaims(t *testing.T) {
	c := NewClaims()

	p1 := c.Claim("/inv1/0001.jpg", "/out/0001.jpg")
	if p1 != "/out/0001.jpg" {
		t.Errorf("first claim = %q, want /out/0001.jpg", p1)
	}

	// Same owner asks again and keeps its path.
	if again := c.Claim("/inv1/0001.jpg", "/out/0001.jpg"); again != p1 {
		t.Errorf("repeat claim = %q, want %q", again, p1)
	}

	p2 := c.Claim("/inv2/0001.jpg", "/out/0001.jpg")
	if p2 != filepath.FromSlash("/out/0001-dup1.jpg") {
		t.Errorf("second owner = %q, want /out/0001-dup1.jpg", p2)
	}

	p3 := c.Claim("/inv3/0001.jpg", "/out/0001.jpg")
	if p3 != filepath.FromSlash("/out/0001-dup2.jpg") {
		t.Errorf("third owner = %q, want /out/0001-dup2.jpg", p3)
	}

	pdf := c.Claim("/inv2/0001.jpg", "/out/0001.pdf")
	if pdf != "/out/0001.pdf" {
		t.Errorf("unrelated path = %q, want /out/0001.pdf", pdf)
	}
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		position int
		want     int
	}{
		{"archive scan name", "NL-HaNA_1.04.02_1547_0012.jpg", 3, 12},
		{"plain number", "0007.tif", 1, 7},
		{"recto marker", "scan_0012r.jpg", 1, 12},
		{"verso marker with dash", "scan-0013-V.jpg", 1, 13},
		{"suffix after digits", "page12-final.png", 1, 12},
		{"no digits", "cover.jpg", 4, 4},
		{"digits only in extension", "front.jp2", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageNumber(tt.file, tt.position); got != tt.want {
				t.Errorf("PageNumber(%q, %d) = %d, want %d", tt.file, tt.position, got, tt.want)
			}
		})
	}
}
