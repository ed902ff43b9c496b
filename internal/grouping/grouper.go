package grouping

import (
	"sort"

	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/probe"
)

// Document is a contiguous run of pages judged to be one physical document.
// Name is the file name of its first page; Dir is the directory all its
// pages share. Pages is never empty.
type Document struct {
	Name  string
	Dir   string
	Pages []probe.Image
}

// First returns the first page of the document.
func (d *Document) First() probe.Image { return d.Pages[0] }

// Len returns the number of pages.
func (d *Document) Len() int { return len(d.Pages) }

// Grouper assigns images to documents one at a time. It is not safe for
// concurrent use.
type Grouper struct {
	policy Policy
	docs   []Document
	prev   probe.Image
}

// NewGrouper returns an empty Grouper using p.
func NewGrouper(p Policy) *Grouper {
	return &Grouper{policy: p}
}

// Add places img and reports whether it started a new document. A change of
// parent directory always starts a new document, whatever the sizes.
func (g *Grouper) Add(img probe.Image) bool {
	if len(g.docs) == 0 || img.Dir() != g.prev.Dir() {
		g.start(img)
		return true
	}

	cur := &g.docs[len(g.docs)-1]
	ref := g.prev.Size
	if g.policy.Anchor == config.AnchorFirst {
		ref = cur.First().Size
	}
	if !g.policy.Matches(ref, img.Size) {
		g.start(img)
		return true
	}

	cur.Pages = append(cur.Pages, img)
	g.prev = img
	return false
}

func (g *Grouper) start(img probe.Image) {
	g.docs = append(g.docs, Document{
		Name:  img.Name(),
		Dir:   img.Dir(),
		Pages: []probe.Image{img},
	})
	g.prev = img
}

// Documents returns the documents built so far, in input order.
func (g *Grouper) Documents() []Document { return g.docs }

// Group runs a fresh Grouper over images.
func Group(images []probe.Image, p Policy) []Document {
	g := NewGrouper(p)
	for _, img := range images {
		g.Add(img)
	}
	return g.Documents()
}

// Summary aggregates a grouping result.
type Summary struct {
	Documents int
	Pages     int
	Lengths   map[int]int // pages per document → number of documents
}

// Summarize counts documents, pages and the document length histogram.
func Summarize(docs []Document) Summary {
	s := Summary{Lengths: make(map[int]int)}
	for i := range docs {
		s.Documents++
		s.Pages += docs[i].Len()
		s.Lengths[docs[i].Len()]++
	}
	return s
}

// Merge adds other's counts into s.
func (s *Summary) Merge(other Summary) {
	if s.Lengths == nil {
		s.Lengths = make(map[int]int)
	}
	s.Documents += other.Documents
	s.Pages += other.Pages
	for k, v := range other.Lengths {
		s.Lengths[k] += v
	}
}

// SortedLengths returns the histogram keys in ascending order.
func (s Summary) SortedLengths() []int {
	keys := make([]int, 0, len(s.Lengths))
	for k := range s.Lengths {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
