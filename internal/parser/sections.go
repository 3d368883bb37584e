package parser

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrst/internal/doctree"
)

// sectionBuilder nests sections by heading level. Blocks are appended to
// the innermost open section, or to the document before the first heading.
type sectionBuilder struct {
	doc   *doctree.Node
	stack []sectionEntry
}

type sectionEntry struct {
	node  *doctree.Node
	level int
}

func newSectionBuilder() *sectionBuilder {
	doc := doctree.Document()
	// Root is level 0; all h1+ nest under it.
	return &sectionBuilder{doc: doc, stack: []sectionEntry{{node: doc, level: 0}}}
}

// heading opens a section at level, closing any open section at the same
// or a deeper level. title holds the inline content of the heading.
func (b *sectionBuilder) heading(level int, title ...*doctree.Node) *doctree.Node {
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	sec := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, title...))
	b.current().Append(sec)
	b.stack = append(b.stack, sectionEntry{node: sec, level: level})
	return sec
}

// add appends blocks to the innermost open section.
func (b *sectionBuilder) add(blocks ...*doctree.Node) {
	b.current().Append(blocks...)
}

func (b *sectionBuilder) current() *doctree.Node {
	return b.stack[len(b.stack)-1].node
}

// paragraphs splits text on blank lines and returns one paragraph per
// non-empty block.
func paragraphs(text string) []*doctree.Node {
	var out []*doctree.Node
	var current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, doctree.Para(strings.Join(current, "\n")))
			current = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()
	return out
}

// baseTitle strips the directory and extension from a filename.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithTitle moves the top-level content of doc into one section with the
// given title.
func WithTitle(doc *doctree.Node, title string) *doctree.Node {
	children := doc.Children
	doc.Children = nil
	return doc.Append(doctree.Section(title, children...))
}
