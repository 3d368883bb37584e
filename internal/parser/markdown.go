package parser

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docrst/internal/doctree"
)

// The goldmark parser configuration never changes and is safe to share;
// each Parse call creates its own state.
var (
	markdownOnce sync.Once
	markdownMD   goldmark.Markdown
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownMD = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
				extension.Footnote,
			),
		)
	})
	return markdownMD
}

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read markdown")
	}

	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, errors.Wrapf(err, "front matter in %s", filename)
	}

	doc := markdown().Parser().Parse(text.NewReader(body))
	c := &mdConverter{src: body, sections: newSectionBuilder()}
	if meta != nil {
		c.sections.add(meta)
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			c.sections.heading(h.Level, c.inlines(h)...)
			continue
		}
		c.sections.add(c.block(n))
	}
	return c.sections.doc, nil
}

type mdConverter struct {
	src      []byte
	sections *sectionBuilder
}

// block converts a block-level node. Unknown blocks yield nil, which
// Append ignores.
func (c *mdConverter) block(n ast.Node) *doctree.Node {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return doctree.Paragraph(c.inlines(n)...)
	case *ast.Heading:
		// Headings nested in containers cannot open sections.
		return doctree.New(doctree.KindRubric, c.inlines(n)...)
	case *ast.ThematicBreak:
		return doctree.New(doctree.KindTransition)
	case *ast.FencedCodeBlock:
		return doctree.LiteralBlock(c.lines(n), normalizeLanguage(string(n.Language(c.src))))
	case *ast.CodeBlock:
		return doctree.LiteralBlock(c.lines(n), "")
	case *ast.Blockquote:
		return doctree.New(doctree.KindBlockQuote, c.blocks(n)...)
	case *ast.List:
		kind := doctree.KindBulletList
		if n.IsOrdered() {
			kind = doctree.KindEnumeratedList
		}
		list := doctree.New(kind)
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			list.Append(doctree.New(doctree.KindListItem, c.blocks(item)...))
		}
		return list
	case *ast.HTMLBlock:
		var buf bytes.Buffer
		buf.WriteString(c.lines(n))
		if n.HasClosure() {
			buf.Write(n.ClosureLine.Value(c.src))
		}
		return doctree.New(doctree.KindRaw, doctree.NewText(buf.String())).With(doctree.Attrs{Format: "html"})
	case *extast.Table:
		return c.table(n)
	case *extast.DefinitionList:
		return c.definitionList(n)
	case *extast.FootnoteList:
		return c.footnotes(n)
	}
	return nil
}

func (c *mdConverter) blocks(parent ast.Node) []*doctree.Node {
	var out []*doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// inlines converts the inline children of n.
func (c *mdConverter) inlines(parent ast.Node) []*doctree.Node {
	var out []*doctree.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

func (c *mdConverter) inline(n ast.Node) []*doctree.Node {
	switch n := n.(type) {
	case *ast.Text:
		value := string(n.Segment.Value(c.src))
		if n.SoftLineBreak() || n.HardLineBreak() {
			value += "\n"
		}
		return []*doctree.Node{doctree.NewText(value)}
	case *ast.String:
		return []*doctree.Node{doctree.NewText(string(n.Value))}
	case *ast.Emphasis:
		kind := doctree.KindEmphasis
		if n.Level >= 2 {
			kind = doctree.KindStrong
		}
		return []*doctree.Node{doctree.New(kind, c.inlines(n)...)}
	case *extast.Strikethrough:
		return []*doctree.Node{doctree.New(doctree.KindEmphasis, c.inlines(n)...)}
	case *ast.CodeSpan:
		return []*doctree.Node{doctree.Literal(c.plain(n))}
	case *ast.Link:
		label := c.plain(n)
		return []*doctree.Node{
			doctree.New(doctree.KindReference, doctree.NewText(label)).
				With(doctree.Attrs{Name: label, RefURI: string(n.Destination), RefTitle: string(n.Title)}),
		}
	case *ast.AutoLink:
		uri := string(n.URL(c.src))
		return []*doctree.Node{
			doctree.New(doctree.KindReference, doctree.NewText(string(n.Label(c.src)))).
				With(doctree.Attrs{RefURI: uri}),
		}
	case *ast.Image:
		return []*doctree.Node{
			doctree.New(doctree.KindImage).With(doctree.Attrs{Alt: c.plain(n), URI: string(n.Destination)}),
		}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		return []*doctree.Node{
			doctree.New(doctree.KindRaw, doctree.NewText(buf.String())).With(doctree.Attrs{Format: "html"}),
		}
	case *extast.TaskCheckBox:
		if n.IsChecked {
			return []*doctree.Node{doctree.NewText("[x] ")}
		}
		return []*doctree.Node{doctree.NewText("[ ] ")}
	case *extast.FootnoteLink:
		return []*doctree.Node{doctree.New(doctree.KindFootnoteReference, doctree.NewText(strconv.Itoa(n.Index)))}
	case *extast.FootnoteBacklink:
		return nil
	}
	// Unknown inline: keep its text.
	return c.inlines(n)
}

// plain returns the text of an inline subtree without markup.
func (c *mdConverter) plain(n ast.Node) string {
	var buf strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			buf.Write(child.Segment.Value(c.src))
			if child.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(child.Value)
		default:
			buf.WriteString(c.plain(child))
		}
	}
	return buf.String()
}

// lines joins the raw source lines of a block.
func (c *mdConverter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (c *mdConverter) table(t *extast.Table) *doctree.Node {
	var header *doctree.Node
	var body []*doctree.Node
	for child := t.FirstChild(); child != nil; child = child.NextSibling() {
		// TableHeader contains TableCell children directly.
		row := doctree.New(doctree.KindRow)
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			entry := doctree.New(doctree.KindEntry)
			if inl := c.inlines(cell); len(inl) > 0 {
				entry.Append(doctree.Paragraph(inl...))
			}
			row.Append(entry)
		}
		if _, ok := child.(*extast.TableHeader); ok {
			header = row
			continue
		}
		body = append(body, row)
	}
	return doctree.Table(header, body...)
}

func (c *mdConverter) definitionList(n *extast.DefinitionList) *doctree.Node {
	list := doctree.New(doctree.KindDefinitionList)
	var item *doctree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *extast.DefinitionTerm:
			item = doctree.New(doctree.KindDefinitionListItem, doctree.New(doctree.KindTerm, c.inlines(child)...))
			list.Append(item)
		case *extast.DefinitionDescription:
			if item == nil {
				continue
			}
			item.Append(doctree.New(doctree.KindDefinition, c.blocks(child)...))
		}
	}
	return list
}

func (c *mdConverter) footnotes(n *extast.FootnoteList) *doctree.Node {
	group := doctree.New(doctree.KindCompound)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		fn, ok := child.(*extast.Footnote)
		if !ok {
			continue
		}
		note := doctree.New(doctree.KindFootnote, doctree.New(doctree.KindLabel, doctree.NewText(strconv.Itoa(fn.Index))))
		note.Append(c.blocks(fn)...)
		group.Append(note)
	}
	return group
}
