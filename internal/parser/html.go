package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/dgallion1/docrst/internal/doctree"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}

	c := &htmlConverter{sections: newSectionBuilder()}
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	c.walkBlocks(body)
	doc := c.sections.doc

	// A <title> becomes the top section when the page has no h1 of its own.
	if title := findElement(root, "title"); title != nil && findElement(body, "h1") == nil {
		if t := textContent(title); t != "" {
			doc = WithTitle(doc, t)
		}
	}
	return doc, nil
}

type htmlConverter struct {
	sections *sectionBuilder
	pending  []*doctree.Node // loose inline content awaiting a paragraph
}

// walkBlocks converts the children of n at section level, opening sections
// for h1-h6.
func (c *htmlConverter) walkBlocks(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			if level := headingLevel(child.Data); level > 0 {
				c.flush()
				c.sections.heading(level, inlineChildren(child)...)
				continue
			}
			if isContainer(child.Data) {
				c.flush()
				c.walkBlocks(child)
				continue
			}
		}
		if b := blockNode(child); b != nil {
			c.flush()
			c.sections.add(b)
			continue
		}
		c.pending = append(c.pending, inlineNode(child)...)
	}
	c.flush()
}

func (c *htmlConverter) flush() {
	if p := paragraphFrom(c.pending); p != nil {
		c.sections.add(p)
	}
	c.pending = nil
}

// paragraphFrom wraps inline nodes in a paragraph unless they are only
// whitespace.
func paragraphFrom(inlines []*doctree.Node) *doctree.Node {
	p := doctree.Paragraph(inlines...)
	if strings.TrimSpace(p.Text()) == "" && !hasKind(p, doctree.KindImage) {
		return nil
	}
	if first := p.FirstChild(); first.Kind == doctree.KindText {
		first.Value = strings.TrimLeft(first.Value, " ")
	}
	if last := p.Children[len(p.Children)-1]; last.Kind == doctree.KindText {
		last.Value = strings.TrimRight(last.Value, " ")
	}
	return p
}

func hasKind(n *doctree.Node, k doctree.Kind) bool {
	if n.Kind == k {
		return true
	}
	for _, c := range n.Children {
		if hasKind(c, k) {
			return true
		}
	}
	return false
}

// isContainer reports elements whose children are walked at section level.
func isContainer(tag string) bool {
	switch tag {
	case "div", "section", "article", "main", "body", "html":
		return true
	}
	return false
}

func skipped(tag string) bool {
	switch tag {
	case "script", "style", "nav", "footer", "header", "head", "noscript", "template":
		return true
	}
	return false
}

// blockNode converts block-level elements; it returns nil for inline
// content.
func blockNode(n *html.Node) *doctree.Node {
	if n.Type != html.ElementNode {
		return nil
	}
	if skipped(n.Data) {
		return doctree.New(doctree.KindComment)
	}
	switch n.Data {
	case "p":
		return paragraphFrom(inlineChildren(n))
	case "pre":
		code := rawText(n)
		lang := ""
		if c := findElement(n, "code"); c != nil {
			lang = codeLanguage(c)
		}
		return doctree.LiteralBlock(strings.TrimRight(code, "\n"), normalizeLanguage(lang))
	case "blockquote":
		return doctree.New(doctree.KindBlockQuote, blockChildren(n)...)
	case "ul", "ol":
		kind := doctree.KindBulletList
		if n.Data == "ol" {
			kind = doctree.KindEnumeratedList
		}
		list := doctree.New(kind)
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type == html.ElementNode && li.Data == "li" {
				list.Append(doctree.New(doctree.KindListItem, blockChildren(li)...))
			}
		}
		return list
	case "dl":
		return definitionList(n)
	case "table":
		return htmlTable(n)
	case "hr":
		return doctree.New(doctree.KindTransition)
	case "figure":
		return doctree.New(doctree.KindFigure, blockChildren(n)...)
	case "figcaption":
		return doctree.New(doctree.KindCaption, doctree.Paragraph(inlineChildren(n)...))
	}
	if headingLevel(n.Data) > 0 {
		// Headings inside lists or tables cannot open sections.
		return doctree.New(doctree.KindRubric, inlineChildren(n)...)
	}
	return nil
}

// blockChildren converts mixed content into blocks, grouping runs of
// inline content into paragraphs.
func blockChildren(n *html.Node) []*doctree.Node {
	var out, pending []*doctree.Node
	flush := func() {
		if p := paragraphFrom(pending); p != nil {
			out = append(out, p)
		}
		pending = nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && isContainer(child.Data) {
			flush()
			out = append(out, blockChildren(child)...)
			continue
		}
		if b := blockNode(child); b != nil {
			flush()
			out = append(out, b)
			continue
		}
		pending = append(pending, inlineNode(child)...)
	}
	flush()
	return out
}

func inlineChildren(n *html.Node) []*doctree.Node {
	var out []*doctree.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, inlineNode(child)...)
	}
	return out
}

// collapseSpace turns each run of HTML whitespace into one space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '\f' {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func inlineNode(n *html.Node) []*doctree.Node {
	switch n.Type {
	case html.TextNode:
		return []*doctree.Node{doctree.NewText(collapseSpace(n.Data))}
	case html.ElementNode:
	default:
		return nil
	}
	if skipped(n.Data) {
		return nil
	}
	switch n.Data {
	case "em", "i", "cite", "dfn":
		return []*doctree.Node{doctree.New(doctree.KindEmphasis, inlineChildren(n)...)}
	case "strong", "b":
		return []*doctree.Node{doctree.New(doctree.KindStrong, inlineChildren(n)...)}
	case "code", "kbd", "samp", "tt":
		return []*doctree.Node{doctree.Literal(textContent(n))}
	case "sub":
		return []*doctree.Node{doctree.New(doctree.KindSubscript, inlineChildren(n)...)}
	case "sup":
		return []*doctree.Node{doctree.New(doctree.KindSuperscript, inlineChildren(n)...)}
	case "abbr":
		return []*doctree.Node{
			doctree.New(doctree.KindAbbreviation, inlineChildren(n)...).With(doctree.Attrs{Explanation: attr(n, "title")}),
		}
	case "br":
		return []*doctree.Node{doctree.NewText("\n")}
	case "img":
		return []*doctree.Node{doctree.New(doctree.KindImage).With(doctree.Attrs{Alt: attr(n, "alt"), URI: attr(n, "src")})}
	case "a":
		return anchor(n)
	}
	return inlineChildren(n)
}

// anchor converts <a>. Fragment links refer to ids in the same page; other
// anchors without an href keep only their text.
func anchor(n *html.Node) []*doctree.Node {
	label := textContent(n)
	href := attr(n, "href")
	switch {
	case strings.HasPrefix(href, "#") && len(href) > 1:
		return []*doctree.Node{
			doctree.New(doctree.KindReference, inlineChildren(n)...).With(doctree.Attrs{RefID: href[1:]}),
		}
	case href != "":
		if label == "" {
			return []*doctree.Node{doctree.New(doctree.KindReference).With(doctree.Attrs{RefURI: href})}
		}
		return []*doctree.Node{doctree.ExternalLink(label, href)}
	}
	return inlineChildren(n)
}

func definitionList(n *html.Node) *doctree.Node {
	list := doctree.New(doctree.KindDefinitionList)
	var item *doctree.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "dt":
			item = doctree.New(doctree.KindDefinitionListItem, doctree.New(doctree.KindTerm, inlineChildren(child)...))
			list.Append(item)
		case "dd":
			if item == nil {
				continue
			}
			item.Append(doctree.New(doctree.KindDefinition, blockChildren(child)...))
		}
	}
	return list
}

// htmlTable converts a table. Rows under <thead>, or a leading row of <th>
// cells, form the header. colspan and rowspan attributes become span
// attributes on the entries.
func htmlTable(n *html.Node) *doctree.Node {
	var rows []*html.Node
	var headRows int
	var collect func(*html.Node, bool)
	collect = func(n *html.Node, inHead bool) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			switch child.Data {
			case "thead":
				collect(child, true)
			case "tbody", "tfoot":
				collect(child, false)
			case "tr":
				rows = append(rows, child)
				if inHead {
					headRows++
				}
			}
		}
	}
	collect(n, false)
	if headRows == 0 && len(rows) > 0 && allHeaderCells(rows[0]) {
		headRows = 1
	}

	cols := 0
	var converted []*doctree.Node
	for i, tr := range rows {
		row := doctree.New(doctree.KindRow)
		width := 0
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
				continue
			}
			entry := doctree.New(doctree.KindEntry, blockChildren(td)...)
			entry.Attrs.MoreCols = spanAttr(td, "colspan", maxColspan-1)
			entry.Attrs.MoreRows = spanAttr(td, "rowspan", min(maxRowspan-1, len(rows)-1-i))
			row.Append(entry)
			width += 1 + entry.Attrs.MoreCols
		}
		if width > cols {
			cols = width
		}
		converted = append(converted, row)
	}

	tgroup := doctree.New(doctree.KindTGroup)
	for i := 0; i < cols; i++ {
		tgroup.Append(doctree.New(doctree.KindColSpec))
	}
	if headRows > 0 {
		tgroup.Append(doctree.New(doctree.KindTHead, converted[:headRows]...))
	}
	tgroup.Append(doctree.New(doctree.KindTBody, converted[headRows:]...))

	table := doctree.New(doctree.KindTable)
	if caption := findElement(n, "caption"); caption != nil {
		table.Append(doctree.New(doctree.KindTitle, inlineChildren(caption)...))
	}
	return table.Append(tgroup)
}

func allHeaderCells(tr *html.Node) bool {
	found := false
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode {
			continue
		}
		if td.Data != "th" {
			return false
		}
		found = true
	}
	return found
}

// Span limits applied by browsers.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// spanAttr returns a span attribute minus one, the number of extra
// columns or rows covered, clamped to limit.
func spanAttr(n *html.Node, key string, limit int) int {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, key)))
	if err != nil || v < 2 {
		return 0
	}
	return min(v-1, max(limit, 0))
}

func codeLanguage(code *html.Node) string {
	for _, class := range strings.Fields(attr(code, "class")) {
		for _, prefix := range []string{"language-", "lang-"} {
			if strings.HasPrefix(class, prefix) {
				return strings.TrimPrefix(class, prefix)
			}
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent returns the trimmed text of n with whitespace runs kept.
func textContent(n *html.Node) string {
	return strings.TrimSpace(collapseSpace(rawText(n)))
}

// rawText concatenates every text node under n unchanged.
func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findElement(c, tag); e != nil {
			return e
		}
	}
	return nil
}
