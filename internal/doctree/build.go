package doctree

// Constructors for the common shapes readers and tests build.

func Document(children ...*Node) *Node { return New(KindDocument, children...) }

// Section creates a section whose first child is a title with the given text.
func Section(title string, children ...*Node) *Node {
	s := New(KindSection, Title(title))
	return s.Append(children...)
}

func Title(text string) *Node { return New(KindTitle, NewText(text)) }

// Paragraph creates a paragraph from inline children.
func Paragraph(inlines ...*Node) *Node { return New(KindParagraph, inlines...) }

// Para creates a paragraph holding a single text node.
func Para(text string) *Node { return Paragraph(NewText(text)) }

func Emphasis(text string) *Node { return New(KindEmphasis, NewText(text)) }
func Strong(text string) *Node   { return New(KindStrong, NewText(text)) }
func Literal(text string) *Node  { return New(KindLiteral, NewText(text)) }

// ExternalLink creates a reference to an external URI with a display name.
func ExternalLink(name, uri string) *Node {
	return New(KindReference, NewText(name)).With(Attrs{Name: name, RefURI: uri})
}

// BulletList wraps each item's blocks in a list_item.
func BulletList(items ...[]*Node) *Node { return list(KindBulletList, items) }

// EnumeratedList wraps each item's blocks in a list_item.
func EnumeratedList(items ...[]*Node) *Node { return list(KindEnumeratedList, items) }

func list(kind Kind, items [][]*Node) *Node {
	l := New(kind)
	for _, blocks := range items {
		l.Append(New(KindListItem, blocks...))
	}
	return l
}

// DefinitionItem builds a definition_list_item; classifier may be empty.
func DefinitionItem(term, classifier string, definition ...*Node) *Node {
	item := New(KindDefinitionListItem, New(KindTerm, NewText(term)))
	if classifier != "" {
		item.Append(New(KindClassifier, NewText(classifier)))
	}
	return item.Append(New(KindDefinition, definition...))
}

// Field builds a field with a name and a body of blocks.
func Field(name string, body ...*Node) *Node {
	return New(KindField,
		New(KindFieldName, NewText(name)),
		New(KindFieldBody, body...),
	)
}

// LiteralBlock creates a literal block whose raw source equals its text.
func LiteralBlock(code, language string) *Node {
	return New(KindLiteralBlock, NewText(code)).With(Attrs{RawSource: code, Language: language})
}

// Entry creates a table cell holding one paragraph.
func Entry(text string) *Node {
	if text == "" {
		return New(KindEntry)
	}
	return New(KindEntry, Para(text))
}

// Row creates a table row from cells.
func Row(entries ...*Node) *Node { return New(KindRow, entries...) }

// Table builds table > tgroup > (colspec*, thead?, tbody). header may be
// nil. Column count is taken from the widest row.
func Table(header *Node, body ...*Node) *Node {
	cols := 0
	for _, r := range append([]*Node{header}, body...) {
		if r != nil && len(r.Children) > cols {
			cols = len(r.Children)
		}
	}
	tgroup := New(KindTGroup)
	for i := 0; i < cols; i++ {
		tgroup.Append(New(KindColSpec))
	}
	if header != nil {
		tgroup.Append(New(KindTHead, header))
	}
	tgroup.Append(New(KindTBody, body...))
	return New(KindTable, tgroup)
}

// TextTable builds a table from plain strings; the first row is the header
// when header is true.
func TextTable(rows [][]string, header bool) *Node {
	var head *Node
	var body []*Node
	for i, cells := range rows {
		r := New(KindRow)
		for _, c := range cells {
			r.Append(Entry(c))
		}
		if header && i == 0 {
			head = r
			continue
		}
		body = append(body, r)
	}
	return Table(head, body...)
}
