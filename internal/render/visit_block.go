package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dgallion1/docrst/internal/doctree"
)

func (r *Renderer) enterTitle(n *doctree.Node) (doctree.WalkStatus, error) {
	if n.ParentKind().IsAdmonition() {
		r.stack.appendRaw(n.Text() + ": ")
		return skip, nil
	}
	r.stack.push(0)
	return cont, nil
}

// exitTitle replaces the title frame with the text and its underline.
func (r *Renderer) exitTitle(n *doctree.Node) error {
	f, err := r.stack.take()
	if err != nil {
		return err
	}
	text := f.rawText()
	char := "^"
	if n.ParentKind() == doctree.KindSection {
		char = r.sectionChar()
	}
	underline := strings.Repeat(char, runewidth.StringWidth(text))
	r.stack.appendBlock(0, []string{"", text, underline, ""})
	return nil
}

// sectionChar is the underline for the current section depth.
func (r *Renderer) sectionChar() string {
	chars := []rune(r.opts.SectionChars)
	level := r.sectionLevel
	if level < 1 {
		level = 1
	}
	return string(chars[(level-1)%len(chars)])
}

func (r *Renderer) transition() (doctree.WalkStatus, error) {
	width := r.opts.MaxWidth - r.stack.cumulativeIndent()
	if width < 0 {
		width = 0
	}
	r.stack.push(0)
	r.stack.appendRaw(strings.Repeat("=", width))
	return skip, r.stack.pop(popOpts{end: blankEnd})
}

// inlineParagraph reports whether a paragraph flows directly into the
// frame of its admonition instead of opening its own.
func inlineParagraph(n *doctree.Node) bool {
	k := n.ParentKind()
	return k.IsAdmonition() && k != doctree.KindSeeAlso
}

func (r *Renderer) enterParagraph(n *doctree.Node) {
	if !inlineParagraph(n) {
		r.stack.push(0)
		return
	}
	if prev := n.PrevSibling(); prev != nil && prev.Kind == doctree.KindParagraph {
		r.stack.appendRaw("\n\n")
	}
}

// enterLiteralBlock emits the block marker into the enclosing frame and
// opens the indented body. Parsed literals and blocks without a language
// use the plain "::" marker.
func (r *Renderer) enterLiteralBlock(n *doctree.Node) {
	lang := n.Attrs.Language
	switch {
	case n.Attrs.RawSource != n.Text(), lang == "", lang == "default":
		r.stack.appendRaw("::")
	default:
		r.stack.appendRaw(".. code-block:: " + lang)
		if r.opts.PreserveCodeBlockFlags && n.Attrs.Linenos {
			r.stack.appendRaw("\n" + strings.Repeat(" ", r.opts.Indent) + ":linenos:")
		}
	}
	r.stack.push(r.opts.Indent)
}

func (r *Renderer) image(n *doctree.Node) {
	if n.Attrs.Alt != "" {
		r.stack.appendRaw("[image: " + n.Attrs.Alt + "]")
		return
	}
	r.stack.appendRaw("[image]")
}

// raw passes through content meant for plain-text output and drops the
// rest.
func (r *Renderer) raw(n *doctree.Node) {
	for _, f := range strings.Fields(n.Attrs.Format) {
		if f == "text" {
			r.stack.appendRaw(n.Text())
			return
		}
	}
}

func (r *Renderer) systemMessage(n *doctree.Node) (doctree.WalkStatus, error) {
	r.stack.push(0)
	r.stack.appendRaw("<SYSTEM MESSAGE: " + n.Text() + ">")
	return skip, r.stack.pop(popOpts{end: blankEnd})
}

// acks renders the items of the first child list as one comma separated
// sentence.
func (r *Renderer) acks(n *doctree.Node) (doctree.WalkStatus, error) {
	var names []string
	if list := n.FirstChild(); list != nil {
		for _, item := range list.Children {
			names = append(names, item.Text())
		}
	}
	r.stack.push(0)
	r.stack.appendRaw(strings.Join(names, ", ") + ".")
	return skip, r.stack.pop(popOpts{end: blankEnd})
}

func (r *Renderer) enterVersionModified(n *doctree.Node) {
	label := r.opts.Labels.Version(LabelKey(n.Attrs.VersionType), n.Attrs.Version)
	r.stack.push(0)
	if len(n.Children) > 0 {
		r.stack.appendRaw(label + ": ")
	} else {
		r.stack.appendRaw(label + ".")
	}
}

// enterNote opens a footnote or citation body indented past its label.
func (r *Renderer) enterNote(n *doctree.Node) {
	var label string
	first := n.FirstChild()
	switch {
	case n.Kind == doctree.KindFootnote && first != nil:
		label = strings.TrimSpace(first.Text())
	case n.Kind == doctree.KindCitation && first != nil && first.Kind == doctree.KindLabel:
		label = first.Text()
	}
	r.notes = append(r.notes, label)
	r.stack.push(runewidth.StringWidth(label) + r.opts.Indent)
}

func (r *Renderer) exitNote() error {
	label := r.notes[len(r.notes)-1]
	r.notes = r.notes[:len(r.notes)-1]
	return r.stack.pop(popOpts{end: blankEnd, first: withFirst("[" + label + "] ")})
}

// exitFieldName closes the name and pads it so bodies line up.
func (r *Renderer) exitFieldName(n *doctree.Node) {
	r.stack.appendRaw(":")
	if pad := fieldNameWidth - runewidth.StringWidth(n.Text()); pad > 0 {
		r.stack.appendRaw(strings.Repeat(" ", pad))
	}
}

// hasClassifierAfter reports whether the term frame stays open for a
// following classifier.
func hasClassifierAfter(n *doctree.Node) bool {
	next := n.NextSibling()
	return next != nil && next.Kind == doctree.KindClassifier
}

// signatureMark is strong for callables and types, literal otherwise.
func signatureMark(n *doctree.Node) string {
	if n.Parent != nil {
		switch n.Parent.Attrs.ObjType {
		case "class", "exception", "method", "function":
			return "**"
		}
	}
	return "``"
}

// descAnnotation shortens annotations wider than the line to their first
// and last thirds.
func (r *Renderer) descAnnotation(n *doctree.Node) doctree.WalkStatus {
	content := []rune(n.Text())
	if len(content) <= r.opts.MaxWidth {
		return cont
	}
	h := r.opts.MaxWidth / 3
	r.stack.appendRaw(string(content[:h]) + " ... " + string(content[len(content)-h:]))
	return skip
}

// productionList aligns each production's "::=" after the longest token
// name. Continuation productions have an empty token name.
func (r *Renderer) productionList(n *doctree.Node) error {
	width := 0
	for _, p := range n.Children {
		if w := runewidth.StringWidth(p.Attrs.TokenName); w > width {
			width = w
		}
	}
	r.stack.push(r.opts.Indent)
	last := ""
	for _, p := range n.Children {
		if name := p.Attrs.TokenName; name != "" {
			r.stack.appendRaw(runewidth.FillRight(name, width) + " ::=")
			last = name
		} else {
			r.stack.appendRaw(strings.Repeat(" ", runewidth.StringWidth(last)) + "    ")
		}
		r.stack.appendRaw(p.Text() + "\n")
	}
	return r.stack.pop(popOpts{end: blankEnd})
}
