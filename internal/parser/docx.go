package parser

import (
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	// go-docx needs a ReaderAt and size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "docrst-docx-*.docx")
	if err != nil {
		return nil, errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, errors.Wrap(err, "write temp file")
	}
	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, errors.Wrapf(err, "parse docx %s", filename)
	}

	sections := newSectionBuilder()
	for _, item := range doc.Document.Body.Items {
		switch item := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(item)
			if text == "" {
				continue
			}
			if level := docxHeadingLevel(item); level > 0 {
				sections.heading(level, doctree.NewText(text))
				continue
			}
			sections.add(doctree.Para(text))
		case *docx.Table:
			sections.add(docxTable(item))
		}
	}
	return sections.doc, nil
}

// docxTable converts a table; the first row is taken as the header.
func docxTable(t *docx.Table) *doctree.Node {
	var rows [][]string
	for _, tr := range t.TableRows {
		var cells []string
		for _, tc := range tr.TableCells {
			var parts []string
			for _, para := range tc.Paragraphs {
				if s := docxParagraphText(para); s != "" {
					parts = append(parts, s)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		rows = append(rows, cells)
	}
	return doctree.TextTable(rows, len(rows) > 1)
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title", "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
