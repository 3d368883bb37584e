package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	// ledongthuc/pdf opens by path, so spool to a temp file.
	tmp, err := os.CreateTemp("", "docrst-pdf-*.pdf")
	if err != nil {
		return nil, errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, errors.Wrap(err, "write temp file")
	}
	tmp.Close()

	pages, err := pdfPages(tmpPath)
	if err != nil && p.FallbackPdftotext {
		pages, err = pdftotextPages(tmpPath)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "extract text from %s", filename)
	}
	return pdfDocument(pages), nil
}

// pdfDocument turns page texts into one section per non-empty page,
// numbered by position in the file.
func pdfDocument(pages []string) *doctree.Node {
	doc := doctree.Document()
	for i, page := range pages {
		paras := paragraphs(page)
		if len(paras) == 0 {
			continue
		}
		doc.Append(doctree.Section(fmt.Sprintf("Page %d", i+1), paras...))
	}
	return doc
}

// pdfPages extracts the plain text of every page. Pages the library cannot
// read are kept as empty strings so numbering stays aligned.
func pdfPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]string, reader.NumPage())
	for i := range pages {
		page := reader.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages[i] = text
	}
	return pages, nil
}

// pdftotextPages runs the poppler tool, which separates pages with form
// feeds.
func pdftotextPages(path string) ([]string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, errors.Wrap(err, "pdftotext")
	}
	return strings.Split(string(out), "\f"), nil
}
