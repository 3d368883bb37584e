package parser

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// CSVParser handles CSV files. The whole file becomes one table in a
// section named after the file, with the first record as the header.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}

	doc := doctree.Document()
	if len(records) == 0 {
		return doc, nil
	}
	return doc.Append(doctree.Section(baseTitle(filename), doctree.TextTable(records, true))), nil
}
