package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs;
// line breaks inside a paragraph are kept.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var text strings.Builder
	for scanner.Scan() {
		text.WriteString(scanner.Text())
		text.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	return doctree.Document(paragraphs(text.String())...), nil
}
