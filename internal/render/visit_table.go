package render

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

func (r *Renderer) enterTable() error {
	if r.table != nil {
		return errors.WithStack(ErrNestedTable)
	}
	r.stack.push(0)
	r.table = newTableMatrix()
	return nil
}

// exitTable draws the collected cells into the table frame.
func (r *Renderer) exitTable() error {
	lines := r.table.render()
	r.table = nil
	if len(lines) > 0 {
		r.stack.appendRaw(strings.Join(lines, "\n"))
	}
	return r.stack.pop(popOpts{end: blankEnd})
}

func (r *Renderer) requireTable(n *doctree.Node) error {
	if r.table == nil {
		return errors.Wrapf(ErrMalformedTree, "%s outside a table", n.Kind)
	}
	return nil
}

// exitEntry collapses the cell content to one line and stores it.
func (r *Renderer) exitEntry(n *doctree.Node) error {
	f, err := r.stack.take()
	if err != nil {
		return err
	}
	r.table.addCell(f.flatText(), n.Attrs.MoreCols, n.Attrs.MoreRows)
	return nil
}
