package render

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// enterReference writes a link. Named references without a URI stay in
// reference form, id-only references render their text plainly because no
// matching target is emitted, and everything with a URI becomes an inline
// link.
func (r *Renderer) enterReference(n *doctree.Node) (doctree.WalkStatus, error) {
	a := n.Attrs
	switch {
	case a.RefURI == "" && a.Name != "":
		r.stack.appendRaw("`" + a.Name + "`_")
	case a.RefURI == "" && a.RefID != "":
		return cont, nil
	case a.RefURI == "":
		return skip, errors.Wrapf(ErrMalformedReference, "reference %q", n.Text())
	case !a.Internal:
		label := a.Name
		if label == "" {
			label = a.RefURI
		}
		r.stack.appendRaw(inlineLink(label, a.RefURI))
	default:
		r.stack.appendRaw(inlineLink(n.Text(), a.RefURI))
	}
	return skip, nil
}

func inlineLink(text, uri string) string {
	return fmt.Sprintf("`%s <%s>`_", text, uri)
}
