package render

import (
	"strconv"

	"github.com/pkg/errors"
)

// enterListItem opens the item body. Bullet bodies indent past "* ",
// enumerated bodies past the number and one indent level.
func (r *Renderer) enterListItem() error {
	ctx, ok := r.lists.current()
	if !ok {
		return errors.Wrap(ErrMalformedTree, "list item outside a list")
	}
	switch ctx.kind {
	case listBullet:
		r.stack.push(2)
	case listEnumerated:
		n := ctx.next()
		r.stack.push(len(strconv.Itoa(n)) + r.opts.Indent)
	}
	return nil
}

// exitListItem splices the marker onto the first line of the item.
func (r *Renderer) exitListItem() error {
	ctx, ok := r.lists.current()
	if !ok {
		return errors.Wrap(ErrMalformedTree, "list item outside a list")
	}
	switch ctx.kind {
	case listBullet:
		return r.stack.pop(popOpts{first: withFirst("* ")})
	case listEnumerated:
		return r.stack.pop(popOpts{first: withFirst(strconv.Itoa(ctx.counter) + ". ")})
	}
	return nil
}
