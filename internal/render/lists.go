package render

import "github.com/pkg/errors"

type listKind int

const (
	listBullet listKind = iota
	listEnumerated
	listDefinition
)

type listContext struct {
	kind    listKind
	counter int
}

// listTracker keeps one context per open list so nested lists count
// independently.
type listTracker struct {
	stack []listContext
}

func (t *listTracker) push(kind listKind) {
	t.stack = append(t.stack, listContext{kind: kind})
}

func (t *listTracker) pop() error {
	if len(t.stack) == 0 {
		return errors.Wrap(ErrMalformedTree, "list closed twice")
	}
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

// current returns the innermost list, or false outside any list.
func (t *listTracker) current() (*listContext, bool) {
	if len(t.stack) == 0 {
		return nil, false
	}
	return &t.stack[len(t.stack)-1], true
}

// next advances the counter of an enumerated context and returns it.
func (c *listContext) next() int {
	c.counter++
	return c.counter
}
