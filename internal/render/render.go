// Package render turns a doctree document into reStructuredText.
//
// Rendering is a single depth-first walk. Enter and exit callbacks append
// text spans to a stack of frames; closing a frame formats its spans into
// indented lines and hands them to the frame below. The bottom frame is
// flattened into the final text.
package render

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/dgallion1/docrst/internal/doctree"
)

// Renderer converts document trees to reStructuredText. A Renderer keeps
// per-render state and must not be shared between goroutines; it may be
// reused for sequential renders.
type Renderer struct {
	opts Options
	log  *slog.Logger

	stack        *stateStack
	lists        listTracker
	table        *tableMatrix
	sectionLevel int
	firstParam   bool
	firstOption  bool
	notes        []string // labels of open footnotes and citations
	warned       map[doctree.Kind]bool
}

// New creates a Renderer. Zero option fields take their defaults and a nil
// logger discards output.
func New(opts Options, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		opts: opts.withDefaults(),
		log:  log,
	}
}

// Render walks doc and returns the reStructuredText. On error no partial
// output is returned.
func (r *Renderer) Render(doc *doctree.Node) (string, error) {
	if doc == nil {
		return "", errors.Wrap(ErrMalformedTree, "nil document")
	}
	r.reset()

	r.stack.push(0)
	if err := doctree.Walk(doc, walker{r}); err != nil {
		return "", err
	}
	if err := r.stack.pop(popOpts{end: blankEnd}); err != nil {
		return "", err
	}
	if d := r.stack.depth(); d != 0 {
		return "", errors.Wrapf(ErrUnbalancedStack, "%d frames left open", d)
	}

	out := r.assemble()
	r.log.Debug("rendered document", "root", doc.Kind.String(), "bytes", len(out))
	return out, nil
}

func (r *Renderer) reset() {
	r.stack = newStateStack(r.opts.MaxWidth)
	r.lists = listTracker{}
	r.table = nil
	r.sectionLevel = 0
	r.firstParam = false
	r.firstOption = false
	r.notes = nil
	r.warned = make(map[doctree.Kind]bool)
}

// warnOnce logs kinds that have no reStructuredText equivalent. Their
// children still render.
func (r *Renderer) warnOnce(n *doctree.Node) {
	if r.warned[n.Kind] {
		return
	}
	r.warned[n.Kind] = true
	r.log.Warn("unsupported formatting, rendering content only", "kind", n.Kind.String())
}

// walker adapts the Renderer to doctree.Visitor without exporting the
// callbacks.
type walker struct{ r *Renderer }

func (w walker) Enter(n *doctree.Node) (doctree.WalkStatus, error) { return w.r.enter(n) }
func (w walker) Exit(n *doctree.Node) error                        { return w.r.exit(n) }
