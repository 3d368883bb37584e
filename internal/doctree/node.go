// Package doctree holds the structured document tree that readers produce
// and the renderer consumes.
package doctree

import (
	"fmt"
	"strings"
)

// Node is one element of a document tree. Leaf text lives in Value on
// KindText nodes (and on KindRaw / KindComment when they carry no children).
type Node struct {
	Kind     Kind
	Value    string
	Attrs    Attrs
	Parent   *Node
	Children []*Node
}

// Attrs are the named attributes a node may carry. A zero value means the
// attribute is absent.
type Attrs struct {
	// Literal blocks.
	RawSource string // source text before inline parsing
	Language  string // highlight language; "" or "default" means none
	Linenos   bool

	// References and targets.
	Name     string
	RefURI   string
	RefID    string
	RefTitle string
	Internal bool

	// Images.
	Alt string
	URI string

	// Raw blocks: space separated output formats, e.g. "text" or "html".
	Format string

	// Table entries and column specs.
	MoreCols int
	MoreRows int
	ColWidth int

	// Object descriptions and productions.
	ObjType   string
	TokenName string

	// Option arguments.
	Delimiter string

	// Abbreviations.
	Explanation string

	// Version-change annotations: VersionType is "versionadded",
	// "versionchanged" or "deprecated".
	VersionType string
	Version     string
}

// New creates a node of the given kind and adopts children.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	n.Append(children...)
	return n
}

// NewText creates a KindText leaf.
func NewText(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// Append adopts children, setting their parent link. Nil children are
// ignored so readers can pass optional nodes directly.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// With sets the attributes and returns the node, for building trees inline.
func (n *Node) With(a Attrs) *Node {
	n.Attrs = a
	return n
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// ParentKind returns the kind of the parent, or KindInvalid for the root.
func (n *Node) ParentKind() Kind {
	if n.Parent == nil {
		return KindInvalid
	}
	return n.Parent.Kind
}

// Text derives the plain text of the subtree. Inline-bearing elements join
// their children directly; structural elements separate them with a blank
// line.
func (n *Node) Text() string {
	if n.Kind == KindText || len(n.Children) == 0 {
		return n.Value
	}
	sep := "\n\n"
	if n.Kind.isTextElement() {
		sep = ""
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, c.Text())
	}
	return strings.Join(parts, sep)
}

func (n *Node) String() string {
	if n.Kind == KindText {
		return fmt.Sprintf("text(%q)", n.Value)
	}
	return fmt.Sprintf("%s(%d children)", n.Kind, len(n.Children))
}

// PrevSibling returns the sibling before n, or nil.
func (n *Node) PrevSibling() *Node {
	if i := n.index(); i > 0 {
		return n.Parent.Children[i-1]
	}
	return nil
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	if i := n.index(); i >= 0 && i+1 < len(n.Parent.Children) {
		return n.Parent.Children[i+1]
	}
	return nil
}

func (n *Node) index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}
