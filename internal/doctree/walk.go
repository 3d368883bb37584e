package doctree

import "fmt"

// WalkStatus is returned by the enter callback of Walk.
type WalkStatus int

const (
	// WalkContinue descends into the children and then calls exit.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren treats the node as self-contained: neither its
	// children nor its exit callback are visited.
	WalkSkipChildren
)

// Visitor receives enter/exit callbacks during a depth-first walk.
type Visitor interface {
	Enter(n *Node) (WalkStatus, error)
	Exit(n *Node) error
}

// Walk visits n and its descendants depth-first. The first error aborts
// the walk and is returned unchanged.
func Walk(n *Node, v Visitor) error {
	status, err := v.Enter(n)
	if err != nil {
		return err
	}
	if status == WalkSkipChildren {
		return nil
	}
	for _, c := range n.Children {
		if err := Walk(c, v); err != nil {
			return err
		}
	}
	return v.Exit(n)
}

// Validate checks the invariants readers must uphold: parent links match
// the child slices, no node appears twice, and every kind is declared.
func Validate(root *Node) error {
	seen := make(map[*Node]bool)
	var check func(n, parent *Node) error
	check = func(n, parent *Node) error {
		if seen[n] {
			return fmt.Errorf("node %s appears more than once in the tree", n)
		}
		seen[n] = true
		if !n.Kind.Valid() {
			return fmt.Errorf("node has undeclared kind %d", int(n.Kind))
		}
		if n.Parent != parent {
			return fmt.Errorf("node %s has a stale parent link", n)
		}
		for _, c := range n.Children {
			if err := check(c, n); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root, root.Parent)
}
