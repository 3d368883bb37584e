package render

import "github.com/pkg/errors"

// Fatal render conditions. Render wraps them with the offending node kind;
// test with errors.Is.
var (
	// ErrUnknownNode is returned for a node kind with no rendering rule.
	ErrUnknownNode = errors.New("unknown node kind")
	// ErrNestedTable is returned when a table opens inside another table.
	ErrNestedTable = errors.New("nested tables are not supported")
	// ErrMalformedReference is returned for a reference with no target URI,
	// no name and no id.
	ErrMalformedReference = errors.New("reference has no target uri, name or id")
	// ErrMalformedTree is returned for structure the renderer cannot place,
	// such as a table row outside a table.
	ErrMalformedTree = errors.New("malformed document tree")
	// ErrUnbalancedStack indicates a frame was popped that was never pushed.
	ErrUnbalancedStack = errors.New("state stack underflow")
)
