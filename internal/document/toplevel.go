package document

import (
	"github.com/google/uuid"

	"github.com/gerunddev/granite/internal/ast"
)

const (
	checkedMarker   = "[x] "
	uncheckedMarker = "[ ] "
)

// TopLevelNode is one block directly under the document root together with
// the source and generic node it came from. It is only valid for the
// source it was parsed from; any edit makes it stale.
type TopLevelNode struct {
	Node

	source string
	tree   *ast.Tree
	origin ast.NodeID
	gen    uuid.UUID
}

// Source returns the whole document the block was parsed from.
func (n TopLevelNode) Source() string {
	return n.source
}

// Span returns the byte range of the block in Source.
func (n TopLevelNode) Span() (int, int) {
	return n.tree.Span(n.origin)
}

// Text returns the block's slice of the source.
func (n TopLevelNode) Text() string {
	return n.tree.Text(n.origin)
}

// Origin returns the generic node the block was converted from.
func (n TopLevelNode) Origin() ast.NodeID {
	return n.origin
}

// ToggleCheckbox returns the block's text with the checkbox of item
// replaced by "[x] " or "[ ] ". It reports false when the item has no
// checkbox or the checkbox lies outside this block.
func (n TopLevelNode) ToggleCheckbox(item ListItem, checked bool) (string, bool) {
	cb := item.Checkbox
	if cb == nil || cb.gen != n.gen {
		return "", false
	}
	bs, be := n.Span()
	cs, ce := n.tree.Span(cb.origin)
	if cs < bs || ce > be {
		return "", false
	}
	marker := uncheckedMarker
	if checked {
		marker = checkedMarker
	}
	text := n.Text()
	return text[:cs-bs] + marker + text[ce-bs:], true
}
