package ast

import (
	"fmt"
	"strings"
)

// Token is a contiguous span of the source with a kind. Offsets are byte
// offsets into the source; End is exclusive.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Text returns the source text covered by the token.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

// NodeID addresses a node inside a Tree.
type NodeID int32

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Node is one entry of the tree arena. Leaves have no children.
type Node struct {
	Kind     Kind
	Start    int
	End      int
	Parent   NodeID
	Children []NodeID
}

// IsLeaf reports whether the node wraps a single token.
func (n Node) IsLeaf() bool {
	return n.Kind.IsToken()
}

// Tree is the generic parse tree of one source string. Node 0 is the root
// and spans the whole source. A tree is read-only once built.
type Tree struct {
	src   string
	nodes []Node
}

// Source returns the text the tree was built from.
func (t *Tree) Source() string {
	return t.src
}

// Root returns the ID of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node with the given ID.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Kind returns the kind of node id.
func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].Kind
}

// Children returns the children of node id in source order. The returned
// slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// Parent returns the parent of node id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].Parent
}

// Span returns the start and end offsets of node id.
func (t *Tree) Span(id NodeID) (int, int) {
	n := t.nodes[id]
	return n.Start, n.End
}

// Text returns the source text covered by node id.
func (t *Tree) Text(id NodeID) string {
	n := t.nodes[id]
	return t.src[n.Start:n.End]
}

// FindChild returns the first child of id with the given kind.
func (t *Tree) FindChild(id NodeID, kind Kind) (NodeID, bool) {
	for _, c := range t.nodes[id].Children {
		if t.nodes[c].Kind == kind {
			return c, true
		}
	}
	return NoNode, false
}

// Walk visits id and its descendants depth-first in source order. Returning
// false from fn skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.walk(c, depth+1, fn)
	}
}

// Validate checks the structural invariants: the root covers the source,
// every composite's children are contiguous and exactly cover its span, and
// parent links agree with child lists.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	root := t.nodes[0]
	if root.Start != 0 || root.End != len(t.src) {
		return fmt.Errorf("root spans [%d,%d), source has %d bytes", root.Start, root.End, len(t.src))
	}
	if root.Parent != NoNode {
		return fmt.Errorf("root has parent %d", root.Parent)
	}
	for i, n := range t.nodes {
		id := NodeID(i)
		if n.Start > n.End {
			return fmt.Errorf("node %d (%s) has inverted span [%d,%d)", id, n.Kind, n.Start, n.End)
		}
		if n.IsLeaf() {
			if len(n.Children) != 0 {
				return fmt.Errorf("leaf %d (%s) has children", id, n.Kind)
			}
			continue
		}
		if len(n.Children) == 0 {
			if n.Start != n.End {
				return fmt.Errorf("composite %d (%s) has no children", id, n.Kind)
			}
			continue
		}
		pos := n.Start
		for _, c := range n.Children {
			child := t.nodes[c]
			if child.Parent != id {
				return fmt.Errorf("node %d (%s) lists child %d whose parent is %d", id, n.Kind, c, child.Parent)
			}
			if child.Start != pos {
				return fmt.Errorf("node %d (%s): child %d (%s) starts at %d, want %d", id, n.Kind, c, child.Kind, child.Start, pos)
			}
			pos = child.End
		}
		if pos != n.End {
			return fmt.Errorf("node %d (%s): children end at %d, want %d", id, n.Kind, pos, n.End)
		}
	}
	return nil
}

// Dump renders the subtree rooted at id as an indented outline, one node per
// line. It is meant for debugging and tests.
func (t *Tree) Dump(id NodeID) string {
	var b strings.Builder
	t.Walk(id, func(n NodeID, depth int) bool {
		node := t.nodes[n]
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s [%d,%d)", node.Kind, node.Start, node.End)
		if node.IsLeaf() {
			fmt.Fprintf(&b, " %q", t.src[node.Start:node.End])
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
