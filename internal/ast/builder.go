package ast

import (
	"cmp"
	"slices"
)

// Production is a node claimed by the block processor. Composite kinds
// become elements; token kinds become leaves. Source not covered by any
// leaf production is filled with lexer tokens.
type Production struct {
	Kind  Kind
	Start int
	End   int
}

// InlineSpan is an element found by the inline parsers. From and To index
// the token slice handed to ParseInlines; To is exclusive.
type InlineSpan struct {
	Kind Kind
	From int
	To   int
}

// TreeBuilder turns block productions into a Tree. Tokenize must return
// tokens that exactly cover [start, end). ParseInlines is run over the
// leaves of every inline-context element.
type TreeBuilder struct {
	Tokenize     func(start, end int) []Token
	ParseInlines func(tokens []Token) []InlineSpan
}

type openNode struct {
	id  NodeID
	pos int
}

// Build assembles the tree for src. Productions may arrive in any order;
// they are nested by containment. A production that overlaps a sibling is
// clipped, and empty productions are dropped, so Build never fails.
func (b TreeBuilder) Build(src string, prods []Production) *Tree {
	sorted := slices.Clone(prods)
	slices.SortStableFunc(sorted, compareProductions)

	t := &Tree{src: src, nodes: make([]Node, 0, len(prods)*2+1)}
	root := t.add(File, 0, len(src), NoNode)
	stack := []openNode{{id: root}}

	closeTop := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		end := t.nodes[top.id].End
		b.fill(t, top.id, top.pos, end)
		if t.nodes[top.id].Kind.IsInlineContext() && b.ParseInlines != nil {
			b.nestInlines(t, top.id)
		}
		if len(stack) > 0 {
			stack[len(stack)-1].pos = end
		}
	}

	for _, p := range sorted {
		for len(stack) > 1 && t.nodes[stack[len(stack)-1].id].End <= p.Start {
			closeTop()
		}
		parent := &stack[len(stack)-1]
		start := max(p.Start, parent.pos)
		end := min(p.End, t.nodes[parent.id].End)
		if start >= end {
			continue
		}
		b.fill(t, parent.id, parent.pos, start)
		id := t.add(p.Kind, start, end, parent.id)
		parent.pos = end
		if !p.Kind.IsToken() {
			stack = append(stack, openNode{id: id, pos: start})
		}
	}
	for len(stack) > 0 {
		closeTop()
	}
	return t
}

func compareProductions(a, b Production) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(b.End, a.End); c != 0 {
		return c
	}
	// composites enclose leaves that share their span
	ak, bk := a.Kind.IsToken(), b.Kind.IsToken()
	switch {
	case !ak && bk:
		return -1
	case ak && !bk:
		return 1
	}
	return 0
}

func (t *Tree) add(kind Kind, start, end int, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Kind: kind, Start: start, End: end, Parent: parent})
	if parent != NoNode {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id
}

func (b TreeBuilder) fill(t *Tree, parent NodeID, from, to int) {
	if from >= to {
		return
	}
	if b.Tokenize == nil {
		t.add(Text, from, to, parent)
		return
	}
	pos := from
	for _, tok := range b.Tokenize(from, to) {
		if tok.Start != pos || tok.End <= tok.Start || tok.End > to {
			break
		}
		t.add(tok.Kind, tok.Start, tok.End, parent)
		pos = tok.End
	}
	if pos < to {
		t.add(Text, pos, to, parent)
	}
}

// nestInlines runs the inline parsers over the leaves of id and regroups
// those leaves under the returned spans. Spans that cross an enclosing
// span are discarded.
func (b TreeBuilder) nestInlines(t *Tree, id NodeID) {
	leaves := slices.Clone(t.nodes[id].Children)
	tokens := make([]Token, len(leaves))
	for i, c := range leaves {
		n := t.nodes[c]
		if !n.IsLeaf() {
			return
		}
		tokens[i] = Token{Kind: n.Kind, Start: n.Start, End: n.End}
	}
	spans := b.ParseInlines(tokens)
	if len(spans) == 0 {
		return
	}
	slices.SortStableFunc(spans, func(a, b InlineSpan) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(b.To, a.To)
	})

	type frame struct {
		id NodeID
		to int
	}
	stack := []frame{{id: id, to: len(leaves)}}
	t.nodes[id].Children = t.nodes[id].Children[:0]
	si := 0
	for i, leaf := range leaves {
		for len(stack) > 1 && stack[len(stack)-1].to <= i {
			stack = stack[:len(stack)-1]
		}
		for si < len(spans) && spans[si].From <= i {
			s := spans[si]
			si++
			top := stack[len(stack)-1]
			if s.From != i || s.To <= s.From || s.To > top.to || s.Kind.IsToken() {
				continue
			}
			nid := t.add(s.Kind, t.nodes[leaf].Start, t.nodes[leaves[s.To-1]].End, top.id)
			stack = append(stack, frame{id: nid, to: s.To})
		}
		top := stack[len(stack)-1].id
		t.nodes[leaf].Parent = top
		t.nodes[top].Children = append(t.nodes[top].Children, leaf)
	}
}
