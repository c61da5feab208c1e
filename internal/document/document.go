package document

import (
	"fmt"
	"strings"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/markdown"
)

// Document is a parsed source with its generic tree and top-level blocks.
// It is read-only; edits return a new source to be parsed again.
type Document struct {
	Source string
	Tree   *ast.Tree
	Blocks []TopLevelNode
}

// Parse parses src with the default parser.
func Parse(src string) (*Document, error) {
	return ParseWith(markdown.Default(), src)
}

// ParseWith parses src with p.
func ParseWith(p *markdown.Parser, src string) (*Document, error) {
	tree := p.Parse(src)
	blocks, err := FromTree(src, tree)
	if err != nil {
		return nil, err
	}
	return &Document{Source: src, Tree: tree, Blocks: blocks}, nil
}

// Nodes returns the semantic node of every block.
func (d *Document) Nodes() []Node {
	return Nodes(d.Blocks)
}

// Nodes strips the wrappers from blocks.
func Nodes(blocks []TopLevelNode) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b.Node
	}
	return nodes
}

// Replace returns the source with the text of the blocks named in edits
// substituted. Everything else, separators included, is kept byte for byte.
func (d *Document) Replace(edits map[int]string) string {
	byOrigin := make(map[ast.NodeID]int, len(d.Blocks))
	for i, b := range d.Blocks {
		byOrigin[b.origin] = i
	}
	var sb strings.Builder
	sb.Grow(len(d.Source))
	for _, id := range d.Tree.Children(d.Tree.Root()) {
		if i, ok := byOrigin[id]; ok {
			if text, ok := edits[i]; ok {
				sb.WriteString(text)
				continue
			}
		}
		sb.WriteString(d.Tree.Text(id))
	}
	return sb.String()
}

// ToggleCheckbox sets the checkbox of item in block and returns the new
// source of the whole document.
func (d *Document) ToggleCheckbox(block int, item ListItem, checked bool) (string, error) {
	if block < 0 || block >= len(d.Blocks) {
		return "", fmt.Errorf("block %d out of range [0,%d)", block, len(d.Blocks))
	}
	text, ok := d.Blocks[block].ToggleCheckbox(item, checked)
	if !ok {
		if item.Checkbox == nil {
			return "", ErrNoCheckbox
		}
		return "", ErrStale
	}
	return d.Replace(map[int]string{block: text}), nil
}

// Task is a list item with a checkbox.
type Task struct {
	Block   int
	Item    ListItem
	Checked bool
	Text    string
	Line    int
}

// Tasks returns every task item in document order.
func (d *Document) Tasks() []Task {
	var tasks []Task
	for i, b := range d.Blocks {
		walkItems(b.Node, func(it ListItem) {
			if it.Checkbox == nil {
				return
			}
			start, _ := d.Tree.Span(it.Checkbox.origin)
			tasks = append(tasks, Task{
				Block:   i,
				Item:    it,
				Checked: it.Checkbox.Checked,
				Text:    itemText(it),
				Line:    strings.Count(d.Source[:start], "\n") + 1,
			})
		})
	}
	return tasks
}

// walkItems calls fn for every list item under n in document order.
func walkItems(n Node, fn func(ListItem)) {
	switch n := n.(type) {
	case UnorderedList:
		for _, it := range n.Items {
			walkItem(it, fn)
		}
	case OrderedList:
		for _, it := range n.Items {
			walkItem(it, fn)
		}
	case BlockQuote:
		for _, ch := range n.Children {
			walkItems(ch, fn)
		}
	}
}

func walkItem(it ListItem, fn func(ListItem)) {
	fn(it)
	for _, ch := range it.Children {
		walkItems(ch, fn)
	}
	if it.Sublist != nil {
		walkItems(it.Sublist, fn)
	}
}

// itemText is the plain text of the item's first paragraph.
func itemText(it ListItem) string {
	for _, ch := range it.Children {
		switch ch := ch.(type) {
		case Paragraph:
			return PlainText(ch.Children)
		case Heading:
			return PlainText(ch.Children)
		}
	}
	return ""
}
