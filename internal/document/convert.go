package document

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/block"
)

// converter turns one generic tree into semantic nodes. Every checkbox it
// creates is stamped with gen so it can only toggle blocks of this parse.
type converter struct {
	src  string
	tree *ast.Tree
	gen  uuid.UUID
	defs map[string]LinkDefinition
}

// FromTree converts each child of the tree root into a top-level node.
// Separator tokens between blocks are dropped. The tree must have been
// built from src.
func FromTree(src string, tree *ast.Tree) ([]TopLevelNode, error) {
	if tree.Source() != src {
		return nil, ErrSourceMismatch
	}
	c := &converter{src: src, tree: tree, gen: uuid.New()}
	c.collectDefinitions()

	var out []TopLevelNode
	for _, id := range tree.Children(tree.Root()) {
		switch tree.Kind(id) {
		case ast.EOL, ast.WhiteSpace:
			continue
		}
		n, err := c.block(id)
		if err != nil {
			return nil, err
		}
		out = append(out, TopLevelNode{Node: n, source: src, tree: tree, origin: id, gen: c.gen})
	}
	return out, nil
}

// MustFromTree is like FromTree but panics on error.
func MustFromTree(src string, tree *ast.Tree) []TopLevelNode {
	nodes, err := FromTree(src, tree)
	if err != nil {
		panic(err)
	}
	return nodes
}

// collectDefinitions indexes every link reference definition. The first
// definition of a label wins.
func (c *converter) collectDefinitions() {
	c.defs = map[string]LinkDefinition{}
	c.tree.Walk(c.tree.Root(), func(id ast.NodeID, _ int) bool {
		if c.tree.Kind(id) != ast.LinkDefinition {
			return !c.tree.Kind(id).IsInlineContext()
		}
		def := c.definition(id)
		key := normalizeLabel(def.Label)
		if _, ok := c.defs[key]; !ok && key != "" {
			c.defs[key] = def
		}
		return false
	})
}

func (c *converter) unsupported(id ast.NodeID) error {
	start, _ := c.tree.Span(id)
	return &UnsupportedKindError{Kind: c.tree.Kind(id), Offset: start}
}

func (c *converter) block(id ast.NodeID) (Node, error) {
	t := c.tree
	k := t.Kind(id)
	if level := k.HeadingLevel(); level > 0 {
		content := ast.ATXContent
		if k == ast.Setext1 || k == ast.Setext2 {
			content = ast.SetextContent
		}
		h := Heading{Level: level}
		if cid, ok := t.FindChild(id, content); ok {
			children, err := c.inlines(t.Children(cid))
			if err != nil {
				return nil, err
			}
			h.Children = children
		}
		return h, nil
	}

	switch k {
	case ast.Paragraph:
		children, err := c.inlines(t.Children(id))
		if err != nil {
			return nil, err
		}
		return Paragraph{Children: children}, nil
	case ast.BlockQuote:
		children, err := c.blocks(id)
		if err != nil {
			return nil, err
		}
		return BlockQuote{Children: children}, nil
	case ast.UnorderedList, ast.OrderedList:
		return c.list(id)
	case ast.CodeFence:
		cb := CodeBlock{Code: c.body(id, ast.CodeFenceContent, true)}
		if lang, ok := t.FindChild(id, ast.FenceLang); ok {
			cb.Lang = unescape(t.Text(lang))
		}
		return cb, nil
	case ast.CodeBlock:
		return CodeBlock{Code: c.body(id, ast.CodeLine, false)}, nil
	case ast.HorizontalRule:
		return HorizontalRule{}, nil
	case ast.FrontMatter:
		return FrontMatter{Text: c.body(id, ast.FrontMatterContent, true)}, nil
	case ast.Table:
		return c.table(id)
	case ast.LinkDefinition:
		return c.definition(id), nil
	}
	return nil, c.unsupported(id)
}

// isDecoration reports whether a token only carries container prefix or
// separator information inside a container block.
func isDecoration(k ast.Kind) bool {
	switch k {
	case ast.BlockQuoteMarker, ast.EOL, ast.WhiteSpace,
		ast.ListBullet, ast.ListNumber, ast.CheckBox:
		return true
	}
	return false
}

// blocks converts the block children of a container.
func (c *converter) blocks(id ast.NodeID) ([]Node, error) {
	var out []Node
	for _, ch := range c.tree.Children(id) {
		if isDecoration(c.tree.Kind(ch)) {
			continue
		}
		n, err := c.block(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (c *converter) list(id ast.NodeID) (Node, error) {
	t := c.tree
	var items []ListItem
	start := 1
	for _, ch := range t.Children(id) {
		if t.Kind(ch) != ast.ListItem {
			continue
		}
		if len(items) == 0 {
			if num, ok := t.FindChild(ch, ast.ListNumber); ok {
				start = listNumber(t.Text(num))
			}
		}
		it, err := c.item(ch)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if t.Kind(id) == ast.OrderedList {
		return OrderedList{Start: start, Items: items}, nil
	}
	return UnorderedList{Items: items}, nil
}

func listNumber(marker string) int {
	end := 0
	for end < len(marker) && marker[end] >= '0' && marker[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(marker[:end])
	if err != nil {
		return 1
	}
	return n
}

func (c *converter) item(id ast.NodeID) (ListItem, error) {
	var it ListItem
	if cb, ok := c.tree.FindChild(id, ast.CheckBox); ok {
		text := c.tree.Text(cb)
		it.Checkbox = &CheckboxState{
			Checked: len(text) > 1 && text[1] == 'x',
			origin:  cb,
			gen:     c.gen,
		}
	}
	children, err := c.blocks(id)
	if err != nil {
		return ListItem{}, err
	}
	if n := len(children); n > 0 {
		if sub, ok := children[n-1].(ListNode); ok {
			it.Sublist = sub
			children = children[:n-1]
		}
	}
	it.Children = children
	return it, nil
}

// body joins the content lines of a code or front matter block. With
// skipOpener the text up to the first line break is ignored. Trailing line
// breaks are dropped.
func (c *converter) body(id ast.NodeID, content ast.Kind, skipOpener bool) string {
	var b strings.Builder
	started := !skipOpener
	for _, ch := range c.tree.Children(id) {
		switch c.tree.Kind(ch) {
		case ast.EOL:
			if !started {
				started = true
				continue
			}
			b.WriteByte('\n')
		case content:
			if started {
				b.WriteString(c.tree.Text(ch))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *converter) table(id ast.NodeID) (Node, error) {
	t := c.tree
	var tbl Table
	for _, ch := range t.Children(id) {
		switch t.Kind(ch) {
		case ast.TableSeparator:
			tbl.Align = block.Alignments(t.Text(ch))
		case ast.TableHeader:
			cells, err := c.cells(ch)
			if err != nil {
				return nil, err
			}
			tbl.Header = cells
		case ast.TableRow:
			cells, err := c.cells(ch)
			if err != nil {
				return nil, err
			}
			tbl.Rows = append(tbl.Rows, cells)
		}
	}
	return tbl, nil
}

func (c *converter) cells(row ast.NodeID) ([]TableCell, error) {
	var cells []TableCell
	for _, ch := range c.tree.Children(row) {
		if c.tree.Kind(ch) != ast.TableCell {
			continue
		}
		children, err := c.inlines(c.tree.Children(ch))
		if err != nil {
			return nil, err
		}
		cells = append(cells, TableCell{Children: children})
	}
	return cells, nil
}

func (c *converter) definition(id ast.NodeID) LinkDefinition {
	t := c.tree
	var def LinkDefinition
	if l, ok := t.FindChild(id, ast.LinkLabel); ok {
		def.Label = strings.TrimSpace(trimDelims(t.Text(l), 1))
	}
	if d, ok := t.FindChild(id, ast.LinkDestination); ok {
		def.Destination = destination(t.Text(d))
	}
	if ti, ok := t.FindChild(id, ast.LinkTitle); ok {
		def.Title = unescape(trimDelims(t.Text(ti), 1))
	}
	return def
}

// normalizeLabel case-folds a link label and collapses inner whitespace.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// trimDelims drops n bytes from both ends of s.
func trimDelims(s string, n int) string {
	if len(s) < 2*n {
		return ""
	}
	return s[n : len(s)-n]
}

// destination unescapes a raw link destination and strips angle brackets.
func destination(raw string) string {
	if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
		raw = trimDelims(raw, 1)
	}
	return unescape(raw)
}
