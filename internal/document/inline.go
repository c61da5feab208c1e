package document

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/gerunddev/granite/internal/ast"
)

// isLineDecoration reports whether a token is trimmed from both ends of a
// logical line of inline content.
func isLineDecoration(k ast.Kind) bool {
	return k == ast.WhiteSpace || k == ast.BlockQuoteMarker
}

// inlines converts inline content line by line. Decoration is trimmed from
// each line, every line break becomes a LineBreak and adjacent text is
// merged. A line holding only decoration contributes nothing but its break.
func (c *converter) inlines(ids []ast.NodeID) ([]InlineNode, error) {
	t := c.tree
	var out []InlineNode
	for i := 0; i < len(ids); {
		for i < len(ids) && isLineDecoration(t.Kind(ids[i])) {
			i++
		}
		lineEnd := i
		for lineEnd < len(ids) && t.Kind(ids[lineEnd]) != ast.EOL {
			lineEnd++
		}
		end := lineEnd
		for end > i && isLineDecoration(t.Kind(ids[end-1])) {
			end--
		}
		for _, id := range ids[i:end] {
			nodes, err := c.inline(id)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		if lineEnd == len(ids) {
			break
		}
		out = append(out, LineBreak{})
		i = lineEnd + 1
	}
	return mergeText(out), nil
}

// inline converts one node of inline content. Most tokens become text; an
// unresolved reference link becomes the nodes of its literal text.
func (c *converter) inline(id ast.NodeID) ([]InlineNode, error) {
	t := c.tree
	k := t.Kind(id)
	if k.IsToken() {
		if k == ast.EOL {
			return []InlineNode{LineBreak{}}, nil
		}
		return []InlineNode{Text{Text: unescape(t.Text(id))}}, nil
	}

	children := t.Children(id)
	switch k {
	case ast.Emph:
		nodes, err := c.inlines(inner(children, 1))
		return []InlineNode{Emphasis{Children: nodes}}, err
	case ast.Strong:
		nodes, err := c.inlines(inner(children, 2))
		return []InlineNode{StrongEmphasis{Children: nodes}}, err
	case ast.Strikethrough:
		nodes, err := c.inlines(inner(children, 2))
		return []InlineNode{Strikethrough{Children: nodes}}, err
	case ast.CodeSpan:
		return []InlineNode{CodeSpan{Text: c.codeSpan(children)}}, nil
	case ast.InlineLink, ast.FullReferenceLink, ast.ShortReferenceLink:
		l, ok, err := c.link(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return c.flatten(id)
		}
		return []InlineNode{l}, nil
	case ast.Image:
		for _, ch := range children {
			switch t.Kind(ch) {
			case ast.InlineLink, ast.FullReferenceLink, ast.ShortReferenceLink:
				l, ok, err := c.link(ch)
				if err != nil {
					return nil, err
				}
				if !ok {
					return c.flatten(id)
				}
				return []InlineNode{Image{Src: l.Destination, Alt: PlainText(l.Children), Title: l.Title}}, nil
			}
		}
		return c.flatten(id)
	case ast.Autolink:
		return []InlineNode{c.autolink(children)}, nil
	case ast.WikiLink:
		var w WikiLink
		if name, ok := t.FindChild(id, ast.WikiLinkName); ok {
			target, alias, _ := strings.Cut(t.Text(name), "|")
			w.Target = strings.TrimSpace(target)
			w.Alias = strings.TrimSpace(alias)
		}
		return []InlineNode{w}, nil
	}
	return nil, c.unsupported(id)
}

// inner drops n delimiter tokens from both ends.
func inner(ids []ast.NodeID, n int) []ast.NodeID {
	if len(ids) < 2*n {
		return nil
	}
	return ids[n : len(ids)-n]
}

// flatten converts the children of a construct that did not resolve, so
// its brackets surface as text. Links nested in the text still convert.
func (c *converter) flatten(id ast.NodeID) ([]InlineNode, error) {
	var out []InlineNode
	for _, ch := range c.tree.Children(id) {
		var nodes []InlineNode
		var err error
		switch c.tree.Kind(ch) {
		case ast.LinkText, ast.LinkLabel:
			nodes, err = c.flatten(ch)
		default:
			nodes, err = c.inline(ch)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return mergeText(out), nil
}

// link resolves an inline or reference link. It reports false for a
// reference whose label has no definition.
func (c *converter) link(id ast.NodeID) (Link, bool, error) {
	t := c.tree
	var l Link
	var textID, labelID ast.NodeID = ast.NoNode, ast.NoNode
	if ch, ok := t.FindChild(id, ast.LinkText); ok {
		textID = ch
	}
	if ch, ok := t.FindChild(id, ast.LinkLabel); ok {
		labelID = ch
	}

	if t.Kind(id) == ast.InlineLink {
		if d, ok := t.FindChild(id, ast.LinkDestination); ok {
			l.Destination = destination(t.Text(d))
		}
		if ti, ok := t.FindChild(id, ast.LinkTitle); ok {
			l.Title = unescape(trimDelims(t.Text(ti), 1))
		}
	} else {
		label := ""
		if labelID != ast.NoNode {
			label = trimDelims(t.Text(labelID), 1)
		}
		if strings.TrimSpace(label) == "" && textID != ast.NoNode {
			label = trimDelims(t.Text(textID), 1)
		}
		def, ok := c.defs[normalizeLabel(label)]
		if !ok {
			return Link{}, false, nil
		}
		l.Destination = def.Destination
		l.Title = def.Title
	}

	display := textID
	if display == ast.NoNode {
		display = labelID
	}
	if display != ast.NoNode {
		children, err := c.inlines(inner(t.Children(display), 1))
		if err != nil {
			return Link{}, false, err
		}
		l.Children = children
	}
	l.IsInternal = isInternal(l.Destination)
	return l, true, nil
}

func (c *converter) autolink(ids []ast.NodeID) Link {
	var addr string
	for _, id := range ids {
		switch c.tree.Kind(id) {
		case ast.AutolinkToken, ast.GFMAutolink:
			addr = c.tree.Text(id)
		}
	}
	dest := addr
	switch {
	case strings.HasPrefix(addr, "www."):
		dest = "http://" + addr
	case strings.Contains(addr, "@") && !strings.Contains(addr, ":"):
		dest = "mailto:" + addr
	}
	return Link{Children: []InlineNode{Text{Text: addr}}, Destination: dest}
}

// codeSpan returns the text between the backtick runs. Line breaks become
// spaces and one space is stripped from each side when both are present.
func (c *converter) codeSpan(ids []ast.NodeID) string {
	var b strings.Builder
	for _, id := range inner(ids, 1) {
		switch c.tree.Kind(id) {
		case ast.EOL:
			b.WriteByte(' ')
		case ast.BlockQuoteMarker:
		default:
			b.WriteString(c.tree.Text(id))
		}
	}
	s := b.String()
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

// isInternal reports whether dest points inside the notebook: it has no
// scheme and no host.
func isInternal(dest string) bool {
	if dest == "" {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// unescape drops the backslash of every backslash-escaped ASCII
// punctuation character.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	return string(util.UnescapePunctuations([]byte(s)))
}

func mergeText(nodes []InlineNode) []InlineNode {
	out := nodes[:0]
	for _, n := range nodes {
		if txt, ok := n.(Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(Text); ok {
				out[len(out)-1] = Text{Text: prev.Text + txt.Text}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// PlainText renders inline nodes as unformatted text.
func PlainText(nodes []InlineNode) string {
	var b strings.Builder
	writePlain(&b, nodes)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []InlineNode) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			b.WriteString(n.Text)
		case CodeSpan:
			b.WriteString(n.Text)
		case Emphasis:
			writePlain(b, n.Children)
		case StrongEmphasis:
			writePlain(b, n.Children)
		case Strikethrough:
			writePlain(b, n.Children)
		case Link:
			writePlain(b, n.Children)
		case Image:
			b.WriteString(n.Alt)
		case LineBreak:
			b.WriteByte(' ')
		case WikiLink:
			if n.Alias != "" {
				b.WriteString(n.Alias)
			} else {
				b.WriteString(n.Target)
			}
		}
	}
}
