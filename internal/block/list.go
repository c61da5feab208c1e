package block

import "github.com/gerunddev/granite/internal/ast"

// ListItem opens a list item container on a bullet ('-', '+', '*') or an
// ordered marker ("1." or "1)"). With TaskLists set, a "[ ]" or "[x]"
// directly after the marker is claimed as part of the item's prefix.
type ListItem struct {
	TaskLists bool
}

func (p ListItem) Start(ctx *Context) *Start {
	src := ctx.Source()
	end := ctx.LineEnd()
	pos, cols := ctx.Indent(3)
	if cols > 3 || pos >= end {
		return nil
	}

	it := &ItemStart{}
	q := pos
	switch c := src[q]; {
	case c == '-' || c == '+' || c == '*':
		it.Type = c
		q++
	case c >= '0' && c <= '9':
		n := 0
		for q < end && q-pos < 9 && src[q] >= '0' && src[q] <= '9' {
			n = n*10 + int(src[q]-'0')
			q++
		}
		if q >= end || (src[q] != '.' && src[q] != ')') {
			return nil
		}
		it.Type = src[q]
		it.Number = n
		q++
	default:
		return nil
	}
	if q < end && src[q] != ' ' && src[q] != '\t' {
		return nil
	}

	markerCol := ctx.Column(q)
	blank := isBlank(src[q:end])
	if ctx.Interrupting && (blank || (it.Ordered() && it.Number != 1)) {
		return nil
	}

	content := skipSpaces(src, q, end)
	spaces := ctx.Column(content) - markerCol
	switch {
	case blank:
		content = q
		if q < end {
			content = q + 1
		}
		it.Column = markerCol + 1
	case spaces > 4:
		// indented code inside the item: only one space belongs to the marker
		content = q + 1
		it.Column = markerCol + 1
	default:
		it.Column = markerCol + spaces
	}
	it.MarkerEnd = content

	if p.TaskLists && !blank {
		it.Checkbox = checkboxWidth(src, content, end)
	}

	return &Start{
		Kind:    ast.ListItem,
		Pos:     pos,
		End:     content + it.Checkbox,
		Content: content + it.Checkbox,
		Item:    it,
	}
}
