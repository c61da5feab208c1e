package block

import "github.com/gerunddev/granite/internal/ast"

// ATXHeading recognizes "#" through "######" headings. The heading content
// excludes the marker, surrounding spaces and an optional closing run of
// '#'.
type ATXHeading struct{}

func (ATXHeading) Start(ctx *Context) *Start {
	src := ctx.Source()
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end || src[pos] != '#' {
		return nil
	}
	q := pos
	for q < end && src[q] == '#' {
		q++
	}
	level := q - pos
	if level > 6 || (q < end && src[q] != ' ' && src[q] != '\t') {
		return nil
	}

	lineEnd := trimRight(src, pos, end)
	cs := skipSpaces(src, q, lineEnd)
	ce := lineEnd
	k := ce
	for k > cs && src[k-1] == '#' {
		k--
	}
	switch {
	case k == cs:
		ce = cs
	case k < ce && (src[k-1] == ' ' || src[k-1] == '\t'):
		ce = trimRight(src, cs, k)
	}

	prods := []ast.Production{{Kind: ast.ATXHeader, Start: pos, End: q}}
	if ce > cs {
		prods = append(prods, ast.Production{Kind: ast.ATXContent, Start: cs, End: ce})
	}
	return &Start{
		Kind:        ast.ATXKind(level),
		Pos:         pos,
		End:         max(lineEnd, q),
		Productions: prods,
	}
}

// HorizontalRule recognizes thematic breaks: three or more '*', '-' or '_'
// optionally separated by spaces.
type HorizontalRule struct{}

func (HorizontalRule) Start(ctx *Context) *Start {
	src := ctx.Source()
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end {
		return nil
	}
	c := src[pos]
	if c != '*' && c != '-' && c != '_' {
		return nil
	}
	n := 0
	for q := pos; q < end; q++ {
		switch src[q] {
		case c:
			n++
		case ' ', '\t':
		default:
			return nil
		}
	}
	if n < 3 {
		return nil
	}
	return &Start{Kind: ast.HorizontalRule, Pos: pos, End: trimRight(src, pos, end)}
}
