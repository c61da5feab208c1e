package block

import (
	"strings"

	"github.com/gerunddev/granite/internal/ast"
)

// CodeFence recognizes ``` and ~~~ fenced code. The first word of the info
// string becomes the FENCE_LANG token.
type CodeFence struct{}

func (CodeFence) Start(ctx *Context) *Start {
	src := ctx.Source()
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end {
		return nil
	}
	c := src[pos]
	if c != '`' && c != '~' {
		return nil
	}
	q := pos
	for q < end && src[q] == c {
		q++
	}
	if q-pos < 3 {
		return nil
	}
	if c == '`' && strings.IndexByte(src[q:end], '`') >= 0 {
		return nil
	}

	prods := []ast.Production{{Kind: ast.CodeFenceStart, Start: pos, End: q}}
	ls := skipSpaces(src, q, end)
	le := ls
	for le < end && src[le] != ' ' && src[le] != '\t' {
		le++
	}
	if le > ls {
		prods = append(prods, ast.Production{Kind: ast.FenceLang, Start: ls, End: le})
	}
	return &Start{
		Kind:        ast.CodeFence,
		Pos:         pos,
		End:         max(trimRight(src, pos, end), q),
		Productions: prods,
		Leaf:        &fenceBlock{char: c, length: q - pos, indent: cols},
	}
}

type fenceBlock struct {
	char   byte
	length int
	indent int
}

func (f *fenceBlock) Continue(ctx *Context) Step {
	src := ctx.Source()
	end := ctx.LineEnd()
	if pos, cols := ctx.Indent(3); cols <= 3 && pos < end && src[pos] == f.char {
		q := pos
		for q < end && src[q] == f.char {
			q++
		}
		if q-pos >= f.length && isBlank(src[q:end]) {
			return Step{
				Action:      Finish,
				Productions: []ast.Production{{Kind: ast.CodeFenceEnd, Start: pos, End: q}},
				End:         q,
			}
		}
	}

	// content lines lose at most the opening fence's indentation
	base := ctx.Column(ctx.Offset)
	cs := ctx.Offset
	for cs < end && src[cs] == ' ' && ctx.Column(cs)-base < f.indent {
		cs++
	}
	if cs >= end {
		return Step{Action: Consume}
	}
	return Step{
		Action:      Consume,
		Productions: []ast.Production{{Kind: ast.CodeFenceContent, Start: cs, End: end}},
		End:         end,
	}
}

// IndentedCode recognizes code indented by four or more columns. It never
// interrupts a paragraph.
type IndentedCode struct{}

func (IndentedCode) Start(ctx *Context) *Start {
	if ctx.Interrupting || ctx.Blank() {
		return nil
	}
	cs, ok := codeIndent(ctx)
	if !ok {
		return nil
	}
	end := ctx.LineEnd()
	return &Start{
		Kind:        ast.CodeBlock,
		Pos:         ctx.Offset,
		End:         end,
		Productions: []ast.Production{{Kind: ast.CodeLine, Start: cs, End: end}},
		Leaf:        indentedBlock{},
	}
}

type indentedBlock struct{}

func (indentedBlock) Continue(ctx *Context) Step {
	if ctx.Blank() {
		return Step{Action: Consume}
	}
	cs, ok := codeIndent(ctx)
	if !ok {
		return Step{Action: Close}
	}
	end := ctx.LineEnd()
	return Step{
		Action:      Consume,
		Productions: []ast.Production{{Kind: ast.CodeLine, Start: cs, End: end}},
		End:         end,
	}
}

// codeIndent skips four columns of indentation at ctx.Offset.
func codeIndent(ctx *Context) (int, bool) {
	src := ctx.Source()
	end := ctx.LineEnd()
	base := ctx.Column(ctx.Offset)
	q := ctx.Offset
	for q < end && ctx.Column(q)-base < 4 && (src[q] == ' ' || src[q] == '\t') {
		q++
	}
	return q, ctx.Column(q)-base >= 4
}
