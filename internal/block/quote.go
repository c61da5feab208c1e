package block

import "github.com/gerunddev/granite/internal/ast"

// BlockQuote opens a quote container on '>' indented at most three columns.
type BlockQuote struct{}

func (BlockQuote) Start(ctx *Context) *Start {
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end || ctx.Source()[pos] != '>' {
		return nil
	}
	content := pos + 1
	if content < end {
		if c := ctx.Source()[content]; c == ' ' || c == '\t' {
			content++
		}
	}
	return &Start{
		Kind:        ast.BlockQuote,
		Pos:         pos,
		End:         pos + 1,
		Content:     content,
		Productions: []ast.Production{{Kind: ast.BlockQuoteMarker, Start: pos, End: pos + 1}},
	}
}
