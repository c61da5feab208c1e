package block

import "github.com/gerunddev/granite/internal/ast"

const frontMatterDelimiter = "---"

// FrontMatter opens a front matter block when the very first line of the
// document is exactly "---". It is the only provider that may claim that
// line, so it must come first in the chain.
type FrontMatter struct{}

func (FrontMatter) Start(ctx *Context) *Start {
	if ctx.LineIndex() != 0 || ctx.Offset != 0 || ctx.LineStart() != 0 {
		return nil
	}
	end := ctx.LineEnd()
	if ctx.Source()[:end] != frontMatterDelimiter {
		return nil
	}
	return &Start{
		Kind:        ast.FrontMatter,
		Pos:         0,
		End:         end,
		Productions: []ast.Production{{Kind: ast.FrontMatterStart, Start: 0, End: end}},
		Leaf:        &frontMatterBlock{},
	}
}

// frontMatterBlock claims every following line until a closing "---". An
// unterminated block simply runs to the end of input.
type frontMatterBlock struct{}

func (*frontMatterBlock) Continue(ctx *Context) Step {
	start, end := ctx.LineStart(), ctx.LineEnd()
	if ctx.Source()[start:end] == frontMatterDelimiter {
		return Step{
			Action:      Finish,
			Productions: []ast.Production{{Kind: ast.FrontMatterEnd, Start: start, End: end}},
			End:         end,
		}
	}
	if start == end {
		return Step{Action: Consume}
	}
	return Step{
		Action:      Consume,
		Productions: []ast.Production{{Kind: ast.FrontMatterContent, Start: start, End: end}},
		End:         end,
	}
}
