package block

import (
	"regexp"
	"strings"

	"github.com/gerunddev/granite/internal/ast"
)

// linkDefRe matches a single-line reference definition:
//
//	[label]: destination "optional title"
var linkDefRe = regexp.MustCompile(`^(\[(?:[^\[\]\\]|\\.)+\]):[ \t]*(<[^<>\n]*>|[^ \t<][^ \t]*)(?:[ \t]+("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|\((?:[^()\\]|\\.)*\)))?[ \t]*$`)

// LinkDefinition recognizes link reference definitions. They never
// interrupt a paragraph.
type LinkDefinition struct{}

func (LinkDefinition) Start(ctx *Context) *Start {
	if ctx.Interrupting {
		return nil
	}
	src := ctx.Source()
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end || src[pos] != '[' {
		return nil
	}
	m := linkDefRe.FindStringSubmatchIndex(src[pos:end])
	if m == nil {
		return nil
	}
	label := src[pos+m[2]+1 : pos+m[3]-1]
	if strings.TrimSpace(label) == "" {
		return nil
	}

	prods := []ast.Production{
		{Kind: ast.LinkLabel, Start: pos + m[2], End: pos + m[3]},
		{Kind: ast.LinkDestination, Start: pos + m[4], End: pos + m[5]},
	}
	if m[6] >= 0 {
		prods = append(prods, ast.Production{Kind: ast.LinkTitle, Start: pos + m[6], End: pos + m[7]})
	}
	return &Start{
		Kind:        ast.LinkDefinition,
		Pos:         pos,
		End:         trimRight(src, pos, end),
		Productions: prods,
	}
}
