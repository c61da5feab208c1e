package inline

import "github.com/gerunddev/granite/internal/ast"

// Autolink claims <scheme:address> autolinks and bare GFM addresses. A bare
// address that opens an inline link destination is left for the link
// parsers.
type Autolink struct{}

func (Autolink) Parse(t *Tokens, g Group) Result {
	var b builder
	for p := 0; p < len(g); p++ {
		i := g[p]
		switch t.Kind(i) {
		case ast.GFMAutolink:
			if !inDestination(t, i) {
				b.span(ast.Autolink, i, i+1)
				continue
			}
		case ast.LT:
			if p+2 < len(g) && contiguous(g, p, p+2) && !inDestination(t, i) &&
				t.Kind(i+1) == ast.AutolinkToken && t.Kind(i+2) == ast.GT {
				b.span(ast.Autolink, i, i+3)
				p += 2
				continue
			}
		}
		b.keep(i)
	}
	return b.result()
}

// inDestination reports whether token i follows "](" and optional spaces.
// Addresses in that position belong to an inline link.
func inDestination(t *Tokens, i int) bool {
	j := i - 1
	for j >= 0 && (t.Kind(j) == ast.WhiteSpace || t.Kind(j) == ast.EOL) {
		j--
	}
	return t.Kind(j) == ast.LParen && t.Kind(j-1) == ast.RBracket
}
