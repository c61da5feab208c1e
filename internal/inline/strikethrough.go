package inline

import "github.com/gerunddev/granite/internal/ast"

// Strikethrough claims ~~text~~. The text between the tildes is handed on
// to later parsers.
type Strikethrough struct{}

func (Strikethrough) Parse(t *Tokens, g Group) Result {
	var b builder
	for p := 0; p < len(g); {
		if isDoubleTilde(t, g, p) {
			if q := closingTilde(t, g, p+2); q >= 0 {
				b.span(ast.Strikethrough, g[p], g[q+1]+1)
				b.delegate(g[p+2 : q])
				p = q + 2
				continue
			}
		}
		b.keep(g[p])
		p++
	}
	return b.result()
}

func isDoubleTilde(t *Tokens, g Group, p int) bool {
	return t.Kind(g[p]) == ast.Tilde && adjacent(g, p) && t.Kind(g[p+1]) == ast.Tilde
}

func closingTilde(t *Tokens, g Group, from int) int {
	if from >= len(g) || t.Kind(g[from]) == ast.WhiteSpace {
		return -1
	}
	for q := from + 1; q+1 < len(g); q++ {
		if isDoubleTilde(t, g, q) && t.Kind(g[q-1]) != ast.WhiteSpace {
			return q
		}
	}
	return -1
}
