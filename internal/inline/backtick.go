package inline

import "github.com/gerunddev/granite/internal/ast"

// Backtick claims code spans: a backtick run closed by the next run of the
// same length. Nothing inside a code span is parsed further.
type Backtick struct{}

func (Backtick) Parse(t *Tokens, g Group) Result {
	var b builder
	for p := 0; p < len(g); p++ {
		i := g[p]
		if t.Kind(i) != ast.Backtick {
			b.keep(i)
			continue
		}
		width := len(t.Text(i))
		q := p + 1
		for q < len(g) && !(t.Kind(g[q]) == ast.Backtick && len(t.Text(g[q])) == width) {
			q++
		}
		if q == len(g) {
			b.keep(i)
			continue
		}
		b.span(ast.CodeSpan, i, g[q]+1)
		p = q
	}
	return b.result()
}
