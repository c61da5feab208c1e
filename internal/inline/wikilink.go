package inline

import "github.com/gerunddev/granite/internal/ast"

// WikiLink claims [[name]]. The node has exactly five children: two
// opening brackets, the WIKI_LINK_NAME element and two closing brackets.
// The name is handed on to later parsers. A failed match claims nothing;
// the brackets are left for later parsers and end up as text.
type WikiLink struct{}

func (WikiLink) Parse(t *Tokens, g Group) Result {
	var b builder
	for p := 0; p < len(g); {
		if t.Kind(g[p]) == ast.LBracket {
			if l := parseWikiLink(t, g, p); l != nil {
				b.merge(l)
				p = l.end + 1
				continue
			}
		}
		b.keep(g[p])
		p++
	}
	return b.result()
}

func parseWikiLink(t *Tokens, g Group, p int) *local {
	if !adjacent(g, p) || t.Kind(g[p+1]) != ast.LBracket {
		return nil
	}
	inner := p + 2
	for q := inner; q < len(g); q++ {
		if t.Kind(g[q]) != ast.RBracket {
			continue
		}
		if !adjacent(g, q) || t.Kind(g[q+1]) != ast.RBracket {
			return nil
		}
		l := &local{end: q + 1}
		l.spans = append(l.spans, ast.InlineSpan{Kind: ast.WikiLink, From: g[p], To: g[q+1] + 1})
		if from, to := g[p+1]+1, g[q]; to > from {
			l.spans = append(l.spans, ast.InlineSpan{Kind: ast.WikiLinkName, From: from, To: to})
		}
		if q > inner {
			l.further = append(l.further, append(Group(nil), g[inner:q]...))
		}
		return l
	}
	return nil
}
