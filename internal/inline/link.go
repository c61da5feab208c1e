package inline

import "github.com/gerunddev/granite/internal/ast"

// Image claims "!" followed by an inline or reference link.
type Image struct{}

func (Image) Parse(t *Tokens, g Group) Result {
	var b builder
	for p := 0; p < len(g); {
		if t.Kind(g[p]) == ast.ExclamationMark && adjacent(g, p) && t.Kind(g[p+1]) == ast.LBracket {
			l := parseInlineLink(t, g, p+1)
			if l == nil {
				l = parseReferenceLink(t, g, p+1)
			}
			if l != nil {
				b.span(ast.Image, g[p], g[l.end]+1)
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

// InlineLink claims [text](destination "title").
type InlineLink struct{}

func (InlineLink) Parse(t *Tokens, g Group) Result {
	return parseLinks(t, g, parseInlineLink)
}

// ReferenceLink claims [text][label], [text][] and [label]. Labels are not
// checked against the document's definitions here; unresolved references
// are rendered as their literal text by the converter.
type ReferenceLink struct{}

func (ReferenceLink) Parse(t *Tokens, g Group) Result {
	return parseLinks(t, g, parseReferenceLink)
}

func parseLinks(t *Tokens, g Group, parse func(*Tokens, Group, int) *local) Result {
	var b builder
	for p := 0; p < len(g); {
		if t.Kind(g[p]) == ast.LBracket {
			if l := parse(t, g, p); l != nil {
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

func parseInlineLink(t *Tokens, g Group, p int) *local {
	q, ok := parseLinkText(t, g, p)
	if !ok {
		return nil
	}
	end, tail, ok := parseInlineTail(t, g, q)
	if !ok {
		return nil
	}
	l := &local{end: end}
	l.spans = append(l.spans,
		ast.InlineSpan{Kind: ast.InlineLink, From: g[p], To: g[end] + 1},
		ast.InlineSpan{Kind: ast.LinkText, From: g[p], To: g[q] + 1},
	)
	l.spans = append(l.spans, tail...)
	if q > p+1 {
		l.further = append(l.further, append(Group(nil), g[p+1:q]...))
	}
	return l
}

func parseReferenceLink(t *Tokens, g Group, p int) *local {
	if q, ok := parseLinkText(t, g, p); ok && adjacent(g, q) && t.Kind(g[q+1]) == ast.LBracket {
		if e, ok := parseLabelOrEmpty(t, g, q+1); ok {
			l := &local{end: e}
			l.spans = append(l.spans,
				ast.InlineSpan{Kind: ast.FullReferenceLink, From: g[p], To: g[e] + 1},
				ast.InlineSpan{Kind: ast.LinkText, From: g[p], To: g[q] + 1},
				ast.InlineSpan{Kind: ast.LinkLabel, From: g[q+1], To: g[e] + 1},
			)
			if q > p+1 {
				l.further = append(l.further, append(Group(nil), g[p+1:q]...))
			}
			return l
		}
	}
	e, ok := parseLinkLabel(t, g, p)
	if !ok {
		return nil
	}
	l := &local{end: e}
	l.spans = append(l.spans,
		ast.InlineSpan{Kind: ast.ShortReferenceLink, From: g[p], To: g[e] + 1},
		ast.InlineSpan{Kind: ast.LinkLabel, From: g[p], To: g[e] + 1},
	)
	l.further = append(l.further, append(Group(nil), g[p+1:e]...))
	return l
}

// parseLinkText matches balanced brackets starting at group position p and
// returns the position of the closing bracket.
func parseLinkText(t *Tokens, g Group, p int) (int, bool) {
	if t.Kind(g[p]) != ast.LBracket {
		return 0, false
	}
	depth := 0
	for q := p; q < len(g); q++ {
		switch t.Kind(g[q]) {
		case ast.LBracket:
			depth++
		case ast.RBracket:
			depth--
			if depth == 0 {
				return q, true
			}
		}
	}
	return 0, false
}

// parseLinkLabel matches a label: brackets with no nested brackets and at
// least one non-space token.
func parseLinkLabel(t *Tokens, g Group, p int) (int, bool) {
	if t.Kind(g[p]) != ast.LBracket {
		return 0, false
	}
	blank := true
	for q := p + 1; q < len(g); q++ {
		switch t.Kind(g[q]) {
		case ast.LBracket:
			return 0, false
		case ast.RBracket:
			if blank && contiguous(g, p, q) {
				return 0, false
			}
			return q, true
		case ast.WhiteSpace, ast.EOL:
		default:
			blank = false
		}
	}
	return 0, false
}

func parseLabelOrEmpty(t *Tokens, g Group, p int) (int, bool) {
	if adjacent(g, p) && t.Kind(g[p+1]) == ast.RBracket {
		return p + 1, true
	}
	return parseLinkLabel(t, g, p)
}

func skipSpace(t *Tokens, g Group, r int) int {
	for r < len(g) && (t.Kind(g[r]) == ast.WhiteSpace || t.Kind(g[r]) == ast.EOL) {
		r++
	}
	return r
}

// parseInlineTail matches `(destination "title")` right after the link text
// closing at group position q. It returns the position of the ')'.
func parseInlineTail(t *Tokens, g Group, q int) (int, []ast.InlineSpan, bool) {
	if !adjacent(g, q) || t.Kind(g[q+1]) != ast.LParen {
		return 0, nil, false
	}
	var spans []ast.InlineSpan
	r := skipSpace(t, g, q+2)
	if r >= len(g) {
		return 0, nil, false
	}

	ds := r
	if t.Kind(g[r]) == ast.LT {
		for r++; r < len(g) && t.Kind(g[r]) != ast.GT; r++ {
			if k := t.Kind(g[r]); k == ast.EOL || k == ast.LT {
				return 0, nil, false
			}
		}
		if r == len(g) {
			return 0, nil, false
		}
		r++
	} else {
		depth := 0
	dest:
		for ; r < len(g); r++ {
			switch t.Kind(g[r]) {
			case ast.WhiteSpace, ast.EOL:
				break dest
			case ast.LParen:
				depth++
			case ast.RParen:
				if depth == 0 {
					break dest
				}
				depth--
			}
		}
	}
	if r > ds {
		spans = append(spans, ast.InlineSpan{Kind: ast.LinkDestination, From: g[ds], To: g[r-1] + 1})
	}

	s := skipSpace(t, g, r)
	if s > r && s < len(g) {
		var closer ast.Kind
		switch t.Kind(g[s]) {
		case ast.DoubleQuote:
			closer = ast.DoubleQuote
		case ast.SingleQuote:
			closer = ast.SingleQuote
		case ast.LParen:
			closer = ast.RParen
		}
		if closer != ast.Invalid {
			ts := s
			for s++; s < len(g) && t.Kind(g[s]) != closer; s++ {
			}
			if s == len(g) {
				return 0, nil, false
			}
			spans = append(spans, ast.InlineSpan{Kind: ast.LinkTitle, From: g[ts], To: g[s] + 1})
			s = skipSpace(t, g, s+1)
		}
	}
	if s >= len(g) || t.Kind(g[s]) != ast.RParen || !contiguous(g, q, s) {
		return 0, nil, false
	}
	return s, spans, true
}
