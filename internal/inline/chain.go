// Package inline finds inline elements inside paragraphs, heading contents
// and table cells.
//
// Parsers run as a fixed sequence. Each one receives groups of token
// indices that earlier parsers left unclaimed, reports the spans it found
// and hands the remaining groups to the next parser. A construct claimed by
// an earlier parser is never examined by a later one, except where the
// earlier parser explicitly passes its interior on (link text, wiki link
// names).
package inline

import (
	"slices"

	"github.com/gerunddev/granite/internal/ast"
)

// Group is an increasing list of token indices. Indices need not be
// contiguous: tokens claimed by an earlier parser are left out.
type Group []int

// Result is what one parser reports for one group.
type Result struct {
	Spans   []ast.InlineSpan
	Further []Group
}

// Parser is one stage of the chain.
type Parser interface {
	Parse(t *Tokens, g Group) Result
}

// Chain is an ordered, immutable list of parsers.
type Chain struct {
	parsers []Parser
}

// NewChain returns a chain running parsers in the given order.
func NewChain(parsers ...Parser) *Chain {
	return &Chain{parsers: slices.Clone(parsers)}
}

// Parsers returns the chain in execution order.
func (c *Chain) Parsers() []Parser {
	return slices.Clone(c.parsers)
}

// Parse runs the chain over the leaves of one inline context. Block quote
// markers from continuation lines are excluded from every group.
func (c *Chain) Parse(src string, tokens []ast.Token) []ast.InlineSpan {
	t := &Tokens{src: src, toks: tokens}
	var initial Group
	for i, tok := range tokens {
		if tok.Kind != ast.BlockQuoteMarker {
			initial = append(initial, i)
		}
	}
	if len(initial) == 0 {
		return nil
	}

	var spans []ast.InlineSpan
	groups := []Group{initial}
	for _, p := range c.parsers {
		var next []Group
		for _, g := range groups {
			res := p.Parse(t, g)
			spans = append(spans, res.Spans...)
			for _, f := range res.Further {
				if len(f) > 0 {
					next = append(next, f)
				}
			}
		}
		groups = next
	}
	return spans
}

// Tokens gives parsers access to the token stream and the source.
type Tokens struct {
	src  string
	toks []ast.Token
}

// NewTokens wraps a token slice of src.
func NewTokens(src string, toks []ast.Token) *Tokens {
	return &Tokens{src: src, toks: toks}
}

// Len returns the number of tokens.
func (t *Tokens) Len() int { return len(t.toks) }

// Kind returns the kind of token i, or ast.Invalid when i is out of range.
func (t *Tokens) Kind(i int) ast.Kind {
	if i < 0 || i >= len(t.toks) {
		return ast.Invalid
	}
	return t.toks[i].Kind
}

// Text returns the source text of token i.
func (t *Tokens) Text(i int) string {
	return t.toks[i].Text(t.src)
}

// Token returns token i.
func (t *Tokens) Token(i int) ast.Token {
	return t.toks[i]
}

// builder accumulates the output of a parser over one group.
type builder struct {
	spans   []ast.InlineSpan
	further []Group
	rest    Group
}

func (b *builder) span(kind ast.Kind, from, to int) {
	b.spans = append(b.spans, ast.InlineSpan{Kind: kind, From: from, To: to})
}

func (b *builder) keep(i int) {
	b.rest = append(b.rest, i)
}

func (b *builder) delegate(g Group) {
	if len(g) > 0 {
		b.further = append(b.further, slices.Clone(g))
	}
}

func (b *builder) merge(l *local) {
	b.spans = append(b.spans, l.spans...)
	b.further = append(b.further, l.further...)
}

func (b *builder) result() Result {
	further := b.further
	if len(b.rest) > 0 {
		further = append(further, b.rest)
	}
	return Result{Spans: b.spans, Further: further}
}

// local is a tentative match that is only merged on success.
type local struct {
	end     int // group position of the last claimed token
	spans   []ast.InlineSpan
	further []Group
}

// adjacent reports whether the tokens at group positions p and p+1 are
// neighbours in the token stream.
func adjacent(g Group, p int) bool {
	return p+1 < len(g) && g[p+1] == g[p]+1
}

// contiguous reports whether group positions [from, to] have no gaps.
func contiguous(g Group, from, to int) bool {
	return g[to]-g[from] == to-from
}
