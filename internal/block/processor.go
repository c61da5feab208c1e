// Package block recognizes the block structure of a markdown document.
//
// The Processor walks the source line by line. Open containers (block
// quotes and list items) claim a prefix of every line through their
// Constraints; what is left is offered first to the open leaf block and
// then to the ordered Providers. The result is a flat list of productions
// that ast.TreeBuilder nests into a tree.
package block

import (
	"slices"

	"github.com/gerunddev/granite/internal/ast"
)

// Processor runs an ordered provider list over documents. A Processor is
// immutable and may be used from several goroutines.
type Processor struct {
	providers []Provider
}

// NewProcessor returns a processor trying providers in the given order.
// Paragraphs are the fallback and need no provider.
func NewProcessor(providers ...Provider) *Processor {
	return &Processor{providers: slices.Clone(providers)}
}

// Providers returns the provider chain in priority order.
func (p *Processor) Providers() []Provider {
	return slices.Clone(p.providers)
}

// Process returns the block productions for src.
func (p *Processor) Process(src string) []ast.Production {
	r := &run{src: src, lines: splitLines(src), providers: p.providers}
	for i := range r.lines {
		r.line(i)
	}
	r.closeTo(0)
	prods := r.prods[:0]
	for _, pr := range r.prods {
		if pr.End > pr.Start {
			prods = append(prods, pr)
		}
	}
	return prods
}

type entry struct {
	kind      ast.Kind
	start     int
	end       int
	container bool
	cons      Constraints // constraints inside a container
	typ       byte        // list marker type
	leaf      Leaf
	slot      int         // index of the element's production
}

func (e *entry) isList() bool {
	return e.kind == ast.UnorderedList || e.kind == ast.OrderedList
}

type run struct {
	src       string
	lines     []line
	providers []Provider
	stack     []*entry
	prods     []ast.Production
}

func (r *run) line(i int) {
	ln := r.lines[i]
	conts := r.containers()
	var inner Constraints
	if len(conts) > 0 {
		inner = r.stack[conts[len(conts)-1]].cons
	}
	prefix := inner.Match(r.src, ln.start, ln.end)
	allMatched := prefix.Matched == len(conts)
	cut := r.cutoff(conts, prefix.Matched)

	ctx := &Context{
		src:    r.src,
		lines:  r.lines,
		index:  i,
		cons:   r.consAt(conts, prefix.Matched),
		Offset: prefix.Offset,
	}

	if tip := r.tip(); tip != nil {
		if tip.kind == ast.Paragraph {
			if allMatched && r.setext(ctx, prefix, conts, tip) {
				return
			}
			if !ctx.Blank() && !r.interrupts(ctx) {
				// plain or lazy continuation
				r.marks(prefix, conts)
				r.extendAll(trimRight(r.src, ctx.Offset, ln.end))
				return
			}
		} else if allMatched {
			step := tip.leaf.Continue(ctx)
			if step.Action != Close {
				r.marks(prefix, conts)
				r.emit(step.Productions...)
				r.extendAll(step.End)
				if step.Action == Finish {
					r.closeTo(len(r.stack) - 1)
				}
				return
			}
		}
		r.closeTo(len(r.stack) - 1)
	}

	r.closeTo(cut)
	r.marks(prefix, conts)
	r.open(ctx)
}

// containers returns the stack indexes of open quotes and list items.
func (r *run) containers() []int {
	var idx []int
	for i, e := range r.stack {
		if e.container {
			idx = append(idx, i)
		}
	}
	return idx
}

func (r *run) consAt(conts []int, matched int) Constraints {
	if matched == 0 {
		return Constraints{}
	}
	return r.stack[conts[matched-1]].cons
}

// cutoff returns the stack height that survives when only the first
// matched containers continue. A list directly above them stays open so a
// following item can join it.
func (r *run) cutoff(conts []int, matched int) int {
	cut := 0
	if matched > 0 {
		cut = conts[matched-1] + 1
	}
	if cut < len(r.stack) && r.stack[cut].isList() {
		cut++
	}
	return cut
}

func (r *run) tip() *entry {
	if len(r.stack) == 0 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	if top.container || top.isList() {
		return nil
	}
	return top
}

// push opens e and reserves its production so that an element always
// precedes the elements it encloses, even when their spans are equal.
func (r *run) push(e *entry) {
	e.slot = len(r.prods)
	r.prods = append(r.prods, ast.Production{Kind: e.kind, Start: e.start, End: e.start})
	r.stack = append(r.stack, e)
}

func (r *run) closeTo(height int) {
	for len(r.stack) > height {
		e := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		r.prods[e.slot] = ast.Production{Kind: e.kind, Start: e.start, End: e.end}
	}
}

func (r *run) closeList() {
	if n := len(r.stack); n > 0 && r.stack[n-1].isList() {
		r.closeTo(n - 1)
	}
}

func (r *run) extendAll(to int) {
	r.extend(to, len(r.stack))
}

// extend moves the end of the lowest depth stack entries to at least to.
func (r *run) extend(to, depth int) {
	for i := 0; i < depth && i < len(r.stack); i++ {
		if r.stack[i].end < to {
			r.stack[i].end = to
		}
	}
}

func (r *run) emit(prods ...ast.Production) {
	for _, p := range prods {
		if p.End <= p.Start {
			continue
		}
		r.prods = append(r.prods, p)
		r.extendAll(p.End)
	}
}

// marks emits the quote markers of the matched container levels.
func (r *run) marks(prefix Prefix, conts []int) {
	for lvl, m := range prefix.Marks {
		if m < 0 {
			continue
		}
		r.prods = append(r.prods, ast.Production{Kind: ast.BlockQuoteMarker, Start: m, End: m + 1})
		r.extend(m+1, conts[lvl]+1)
	}
}

func (r *run) interrupts(ctx *Context) bool {
	ctx.Interrupting = true
	defer func() { ctx.Interrupting = false }()
	for _, p := range r.providers {
		if p.Start(ctx) != nil {
			return true
		}
	}
	return false
}

func (r *run) first(ctx *Context) *Start {
	for _, p := range r.providers {
		if st := p.Start(ctx); st != nil {
			return st
		}
	}
	return nil
}

// setext turns the open paragraph into a setext heading when the line is an
// underline.
func (r *run) setext(ctx *Context, prefix Prefix, conts []int, para *entry) bool {
	pos, cols := ctx.Indent(3)
	end := ctx.LineEnd()
	if cols > 3 || pos >= end || (r.src[pos] != '=' && r.src[pos] != '-') {
		return false
	}
	c := r.src[pos]
	q := pos
	for q < end && r.src[q] == c {
		q++
	}
	if !isBlank(r.src[q:end]) {
		return false
	}
	r.marks(prefix, conts)
	r.prods = append(r.prods, ast.Production{Kind: ast.SetextContent, Start: para.start, End: para.end})
	para.kind = ast.Setext2
	if c == '=' {
		para.kind = ast.Setext1
	}
	r.emit(ast.Production{Kind: ast.SetextUnderline, Start: pos, End: q})
	r.closeTo(len(r.stack) - 1)
	return true
}

// open starts new blocks at ctx.Offset: any number of containers followed
// by at most one leaf. A line nothing claims starts a paragraph.
func (r *run) open(ctx *Context) {
	ctx.Interrupting = false
	end := ctx.LineEnd()
	for !ctx.Blank() {
		st := r.first(ctx)
		if st == nil {
			break
		}
		switch st.Kind {
		case ast.BlockQuote:
			r.closeList()
			e := &entry{kind: ast.BlockQuote, start: st.Pos, end: st.Pos, container: true, cons: ctx.cons.Quote()}
			r.push(e)
			r.emit(st.Productions...)
			ctx.cons = e.cons
			ctx.Offset = st.Content
			continue
		case ast.ListItem:
			it := st.Item
			r.list(st.Pos, it)
			e := &entry{
				kind:      ast.ListItem,
				start:     st.Pos,
				end:       st.Pos,
				container: true,
				cons:      ctx.cons.Item(it.Type, it.Column, it.Checkbox),
			}
			r.push(e)
			r.emit(containerMarkers(r.src, e.cons, st.Pos, st.Content, end)...)
			ctx.cons = e.cons
			ctx.Offset = st.Content
			continue
		}

		r.closeList()
		if st.Kind.IsToken() {
			r.emit(ast.Production{Kind: st.Kind, Start: st.Pos, End: st.End})
			r.emit(st.Productions...)
			return
		}
		r.push(&entry{kind: st.Kind, start: st.Pos, end: st.Pos, leaf: st.Leaf})
		r.emit(st.Productions...)
		r.extendAll(st.End)
		if st.Leaf == nil {
			r.closeTo(len(r.stack) - 1)
		}
		return
	}

	r.closeList()
	if ctx.Blank() {
		return
	}
	start := skipSpaces(r.src, ctx.Offset, end)
	r.push(&entry{kind: ast.Paragraph, start: start, end: start})
	r.extendAll(trimRight(r.src, start, end))
}

// list makes sure a list compatible with the item is open on top of the
// stack.
func (r *run) list(pos int, it *ItemStart) {
	if n := len(r.stack); n > 0 {
		top := r.stack[n-1]
		if top.isList() && top.typ == it.Type {
			return
		}
	}
	r.closeList()
	kind := ast.UnorderedList
	if it.Ordered() {
		kind = ast.OrderedList
	}
	r.push(&entry{kind: kind, start: pos, end: pos, typ: it.Type})
}
