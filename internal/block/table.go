package block

import (
	"strings"

	"github.com/gerunddev/granite/internal/ast"
)

// Table recognizes GFM tables: a header row followed by a delimiter row
// with the same number of cells. Tables never interrupt a paragraph.
type Table struct{}

func (Table) Start(ctx *Context) *Start {
	if ctx.Interrupting || ctx.Blank() {
		return nil
	}
	src := ctx.Source()
	pos, cols := ctx.Indent(3)
	if cols > 3 {
		return nil
	}
	end := trimRight(src, pos, ctx.LineEnd())
	if strings.IndexByte(src[pos:end], '|') < 0 {
		return nil
	}
	ns, ne, ok := ctx.NextLine()
	if !ok {
		return nil
	}
	ne = trimRight(src, ns, ne)
	ns = skipSpaces(src, ns, ne)
	delim := splitRow(src, ns, ne)
	if !isDelimiterRow(src, delim) {
		return nil
	}
	header := splitRow(src, pos, end)
	if len(header.cells) != len(delim.cells) {
		return nil
	}
	return &Start{
		Kind:        ast.Table,
		Pos:         pos,
		End:         end,
		Productions: rowProductions(ast.TableHeader, pos, end, header),
		Leaf:        &tableBlock{delimiterPending: true},
	}
}

type tableBlock struct {
	delimiterPending bool
}

func (t *tableBlock) Continue(ctx *Context) Step {
	src := ctx.Source()
	end := trimRight(src, ctx.Offset, ctx.LineEnd())
	pos := skipSpaces(src, ctx.Offset, end)
	if t.delimiterPending {
		t.delimiterPending = false
		return Step{
			Action:      Consume,
			Productions: []ast.Production{{Kind: ast.TableSeparator, Start: pos, End: end}},
			End:         end,
		}
	}
	if pos >= end || strings.IndexByte(src[pos:end], '|') < 0 {
		return Step{Action: Close}
	}
	return Step{
		Action:      Consume,
		Productions: rowProductions(ast.TableRow, pos, end, splitRow(src, pos, end)),
		End:         end,
	}
}

type row struct {
	cells [][2]int
	pipes []int
}

// splitRow splits [start, end) on unescaped pipes. Blank segments outside
// the first and last pipe are not cells.
func splitRow(src string, start, end int) row {
	var r row
	seg := start
	for i := start; i < end; i++ {
		switch src[i] {
		case '\\':
			i++
		case '|':
			r.pipes = append(r.pipes, i)
			if len(r.pipes) > 1 || !isBlank(src[seg:i]) {
				r.cells = append(r.cells, [2]int{seg, i})
			}
			seg = i + 1
		}
	}
	if len(r.pipes) == 0 || (seg < end && !isBlank(src[seg:end])) {
		r.cells = append(r.cells, [2]int{seg, end})
	}
	return r
}

func isDelimiterRow(src string, r row) bool {
	if len(r.pipes) == 0 || len(r.cells) == 0 {
		return false
	}
	for _, c := range r.cells {
		s := strings.TrimSpace(src[c[0]:c[1]])
		s = strings.TrimPrefix(s, ":")
		s = strings.TrimSuffix(s, ":")
		if s == "" || strings.Trim(s, "-") != "" {
			return false
		}
	}
	return true
}

func rowProductions(kind ast.Kind, start, end int, r row) []ast.Production {
	prods := []ast.Production{{Kind: kind, Start: start, End: end}}
	for _, c := range r.cells {
		prods = append(prods, ast.Production{Kind: ast.TableCell, Start: c[0], End: c[1]})
	}
	for _, p := range r.pipes {
		prods = append(prods, ast.Production{Kind: ast.TableSeparator, Start: p, End: p + 1})
	}
	return prods
}

// Alignment is the column alignment declared by a delimiter row.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "none"
}

// Alignments parses a delimiter row such as "| :-- | :-: |".
func Alignments(delimiter string) []Alignment {
	r := splitRow(delimiter, 0, len(delimiter))
	out := make([]Alignment, 0, len(r.cells))
	for _, c := range r.cells {
		s := strings.TrimSpace(delimiter[c[0]:c[1]])
		left, right := strings.HasPrefix(s, ":"), strings.HasSuffix(s, ":")
		switch {
		case left && right:
			out = append(out, AlignCenter)
		case left:
			out = append(out, AlignLeft)
		case right:
			out = append(out, AlignRight)
		default:
			out = append(out, AlignNone)
		}
	}
	return out
}
