package block

import "slices"

// Container types recorded in a constraint level. List levels use the
// bullet character ('-', '+', '*') or the ordered delimiter ('.', ')').
const (
	quoteType byte = '>'
)

type level struct {
	typ      byte
	column   int // content column of a list item; unused for quotes
	checkbox int // width of the checkbox claimed on the item's first line
}

// Constraints is the container prefix accumulated by the open blocks. A
// value is never modified: each container derives a new one from its
// parent's.
type Constraints struct {
	levels []level
}

// Quote returns the constraints inside a new block quote.
func (c Constraints) Quote() Constraints {
	return Constraints{levels: append(slices.Clip(c.levels), level{typ: quoteType})}
}

// Item returns the constraints inside a new list item whose content starts
// at column. checkbox is the width of a task checkbox on the first line,
// or zero.
func (c Constraints) Item(typ byte, column, checkbox int) Constraints {
	return Constraints{levels: append(slices.Clip(c.levels), level{typ: typ, column: column, checkbox: checkbox})}
}

// Depth returns the number of container levels.
func (c Constraints) Depth() int {
	return len(c.levels)
}

// LastType returns the type of the innermost container, or zero at the
// document level.
func (c Constraints) LastType() byte {
	if len(c.levels) == 0 {
		return 0
	}
	return c.levels[len(c.levels)-1].typ
}

// HasCheckbox reports whether the innermost container is a list item that
// opened with a task checkbox.
func (c Constraints) HasCheckbox() bool {
	if len(c.levels) == 0 {
		return false
	}
	return c.levels[len(c.levels)-1].checkbox > 0
}

// Prefix describes how much of a line the containers claim.
type Prefix struct {
	// Offset is the first byte after the claimed prefix.
	Offset int
	// Matched is the number of levels, outermost first, that continue on
	// this line.
	Matched int
	// Marks holds the offset of the '>' for each matched quote level and -1
	// for matched list levels.
	Marks []int
}

// CharsEaten returns how many bytes of the line the prefix claims.
func (p Prefix) CharsEaten(lineStart int) int {
	return p.Offset - lineStart
}

// Match computes the prefix of the line [start, end) claimed by c. It is a
// pure function of its arguments.
func (c Constraints) Match(src string, start, end int) Prefix {
	p := Prefix{Offset: start}
	pos := start
	for _, lv := range c.levels {
		if lv.typ == quoteType {
			q, cols := skipIndent(src, start, pos, end, 3)
			if cols > 3 || q >= end || src[q] != '>' {
				break
			}
			pos = q + 1
			if pos < end && (src[pos] == ' ' || src[pos] == '\t') {
				pos++
			}
			p.Marks = append(p.Marks, q)
		} else {
			if !isBlank(src[pos:end]) {
				q := pos
				for q < end && column(src, start, q) < lv.column && (src[q] == ' ' || src[q] == '\t') {
					q++
				}
				if column(src, start, q) < lv.column {
					break
				}
				pos = q
			}
			p.Marks = append(p.Marks, -1)
		}
		p.Matched++
		p.Offset = pos
	}
	return p
}
