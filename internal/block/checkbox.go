package block

import "github.com/gerunddev/granite/internal/ast"

// checkboxWidth returns the width of a task checkbox at pos: 4 for "[ ] "
// or "[x] " (a tab may stand in for the space), 3 when the box ends the
// line, and 0 when there is none. Only a lowercase x counts as checked.
func checkboxWidth(src string, pos, end int) int {
	if end-pos < 3 || src[pos] != '[' || src[pos+2] != ']' {
		return 0
	}
	if src[pos+1] != ' ' && src[pos+1] != 'x' {
		return 0
	}
	if pos+3 == end {
		return 3
	}
	if c := src[pos+3]; c == ' ' || c == '\t' {
		return 4
	}
	return 0
}

// markerKind classifies the marker token of the innermost container.
func markerKind(typ byte) ast.Kind {
	switch typ {
	case quoteType:
		return ast.BlockQuoteMarker
	case '.', ')':
		return ast.ListNumber
	default:
		return ast.ListBullet
	}
}

// containerMarkers returns the leaves for the prefix [start, eaten) claimed
// by the innermost container on its first line. When that container
// carries a checkbox the marker is split at the '[': the marker token keeps
// everything before it and a CHECK_BOX token runs from the '[' to the end
// of the claimed prefix, clamped to the line end. Without a '[' on the
// line the marker is emitted whole.
func containerMarkers(src string, cons Constraints, start, eaten, lineEnd int) []ast.Production {
	kind := markerKind(cons.LastType())
	whole := []ast.Production{{Kind: kind, Start: start, End: eaten}}
	if !cons.HasCheckbox() {
		return whole
	}
	mid := start
	for mid < lineEnd && src[mid] != '[' {
		mid++
	}
	if mid == lineEnd {
		return whole
	}
	return []ast.Production{
		{Kind: kind, Start: start, End: mid},
		{Kind: ast.CheckBox, Start: mid, End: min(eaten, lineEnd)},
	}
}
