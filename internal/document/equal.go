package document

import "slices"

// Equal compares two nodes structurally. Checkbox states compare by their
// checked flag only, so trees from different parses of the same source are
// equal.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case Heading:
		b, ok := b.(Heading)
		return ok && a.Level == b.Level && equalInlines(a.Children, b.Children)
	case Paragraph:
		b, ok := b.(Paragraph)
		return ok && equalInlines(a.Children, b.Children)
	case UnorderedList:
		b, ok := b.(UnorderedList)
		return ok && equalItems(a.Items, b.Items)
	case OrderedList:
		b, ok := b.(OrderedList)
		return ok && a.Start == b.Start && equalItems(a.Items, b.Items)
	case ListItem:
		b, ok := b.(ListItem)
		return ok && equalItem(a, b)
	case BlockQuote:
		b, ok := b.(BlockQuote)
		return ok && EqualNodes(a.Children, b.Children)
	case Table:
		b, ok := b.(Table)
		if !ok || !slices.Equal(a.Align, b.Align) || !equalCells(a.Header, b.Header) || len(a.Rows) != len(b.Rows) {
			return false
		}
		for i := range a.Rows {
			if !equalCells(a.Rows[i], b.Rows[i]) {
				return false
			}
		}
		return true
	case Emphasis:
		b, ok := b.(Emphasis)
		return ok && equalInlines(a.Children, b.Children)
	case StrongEmphasis:
		b, ok := b.(StrongEmphasis)
		return ok && equalInlines(a.Children, b.Children)
	case Strikethrough:
		b, ok := b.(Strikethrough)
		return ok && equalInlines(a.Children, b.Children)
	case Link:
		b, ok := b.(Link)
		return ok && a.Destination == b.Destination && a.Title == b.Title &&
			a.IsInternal == b.IsInternal && equalInlines(a.Children, b.Children)
	case nil:
		return b == nil
	}
	// the remaining variants hold only comparable fields
	return a == b
}

// EqualNodes compares two node sequences element by element.
func EqualNodes(a, b []Node) bool {
	return slices.EqualFunc(a, b, Equal)
}

func equalInlines(a, b []InlineNode) bool {
	return slices.EqualFunc(a, b, func(x, y InlineNode) bool { return Equal(x, y) })
}

func equalItems(a, b []ListItem) bool {
	return slices.EqualFunc(a, b, equalItem)
}

func equalItem(a, b ListItem) bool {
	if !a.Checkbox.Equal(b.Checkbox) || !EqualNodes(a.Children, b.Children) {
		return false
	}
	if a.Sublist == nil || b.Sublist == nil {
		return a.Sublist == nil && b.Sublist == nil
	}
	return Equal(a.Sublist, b.Sublist)
}

func equalCells(a, b []TableCell) bool {
	return slices.EqualFunc(a, b, func(x, y TableCell) bool { return equalInlines(x.Children, y.Children) })
}
