package document

import (
	"fmt"
	"strings"
)

// Format renders a node in a compact one-line form such as
// `Heading(1, [Text("title")])`. It is stable and meant for tests and
// debugging output.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

// FormatAll renders a sequence of nodes, one per line.
func FormatAll(nodes []Node) string {
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = Format(n)
	}
	return strings.Join(lines, "\n")
}

func format(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case Heading:
		fmt.Fprintf(b, "Heading(%d, ", n.Level)
		formatInlines(b, n.Children)
		b.WriteByte(')')
	case Paragraph:
		b.WriteString("Paragraph(")
		formatInlines(b, n.Children)
		b.WriteByte(')')
	case UnorderedList:
		b.WriteString("UnorderedList(")
		formatItems(b, n.Items)
		b.WriteByte(')')
	case OrderedList:
		fmt.Fprintf(b, "OrderedList(%d, ", n.Start)
		formatItems(b, n.Items)
		b.WriteByte(')')
	case ListItem:
		formatItem(b, n)
	case CodeBlock:
		fmt.Fprintf(b, "CodeBlock(%q, %q)", n.Code, n.Lang)
	case HorizontalRule:
		b.WriteString("HorizontalRule")
	case BlockQuote:
		b.WriteString("BlockQuote(")
		formatNodes(b, n.Children)
		b.WriteByte(')')
	case FrontMatter:
		fmt.Fprintf(b, "FrontMatter(%q)", n.Text)
	case Table:
		b.WriteString("Table([")
		for i, a := range n.Align {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString("], ")
		formatCells(b, n.Header)
		b.WriteString(", [")
		for i, row := range n.Rows {
			if i > 0 {
				b.WriteString(", ")
			}
			formatCells(b, row)
		}
		b.WriteString("])")
	case LinkDefinition:
		fmt.Fprintf(b, "LinkDefinition(%q, %q, %q)", n.Label, n.Destination, n.Title)
	case Text:
		fmt.Fprintf(b, "Text(%q)", n.Text)
	case Emphasis:
		b.WriteString("Emphasis(")
		formatInlines(b, n.Children)
		b.WriteByte(')')
	case StrongEmphasis:
		b.WriteString("StrongEmphasis(")
		formatInlines(b, n.Children)
		b.WriteByte(')')
	case Strikethrough:
		b.WriteString("Strikethrough(")
		formatInlines(b, n.Children)
		b.WriteByte(')')
	case CodeSpan:
		fmt.Fprintf(b, "CodeSpan(%q)", n.Text)
	case Link:
		b.WriteString("Link(")
		formatInlines(b, n.Children)
		fmt.Fprintf(b, ", %q", n.Destination)
		if n.Title != "" {
			fmt.Fprintf(b, ", %q", n.Title)
		}
		b.WriteByte(')')
	case Image:
		fmt.Fprintf(b, "Image(%q, %q)", n.Src, n.Alt)
	case LineBreak:
		b.WriteString("LineBreak")
	case WikiLink:
		if n.Alias != "" {
			fmt.Fprintf(b, "WikiLink(%q, %q)", n.Target, n.Alias)
		} else {
			fmt.Fprintf(b, "WikiLink(%q)", n.Target)
		}
	default:
		fmt.Fprintf(b, "%T", n)
	}
}

func formatNodes(b *strings.Builder, nodes []Node) {
	b.WriteByte('[')
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, n)
	}
	b.WriteByte(']')
}

func formatInlines(b *strings.Builder, nodes []InlineNode) {
	b.WriteByte('[')
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, n)
	}
	b.WriteByte(']')
}

func formatItems(b *strings.Builder, items []ListItem) {
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		formatItem(b, it)
	}
	b.WriteByte(']')
}

func formatItem(b *strings.Builder, it ListItem) {
	b.WriteString("ListItem(")
	if it.Checkbox != nil {
		if it.Checkbox.Checked {
			b.WriteString("[x], ")
		} else {
			b.WriteString("[ ], ")
		}
	}
	formatNodes(b, it.Children)
	if it.Sublist != nil {
		b.WriteString(", ")
		format(b, it.Sublist)
	}
	b.WriteByte(')')
}

func formatCells(b *strings.Builder, cells []TableCell) {
	b.WriteByte('[')
	for i, c := range cells {
		if i > 0 {
			b.WriteString(", ")
		}
		formatInlines(b, c.Children)
	}
	b.WriteByte(']')
}
