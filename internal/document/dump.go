package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders nodes as a YAML document, one mapping per node with a
// "type" key.
func Dump(nodes ...Node) (string, error) {
	values := make([]any, len(nodes))
	for i, n := range nodes {
		values[i] = toValue(n)
	}
	out, err := yaml.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal nodes: %w", err)
	}
	return string(out), nil
}

func toValue(n Node) map[string]any {
	switch n := n.(type) {
	case Heading:
		return map[string]any{"type": "heading", "level": n.Level, "children": inlineValues(n.Children)}
	case Paragraph:
		return map[string]any{"type": "paragraph", "children": inlineValues(n.Children)}
	case UnorderedList:
		return map[string]any{"type": "unordered_list", "items": itemValues(n.Items)}
	case OrderedList:
		return map[string]any{"type": "ordered_list", "start": n.Start, "items": itemValues(n.Items)}
	case ListItem:
		return itemValue(n)
	case CodeBlock:
		v := map[string]any{"type": "code_block", "code": n.Code}
		if n.Lang != "" {
			v["lang"] = n.Lang
		}
		return v
	case HorizontalRule:
		return map[string]any{"type": "horizontal_rule"}
	case BlockQuote:
		return map[string]any{"type": "block_quote", "children": nodeValues(n.Children)}
	case FrontMatter:
		return map[string]any{"type": "front_matter", "text": n.Text}
	case Table:
		align := make([]string, len(n.Align))
		for i, a := range n.Align {
			align[i] = a.String()
		}
		rows := make([]any, len(n.Rows))
		for i, r := range n.Rows {
			rows[i] = cellValues(r)
		}
		return map[string]any{"type": "table", "align": align, "header": cellValues(n.Header), "rows": rows}
	case LinkDefinition:
		return map[string]any{"type": "link_definition", "label": n.Label, "destination": n.Destination, "title": n.Title}
	case Text:
		return map[string]any{"type": "text", "text": n.Text}
	case Emphasis:
		return map[string]any{"type": "emphasis", "children": inlineValues(n.Children)}
	case StrongEmphasis:
		return map[string]any{"type": "strong", "children": inlineValues(n.Children)}
	case Strikethrough:
		return map[string]any{"type": "strikethrough", "children": inlineValues(n.Children)}
	case CodeSpan:
		return map[string]any{"type": "code_span", "text": n.Text}
	case Link:
		v := map[string]any{
			"type":        "link",
			"children":    inlineValues(n.Children),
			"destination": n.Destination,
			"internal":    n.IsInternal,
		}
		if n.Title != "" {
			v["title"] = n.Title
		}
		return v
	case Image:
		return map[string]any{"type": "image", "src": n.Src, "alt": n.Alt}
	case LineBreak:
		return map[string]any{"type": "line_break"}
	case WikiLink:
		v := map[string]any{"type": "wiki_link", "target": n.Target}
		if n.Alias != "" {
			v["alias"] = n.Alias
		}
		return v
	}
	return map[string]any{"type": fmt.Sprintf("%T", n)}
}

func nodeValues(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = toValue(n)
	}
	return out
}

func inlineValues(nodes []InlineNode) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = toValue(n)
	}
	return out
}

func itemValues(items []ListItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = itemValue(it)
	}
	return out
}

func itemValue(it ListItem) map[string]any {
	v := map[string]any{"type": "list_item", "children": nodeValues(it.Children)}
	if it.Checkbox != nil {
		v["checked"] = it.Checkbox.Checked
	}
	if it.Sublist != nil {
		v["sublist"] = toValue(it.Sublist)
	}
	return v
}

func cellValues(cells []TableCell) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = inlineValues(c.Children)
	}
	return out
}
