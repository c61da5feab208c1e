// Package export renders parsed notes in other formats. It only reads the
// semantic tree; notes are never modified.
package export

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/granite/internal/document"
)

// frontMatter holds the keys that map onto org-roam properties
type frontMatter struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Aliases []string `yaml:"aliases"`
	Tags    []string `yaml:"tags"`
	Refs    []string `yaml:"refs"`
}

// OrgExporter converts semantic nodes to org-mode. IDs maps org-roam IDs to
// note names; wiki links to unknown notes get a fresh ID.
type OrgExporter struct {
	IDs map[string]string

	byName map[string]string
}

// NewOrgExporter returns an exporter resolving wiki links through ids
func NewOrgExporter(ids map[string]string) *OrgExporter {
	e := &OrgExporter{IDs: ids, byName: make(map[string]string, len(ids))}
	for id, name := range ids {
		e.byName[name] = id
	}
	return e
}

// ToOrg converts a whole document to org-mode
func ToOrg(nodes []document.Node, ids map[string]string) (string, error) {
	return NewOrgExporter(ids).Export(nodes)
}

// Export converts nodes to org-mode. Front matter becomes a properties
// drawer followed by title and filetags keywords.
func (e *OrgExporter) Export(nodes []document.Node) (string, error) {
	var org strings.Builder
	for i, n := range nodes {
		if fm, ok := n.(document.FrontMatter); ok && i == 0 {
			props, err := properties(fm)
			if err != nil {
				return "", err
			}
			org.WriteString(props)
			continue
		}
		if _, ok := n.(document.LinkDefinition); ok {
			continue
		}
		if org.Len() > 0 && !strings.HasSuffix(org.String(), "\n\n") {
			org.WriteString("\n")
		}
		e.block(&org, n, "")
	}
	return strings.TrimSpace(org.String()) + "\n", nil
}

// properties builds the properties drawer for front matter
func properties(fm document.FrontMatter) (string, error) {
	var meta frontMatter
	if err := yaml.Unmarshal([]byte(fm.Text), &meta); err != nil {
		return "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	var props strings.Builder
	if meta.ID != "" || len(meta.Aliases) > 0 || len(meta.Refs) > 0 {
		props.WriteString(":PROPERTIES:\n")
		if meta.ID != "" {
			props.WriteString(":ID: " + meta.ID + "\n")
		}
		if len(meta.Aliases) > 0 {
			quoted := make([]string, len(meta.Aliases))
			for i, alias := range meta.Aliases {
				quoted[i] = fmt.Sprintf(`"%s"`, alias)
			}
			props.WriteString(":ROAM_ALIASES: " + strings.Join(quoted, " ") + "\n")
		}
		if len(meta.Refs) > 0 {
			props.WriteString(":ROAM_REFS: " + strings.Join(meta.Refs, " ") + "\n")
		}
		props.WriteString(":END:\n")
	}
	if meta.Title != "" {
		props.WriteString("#+title: " + meta.Title + "\n")
	}
	if len(meta.Tags) > 0 {
		props.WriteString("#+filetags: :" + strings.Join(meta.Tags, ":") + ":\n")
	}
	if props.Len() > 0 {
		props.WriteString("\n")
	}
	return props.String(), nil
}

// block writes one block. indent prefixes every line for list content.
func (e *OrgExporter) block(org *strings.Builder, n document.Node, indent string) {
	switch n := n.(type) {
	case document.Heading:
		org.WriteString(strings.Repeat("*", n.Level) + " " + e.inlines(n.Children) + "\n")
	case document.Paragraph:
		writeIndented(org, indent, e.inlines(n.Children))
	case document.UnorderedList:
		for _, it := range n.Items {
			e.item(org, it, indent, "- ")
		}
	case document.OrderedList:
		for i, it := range n.Items {
			e.item(org, it, indent, fmt.Sprintf("%d. ", n.Start+i))
		}
	case document.CodeBlock:
		writeIndented(org, indent, strings.TrimSpace("#+BEGIN_SRC "+n.Lang))
		if n.Code != "" {
			writeIndented(org, indent, n.Code)
		}
		writeIndented(org, indent, "#+END_SRC")
	case document.HorizontalRule:
		writeIndented(org, indent, "-----")
	case document.BlockQuote:
		e.quote(org, n, indent)
	case document.Table:
		e.table(org, n, indent)
	case document.FrontMatter:
		writeIndented(org, indent, "#+BEGIN_SRC yaml")
		writeIndented(org, indent, n.Text)
		writeIndented(org, indent, "#+END_SRC")
	}
}

// item writes a list item. Checkboxes use org's uppercase X.
func (e *OrgExporter) item(org *strings.Builder, it document.ListItem, indent, bullet string) {
	head := bullet
	if it.Checkbox != nil {
		if it.Checkbox.Checked {
			head += "[X] "
		} else {
			head += "[ ] "
		}
	}
	inner := indent + strings.Repeat(" ", len(bullet))

	var body strings.Builder
	for i, ch := range it.Children {
		if i > 0 {
			body.WriteString("\n")
		}
		e.block(&body, ch, "")
	}
	lines := strings.Split(strings.TrimSuffix(body.String(), "\n"), "\n")
	org.WriteString(indent + head + lines[0] + "\n")
	for _, line := range lines[1:] {
		if line == "" {
			org.WriteString("\n")
			continue
		}
		org.WriteString(inner + line + "\n")
	}
	if it.Sublist != nil {
		e.block(org, it.Sublist, inner)
	}
}

// quote writes a block quote. A first paragraph starting with [!type] makes
// it a callout block of that type.
func (e *OrgExporter) quote(org *strings.Builder, q document.BlockQuote, indent string) {
	kind := "QUOTE"
	children := q.Children
	if len(children) > 0 {
		if p, ok := children[0].(document.Paragraph); ok {
			if callout, rest, ok := calloutType(p); ok {
				kind = callout
				children = children[1:]
				if len(rest.Children) > 0 {
					children = append([]document.Node{rest}, children...)
				}
			}
		}
	}

	writeIndented(org, indent, "#+BEGIN_"+kind)
	for i, ch := range children {
		if i > 0 {
			org.WriteString("\n")
		}
		e.block(org, ch, indent)
	}
	writeIndented(org, indent, "#+END_"+kind)
}

// calloutType recognizes an Obsidian callout marker at the start of p and
// returns p without it.
func calloutType(p document.Paragraph) (string, document.Paragraph, bool) {
	if len(p.Children) == 0 {
		return "", p, false
	}
	first, ok := p.Children[0].(document.Text)
	if !ok || !strings.HasPrefix(first.Text, "[!") {
		return "", p, false
	}
	end := strings.Index(first.Text, "]")
	if end < 3 {
		return "", p, false
	}
	kind := strings.ToUpper(first.Text[2:end])

	rest := document.Paragraph{}
	if remaining := strings.TrimSpace(first.Text[end+1:]); remaining != "" {
		rest.Children = append(rest.Children, document.Text{Text: remaining})
	}
	tail := p.Children[1:]
	if len(rest.Children) == 0 && len(tail) > 0 {
		if _, ok := tail[0].(document.LineBreak); ok {
			tail = tail[1:]
		}
	}
	rest.Children = append(rest.Children, tail...)
	return kind, rest, true
}

func (e *OrgExporter) table(org *strings.Builder, t document.Table, indent string) {
	row := func(cells []document.TableCell) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = e.inlines(c.Children)
		}
		return "| " + strings.Join(parts, " | ") + " |"
	}
	writeIndented(org, indent, row(t.Header))
	seps := make([]string, len(t.Header))
	for i := range seps {
		seps[i] = "---"
	}
	writeIndented(org, indent, "|"+strings.Join(seps, "+")+"|")
	for _, r := range t.Rows {
		writeIndented(org, indent, row(r))
	}
}

// inlines renders inline nodes with org markup
func (e *OrgExporter) inlines(nodes []document.InlineNode) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case document.Text:
			b.WriteString(n.Text)
		case document.Emphasis:
			b.WriteString("/" + e.inlines(n.Children) + "/")
		case document.StrongEmphasis:
			b.WriteString("*" + e.inlines(n.Children) + "*")
		case document.Strikethrough:
			b.WriteString("+" + e.inlines(n.Children) + "+")
		case document.CodeSpan:
			b.WriteString("~" + n.Text + "~")
		case document.LineBreak:
			b.WriteString("\n")
		case document.Link:
			target := n.Destination
			if n.IsInternal {
				target = "file:" + target
			}
			desc := e.inlines(n.Children)
			if desc == "" || desc == n.Destination {
				fmt.Fprintf(&b, "[[%s]]", target)
			} else {
				fmt.Fprintf(&b, "[[%s][%s]]", target, desc)
			}
		case document.Image:
			fmt.Fprintf(&b, "[[file:%s]]", n.Src)
		case document.WikiLink:
			b.WriteString(e.wikiLink(n))
		}
	}
	return b.String()
}

// wikiLink converts [[name|alias]] to an org-roam id link
func (e *OrgExporter) wikiLink(w document.WikiLink) string {
	id, ok := e.byName[w.Target]
	if !ok {
		if _, err := uuid.Parse(w.Target); err == nil {
			id = w.Target
		} else {
			id = GenerateOrgID()
			e.byName[w.Target] = id
		}
	}
	if w.Alias != "" {
		return fmt.Sprintf("[[id:%s][%s]]", id, w.Alias)
	}
	return fmt.Sprintf("[[id:%s]]", id)
}

// GenerateOrgID generates a new org-mode ID (UUID v4)
func GenerateOrgID() string {
	return uuid.New().String()
}

func writeIndented(org *strings.Builder, indent, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			org.WriteString("\n")
			continue
		}
		org.WriteString(indent + line + "\n")
	}
}
