// Package document converts generic parse trees into typed nodes and edits
// documents one top-level block at a time.
package document

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/block"
)

// Node is a semantic node. The set of implementations is closed.
type Node interface {
	node()
}

// InlineNode is a node that appears inside paragraphs and headings.
type InlineNode interface {
	Node
	inline()
}

// ListNode is an ordered or unordered list.
type ListNode interface {
	Node
	ListItems() []ListItem
}

// Heading is an ATX or setext heading; Level runs from 1 to 6.
type Heading struct {
	Level    int
	Children []InlineNode
}

// Paragraph is a run of inline content. Lines inside it are joined by
// LineBreak nodes.
type Paragraph struct {
	Children []InlineNode
}

// UnorderedList is a bullet list.
type UnorderedList struct {
	Items []ListItem
}

// OrderedList numbers its items from Start.
type OrderedList struct {
	Start int
	Items []ListItem
}

// ListItem holds the blocks of one item. A trailing nested list is kept
// apart in Sublist. Checkbox is nil when the item is not a task.
type ListItem struct {
	Children []Node
	Sublist  ListNode
	Checkbox *CheckboxState
}

// CodeBlock is fenced or indented code. Lang is empty when the fence has no
// info string and for indented code.
type CodeBlock struct {
	Code string
	Lang string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// BlockQuote holds the blocks behind its ">" markers.
type BlockQuote struct {
	Children []Node
}

// FrontMatter is the raw text between the "---" delimiters.
type FrontMatter struct {
	Text string
}

// Fields decodes the front matter as YAML.
func (f FrontMatter) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(f.Text), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return fields, nil
}

// Table is a pipe table. Align has one entry per column.
type Table struct {
	Align  []block.Alignment
	Header []TableCell
	Rows   [][]TableCell
}

// TableCell is one cell of a header or body row.
type TableCell struct {
	Children []InlineNode
}

// LinkDefinition is a reference definition such as `[id]: /url "title"`.
type LinkDefinition struct {
	Label       string
	Destination string
	Title       string
}

// Text is literal text with backslash escapes removed. Adjacent runs are
// merged.
type Text struct {
	Text string
}

// Emphasis is *text* or _text_.
type Emphasis struct {
	Children []InlineNode
}

// StrongEmphasis is **text** or __text__.
type StrongEmphasis struct {
	Children []InlineNode
}

// Strikethrough is ~~text~~.
type Strikethrough struct {
	Children []InlineNode
}

// CodeSpan is `code`. Line endings become spaces and one surrounding
// space is stripped when both ends have one.
type CodeSpan struct {
	Text string
}

// Link is an inline, reference or auto link. IsInternal is set for
// destinations without a URL scheme.
type Link struct {
	Children    []InlineNode
	Destination string
	Title       string
	IsInternal  bool
}

// Image is ![alt](src). Alt is the plain text of the description.
type Image struct {
	Src   string
	Alt   string
	Title string
}

// LineBreak marks a line ending inside inline content.
type LineBreak struct{}

// WikiLink is [[Target]] or [[Target|Alias]].
type WikiLink struct {
	Target string
	Alias  string
}

// CheckboxState is the checked flag of a task item. It also remembers the
// CHECK_BOX token it was read from so the item can be toggled in place;
// that reference takes no part in Equal or Hash.
type CheckboxState struct {
	Checked bool

	origin ast.NodeID
	gen    uuid.UUID
}

// Equal compares only the checked flag. Two nil states are equal.
func (c *CheckboxState) Equal(o *CheckboxState) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Checked == o.Checked
}

// Hash is consistent with Equal.
func (c CheckboxState) Hash() uint64 {
	if c.Checked {
		return 1
	}
	return 0
}

func (Heading) node()        {}
func (Paragraph) node()      {}
func (UnorderedList) node()  {}
func (OrderedList) node()    {}
func (ListItem) node()       {}
func (CodeBlock) node()      {}
func (HorizontalRule) node() {}
func (BlockQuote) node()     {}
func (FrontMatter) node()    {}
func (Table) node()          {}
func (LinkDefinition) node() {}
func (Text) node()           {}
func (Emphasis) node()       {}
func (StrongEmphasis) node() {}
func (Strikethrough) node()  {}
func (CodeSpan) node()       {}
func (Link) node()           {}
func (Image) node()          {}
func (LineBreak) node()      {}
func (WikiLink) node()       {}

func (Text) inline()           {}
func (Emphasis) inline()       {}
func (StrongEmphasis) inline() {}
func (Strikethrough) inline()  {}
func (CodeSpan) inline()       {}
func (Link) inline()           {}
func (Image) inline()          {}
func (LineBreak) inline()      {}
func (WikiLink) inline()       {}

func (l UnorderedList) ListItems() []ListItem { return l.Items }
func (l OrderedList) ListItems() []ListItem   { return l.Items }
