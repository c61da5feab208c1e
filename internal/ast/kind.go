package ast

// Kind tags every node of the generic parse tree. Element kinds label
// composite nodes; token kinds label leaves.
type Kind uint8

// Element kinds.
const (
	Invalid Kind = iota

	File
	Paragraph
	ATX1
	ATX2
	ATX3
	ATX4
	ATX5
	ATX6
	Setext1
	Setext2
	ATXContent
	SetextContent
	BlockQuote
	UnorderedList
	OrderedList
	ListItem
	CodeFence
	CodeBlock
	FrontMatter
	Table
	TableHeader
	TableRow
	TableCell
	LinkDefinition
	LinkLabel
	LinkDestination
	LinkTitle
	LinkText
	InlineLink
	FullReferenceLink
	ShortReferenceLink
	Image
	Autolink
	CodeSpan
	Emph
	Strong
	Strikethrough
	WikiLink
	WikiLinkName

	firstToken
)

// Token kinds. The block processor emits the marker kinds; the lexer
// emits the rest.
const (
	Text Kind = iota + firstToken + 1
	WhiteSpace
	EOL

	BlockQuoteMarker // '>'
	ListBullet       // '-', '+', '*' plus following spaces
	ListNumber       // '1.', '2)' plus following spaces
	CheckBox         // '[ ] ' or '[x] '
	ATXHeader        // '#'..'######'
	SetextUnderline  // '===' / '---' under a paragraph
	HorizontalRule
	CodeFenceStart
	FenceLang
	CodeFenceContent
	CodeFenceEnd
	CodeLine
	FrontMatterStart
	FrontMatterContent
	FrontMatterEnd
	TableSeparator

	LBracket
	RBracket
	LParen
	RParen
	LT
	GT
	ExclamationMark
	EmphMarker // a single '*' or '_'
	Tilde
	Backtick // a run of '`'
	SingleQuote
	DoubleQuote
	AutolinkToken // the address between '<' and '>'
	GFMAutolink   // a bare http(s):// or www. address

	lastKind
)

var kindNames = [...]string{
	Invalid:            "INVALID",
	File:               "MARKDOWN_FILE",
	Paragraph:          "PARAGRAPH",
	ATX1:               "ATX_1",
	ATX2:               "ATX_2",
	ATX3:               "ATX_3",
	ATX4:               "ATX_4",
	ATX5:               "ATX_5",
	ATX6:               "ATX_6",
	Setext1:            "SETEXT_1",
	Setext2:            "SETEXT_2",
	ATXContent:         "ATX_CONTENT",
	SetextContent:      "SETEXT_CONTENT",
	BlockQuote:         "BLOCK_QUOTE",
	UnorderedList:      "UNORDERED_LIST",
	OrderedList:        "ORDERED_LIST",
	ListItem:           "LIST_ITEM",
	CodeFence:          "CODE_FENCE",
	CodeBlock:          "CODE_BLOCK",
	FrontMatter:        "FRONT_MATTER",
	Table:              "TABLE",
	TableHeader:        "HEADER",
	TableRow:           "ROW",
	TableCell:          "CELL",
	LinkDefinition:     "LINK_DEFINITION",
	LinkLabel:          "LINK_LABEL",
	LinkDestination:    "LINK_DESTINATION",
	LinkTitle:          "LINK_TITLE",
	LinkText:           "LINK_TEXT",
	InlineLink:         "INLINE_LINK",
	FullReferenceLink:  "FULL_REFERENCE_LINK",
	ShortReferenceLink: "SHORT_REFERENCE_LINK",
	Image:              "IMAGE",
	Autolink:           "AUTOLINK",
	CodeSpan:           "CODE_SPAN",
	Emph:               "EMPH",
	Strong:             "STRONG",
	Strikethrough:      "STRIKETHROUGH",
	WikiLink:           "WIKI_LINK",
	WikiLinkName:       "WIKI_LINK_NAME",
	firstToken:         "INVALID",
	Text:               "TEXT",
	WhiteSpace:         "WHITE_SPACE",
	EOL:                "EOL",
	BlockQuoteMarker:   "BLOCK_QUOTE_MARKER",
	ListBullet:         "LIST_BULLET",
	ListNumber:         "LIST_NUMBER",
	CheckBox:           "CHECK_BOX",
	ATXHeader:          "ATX_HEADER",
	SetextUnderline:    "SETEXT_UNDERLINE",
	HorizontalRule:     "HORIZONTAL_RULE",
	CodeFenceStart:     "CODE_FENCE_START",
	FenceLang:          "FENCE_LANG",
	CodeFenceContent:   "CODE_FENCE_CONTENT",
	CodeFenceEnd:       "CODE_FENCE_END",
	CodeLine:           "CODE_LINE",
	FrontMatterStart:   "FRONT_MATTER_START",
	FrontMatterContent: "FRONT_MATTER_CONTENT",
	FrontMatterEnd:     "FRONT_MATTER_END",
	TableSeparator:     "TABLE_SEPARATOR",
	LBracket:           "[",
	RBracket:           "]",
	LParen:             "(",
	RParen:             ")",
	LT:                 "<",
	GT:                 ">",
	ExclamationMark:    "!",
	EmphMarker:         "EMPH_MARKER",
	Tilde:              "~",
	Backtick:           "BACKTICK",
	SingleQuote:        "'",
	DoubleQuote:        "\"",
	AutolinkToken:      "AUTOLINK_TOKEN",
	GFMAutolink:        "GFM_AUTOLINK",
	lastKind:           "INVALID",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "INVALID"
}

// IsToken reports whether k labels a leaf.
func (k Kind) IsToken() bool {
	return k > firstToken && k < lastKind
}

// HeadingLevel returns 1..6 for heading elements and 0 otherwise.
func (k Kind) HeadingLevel() int {
	switch k {
	case ATX1, Setext1:
		return 1
	case ATX2, Setext2:
		return 2
	case ATX3:
		return 3
	case ATX4:
		return 4
	case ATX5:
		return 5
	case ATX6:
		return 6
	}
	return 0
}

// ATXKind returns the ATX heading element for level, clamped to 1..6.
func ATXKind(level int) Kind {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return ATX1 + Kind(level-1)
}

// IsInlineContext reports whether the children of an element of kind k are
// re-scanned by the inline parser chain.
func (k Kind) IsInlineContext() bool {
	switch k {
	case Paragraph, ATXContent, SetextContent, TableCell:
		return true
	}
	return false
}
