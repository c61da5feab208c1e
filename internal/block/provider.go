package block

import "github.com/gerunddev/granite/internal/ast"

// Provider recognizes the start of one kind of block. Providers are pure:
// Start may be called speculatively to decide whether a line interrupts a
// paragraph, so it must not keep state between calls.
type Provider interface {
	Start(ctx *Context) *Start
}

// Leaf is an open leaf block that may claim following lines.
type Leaf interface {
	Continue(ctx *Context) Step
}

// Action tells the processor what a Leaf did with a line.
type Action int

const (
	// Consume keeps the block open after claiming the line.
	Consume Action = iota
	// Close ends the block without claiming the line.
	Close
	// Finish claims the line and ends the block.
	Finish
)

// Step is the result of Leaf.Continue.
type Step struct {
	Action      Action
	Productions []ast.Production
	// End extends the block when greater than its current end.
	End int
}

// Start describes a block recognized at the current position.
//
// Container kinds (BlockQuote, ListItem) set Content to the offset where
// nested blocks begin. Token kinds are emitted as a single leaf. Other
// kinds become elements spanning [Pos, End); Leaf is nil for blocks that
// end on their first line.
type Start struct {
	Kind        ast.Kind
	Pos         int
	End         int
	Content     int
	Item        *ItemStart
	Productions []ast.Production
	Leaf        Leaf
}

// ItemStart carries the list details of a ListItem start.
type ItemStart struct {
	// Type is the bullet character or the ordered delimiter.
	Type   byte
	Number int
	// Column is the content column used to match continuation lines.
	Column int
	// MarkerEnd is where the marker and its spaces end, before any checkbox.
	MarkerEnd int
	Checkbox  int
}

// Ordered reports whether the item belongs to an ordered list.
func (it *ItemStart) Ordered() bool {
	return it.Type == '.' || it.Type == ')'
}

// Context is the view of the current line handed to providers and leaves.
type Context struct {
	src   string
	lines []line
	index int
	cons  Constraints

	// Offset is the first byte not claimed by containers or by blocks
	// opened earlier on this line.
	Offset int
	// Interrupting is set when an open paragraph would be interrupted.
	Interrupting bool
}

// Source returns the whole document.
func (c *Context) Source() string { return c.src }

// LineIndex returns the zero-based index of the current line.
func (c *Context) LineIndex() int { return c.index }

// LineStart returns the offset of the first byte of the current line.
func (c *Context) LineStart() int { return c.lines[c.index].start }

// LineEnd returns the offset of the current line's ending.
func (c *Context) LineEnd() int { return c.lines[c.index].end }

// Rest returns the unclaimed part of the current line.
func (c *Context) Rest() string { return c.src[c.Offset:c.LineEnd()] }

// Blank reports whether the unclaimed part of the line is empty or spaces.
func (c *Context) Blank() bool { return isBlank(c.Rest()) }

// Column returns the visual column of pos on the current line.
func (c *Context) Column(pos int) int { return column(c.src, c.LineStart(), pos) }

// Constraints returns the constraints of the innermost open container.
func (c *Context) Constraints() Constraints { return c.cons }

// Indent skips up to limit columns of whitespace at Offset and returns the
// position reached and the columns skipped.
func (c *Context) Indent(limit int) (int, int) {
	return skipIndent(c.src, c.LineStart(), c.Offset, c.LineEnd(), limit)
}

// NextLine returns the part of the following line left after the current
// containers claim their prefix. ok is false at the end of input or when
// the containers do not continue.
func (c *Context) NextLine() (start, end int, ok bool) {
	if c.index+1 >= len(c.lines) {
		return 0, 0, false
	}
	ln := c.lines[c.index+1]
	p := c.cons.Match(c.src, ln.start, ln.end)
	if p.Matched < c.cons.Depth() {
		return 0, 0, false
	}
	return p.Offset, ln.end, true
}
