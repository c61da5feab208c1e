package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/markdown"
)

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return doc
}

func dump(t *testing.T, nodes []Node) string {
	t.Helper()
	out, err := Dump(nodes...)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	return out
}

func TestFromTree(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "headings and paragraph",
			src:  "# this is h1\n\nhello world\n\n## this is h2",
			want: []string{
				`Heading(1, [Text("this is h1")])`,
				`Paragraph([Text("hello world")])`,
				`Heading(2, [Text("this is h2")])`,
			},
		},
		{
			name: "paragraph line break",
			src:  "hello world\n\nI'm a student of\n XYZ University.",
			want: []string{
				`Paragraph([Text("hello world")])`,
				`Paragraph([Text("I'm a student of"), LineBreak, Text("XYZ University.")])`,
			},
		},
		{
			name: "blockquote",
			src:  "> aaa bbb ccc\n> dddd ee fffff\n>kkk\n>\n> xxx yyy zzz",
			want: []string{
				`BlockQuote([Paragraph([Text("aaa bbb ccc"), LineBreak, Text("dddd ee fffff"), LineBreak, Text("kkk")]), Paragraph([Text("xxx yyy zzz")])])`,
			},
		},
		{
			name: "nested blockquote",
			src:  "> aaa bbb ccc\n> ddd eee fff\n> > world touch help cheese\n> > chocolate",
			want: []string{
				`BlockQuote([Paragraph([Text("aaa bbb ccc"), LineBreak, Text("ddd eee fff")]), BlockQuote([Paragraph([Text("world touch help cheese"), LineBreak, Text("chocolate")])])])`,
			},
		},
		{
			name: "decorated blockquote",
			src:  "> # heading *one*\n> aaa *bbb* **ccc**\n> ddd [eee fff ](https://example.com )",
			want: []string{
				`BlockQuote([Heading(1, [Text("heading "), Emphasis([Text("one")])]), Paragraph([Text("aaa "), Emphasis([Text("bbb")]), Text(" "), StrongEmphasis([Text("ccc")]), LineBreak, Text("ddd "), Link([Text("eee fff")], "https://example.com")])])`,
			},
		},
		{
			name: "emphasis",
			src:  "aaa *bbb* **ccc**",
			want: []string{
				`Paragraph([Text("aaa "), Emphasis([Text("bbb")]), Text(" "), StrongEmphasis([Text("ccc")])])`,
			},
		},
		{
			name: "unterminated wiki link",
			src:  "[[unterminated",
			want: []string{`Paragraph([Text("[[unterminated")])`},
		},
		{
			name: "wiki link with alias",
			src:  "see [[Target|the alias]] now",
			want: []string{`Paragraph([Text("see "), WikiLink("Target", "the alias"), Text(" now")])`},
		},
		{
			name: "front matter",
			src:  "---\ntitle: x\ntags: [a]\n---\n# Head",
			want: []string{
				`FrontMatter("title: x\ntags: [a]")`,
				`Heading(1, [Text("Head")])`,
			},
		},
		{
			name: "front matter with blank line",
			src:  "---\na: 1\n\nb: 2\n---\nbody",
			want: []string{
				`FrontMatter("a: 1\n\nb: 2")`,
				`Paragraph([Text("body")])`,
			},
		},
		{
			name: "unterminated front matter",
			src:  "---\na: 1\n",
			want: []string{`FrontMatter("a: 1")`},
		},
		{
			name: "rule after paragraph is not front matter",
			src:  "text\n\n---",
			want: []string{`Paragraph([Text("text")])`, `HorizontalRule`},
		},
		{
			name: "task list",
			src:  "- [ ] one\n- [x] two",
			want: []string{
				`UnorderedList([ListItem([ ], [Paragraph([Text("one")])]), ListItem([x], [Paragraph([Text("two")])])])`,
			},
		},
		{
			name: "uppercase X is not checked",
			src:  "- [X] one",
			want: []string{`UnorderedList([ListItem([Paragraph([Text("[X] one")])])])`},
		},
		{
			name: "sublist",
			src:  "- a\n  - b",
			want: []string{
				`UnorderedList([ListItem([Paragraph([Text("a")])], UnorderedList([ListItem([Paragraph([Text("b")])])]))])`,
			},
		},
		{
			name: "ordered list start",
			src:  "3. x\n4. y",
			want: []string{
				`OrderedList(3, [ListItem([Paragraph([Text("x")])]), ListItem([Paragraph([Text("y")])])])`,
			},
		},
		{
			name: "fenced code",
			src:  "```go\nfmt.Println()\n\nx := 1\n```",
			want: []string{`CodeBlock("fmt.Println()\n\nx := 1", "go")`},
		},
		{
			name: "indented code",
			src:  "    a\n    b",
			want: []string{`CodeBlock("a\nb", "")`},
		},
		{
			name: "table",
			src:  "| a | b |\n|:--|--:|\n| 1 | 2 |",
			want: []string{`Table([left, right], [[Text("a")], [Text("b")]], [[[Text("1")], [Text("2")]]])`},
		},
		{
			name: "reference link",
			src:  "[foo][bar]\n\n[bar]: /url \"T\"",
			want: []string{
				`Paragraph([Link([Text("foo")], "/url", "T")])`,
				`LinkDefinition("bar", "/url", "T")`,
			},
		},
		{
			name: "unresolved reference",
			src:  "[foo][nope]",
			want: []string{`Paragraph([Text("[foo][nope]")])`},
		},
		{
			name: "inline link inside brackets",
			src:  "[see [docs](https://example.com)]",
			want: []string{`Paragraph([Text("[see "), Link([Text("docs")], "https://example.com"), Text("]")])`},
		},
		{
			name: "task with bracketed link",
			src:  "- [ ] read [the [spec](s.md)] today",
			want: []string{
				`UnorderedList([ListItem([ ], [Paragraph([Text("read [the "), Link([Text("spec")], "s.md"), Text("] today")])])])`,
			},
		},
		{
			name: "empty link inside brackets",
			src:  "[[](>)]",
			want: []string{`Paragraph([Text("["), Link([], ">"), Text("]")])`},
		},
		{
			name: "autolink",
			src:  "visit https://example.com now",
			want: []string{`Paragraph([Text("visit "), Link([Text("https://example.com")], "https://example.com"), Text(" now")])`},
		},
		{
			name: "image",
			src:  "![alt text](img.png)",
			want: []string{`Paragraph([Image("img.png", "alt text")])`},
		},
		{
			name: "strikethrough",
			src:  "~~gone~~",
			want: []string{`Paragraph([Strikethrough([Text("gone")])])`},
		},
		{
			name: "code span",
			src:  "use `x := 1` here",
			want: []string{`Paragraph([Text("use "), CodeSpan("x := 1"), Text(" here")])`},
		},
		{
			name: "escapes",
			src:  `\*not emphasis\*`,
			want: []string{`Paragraph([Text("*not emphasis*")])`},
		},
		{
			name: "setext heading",
			src:  "Title\n=====",
			want: []string{`Heading(1, [Text("Title")])`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.src)
			nodes := doc.Nodes()
			var got []string
			for _, n := range nodes {
				got = append(got, Format(n))
			}
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("FromTree(%q) =\n%s\nwant\n%s\n%s",
					tt.src, strings.Join(got, "\n"), strings.Join(tt.want, "\n"), dump(t, nodes))
			}
		})
	}
}

func TestFromTreeIdempotent(t *testing.T) {
	src := "---\na: 1\n---\n# T\n\n- [ ] x\n  - [x] y\n\n> q *e*\n\n| a |\n|---|\n| b |"
	tree := markdown.Parse(src)
	first := MustFromTree(src, tree)
	second := MustFromTree(src, tree)
	if len(first) != len(second) {
		t.Fatalf("len = %d and %d", len(first), len(second))
	}
	for i := range first {
		if !Equal(first[i].Node, second[i].Node) {
			t.Errorf("block %d differs:\n%s\n%s", i, Format(first[i].Node), Format(second[i].Node))
		}
	}

	again := parseDoc(t, src)
	if !EqualNodes(again.Nodes(), Nodes(first)) {
		t.Errorf("reparse differs:\n%s\n%s", FormatAll(again.Nodes()), FormatAll(Nodes(first)))
	}
}

func TestFromTreeSourceMismatch(t *testing.T) {
	tree := markdown.Parse("a")
	if _, err := FromTree("b", tree); !errors.Is(err, ErrSourceMismatch) {
		t.Errorf("FromTree() error = %v, want %v", err, ErrSourceMismatch)
	}
}

func TestFromTreeUnsupportedKind(t *testing.T) {
	src := "abc"
	tree := ast.TreeBuilder{}.Build(src, []ast.Production{{Kind: ast.TableRow, Start: 0, End: 3}})
	_, err := FromTree(src, tree)
	var kindErr *UnsupportedKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("FromTree() error = %v, want *UnsupportedKindError", err)
	}
	if kindErr.Kind != ast.TableRow || kindErr.Offset != 0 {
		t.Errorf("error = %+v", kindErr)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustFromTree() did not panic")
		}
	}()
	MustFromTree(src, tree)
}

func TestReplaceRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"# a\n\n\nb\n",
		"---\nx: 1\n---\n\n- [ ] a\n- [x] b\n\n> q\n>\n> r\n",
		"  indented para\n\n```\ncode\n```\n\n",
	}
	for _, src := range sources {
		doc := parseDoc(t, src)
		if got := doc.Replace(nil); got != src {
			t.Errorf("Replace(nil) = %q, want %q", got, src)
		}
		var b strings.Builder
		for _, c := range doc.Tree.Children(doc.Tree.Root()) {
			b.WriteString(doc.Tree.Text(c))
		}
		if b.String() != src {
			t.Errorf("top-level slices = %q, want %q", b.String(), src)
		}
	}
}

func TestReplaceBlock(t *testing.T) {
	doc := parseDoc(t, "# a\n\nold text\n\n- x")
	got := doc.Replace(map[int]string{1: "new\ntext"})
	want := "# a\n\nnew\ntext\n\n- x"
	if got != want {
		t.Errorf("Replace() = %q, want %q", got, want)
	}
}

func TestToggleCheckbox(t *testing.T) {
	src := "intro\n\n- [ ] one\n- [x] two\n\ntext"
	doc := parseDoc(t, src)
	list, ok := doc.Blocks[1].Node.(UnorderedList)
	if !ok {
		t.Fatalf("block 1 = %s, want UnorderedList", Format(doc.Blocks[1].Node))
	}

	tests := []struct {
		name    string
		item    int
		checked bool
		block   string
		source  string
	}{
		{"check", 0, true, "- [x] one\n- [x] two", "intro\n\n- [x] one\n- [x] two\n\ntext"},
		{"uncheck", 1, false, "- [ ] one\n- [ ] two", "intro\n\n- [ ] one\n- [ ] two\n\ntext"},
		{"unchanged", 1, true, "- [ ] one\n- [x] two", src},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, ok := doc.Blocks[1].ToggleCheckbox(list.Items[tt.item], tt.checked)
			if !ok {
				t.Fatal("ToggleCheckbox() = false")
			}
			if block != tt.block {
				t.Errorf("ToggleCheckbox() = %q, want %q", block, tt.block)
			}
			if len(block) != len(doc.Blocks[1].Text()) {
				t.Errorf("block length changed from %d to %d", len(doc.Blocks[1].Text()), len(block))
			}
			source, err := doc.ToggleCheckbox(1, list.Items[tt.item], tt.checked)
			if err != nil {
				t.Fatalf("Document.ToggleCheckbox() error = %v", err)
			}
			if source != tt.source {
				t.Errorf("Document.ToggleCheckbox() = %q, want %q", source, tt.source)
			}
		})
	}
}

func TestToggleCheckboxErrors(t *testing.T) {
	doc := parseDoc(t, "- plain\n\n- [ ] task")
	plain := doc.Blocks[0].Node.(UnorderedList).Items[0]
	if _, ok := doc.Blocks[0].ToggleCheckbox(plain, true); ok {
		t.Error("ToggleCheckbox(plain) = true, want false")
	}
	if _, err := doc.ToggleCheckbox(0, plain, true); !errors.Is(err, ErrNoCheckbox) {
		t.Errorf("ToggleCheckbox(plain) error = %v, want %v", err, ErrNoCheckbox)
	}

	other := parseDoc(t, "- [ ] task")
	foreign := other.Blocks[0].Node.(UnorderedList).Items[0]
	if _, err := doc.ToggleCheckbox(0, foreign, true); !errors.Is(err, ErrStale) {
		t.Errorf("ToggleCheckbox(foreign) error = %v, want %v", err, ErrStale)
	}
	if _, err := doc.ToggleCheckbox(5, foreign, true); err == nil {
		t.Error("ToggleCheckbox(5) error = nil")
	}
}

func TestToggleCheckboxAtLineEnd(t *testing.T) {
	doc := parseDoc(t, "- [ ]\n- [x] b")
	items := doc.Blocks[0].Node.(UnorderedList).Items
	got, err := doc.ToggleCheckbox(0, items[0], true)
	if err != nil {
		t.Fatalf("ToggleCheckbox() error = %v", err)
	}
	if want := "- [x] \n- [x] b"; got != want {
		t.Errorf("ToggleCheckbox() = %q, want %q", got, want)
	}
	// A box ending its line is 3 bytes; the replacement marker is 4.
	if len(got) != len(doc.Source)+1 {
		t.Errorf("len(ToggleCheckbox()) = %d, want %d", len(got), len(doc.Source)+1)
	}
}

func TestTasks(t *testing.T) {
	doc := parseDoc(t, "# todo\n\n- [ ] one\n  - [x] *nested*\n- plain\n\n> 1. [x] quoted")
	tasks := doc.Tasks()
	want := []struct {
		block   int
		checked bool
		text    string
		line    int
	}{
		{1, false, "one", 3},
		{1, true, "nested", 4},
		{2, true, "quoted", 7},
	}
	if len(tasks) != len(want) {
		t.Fatalf("Tasks() returned %d tasks, want %d: %+v", len(tasks), len(want), tasks)
	}
	for i, w := range want {
		got := tasks[i]
		if got.Block != w.block || got.Checked != w.checked || got.Text != w.text || got.Line != w.line {
			t.Errorf("Tasks()[%d] = {%d %v %q %d}, want %+v", i, got.Block, got.Checked, got.Text, got.Line, w)
		}
	}
}

func TestCheckboxStateEqual(t *testing.T) {
	a := parseDoc(t, "- [x] a").Blocks[0].Node.(UnorderedList).Items[0].Checkbox
	b := parseDoc(t, "text\n\n- [x] b").Blocks[1].Node.(UnorderedList).Items[0].Checkbox
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("checkbox states with the same flag are not equal")
	}
	if a.Equal(&CheckboxState{Checked: false}) {
		t.Error("checked equals unchecked")
	}
	var none *CheckboxState
	if !none.Equal(nil) || none.Equal(a) {
		t.Error("nil checkbox comparison is wrong")
	}
}

func TestFrontMatterFields(t *testing.T) {
	doc := parseDoc(t, "---\ntitle: Notes\ntags: [a, b]\n---\nbody")
	fm, ok := doc.Blocks[0].Node.(FrontMatter)
	if !ok {
		t.Fatalf("block 0 = %s, want FrontMatter", Format(doc.Blocks[0].Node))
	}
	fields, err := fm.Fields()
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if fields["title"] != "Notes" {
		t.Errorf("title = %v, want Notes", fields["title"])
	}
	if tags, ok := fields["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %v", fields["tags"])
	}

	if _, err := (FrontMatter{Text: "a: [b"}).Fields(); err == nil {
		t.Error("Fields() on invalid YAML error = nil")
	}
}

func TestLinkInternal(t *testing.T) {
	doc := parseDoc(t, "[a](notes/other.md) [b](https://x.org) <me@example.com>")
	p := doc.Blocks[0].Node.(Paragraph)
	var links []Link
	for _, n := range p.Children {
		if l, ok := n.(Link); ok {
			links = append(links, l)
		}
	}
	if len(links) != 3 {
		t.Fatalf("links = %s", Format(p))
	}
	if !links[0].IsInternal || links[1].IsInternal || links[2].IsInternal {
		t.Errorf("IsInternal = %v %v %v", links[0].IsInternal, links[1].IsInternal, links[2].IsInternal)
	}
	if links[2].Destination != "mailto:me@example.com" {
		t.Errorf("Destination = %q", links[2].Destination)
	}
}

func TestDump(t *testing.T) {
	out := dump(t, []Node{Heading{Level: 2, Children: []InlineNode{Text{Text: "x"}}}})
	for _, want := range []string{"type: heading", "level: 2", "text: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() = %q, missing %q", out, want)
		}
	}
}
