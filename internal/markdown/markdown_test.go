package markdown

import (
	"strings"
	"testing"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/block"
	"github.com/gerunddev/granite/internal/inline"
)

var samples = []string{
	"",
	"plain text",
	"# Heading\n\nSome *emphasis* and **strong** text.\n",
	"---\ntitle: Note\ntags: [a, b]\n---\n# Body\n",
	"- [ ] open\n- [x] done\n  - [ ] nested\n",
	"1. one\n2. two\n\n3) three\n",
	"> quoted *text*\n> - item\n>\n> ```go\n> code\n> ```\n",
	"| a | b |\n|:--|--:|\n| 1 | `2` |\n",
	"[link](https://example.com \"title\") and [ref][r] and [[Wiki|alias]]\n\n[r]: /url\n",
	"![img](a.png) ~~gone~~ <https://auto.link> www.example.com\n",
	"    indented code\n\nSetext\n======\n\n***\n",
	"line one  \r\nline two\r\n",
}

func TestParseCoversSource(t *testing.T) {
	for _, src := range samples {
		tree := Parse(src)
		if err := tree.Validate(); err != nil {
			t.Errorf("Parse(%q) produced an invalid tree: %v\n%s", src, err, tree.Dump(tree.Root()))
			continue
		}
		var leaves strings.Builder
		tree.Walk(tree.Root(), func(id ast.NodeID, depth int) bool {
			if tree.Node(id).IsLeaf() {
				leaves.WriteString(tree.Text(id))
			}
			return true
		})
		if leaves.String() != src {
			t.Errorf("leaves of Parse(%q) = %q", src, leaves.String())
		}
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []ast.Kind
	}{
		{
			name:  "heading",
			input: "# a",
			opts:  DefaultOptions(),
			want:  []ast.Kind{ast.ATX1},
		},
		{
			name:  "paragraphs",
			input: "a\n\nb",
			opts:  DefaultOptions(),
			want:  []ast.Kind{ast.Paragraph, ast.EOL, ast.EOL, ast.Paragraph},
		},
		{
			name:  "front matter",
			input: "---\na: 1\n---\nx",
			opts:  DefaultOptions(),
			want:  []ast.Kind{ast.FrontMatter, ast.EOL, ast.Paragraph},
		},
		{
			name:  "front matter disabled",
			input: "---\na: 1\n---\nx",
			opts:  Options{},
			want:  []ast.Kind{ast.HorizontalRule, ast.EOL, ast.Setext2, ast.EOL, ast.Paragraph},
		},
		{
			name:  "table",
			input: "| a |\n|---|",
			opts:  DefaultOptions(),
			want:  []ast.Kind{ast.Table},
		},
		{
			name:  "table disabled",
			input: "| a |\n|---|",
			opts:  Options{},
			want:  []ast.Kind{ast.Paragraph},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewParser(tt.opts).Parse(tt.input)
			var got []ast.Kind
			for _, c := range tree.Children(tree.Root()) {
				got = append(got, tree.Kind(c))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("top level = %v, want %v\n%s", got, tt.want, tree.Dump(tree.Root()))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("top level = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestTaskListOption(t *testing.T) {
	src := "- [x] done"
	hasCheckbox := func(tree *ast.Tree) bool {
		found := false
		tree.Walk(tree.Root(), func(id ast.NodeID, depth int) bool {
			if tree.Kind(id) == ast.CheckBox {
				found = true
			}
			return true
		})
		return found
	}

	if !hasCheckbox(Parse(src)) {
		t.Error("default parser did not produce a CHECK_BOX")
	}
	opts := DefaultOptions()
	opts.TaskLists = false
	if hasCheckbox(NewParser(opts).Parse(src)) {
		t.Error("parser without task lists produced a CHECK_BOX")
	}
}

func TestFlavourOrder(t *testing.T) {
	f := NewFlavour(DefaultOptions())

	providers := f.BlockProviders()
	if _, ok := providers[0].(block.FrontMatter); !ok {
		t.Errorf("first provider = %T, want block.FrontMatter", providers[0])
	}
	if _, ok := providers[len(providers)-1].(block.Table); !ok {
		t.Errorf("last provider = %T, want block.Table", providers[len(providers)-1])
	}

	parsers := f.InlineParsers()
	if _, ok := parsers[0].(inline.Autolink); !ok {
		t.Errorf("first parser = %T, want inline.Autolink", parsers[0])
	}
	if _, ok := parsers[len(parsers)-1].(inline.EmphStrong); !ok {
		t.Errorf("last parser = %T, want inline.EmphStrong", parsers[len(parsers)-1])
	}

	bare := NewFlavour(Options{})
	if got, want := len(bare.BlockProviders()), len(providers)-2; got != want {
		t.Errorf("providers without extensions = %d, want %d", got, want)
	}
	if got, want := len(bare.InlineParsers()), len(parsers)-2; got != want {
		t.Errorf("parsers without extensions = %d, want %d", got, want)
	}
}

func TestDefaultShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the shared parser")
	}
	if Default().Flavour() == nil {
		t.Error("Default() has no flavour")
	}
}
