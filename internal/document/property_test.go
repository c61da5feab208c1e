package document

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gerunddev/granite/internal/markdown"
)

// fragments are the pieces random documents are assembled from. They cover
// every token kind and the block markers.
var fragments = []string{
	"a", "b c", " ", "  ", "\t", "\n", "\n\n", "\r\n",
	"- ", "* ", "+ ", "1. ", "2) ", "[ ] ", "[x] ", "[ ]", "[x]",
	"> ", ">", "# ", "## ", "---", "***", "===", "```", "~~~", "    ",
	"[", "]", "[[", "]]", "(", ")", "<", ">", "!", "|", "|---|",
	"*", "**", "_", "~~", "`", "\\", "\"", "'", ":", "|",
	"http://x.y", "www.a.b", "<http://x>", "[r]: /u",
}

func randomDocument(r *rand.Rand) string {
	var b strings.Builder
	for n := r.IntN(24); n > 0; n-- {
		b.WriteString(fragments[r.IntN(len(fragments))])
	}
	return b.String()
}

// checkDocument asserts the properties every input must satisfy: a valid
// tree covering the source, a loss-free top level, a conversion without
// error and checkbox toggles that survive a reparse.
func checkDocument(t *testing.T, src string) {
	t.Helper()
	tree := markdown.Parse(src)
	if err := tree.Validate(); err != nil {
		t.Fatalf("Parse(%q) produced an invalid tree: %v", src, err)
	}
	var top strings.Builder
	for _, id := range tree.Children(tree.Root()) {
		top.WriteString(tree.Text(id))
	}
	if top.String() != src {
		t.Fatalf("top level of Parse(%q) = %q", src, top.String())
	}

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	if got := doc.Replace(nil); got != src {
		t.Fatalf("Replace(nil) = %q, want %q", got, src)
	}

	tasks := doc.Tasks()
	for i, task := range tasks {
		edited, err := doc.ToggleCheckbox(task.Block, task.Item, !task.Checked)
		if err != nil {
			t.Fatalf("ToggleCheckbox(task %d) of %q error = %v", i, src, err)
		}
		again, err := Parse(edited)
		if err != nil {
			t.Fatalf("Parse(%q) after toggle error = %v", edited, err)
		}
		after := again.Tasks()
		if len(after) != len(tasks) {
			t.Fatalf("toggle of task %d in %q changed the task count: %q has %d, want %d", i, src, edited, len(after), len(tasks))
		}
		if after[i].Checked == task.Checked {
			t.Errorf("toggle of task %d in %q did not stick: %q", i, src, edited)
		}
	}
}

func TestRandomDocuments(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	n := 20000
	if testing.Short() {
		n = 2000
	}
	for i := 0; i < n; i++ {
		checkDocument(t, randomDocument(r))
		if t.Failed() {
			break
		}
	}
}

func FuzzDocument(f *testing.F) {
	for _, seed := range []string{
		"",
		"# this is h1\n\nhello world\n\n## this is h2",
		"> a\n> b\n> > c\n> > d",
		"- [ ] one\n- [x] two\n  - [ ] three",
		"[see [docs](https://example.com)]",
		"- [ ] read [the [spec](s.md)] today",
		"[[](>)]",
		"[[unterminated",
		"---\na: 1\n\nb: 2\n---\nbody",
		"| a | b |\n|:--|--:|\n| 1 | 2 |",
		"- [x]\n- [ ]",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		checkDocument(t, src)
	})
}
