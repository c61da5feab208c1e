package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short", "buy milk", 20, "buy milk"},
		{"newlines", "a\nb", 20, "a b"},
		{"unlimited", "long text", 0, "long text"},
		{"cut", "abcdefghij", 5, "abcd…"},
		{"wide runes", "日本語テキスト", 6, "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.width)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
			if tt.width > 0 && runewidth.StringWidth(got) > tt.width {
				t.Errorf("Truncate(%q, %d) is %d cells wide", tt.input, tt.width, runewidth.StringWidth(got))
			}
		})
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"line", "task"}, [][]string{{"3", "buy milk"}}).String()
	for _, want := range []string{"line", "task", "buy milk"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table() = %q, missing %q", out, want)
		}
	}
}

func TestModified(t *testing.T) {
	got := Modified("note.md", time.Now().Add(-2*time.Hour))
	for _, want := range []string{"note.md", "modified 2 hours ago"} {
		if !strings.Contains(got, want) {
			t.Errorf("Modified() = %q, missing %q", got, want)
		}
	}
}
