// Package diff shows what an edit does to a note before it is written.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Options controls diff rendering
type Options struct {
	// Width is the word wrap width of rendered output
	Width int
	// Render enables glamour rendering; otherwise the plain unified diff is
	// returned
	Render bool
}

// Unified returns the unified diff between the two versions of the file at
// name. It is empty when the versions are equal.
func Unified(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name, before, edits))
}

// Generate creates a diff between the current and edited content of a note
func Generate(name, before, after string, opts Options) string {
	unified := Unified(name, before, after)
	if unified == "" || !opts.Render {
		return unified
	}
	return Render(unified, opts.Width)
}

// Render wraps a unified diff in a diff code fence and renders it for the
// terminal. The fenced markdown is returned if rendering fails.
func Render(unified string, width int) string {
	if !strings.HasSuffix(unified, "\n") {
		unified += "\n"
	}
	// Wrap in diff code fence for proper syntax highlighting (+ in green, - in red)
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		// Fallback to plain diff if rendering fails
		return diffMarkdown
	}

	return rendered
}
