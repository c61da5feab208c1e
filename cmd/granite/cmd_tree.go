package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/styles"
)

func newTreeCmd(flags *globalFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the generic parse tree of a note",
		Long: `Print every node of the parse tree with its byte span.
Token leaves also show their text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*flags)
			if err != nil {
				return err
			}
			defer a.cleanup()

			_, doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			tree := doc.Tree
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), tree.Dump(tree.Root()))
				return nil
			}

			var b strings.Builder
			tree.Walk(tree.Root(), func(id ast.NodeID, depth int) bool {
				start, end := tree.Span(id)
				b.WriteString(strings.Repeat("  ", depth))
				b.WriteString(styles.Kind(tree.Kind(id)))
				b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" [%d,%d)", start, end)))
				if tree.Node(id).IsLeaf() {
					fmt.Fprintf(&b, " %q", tree.Text(id))
				}
				b.WriteByte('\n')
				return true
			})
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print without colors")

	return cmd
}
