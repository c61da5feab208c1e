package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/granite/internal/document"
	"github.com/gerunddev/granite/internal/styles"
)

func newNodesCmd(flags *globalFlags) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "nodes <file>",
		Short: "Print the top-level blocks of a note as semantic nodes",
		Args:  cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			if asYAML {
				dump, err := document.Dump(doc.Nodes()...)
				if err != nil {
					return err
				}
				fmt.Fprint(out, dump)
				return nil
			}
			for i, b := range doc.Blocks {
				start, end := b.Span()
				fmt.Fprintf(out, "%s %s\n", styles.DimStyle.Render(fmt.Sprintf("%3d [%d,%d)", i, start, end)), document.Format(b.Node))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the nodes as YAML")

	return cmd
}
