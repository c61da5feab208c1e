package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/granite/internal/document"
	"github.com/gerunddev/granite/internal/styles"
)

func newFrontMatterCmd(flags *globalFlags) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "frontmatter <file>",
		Short: "Print the YAML front matter of a note",
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
			nodes := doc.Nodes()
			var fm document.FrontMatter
			if len(nodes) > 0 {
				fm, _ = nodes[0].(document.FrontMatter)
			}
			if fm.Text == "" {
				fmt.Fprintln(cmd.OutOrStdout(), styles.DimStyle.Render("no front matter"))
				return nil
			}

			fields, err := fm.Fields()
			if err != nil {
				return err
			}
			var value any = fields
			if key != "" {
				v, ok := fields[key]
				if !ok {
					return fmt.Errorf("front matter has no key %q", key)
				}
				value = v
			}
			out, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "get", "g", "", "print only this key")

	return cmd
}
