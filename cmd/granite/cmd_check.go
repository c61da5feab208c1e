package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gerunddev/granite/internal/document"
	"github.com/gerunddev/granite/internal/styles"
)

func newCheckCmd(flags *globalFlags, checked bool) *cobra.Command {
	var dryRun bool

	use, short := "check", "Mark tasks as done"
	if !checked {
		use, short = "uncheck", "Mark tasks as not done"
	}

	cmd := &cobra.Command{
		Use:   use + " <file> <task>...",
		Short: short,
		Long: short + `. Tasks are numbered as in the output of tasks.
Only the checkbox characters change; the rest of the note is kept byte for byte.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*flags)
			if err != nil {
				return err
			}
			defer a.cleanup()

			note, doc, err := a.open(args[0])
			if err != nil {
				return err
			}

			content := doc.Source
			for _, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid task number %q", arg)
				}
				tasks := doc.Tasks()
				if n < 1 || n > len(tasks) {
					return fmt.Errorf("task %d out of range, note has %d tasks", n, len(tasks))
				}
				task := tasks[n-1]
				content, err = doc.ToggleCheckbox(task.Block, task.Item, checked)
				if err != nil {
					return fmt.Errorf("task %d: %w", n, err)
				}
				a.log.CheckboxToggled(note.Path, n, checked)

				// the next toggle needs a tree of the edited source
				if doc, err = document.ParseWith(a.parser, content); err != nil {
					return err
				}
			}

			if err := a.write(cmd.OutOrStdout(), note, content, dryRun); err != nil {
				return err
			}
			if !dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ "+note.Path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the diff instead of writing the note")

	return cmd
}
