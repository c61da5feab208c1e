package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gerunddev/granite/internal/styles"
)

func newTasksCmd(flags *globalFlags) *cobra.Command {
	var (
		width   int
		pending bool
	)

	cmd := &cobra.Command{
		Use:   "tasks <file>",
		Short: "List the task items of a note",
		Long: `List every checkbox list item with its number, line and state.
The numbers are the ones check and uncheck expect.`,
		Args: cobra.ExactArgs(1),
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
			fmt.Fprintln(cmd.OutOrStdout(), styles.Modified(filepath.Base(note.Path), note.GetMTime()))

			var rows [][]string
			for i, task := range doc.Tasks() {
				if pending && task.Checked {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(task.Line),
					styles.Checkbox(task.Checked),
					styles.Truncate(task.Text, width),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styles.DimStyle.Render("no tasks"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Table([]string{"#", "line", "", "task"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 60, "truncate task text to this many cells")
	cmd.Flags().BoolVar(&pending, "pending", false, "only list unchecked tasks")

	return cmd
}
