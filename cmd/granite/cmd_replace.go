package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gerunddev/granite/internal/styles"
)

func newReplaceCmd(flags *globalFlags) *cobra.Command {
	var (
		text   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "replace <file> <block>",
		Short: "Replace the text of one top-level block",
		Long: `Replace the source text of one top-level block, numbered as in the
output of nodes. The new text is read from --text or from stdin.
Every other byte of the note is kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid block number %q", args[1])
			}
			if !cmd.Flags().Changed("text") {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			a, err := newApp(*flags)
			if err != nil {
				return err
			}
			defer a.cleanup()

			note, doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			if block < 0 || block >= len(doc.Blocks) {
				return fmt.Errorf("block %d out of range, note has %d blocks", block, len(doc.Blocks))
			}

			content := doc.Replace(map[int]string{block: text})
			a.log.BlockReplaced(note.Path, block)
			if err := a.write(cmd.OutOrStdout(), note, content, dryRun); err != nil {
				return err
			}
			if !dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ "+note.Path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "replacement text")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the diff instead of writing the note")

	return cmd
}
