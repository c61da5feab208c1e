package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/granite/internal/export"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		idsFile string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a note to org-mode",
		Long: `Export a note to org-mode. Wiki links become org-roam id links; the
optional --ids file maps org-roam IDs to note names in YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*flags)
			if err != nil {
				return err
			}
			defer a.cleanup()

			ids := map[string]string{}
			if idsFile != "" {
				data, err := os.ReadFile(idsFile)
				if err != nil {
					return fmt.Errorf("failed to read id map: %w", err)
				}
				if err := yaml.Unmarshal(data, &ids); err != nil {
					return fmt.Errorf("failed to parse id map: %w", err)
				}
			}

			note, doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			org, err := export.ToOrg(doc.Nodes(), ids)
			if err != nil {
				a.log.FileError(note.Path, err)
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), org)
				return nil
			}
			if err := os.WriteFile(output, []byte(org), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.log.FileSaved(output, len(org))
			return nil
		},
	}

	cmd.Flags().StringVar(&idsFile, "ids", "", "YAML file mapping org-roam IDs to note names")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}
