package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "granite",
		Short:         "Parse and edit markdown notes without disturbing their formatting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "also log to stderr, at debug level")

	rootCmd.AddCommand(newTreeCmd(&flags))
	rootCmd.AddCommand(newNodesCmd(&flags))
	rootCmd.AddCommand(newTasksCmd(&flags))
	rootCmd.AddCommand(newCheckCmd(&flags, true))
	rootCmd.AddCommand(newCheckCmd(&flags, false))
	rootCmd.AddCommand(newReplaceCmd(&flags))
	rootCmd.AddCommand(newExportCmd(&flags))
	rootCmd.AddCommand(newFrontMatterCmd(&flags))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "granite v%s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
