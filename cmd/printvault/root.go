package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errNothingToDo signals a successful run that proposed no changes; main
// maps it to a distinct exit status for scripting.
var errNothingToDo = errors.New("nothing to do")

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "printvault",
		Short:         "Catalog and enrich 3D-printable model archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newEnrichCommand(ctx))
	rootCmd.AddCommand(newVocabCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
