package main

import (
	"github.com/spf13/cobra"

	pipelinecmd "github.com/goliatone/go-codelab/internal/commands/pipeline"
)

func newCleanCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the generated site and its build manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.module.Commands().Clean.Execute(cmd.Context(), pipelinecmd.CleanSiteCommand{}); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", state.cfg.Build.OutputDir)
			return nil
		},
	}
}
