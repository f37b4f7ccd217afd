package main

import (
	"github.com/spf13/cobra"

	pipelinecmd "github.com/goliatone/go-codelab/internal/commands/pipeline"
	"github.com/goliatone/go-codelab/internal/linter"
)

func newLintCommand(state *cliState) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the tutorial corpus without writing any output",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report linter.Report
			msg := pipelinecmd.LintCorpusCommand{
				Strict: strict,
				ReportCallback: func(r linter.Report) {
					report = r
				},
			}
			err := state.module.Commands().Lint.Execute(cmd.Context(), msg)
			for _, issue := range report.Issues {
				cmd.Println(issue.String())
			}
			errs, warnings := report.Counts()
			if err != nil {
				cmd.PrintErrf("lint failed: %d error(s), %d warning(s)\n", errs, warnings)
				return err
			}
			cmd.Printf("lint passed: %d warning(s)\n", warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	return cmd
}
