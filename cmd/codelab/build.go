package main

import (
	"time"

	"github.com/spf13/cobra"

	pipelinecmd "github.com/goliatone/go-codelab/internal/commands/pipeline"
	"github.com/goliatone/go-codelab/internal/generator"
	"github.com/goliatone/go-codelab/internal/linter"
)

func newBuildCommand(state *cliState) *cobra.Command {
	var (
		force      bool
		dryRun     bool
		assetsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the tutorial corpus into the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *generator.BuildResult
			msg := pipelinecmd.BuildSiteCommand{
				Force:      force,
				DryRun:     dryRun,
				AssetsOnly: assetsOnly,
				ResultCallback: func(r *generator.BuildResult) {
					result = r
				},
			}
			if err := state.module.Commands().Build.Execute(cmd.Context(), msg); err != nil {
				if result != nil {
					printLintReport(cmd, result.LintReport)
				}
				return err
			}
			printBuildResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "rebuild every page even when the manifest says it is unchanged")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the pipeline without writing any output")
	cmd.Flags().BoolVar(&assetsOnly, "assets-only", false, "copy assets without rendering pages")
	return cmd
}

func printBuildResult(cmd *cobra.Command, result *generator.BuildResult) {
	if result == nil {
		return
	}
	label := "build"
	if result.DryRun {
		label = "dry run"
	}
	cmd.Printf("%s %s finished in %s\n", label, result.BuildID, result.Duration.Round(time.Millisecond))
	cmd.Printf("  pages:  %d built, %d skipped\n", result.PagesBuilt, result.PagesSkipped)
	cmd.Printf("  assets: %d copied, %d skipped\n", result.AssetsBuilt, result.AssetsSkipped)
	for _, diag := range result.Diagnostics {
		if diag.Err != nil {
			cmd.Printf("  warning: %s: %v\n", diag.Slug, diag.Err)
		}
	}
	if _, warnings := result.LintReport.Counts(); warnings > 0 {
		cmd.Printf("  lint: %d warning(s), run 'codelab lint' for details\n", warnings)
	}
}

func printLintReport(cmd *cobra.Command, report linter.Report) {
	for _, issue := range report.Issues {
		cmd.PrintErrln(issue.String())
	}
	errs, warnings := report.Counts()
	cmd.PrintErrf("lint: %d error(s), %d warning(s)\n", errs, warnings)
}
