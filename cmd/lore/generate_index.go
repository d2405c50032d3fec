package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/index"
)

// generateIndexFlags holds the command-line flags for the generate-index command.
type generateIndexFlags struct {
	nextOnly bool
	quiet    bool
}

// newGenerateIndexCmd creates the generate-index command.
func newGenerateIndexCmd() *cobra.Command {
	flags := &generateIndexFlags{}

	cmd := &cobra.Command{
		Use:   "generate-index",
		Short: "Regenerate lore/README.md and the next-tasks digest",
		Long: `Regenerate the lore index from the task and ADR documents.

Scans lore/1-tasks and lore/2-adrs and overwrites:
  lore/README.md               full index: stats, ready tasks, critical
                               blockers, dependency graph, task and ADR tables
  lore/0-session/next-tasks.md digest of the ready tasks that unblock the
                               most work

Documents that cannot be read are skipped and reported with --verbose or
by 'lore check'. Missing lore directories are an error and nothing is
written.

Examples:
  lore generate-index              # Regenerate both files
  lore generate-index --next-only  # Only the digest, skip the ADR scan
  lore generate-index --json       # Paths, counts and diagnostics as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateIndex(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.nextOnly, "next-only", false, "Only regenerate lore/0-session/next-tasks.md")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Print nothing on success")

	return cmd
}

// runGenerateIndex executes the generate-index command.
func runGenerateIndex(cmd *cobra.Command, flags *generateIndexFlags) error {
	printer := newPrinter(cmd)

	proj, err := loadProject(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	gen := index.NewGenerator(proj.layout, proj.options, proj.logger)
	result, err := gen.Generate(cmd.Context(), index.GenerateOptions{NextOnly: flags.nextOnly})
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	if !flags.quiet {
		printer.Println(result.Summary())
	}
	if skipped := len(result.Diagnostics); skipped > 0 && !flags.quiet {
		printer.Stderr("%d document(s) skipped or flagged; run 'lore check' for details\n", skipped)
	}
	return nil
}
