package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/lore"
	"github.com/gorewood/lore/internal/output"
)

// checkFlags holds the command-line flags for the check command.
type checkFlags struct {
	quiet bool
}

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the lore tree for problems",
		Long: `Check the lore tree and report what the index would skip or get wrong.

Runs checks in three categories:
  LAYOUT    - The lore root and its 1-tasks, 2-adrs and 0-session directories
  DOCUMENTS - Documents that were skipped (no metadata, bad YAML, bad ids)
              or flagged (duplicate or mismatched ids)
  GRAPH     - Blockers that name unknown tasks and dependency cycles

Each check reports:
  ok - Check passed
  !! - Warning: the index is still generated
  XX - Failure: documents are missing from the index or can never be ready

Exits with status 1 when any check fails.

Examples:
  lore check              # Run all checks
  lore check --quiet      # Only show failures and warnings
  lore check --json       # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only show failures and warnings")

	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, flags *checkFlags) error {
	printer := newPrinter(cmd)

	proj, err := loadProject(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	report := lore.Check(proj.layout.Scanner())

	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return err
		}
	} else {
		outputCheckHuman(printer, report, flags.quiet)
	}

	if report.Failed() {
		// The report already explains the failures; only the exit code is left.
		return output.NewUserError(fmt.Sprintf("%d check(s) failed", report.Summary.Failed))
	}
	return nil
}

// outputCheckHuman outputs the check report in human-readable format.
func outputCheckHuman(printer *output.Printer, report *lore.Report, quiet bool) {
	printer.Println()
	printer.Print("lore check v%s\n", version)

	printCheckSection(printer, "LAYOUT", report.Layout, quiet)
	printCheckSection(printer, "DOCUMENTS", report.Documents, quiet)
	printCheckSection(printer, "GRAPH", report.Graph, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		printer.Status(string(lore.SeverityPass)), report.Summary.Passed,
		printer.Status(string(lore.SeverityWarn)), report.Summary.Warnings,
		printer.Status(string(lore.SeverityFail)), report.Summary.Failed,
	)
}

// printCheckSection prints a section of findings.
func printCheckSection(printer *output.Printer, title string, findings []lore.Finding, quiet bool) {
	if len(findings) == 0 {
		return
	}
	// In quiet mode, skip sections with only passing checks
	if quiet && !hasProblems(findings) {
		return
	}

	printer.Println()
	printer.Println(title)

	for _, f := range findings {
		if quiet && f.Severity == lore.SeverityPass {
			continue
		}

		printer.Print("  %s  %s %s\n", printer.Status(string(f.Severity)), f.Name, f.Message)
		if f.Path != "" {
			printer.Print("      %s\n", printer.Muted(f.Path))
		}
		if f.Hint != "" {
			printer.Print("     %s %s\n", hintPrefix(), f.Hint)
		}
	}
}

func hasProblems(findings []lore.Finding) bool {
	for _, f := range findings {
		if f.Severity != lore.SeverityPass {
			return true
		}
	}
	return false
}

// hintPrefix returns the prefix for hint lines.
func hintPrefix() string {
	return "->"
}
