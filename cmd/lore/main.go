// Package main provides the entry point for the lore CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return boolFlag(cmd, "json")
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	return boolFlag(cmd, "verbose")
}

// useColor resolves --color against the output writer's TTY state.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(stringFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter creates a printer for cmd with errors going to its stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func boolFlag(cmd *cobra.Command, name string) bool {
	return lookupFlag(cmd, name) == "true"
}

func stringFlag(cmd *cobra.Command, name string) string {
	return lookupFlag(cmd, name)
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the lore CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lore",
		Short: "Task and ADR index for the lore framework",
		Long: `Lore - builds the index of a project's lore directory.

Lore reads task documents from lore/1-tasks and architecture decision
records from lore/2-adrs, works out which tasks block which, and writes:
  - lore/README.md               the full index with a dependency graph
  - lore/0-session/next-tasks.md a short digest of what to pick up next

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'lore --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := output.ValidateColorMode(stringFlag(cmd, "color")); err != nil {
			newPrinter(cmd).Error(err)
			return err
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("project", "", "Project directory containing lore/ (default: $LORE_PROJECT_DIR, $CLAUDE_PROJECT_DIR or the working directory)")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log scan details to stderr")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Core commands: generate-index, status
	addGroupedCommand(cmd, newGenerateIndexCmd(), "core")
	addGroupedCommand(cmd, newStatusCmd(), "core")

	// Query commands: find-task, check
	addGroupedCommand(cmd, newFindTaskCmd(), "query")
	addGroupedCommand(cmd, newCheckCmd(), "query")

	// Agent commands: serve, setup
	addGroupedCommand(cmd, newServeCmd(), "agent")
	addGroupedCommand(cmd, newSetupCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
