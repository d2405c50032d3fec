package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/config"
	"github.com/gorewood/lore/internal/output"
	"github.com/gorewood/lore/internal/setup"
)

// integrationInfo describes an available integration.
type integrationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Installed   bool   `json:"installed"`
	Scope       string `json:"scope,omitempty"`
	Location    string `json:"location,omitempty"`
}

// setupClaudeFlags holds the command-line flags for setup claude.
type setupClaudeFlags struct {
	global bool
	check  bool
	remove bool
	dryRun bool
}

// newSetupCmd creates the setup parent command with subcommands.
func newSetupCmd() *cobra.Command {
	var listFlag bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure agent integrations",
		Long: `Configure lore integrations with coding agents.

Subcommands:
  claude    Install the Claude Code session hook

Flags:
  --list    List available integrations and their status

Examples:
  lore setup --list           # List available integrations
  lore setup claude           # Install for this project
  lore setup claude --global  # Install for every project
  lore setup claude --check   # Check installation status
  lore setup claude --remove  # Remove integration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listFlag {
				return runSetupList(cmd)
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List available integrations and their status")

	cmd.AddCommand(newSetupClaudeCmd())
	return cmd
}

// newSetupClaudeCmd creates the claude subcommand for setup.
func newSetupClaudeCmd() *cobra.Command {
	flags := &setupClaudeFlags{}

	cmd := &cobra.Command{
		Use:   "claude",
		Short: "Install the Claude Code session hook",
		Long: `Install lore integration with Claude Code.

Adds a SessionStart hook that runs '` + setup.LoreHookCommand + `'
so every session opens with a fresh lore/0-session/next-tasks.md.

By default the hook goes to the project's .claude/settings.local.json.
Use --global to install it in ~/.claude/settings.json instead.

Examples:
  lore setup claude           # Install for this project
  lore setup claude --global  # Install globally
  lore setup claude --check   # Check if installed
  lore setup claude --remove  # Uninstall
  lore setup claude --dry-run # Show what would be done`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetupClaude(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.global, "global", false, "Use ~/.claude/settings.json instead of the project settings")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Check installation status without changes")
	cmd.Flags().BoolVar(&flags.remove, "remove", false, "Remove the integration")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runSetupClaude executes the setup claude command.
func runSetupClaude(cmd *cobra.Command, flags *setupClaudeFlags) error {
	printer := newPrinter(cmd)

	projectDir, err := config.ResolveProjectDir(stringFlag(cmd, "project"))
	if err != nil {
		err = output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	env, err := agentEnv("claude")
	if err != nil {
		printer.Error(err)
		return err
	}
	path, scope, installed, err := env.Check(projectDir, flags.global)
	if err != nil {
		printer.Error(err)
		return err
	}

	switch {
	case flags.check:
		return reportSetupCheck(printer, path, scope, installed)
	case flags.remove:
		return runSetupRemove(printer, env, projectDir, flags, path, scope, installed)
	default:
		return runSetupInstall(printer, env, projectDir, flags, path, scope, installed)
	}
}

// reportSetupCheck reports the installation status.
func reportSetupCheck(printer *output.Printer, path, scope string, installed bool) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"integration": "claude",
			"installed":   installed,
			"location":    path,
			"scope":       scope,
		})
	}

	printer.Section("Claude Integration Status")
	printer.KeyValue("Scope", scope)
	printer.KeyValue("Location", path)
	printer.KeyValue("Status", installedLabel(installed))
	return nil
}

// runSetupRemove removes the lore hook.
func runSetupRemove(printer *output.Printer, env setup.AgentEnv, projectDir string, flags *setupClaudeFlags, path, scope string, installed bool) error {
	if !installed {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":      "not_installed",
				"integration": "claude",
				"scope":       scope,
			})
		}
		return printer.Success(map[string]any{
			"message": "Claude integration is not installed",
		})
	}

	if flags.dryRun {
		return reportDryRun(printer, "would remove lore hook", path, scope)
	}

	if err := env.Remove(projectDir, flags.global); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":      "removed",
			"integration": "claude",
			"location":    path,
			"scope":       scope,
		})
	}
	return printer.Success(map[string]any{
		"message": "Removed Claude integration from " + path,
	})
}

// runSetupInstall installs the lore hook. Installing twice is a no-op.
func runSetupInstall(printer *output.Printer, env setup.AgentEnv, projectDir string, flags *setupClaudeFlags, path, scope string, installed bool) error {
	if flags.dryRun {
		action := "would install"
		if installed {
			action = "nothing to do (already installed)"
		}
		return reportDryRun(printer, action, path, scope)
	}

	if installed {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":      "already_installed",
				"integration": "claude",
				"location":    path,
				"scope":       scope,
			})
		}
		return printer.Success(map[string]any{
			"message": "Claude integration already installed at " + path,
		})
	}

	if _, err := env.Install(projectDir, flags.global); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":      "installed",
			"integration": "claude",
			"location":    path,
			"scope":       scope,
		})
	}
	return printer.Success(map[string]any{
		"message": "Installed Claude integration in " + path,
	})
}

func reportDryRun(printer *output.Printer, action, path, scope string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":      "dry_run",
			"integration": "claude",
			"action":      action,
			"location":    path,
			"scope":       scope,
		})
	}
	printer.Section("Dry Run")
	printer.KeyValue("Action", action)
	printer.KeyValue("Location", path)
	printer.KeyValue("Scope", scope)
	return nil
}

// runSetupList lists available integrations and their status.
func runSetupList(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	projectDir, err := config.ResolveProjectDir(stringFlag(cmd, "project"))
	if err != nil {
		err = output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	var integrations []integrationInfo
	for _, env := range setup.AllAgentEnvs() {
		path, scope, installed := env.Detect(projectDir)
		integrations = append(integrations, integrationInfo{
			Name:        env.Name(),
			Description: env.DisplayName() + " session hook refreshing the next-tasks digest",
			Installed:   installed,
			Scope:       scope,
			Location:    path,
		})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"integrations": integrations,
		})
	}

	printer.Section("Available Integrations")
	headers := []string{"Name", "Description", "Status", "Scope"}
	rows := make([][]string, 0, len(integrations))
	for _, integ := range integrations {
		scope := "-"
		if integ.Scope != "" {
			scope = integ.Scope
		}
		rows = append(rows, []string{integ.Name, integ.Description, installedLabel(integ.Installed), scope})
	}
	printer.Table(headers, rows)
	return nil
}

// agentEnv looks up a registered integration. A missing one is a build
// problem, not a user mistake.
func agentEnv(name string) (setup.AgentEnv, error) {
	env := setup.GetAgentEnv(name)
	if env == nil {
		return nil, output.NewSystemError("integration " + name + " is not registered")
	}
	return env, nil
}

func installedLabel(installed bool) string {
	if installed {
		return "installed"
	}
	return "not installed"
}
