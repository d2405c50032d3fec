package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/index"
	"github.com/gorewood/lore/internal/output"
	"github.com/gorewood/lore/internal/setup"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show task counts and what is ready to start",
		Long: `Show the current state of the lore tree without writing anything.

Displays task counts by status, the ready tasks that unblock the most
work, the critical blockers and the ids of blocked tasks. Also reports
which agent integrations (see 'lore setup') are installed.

Examples:
  lore status            # Show human-readable status
  lore status --json     # Output status as JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	proj, err := loadProject(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	overview, err := index.LoadOverview(proj.layout, proj.options)
	if err != nil {
		printer.Error(err)
		return err
	}

	hooks := installedAgentHooks(proj.layout.ProjectDir)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"project":     proj.layout.ProjectDir,
			"agent_hooks": hooks,
			"counts":      overview.Counts,
			"ready":       overview.Ready,
			"critical":    overview.Critical,
			"blocked":     overview.Blocked,
			"diagnostics": overview.Diagnostics,
		})
	}

	printHumanStatus(printer, proj, overview, hooks)
	return nil
}

// installedAgentHooks names the agent integrations installed for projectDir.
func installedAgentHooks(projectDir string) []string {
	hooks := []string{}
	for _, env := range setup.DetectedAgentEnvs(projectDir) {
		hooks = append(hooks, env.Name())
	}
	return hooks
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, proj *project, ov *index.Overview, hooks []string) {
	agents := "none (run 'lore setup claude')"
	if len(hooks) > 0 {
		agents = strings.Join(hooks, ", ")
	}
	printer.Box("Project", strings.Join([]string{
		"Directory:   " + proj.layout.ProjectDir,
		"Lore:        " + proj.layout.LoreDir,
		"Agent hooks: " + agents,
	}, "\n"))

	printer.Section("Tasks")
	printer.KeyValue("Active", strconv.Itoa(ov.Counts.Active))
	printer.KeyValue("Blocked", strconv.Itoa(ov.Counts.Blocked))
	printer.KeyValue("Backlog", strconv.Itoa(ov.Counts.Backlog))
	printer.KeyValue("Completed", strconv.Itoa(ov.Counts.Completed))
	printer.KeyValue("ADRs", strconv.Itoa(ov.Counts.ADRs))

	printer.Section("Ready to Start")
	if len(ov.Ready) == 0 {
		printer.Println(printer.Muted("No ready tasks"))
	} else {
		rows := make([][]string, 0, len(ov.Ready))
		for _, task := range ov.Ready {
			priority := ""
			if task.High {
				priority = "HIGH"
			}
			rows = append(rows, []string{task.ID, task.Title, strconv.Itoa(task.Blocks), priority})
		}
		printer.Table([]string{"ID", "Title", "Unblocks", "Priority"}, rows)
	}

	if len(ov.Critical) > 0 {
		printer.Section("Critical Blockers")
		rows := make([][]string, 0, len(ov.Critical))
		for _, task := range ov.Critical {
			rows = append(rows, []string{task.ID, task.Title, strconv.Itoa(task.Blocks)})
		}
		printer.Table([]string{"ID", "Title", "Blocks"}, rows)
	}

	if len(ov.Blocked) > 0 {
		printer.Section("Blocked")
		printer.Println(strings.Join(ov.Blocked, ", "))
	}

	if n := len(ov.Diagnostics); n > 0 {
		printer.Stderr("%d document(s) skipped or flagged; run 'lore check' for details\n", n)
	}
}
