package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/lore"
	"github.com/gorewood/lore/internal/output"
)

// newFindTaskCmd creates the find-task command.
func newFindTaskCmd() *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "find-task <id>",
		Short: "Print the document path of a task",
		Long: `Print the path of a task's document.

Looks the id up by filename in active, blocked, archive and backlog order
and prints the first match. Leading zeros are ignored, so 7 and 007 find
the same task. For a directory task the path of its README.md is printed.

Examples:
  lore find-task 42           # Absolute path of task 42
  lore find-task 042 --rel    # Path relative to the project directory
  lore find-task 42 --json    # {"task_id": "42", "path": "...", "rel_path": "..."}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindTask(cmd, args[0], relative)
		},
	}

	cmd.Flags().BoolVar(&relative, "rel", false, "Print the path relative to the project directory")

	return cmd
}

// runFindTask executes the find-task command.
func runFindTask(cmd *cobra.Command, id string, relative bool) error {
	printer := newPrinter(cmd)

	proj, err := loadProject(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	path, err := proj.layout.Scanner().FindTask(id)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	rel, relErr := filepath.Rel(proj.layout.ProjectDir, path)
	if relErr != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"task_id":  id,
			"path":     path,
			"rel_path": rel,
		})
	}

	if relative {
		printer.Println(rel)
	} else {
		printer.Println(path)
	}
	proj.logger.Debug("found task", "id", id, "normalized", lore.NormalizeID(id), "path", rel)
	return nil
}
