package main

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/lore/internal/config"
	"github.com/gorewood/lore/internal/envfile"
	"github.com/gorewood/lore/internal/index"
	"github.com/gorewood/lore/internal/logging"
	"github.com/gorewood/lore/internal/output"
)

// project is everything a command needs to work on one lore tree.
type project struct {
	layout  config.Layout
	options index.Options
	logger  *log.Logger
}

// loadProject resolves the project directory, applies env files and
// configuration, and builds the diagnostic logger on cmd's stderr.
//
// Env files are read in priority order; the first file that sets a
// variable wins and the real environment always wins:
//  1. <project>/.env.local
//  2. <project>/.env
//  3. <config dir>/env
func loadProject(cmd *cobra.Command) (*project, error) {
	projectDir, err := config.ResolveProjectDir(stringFlag(cmd, "project"))
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}

	envFiles := []string{
		filepath.Join(projectDir, ".env.local"),
		filepath.Join(projectDir, ".env"),
	}
	if dir := config.Dir(); dir != "" {
		envFiles = append(envFiles, filepath.Join(dir, "env"))
	}
	applied, err := envfile.Load(envFiles...)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, isVerbose(cmd))
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	if len(applied) > 0 {
		logger.Debug("applied env files", "keys", applied)
	}
	if len(cfg.Files) > 0 {
		logger.Debug("loaded config", "files", cfg.Files)
	}

	return &project{
		layout:  config.NewLayout(projectDir),
		options: index.OptionsFromConfig(cfg.Index),
		logger:  logger,
	}, nil
}
