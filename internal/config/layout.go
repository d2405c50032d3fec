package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/lore/internal/lore"
)

// LoreDirName is the lore root's name inside a project.
const LoreDirName = "lore"

// Layout locates a project's lore tree and generated files.
type Layout struct {
	ProjectDir string
	LoreDir    string
}

// NewLayout returns the layout for a project directory.
func NewLayout(projectDir string) Layout {
	return Layout{
		ProjectDir: projectDir,
		LoreDir:    filepath.Join(projectDir, LoreDirName),
	}
}

// IndexPath is the generated full index (lore/README.md).
func (l Layout) IndexPath() string {
	return filepath.Join(l.LoreDir, lore.IndexFileName)
}

// NextPath is the generated digest (lore/0-session/next-tasks.md).
func (l Layout) NextPath() string {
	return filepath.Join(l.LoreDir, lore.SessionDirName, lore.NextFileName)
}

// Scanner returns a scanner over the layout's lore root.
func (l Layout) Scanner() *lore.Scanner {
	return lore.NewScanner(l.LoreDir)
}

// ResolveProjectDir picks the project directory: the explicit value if
// given, then $LORE_PROJECT_DIR, then $CLAUDE_PROJECT_DIR, then the working
// directory. The result is absolute.
func ResolveProjectDir(explicit string) (string, error) {
	dir := strings.TrimSpace(explicit)
	for _, env := range []string{"LORE_PROJECT_DIR", "CLAUDE_PROJECT_DIR"} {
		if dir != "" {
			break
		}
		dir = strings.TrimSpace(os.Getenv(env))
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory %s: %w", dir, err)
	}
	return abs, nil
}
