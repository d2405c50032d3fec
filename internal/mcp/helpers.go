package mcp

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/gorewood/lore/internal/lore"
)

// projectRelative returns path relative to dir in slash form, or path
// itself when no relative form exists.
func projectRelative(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// logFindings logs failed checks so they show up in the server log as well
// as in the tool result.
func logFindings(logger *log.Logger, report *lore.Report) {
	for _, f := range report.All() {
		if f.Severity == lore.SeverityFail {
			logger.Warn("check failed", "check", f.Name, "path", f.Path, "message", f.Message)
		}
	}
	logger.Debug("check finished",
		"passed", report.Summary.Passed,
		"warnings", report.Summary.Warnings,
		"failed", report.Summary.Failed)
}
