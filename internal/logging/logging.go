// Package logging builds the diagnostic logger used across lore.
//
// Reports and command results go through output.Printer; the logger only
// carries scan diagnostics and progress notes, on stderr.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "lore"

// DefaultLevel keeps routine runs quiet apart from warnings.
const DefaultLevel = log.WarnLevel

// New creates a text logger writing to w. level is a charmbracelet/log level
// name ("debug", "info", "warn", "error"); empty means DefaultLevel.
// verbose forces debug regardless of level.
func New(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
	}), nil
}

// ParseLevel parses a level name. Empty input yields DefaultLevel.
func ParseLevel(level string) (log.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
