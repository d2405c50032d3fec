package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/lore/internal/config"
	"github.com/gorewood/lore/internal/logging"
	"github.com/gorewood/lore/internal/lore"
	"github.com/gorewood/lore/internal/output"
)

// GenerateOptions selects what Generate writes.
type GenerateOptions struct {
	// NextOnly writes only the digest and skips the ADR scan.
	NextOnly bool
}

// Result describes one regeneration.
type Result struct {
	IndexPath   string            `json:"index_path,omitempty"`
	NextPath    string            `json:"next_path"`
	NextOnly    bool              `json:"next_only"`
	Counts      lore.Counts       `json:"counts"`
	Diagnostics []lore.Diagnostic `json:"diagnostics"`
}

// Summary renders the result as the short text shown after a run.
func (r *Result) Summary() string {
	var b strings.Builder
	b.WriteString("Generated:\n")
	if r.IndexPath != "" {
		fmt.Fprintf(&b, "- %s\n", r.IndexPath)
	}
	fmt.Fprintf(&b, "- %s\n\n", r.NextPath)

	c := r.Counts
	fmt.Fprintf(&b, "Stats: %d active, %d blocked, %d backlog, %d completed", c.Active, c.Blocked, c.Backlog, c.Completed)
	if !r.NextOnly {
		fmt.Fprintf(&b, ", %d ADRs", c.ADRs)
	}
	return b.String()
}

// Generator regenerates the index and digest of one project. Each call is a
// full rescan; nothing is kept between calls.
type Generator struct {
	layout config.Layout
	opts   Options
	logger *log.Logger
	now    func() time.Time
}

// NewGenerator creates a generator for layout. A nil logger discards logs.
func NewGenerator(layout config.Layout, opts Options, logger *log.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		layout: layout,
		opts:   opts.normalized(),
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for the index timestamp.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate scans the lore tree and overwrites the generated documents.
// Missing directories are user errors and leave every file untouched.
// Files are truncated and rewritten in place.
func (g *Generator) Generate(ctx context.Context, req GenerateOptions) (*Result, error) {
	scanner := g.layout.Scanner()

	required := []string{lore.TasksDirName, lore.SessionDirName}
	if !req.NextOnly {
		required = append(required, lore.ADRDirName)
	}
	if err := scanner.Require(required...); err != nil {
		return nil, missingDirError(err)
	}

	g.logger.Debug("scanning lore tree", "root", g.layout.LoreDir, "next_only", req.NextOnly)
	snap := scanner.Snapshot(!req.NextOnly)
	g.logDiagnostics(snap.Diagnostics)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		NextPath:    g.layout.NextPath(),
		NextOnly:    req.NextOnly,
		Counts:      snap.Counts(),
		Diagnostics: snap.Diagnostics,
	}
	if result.Diagnostics == nil {
		result.Diagnostics = []lore.Diagnostic{}
	}

	if !req.NextOnly {
		result.IndexPath = g.layout.IndexPath()
		if err := writeDocument(result.IndexPath, RenderIndex(snap, g.now(), g.opts)); err != nil {
			return nil, err
		}
	}
	if err := writeDocument(result.NextPath, RenderNext(snap, g.opts)); err != nil {
		return nil, err
	}

	g.logger.Info("index generated",
		"active", result.Counts.Active,
		"blocked", result.Counts.Blocked,
		"backlog", result.Counts.Backlog,
		"completed", result.Counts.Completed,
		"adrs", result.Counts.ADRs)
	return result, nil
}

func (g *Generator) logDiagnostics(diags []lore.Diagnostic) {
	for _, d := range diags {
		if d.Kind.Skipped() {
			g.logger.Debug("skipped document", "path", d.Path, "reason", d.Kind, "detail", d.Message)
			continue
		}
		g.logger.Warn(d.Message, "path", d.Path, "kind", d.Kind)
	}
}

func writeDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("writing %s: %v", path, err), err)
	}
	return nil
}

func missingDirError(err error) error {
	if errors.Is(err, lore.ErrNotFound) {
		return output.NewUserErrorWithCause(err.Error(), err)
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}
