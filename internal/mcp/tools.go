package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/lore/internal/index"
	"github.com/gorewood/lore/internal/lore"
)

// --- Generate-index tool ---

// GenerateIndexInput is the input for the generate-index tool.
type GenerateIndexInput struct {
	NextOnly bool `json:"next_only,omitempty" jsonschema:"write only lore/0-session/next-tasks.md and skip the ADR scan"`
}

// GenerateIndexOutput is the output for the generate-index tool.
type GenerateIndexOutput struct {
	IndexPath   string            `json:"index_path,omitempty" jsonschema:"path of the regenerated full index (empty with next_only)"`
	NextPath    string            `json:"next_path"            jsonschema:"path of the regenerated next-tasks digest"`
	Counts      lore.Counts       `json:"counts"               jsonschema:"task totals by status and the ADR count"`
	Diagnostics []lore.Diagnostic `json:"diagnostics"          jsonschema:"documents that were skipped or flagged during the scan"`
	Summary     string            `json:"summary"              jsonschema:"human-readable summary of the run"`
}

func handleGenerateIndex(project Project) mcp.ToolHandlerFor[GenerateIndexInput, GenerateIndexOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateIndexInput) (*mcp.CallToolResult, GenerateIndexOutput, error) {
		gen := index.NewGenerator(project.Layout, project.Options, project.logger())
		result, err := gen.Generate(ctx, index.GenerateOptions{NextOnly: input.NextOnly})
		if err != nil {
			return nil, GenerateIndexOutput{}, fmt.Errorf("generating index: %w", err)
		}

		return nil, GenerateIndexOutput{
			IndexPath:   result.IndexPath,
			NextPath:    result.NextPath,
			Counts:      result.Counts,
			Diagnostics: result.Diagnostics,
			Summary:     result.Summary(),
		}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Project     string               `json:"project"     jsonschema:"project directory"`
	Counts      lore.Counts          `json:"counts"      jsonschema:"task totals by status and the ADR count"`
	Ready       []index.ReadyTask    `json:"ready"       jsonschema:"ready tasks, those unblocking the most work first"`
	Critical    []index.CriticalTask `json:"critical"    jsonschema:"open tasks blocking the most open work"`
	Blocked     []string             `json:"blocked"     jsonschema:"ids of blocked tasks"`
	Diagnostics []lore.Diagnostic    `json:"diagnostics" jsonschema:"documents that were skipped or flagged during the scan"`
}

func handleStatus(project Project) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		overview, err := index.LoadOverview(project.Layout, project.Options)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("reading lore tree: %w", err)
		}

		return nil, StatusOutput{
			Project:     project.Layout.ProjectDir,
			Counts:      overview.Counts,
			Ready:       overview.Ready,
			Critical:    overview.Critical,
			Blocked:     overview.Blocked,
			Diagnostics: overview.Diagnostics,
		}, nil
	}
}
