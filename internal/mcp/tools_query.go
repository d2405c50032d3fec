package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/lore/internal/lore"
)

// --- Find-task tool ---

// FindTaskInput is the input for the find-task tool.
type FindTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"task id, with or without leading zeros"`
}

// FindTaskOutput is the output for the find-task tool.
type FindTaskOutput struct {
	TaskID  string `json:"task_id"  jsonschema:"the id that was looked up"`
	Path    string `json:"path"     jsonschema:"absolute path of the task document"`
	RelPath string `json:"rel_path" jsonschema:"task document path relative to the project directory"`
}

func handleFindTask(project Project) mcp.ToolHandlerFor[FindTaskInput, FindTaskOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FindTaskInput) (*mcp.CallToolResult, FindTaskOutput, error) {
		path, err := project.Layout.Scanner().FindTask(input.TaskID)
		if err != nil {
			return nil, FindTaskOutput{}, fmt.Errorf("finding task: %w", err)
		}

		return nil, FindTaskOutput{
			TaskID:  input.TaskID,
			Path:    path,
			RelPath: projectRelative(project.Layout.ProjectDir, path),
		}, nil
	}
}

// --- Check tool ---

// CheckInput is the input for the check tool (no parameters needed).
type CheckInput struct{}

// CheckOutput is the output for the check tool.
type CheckOutput struct {
	Healthy  bool           `json:"healthy"  jsonschema:"true when no check failed"`
	Findings []lore.Finding `json:"findings" jsonschema:"every check result in layout, document and graph order"`
	Stats    lore.ScanStats `json:"stats"    jsonschema:"counts of parsed and skipped documents"`
	Passed   int            `json:"passed"   jsonschema:"number of passing checks"`
	Warnings int            `json:"warnings" jsonschema:"number of warnings"`
	Failed   int            `json:"failed"   jsonschema:"number of failed checks"`
}

func handleCheck(project Project) mcp.ToolHandlerFor[CheckInput, CheckOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
		report := lore.Check(project.Layout.Scanner())
		logFindings(project.logger(), report)

		return nil, CheckOutput{
			Healthy:  !report.Failed(),
			Findings: report.All(),
			Stats:    report.Stats,
			Passed:   report.Summary.Passed,
			Warnings: report.Summary.Warnings,
			Failed:   report.Summary.Failed,
		}, nil
	}
}
