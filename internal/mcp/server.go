// Package mcp provides a Model Context Protocol server for lore.
// It exposes index generation and task lookups as MCP tools that any
// MCP-capable agent can call.
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/lore/internal/config"
	"github.com/gorewood/lore/internal/index"
	"github.com/gorewood/lore/internal/logging"
)

// Project is the lore project the tools operate on. Every tool call scans
// the tree again.
type Project struct {
	Layout  config.Layout
	Options index.Options
	Logger  *log.Logger
}

func (p Project) logger() *log.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}

// NewServer creates an MCP server with all lore tools registered.
func NewServer(version string, project Project) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lore",
		Version: version,
	}, nil)
	registerTools(server, project)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that rewrite generated
// files. Regenerating is idempotent and never touches task documents.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all lore tools to the server.
func registerTools(server *mcp.Server, project Project) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate-index",
		Description: "Regenerate lore/README.md and lore/0-session/next-tasks.md from the task and ADR documents. Set next_only to write only the next-tasks digest.",
		Annotations: writeAnnotations(),
	}, handleGenerateIndex(project))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find-task",
		Description: "Find the document path of a task by id. Leading zeros are ignored, so 7 and 007 match the same task.",
		Annotations: readOnlyAnnotations(),
	}, handleFindTask(project))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show task counts, the ready tasks that unblock the most work, critical blockers and blocked task ids without writing anything.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(project))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Check the lore tree: directory layout, documents that were skipped or flagged, unknown blockers and dependency cycles.",
		Annotations: readOnlyAnnotations(),
	}, handleCheck(project))
}
