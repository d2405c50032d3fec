package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	loremcp "github.com/gorewood/lore/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run lore as a Model Context Protocol (MCP) server over stdio.

This exposes the lore index as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "lore": {
        "command": "lore",
        "args": ["serve"]
      }
    }
  }

The project directory comes from --project, $LORE_PROJECT_DIR,
$CLAUDE_PROJECT_DIR or the working directory. Logs go to stderr so they
never mix with the protocol on stdout.

Available tools: generate-index, find-task, status, check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			proj, err := loadProject(cmd)
			if err != nil {
				return err
			}
			proj.logger.Info("serving MCP over stdio", "project", proj.layout.ProjectDir)

			server := loremcp.NewServer(buildVersion(), loremcp.Project{
				Layout:  proj.layout,
				Options: proj.options,
				Logger:  proj.logger,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
