package commands

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve training analytics over MCP on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so LLM clients
can query your exercises, per-exercise history and session scores.
Requires a stored login token.`,
	Args: cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		s := mcp.New(a.client, version, a.log)
		return server.ServeStdio(s)
	}),
}
