package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/flaggate/flaggate/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the flaggate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the flaggate MCP server (stdio)",
		Long:  "Start the flaggate MCP server using stdio transport. This lets AI coding assistants run the governance gate, inspect the effective policy, and extract flag usage from file contents.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ServeStdio(mcpadapter.NewFlaggateMCPServer())
		},
	}
}
