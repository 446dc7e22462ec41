// Package mcp exposes the governance gate over the Model Context Protocol
// so coding assistants can run checks and inspect policy without shelling
// out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewFlaggateMCPServer creates an MCP server with all flaggate tools
// registered. Configuration is read from the environment per tool call, the
// same way the CLI reads it.
func NewFlaggateMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"flaggate",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	return s
}
