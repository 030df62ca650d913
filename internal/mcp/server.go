// Package mcp exposes the chatbots to AI agents over the Model Context
// Protocol, so replies can be previewed without a platform round trip.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Previewer dispatches text as if it came from a platform.
type Previewer interface {
	Preview(ctx context.Context, platform, botName, text string) (string, bool, error)
	Commands() ([]string, error)
}

// Server wraps an MCP server that exposes the preview tools.
type Server struct {
	previewer Previewer
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server backed by previewer.
func NewServer(previewer Previewer) *Server {
	s := &Server{previewer: previewer}

	s.mcp = server.NewMCPServer(
		"chatbots",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(previewTelegramTool, s.handlePreviewTelegram)
	s.mcp.AddTool(previewBasecampTool, s.handlePreviewBasecamp)
	s.mcp.AddTool(listCommandsTool, s.handleListCommands)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
