package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/chatbots/internal/basecamp"
	"github.com/ziadkadry99/chatbots/internal/telegram"
)

// noReply is returned when no handler answers.
const noReply = "(no reply)"

func (s *Server) handlePreviewTelegram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.preview(ctx, request, telegram.Platform)
}

func (s *Server) handlePreviewBasecamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.preview(ctx, request, basecamp.Platform)
}

func (s *Server) preview(ctx context.Context, request mcp.CallToolRequest, platform string) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}
	bot := request.GetString("bot", "")

	reply, ok, err := s.previewer.Preview(ctx, platform, bot, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s preview failed: %v", platform, err)), nil
	}
	if !ok {
		return mcp.NewToolResultText(noReply), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// handleListCommands returns one "/command" per line.
func (s *Server) handleListCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.previewer.Commands()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing commands: %v", err)), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("No static commands found."), nil
	}

	var sb strings.Builder
	for _, n := range names {
		fmt.Fprintf(&sb, "/%s\n", n)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
