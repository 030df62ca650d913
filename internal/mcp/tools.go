package mcp

import "github.com/mark3labs/mcp-go/mcp"

// previewTelegramTool defines the preview_telegram MCP tool.
var previewTelegramTool = mcp.NewTool("preview_telegram",
	mcp.WithDescription("Show the reply a Telegram bot would send for a message. Markdown and HTML replies are returned unrendered."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Message text, e.g. /help"),
	),
	mcp.WithString("bot",
		mcp.Description("Configured bot name (default: first enabled bot)"),
	),
)

// previewBasecampTool defines the preview_basecamp MCP tool.
var previewBasecampTool = mcp.NewTool("preview_basecamp",
	mcp.WithDescription("Show the HTML reply the Basecamp chatbot would send for a line of chat."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Chat line, e.g. /about"),
	),
	mcp.WithString("bot",
		mcp.Description("Configured bot name (default: first enabled bot)"),
	),
)

// listCommandsTool defines the list_commands MCP tool.
var listCommandsTool = mcp.NewTool("list_commands",
	mcp.WithDescription("List the static slash commands the bots answer from the commands folder."),
)
