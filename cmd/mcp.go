package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/chatbots/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio with tools to preview bot replies and list the static commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "chatbots MCP server started on stdio (commands=%s)\n", cfg.Folder)

		return mcpserver.NewServer(a).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
