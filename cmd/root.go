package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/chatbots/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chatbots",
	Short: "Webhook chatbots for Telegram and Basecamp",
	Long: `Chatbots answers Telegram and Basecamp webhooks from a folder of canned
replies, optionally falling back to an AI assistant for free text. It runs
as an HTTP server or as an AWS Lambda, Google Cloud Function or Azure
Functions custom handler.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
