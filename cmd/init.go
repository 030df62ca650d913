package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/chatbots/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a chatbots configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that sets up a Telegram and/or Basecamp bot and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Folder, 0o755); err != nil {
			return fmt.Errorf("creating commands folder: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s. Put command replies in %s/, e.g. %s/help.md\n", cfgFile, cfg.Folder, cfg.Folder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
