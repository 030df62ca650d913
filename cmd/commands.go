package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the static commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Commands()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No static commands in %s\n", cfg.Folder)
			return nil
		}
		for _, n := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "/%s\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
