package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tryBot string

var tryCmd = &cobra.Command{
	Use:   "try <platform> <text>",
	Short: "Show the reply a bot would send for a message",
	Long: `Dispatches text locally as if it came from the platform and prints the
reply, without authentication or network access (except the assistant).`,
	Example: `  chatbots try telegram /help
  chatbots try basecamp --bot helper "/about"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform := args[0]
		if err := checkPlatform(platform); err != nil {
			return err
		}
		a, _, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		reply, ok, err := a.Preview(cmd.Context(), platform, tryBot, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "(no reply)")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	tryCmd.Flags().StringVar(&tryBot, "bot", "", "bot name (default: first enabled bot)")
	rootCmd.AddCommand(tryCmd)
}
