package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/spf13/cobra"

	_ "github.com/ziadkadry99/chatbots/function"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "Run the Cloud Functions locally",
	Long: `Starts the Functions Framework with TelegramFunction and BasecampFunction
registered, as Google Cloud Functions would. Without FUNCTION_TARGET both
are served, at /TelegramFunction and /BasecampFunction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fe, err := useFunctionEnv(cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		// The functions read their config from the environment.
		if err := os.Setenv("CHATBOTS_CONFIG", cfgFile); err != nil {
			return err
		}

		port := strconv.Itoa(fe.Port)
		fmt.Fprintf(os.Stderr, "chatbots functions listening on port %s\n", port)
		return funcframework.Start(port)
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
