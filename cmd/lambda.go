package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/chatbots/internal/lambda"
)

var lambdaPlatform string

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda behind API Gateway",
	Long: `Serves one platform's webhook from the AWS Lambda runtime. The platform
comes from --platform or CHATBOTS_PLATFORM and the config file from --config
or CHATBOTS_CONFIG.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fe, err := useFunctionEnv(cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		platform := lambdaPlatform
		if platform == "" {
			platform = fe.Platform
		}
		if err := checkPlatform(platform); err != nil {
			return fmt.Errorf("lambda: %w", err)
		}

		a, _, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		h, err := a.Handler(platform)
		if err != nil {
			return err
		}
		lambda.Start(h)
		return nil
	},
}

func init() {
	lambdaCmd.Flags().StringVar(&lambdaPlatform, "platform", "", "platform to serve (telegram or basecamp)")
	rootCmd.AddCommand(lambdaCmd)
}
