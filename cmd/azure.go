package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/chatbots/internal/basecamp"
	"github.com/ziadkadry99/chatbots/internal/server"
	"github.com/ziadkadry99/chatbots/internal/telegram"
)

// azureRoutes maps platforms to the routes the Functions host forwards
// HTTP triggers to.
var azureRoutes = map[string]string{
	telegram.Platform: "/api/TelegramTrigger",
	basecamp.Platform: "/api/BasecampTrigger",
}

var azureCmd = &cobra.Command{
	Use:   "azure",
	Short: "Run as an Azure Functions custom handler",
	Long:  `Listens on FUNCTIONS_CUSTOMHANDLER_PORT and answers the TelegramTrigger and BasecampTrigger HTTP functions forwarded by the Azure Functions host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fe, err := useFunctionEnv(cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		a, _, log, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(server.Config{Port: fe.ListenPort()}, log)
		srv.Webhooks(func(r chi.Router) {
			for platform, route := range azureRoutes {
				h, err := a.Handler(platform)
				if err != nil {
					log.Info("trigger not served", "platform", platform, "reason", err)
					continue
				}
				r.Method(http.MethodPost, route, h)
			}
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "chatbots custom handler on port %d\n", fe.ListenPort())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(azureCmd)
}
