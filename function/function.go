// Package function exposes the chatbots as Google Cloud Functions. Deploy
// with entry point TelegramFunction or BasecampFunction; configuration is
// read once per instance from CHATBOTS_CONFIG and CHATBOTS_* overrides.
package function

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/ziadkadry99/chatbots/internal/app"
	"github.com/ziadkadry99/chatbots/internal/basecamp"
	"github.com/ziadkadry99/chatbots/internal/config"
	"github.com/ziadkadry99/chatbots/internal/logger"
	"github.com/ziadkadry99/chatbots/internal/telegram"
)

func init() {
	functions.HTTP("TelegramFunction", TelegramFunction)
	functions.HTTP("BasecampFunction", BasecampFunction)
}

// load builds the App on first use.
var load = sync.OnceValues(func() (*app.App, error) {
	fe, err := config.LoadFunctionEnv()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(fe.ConfigPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, log)
})

// TelegramFunction handles Telegram webhook updates.
func TelegramFunction(w http.ResponseWriter, r *http.Request) {
	serve(w, r, telegram.Platform)
}

// BasecampFunction handles Basecamp chatbot callbacks.
func BasecampFunction(w http.ResponseWriter, r *http.Request) {
	serve(w, r, basecamp.Platform)
}

func serve(w http.ResponseWriter, r *http.Request, platform string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a, err := load()
	if err != nil {
		slog.Error("chatbots unavailable", "platform", platform, "error", err)
		http.Error(w, "chatbots unavailable", http.StatusInternalServerError)
		return
	}
	h, err := a.Handler(platform)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.ServeHTTP(w, r)
}
