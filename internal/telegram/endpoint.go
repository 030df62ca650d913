package telegram

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// DefaultPath is where the webhook is mounted unless configured otherwise.
const DefaultPath = "/telegram"

// Endpoint is the Telegram webhook endpoint.
type Endpoint = webhook.Endpoint[Update, Reply]

// NewEndpoint wires validator and dispatcher into a webhook endpoint that
// authenticates with the secret token header and speaks JSON.
func NewEndpoint(validator *chatbot.TokenValidator, dispatcher *chatbot.Dispatcher[Update, Reply], recorder webhook.Recorder, logger *slog.Logger) *Endpoint {
	return &Endpoint{
		Platform:   Platform,
		Auth:       webhook.SecretToken{Header: SecretTokenHeader, Validator: validator},
		Codec:      webhook.JSONCodec[Update, Reply]{},
		Dispatcher: dispatcher,
		Describe:   Describe,
		Recorder:   recorder,
		Log:        logger,
	}
}

// Describe labels an update for logs: its command, or "(text)".
func Describe(u Update) string {
	if cmd, ok := ParseCommand(u); ok {
		return cmd
	}
	if Text(u) != "" {
		return "(text)"
	}
	return "(no message)"
}

// RegisterRoutes mounts the webhook endpoint on the given router.
func RegisterRoutes(r chi.Router, path string, h http.Handler) {
	if path == "" {
		path = DefaultPath
	}
	r.Method(http.MethodPost, path, h)
}
