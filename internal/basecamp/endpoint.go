package basecamp

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// DefaultPath is where the callback is mounted unless configured otherwise.
const DefaultPath = "/basecamp"

// Endpoint is the Basecamp callback endpoint.
type Endpoint = webhook.Endpoint[Query, string]

// NewEndpoint wires validator and dispatcher into a webhook endpoint that
// checks the User-Agent and answers with HTML.
// Accepted calls are attributed to bot, which may be nil.
func NewEndpoint(validator *chatbot.MarkerValidator, bot *chatbot.Bot, dispatcher *chatbot.Dispatcher[Query, string], recorder webhook.Recorder, logger *slog.Logger) *Endpoint {
	return &Endpoint{
		Platform:   Platform,
		Auth:       webhook.UserAgent{Validator: validator, Bot: bot},
		Codec:      webhook.HTMLCodec[Query]{},
		Dispatcher: dispatcher,
		Describe:   Describe,
		Recorder:   recorder,
		Log:        logger,
	}
}

// Describe labels a query for logs: its command word, or "(text)".
func Describe(q Query) string {
	if !q.IsCommand() {
		if q.Text() == "" {
			return "(empty)"
		}
		return "(text)"
	}
	word, _, _ := strings.Cut(q.Text(), " ")
	return word
}

// RegisterRoutes mounts the callback endpoint on the given router.
func RegisterRoutes(r chi.Router, path string, h http.Handler) {
	if path == "" {
		path = DefaultPath
	}
	r.Method(http.MethodPost, path, h)
}
