package webhook

import (
	"net/http"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
)

// Authenticator decides whether a webhook call comes from the platform
// and, where the platform supports several bots, which bot it targets.
type Authenticator interface {
	Authenticate(header http.Header) (*chatbot.Bot, bool)
}

// SecretToken authenticates by a secret header that must match the
// credential of one of the configured bots. Every value of the header is
// tried; the first one that validates wins.
type SecretToken struct {
	Header    string
	Validator *chatbot.TokenValidator
}

// Authenticate implements Authenticator.
func (s SecretToken) Authenticate(header http.Header) (*chatbot.Bot, bool) {
	values := header.Values(s.Header)
	if len(values) == 0 {
		// Reports the missing header through the validator's diagnostics.
		return s.Validator.Validate("")
	}
	for _, v := range values {
		if bot, ok := s.Validator.Validate(v); ok {
			return bot, true
		}
	}
	return nil, false
}

// UserAgent authenticates by a marker in the User-Agent header. The
// platform does not say which bot is called, so every accepted call is
// attributed to Bot, which may be nil.
type UserAgent struct {
	Validator *chatbot.MarkerValidator
	Bot       *chatbot.Bot
}

// Authenticate implements Authenticator.
func (u UserAgent) Authenticate(header http.Header) (*chatbot.Bot, bool) {
	if !u.Validator.Validate(header.Get("User-Agent")) {
		return nil, false
	}
	return u.Bot, true
}

// Anonymous accepts every call.
type Anonymous struct{}

// Authenticate implements Authenticator.
func (Anonymous) Authenticate(http.Header) (*chatbot.Bot, bool) { return nil, true }
