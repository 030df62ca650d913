// Package webhook turns raw webhook exchanges into dispatches. It holds
// everything the HTTP server, the Lambda handler and the Cloud Functions
// entry points have in common; each of those only converts its own
// request and response shapes to Request and Response.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
)

// MaxBodyBytes caps the size of an inbound webhook body.
const MaxBodyBytes = 1 << 20

// ErrDecode marks a body that could not be decoded into the platform's
// input type.
var ErrDecode = errors.New("malformed webhook body")

// Request is a transport-neutral inbound webhook call.
type Request struct {
	Header http.Header
	Body   []byte
}

// Response is a transport-neutral reply. An empty Body means "no reply".
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Empty reports whether the response carries no reply.
func (r Response) Empty() bool { return len(r.Body) == 0 }

// Handler is implemented by every Endpoint regardless of its types.
type Handler interface {
	http.Handler
	Handle(ctx context.Context, req Request) Response
}

// Endpoint authenticates, decodes and dispatches one platform's webhooks.
type Endpoint[I, O any] struct {
	Platform   string
	Auth       Authenticator
	Codec      Codec[I, O]
	Dispatcher *chatbot.Dispatcher[I, O]
	// Describe returns a short label of the input (usually the command)
	// for logs and the journal. Optional.
	Describe func(I) string
	Recorder Recorder
	Log      *slog.Logger
}

// Handle processes a single webhook call.
func (e *Endpoint[I, O]) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	log := e.logger()
	ev := Event{Platform: e.Platform, RequestID: middleware.GetReqID(ctx)}
	finish := func(resp Response, outcome Outcome) Response {
		ev.Outcome = outcome
		ev.Status = resp.Status
		ev.Duration = time.Since(start)
		if e.Recorder != nil {
			e.Recorder.Record(ctx, ev)
		}
		return resp
	}

	bot, ok := e.authenticator().Authenticate(req.Header)
	if !ok {
		log.Debug("webhook unauthorized")
		return finish(Response{Status: http.StatusUnauthorized}, OutcomeUnauthorized)
	}
	ev.Bot = bot.String()

	input, err := e.Codec.Decode(req.Body)
	if err != nil {
		log.Debug("webhook body rejected", "bot", ev.Bot, "error", err)
		return finish(Response{Status: http.StatusBadRequest}, OutcomeRejected)
	}
	if e.Describe != nil {
		ev.Command = e.Describe(input)
	}

	out, ok, err := e.Dispatcher.Dispatch(ctx, bot, input)
	if err != nil {
		log.Error("handler failed", "bot", ev.Bot, "command", ev.Command, "error", err)
		ev.Error = err.Error()
		return finish(Response{Status: http.StatusInternalServerError}, OutcomeFailed)
	}
	if !ok {
		return finish(Response{Status: http.StatusOK}, OutcomeSilent)
	}

	body, err := e.Codec.Encode(out)
	if err != nil {
		log.Error("encoding reply", "bot", ev.Bot, "error", err)
		ev.Error = err.Error()
		return finish(Response{Status: http.StatusInternalServerError}, OutcomeFailed)
	}
	return finish(Response{
		Status:      http.StatusOK,
		ContentType: e.Codec.ContentType(),
		Body:        body,
	}, OutcomeReplied)
}

// ServeHTTP adapts Handle to net/http.
func (e *Endpoint[I, O]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	resp := e.Handle(r.Context(), Request{Header: r.Header, Body: body})
	Write(w, resp)
}

// Write copies resp onto w.
func Write(w http.ResponseWriter, resp Response) {
	if resp.Empty() {
		w.WriteHeader(resp.Status)
		return
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

func (e *Endpoint[I, O]) logger() *slog.Logger {
	if e.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Log
}

func (e *Endpoint[I, O]) authenticator() Authenticator {
	if e.Auth == nil {
		return Anonymous{}
	}
	return e.Auth
}

func decodeError(err error) error {
	return fmt.Errorf("%w: %v", ErrDecode, err)
}
