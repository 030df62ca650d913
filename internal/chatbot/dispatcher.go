package chatbot

import (
	"context"
	"fmt"
	"log/slog"
)

// Dispatcher routes one inbound message to at most one handler.
type Dispatcher[I, O any] struct {
	registry *Registry[I, O]
	log      *slog.Logger
}

// NewDispatcher creates a Dispatcher over registry. A nil logger discards
// output.
func NewDispatcher[I, O any](registry *Registry[I, O], logger *slog.Logger) *Dispatcher[I, O] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher[I, O]{registry: registry, log: logger}
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher[I, O]) Registry() *Registry[I, O] { return d.registry }

// Dispatch resolves a handler for input and runs it. It returns ok=false
// with a nil error when nothing matched or the handler chose not to reply.
// Handler errors are wrapped with the handler's type name.
func (d *Dispatcher[I, O]) Dispatch(ctx context.Context, bot *Bot, input I) (O, bool, error) {
	var zero O

	h, found := d.registry.Resolve(bot, input)
	if !found {
		d.log.Debug("no handler resolved", "bot", bot.String())
		return zero, false, nil
	}
	name := HandlerName(h)
	d.log.Debug("handler resolved", "bot", bot.String(), "handler", name)

	out, ok, err := h.Handle(ctx, bot, input)
	if err != nil {
		return zero, false, fmt.Errorf("handler %s: %w", name, err)
	}
	if !ok {
		return zero, false, nil
	}
	return out, true, nil
}

// HandlerName returns a short description of h for logs.
func HandlerName(h any) string {
	if n, ok := h.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}
