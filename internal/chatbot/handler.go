package chatbot

import (
	"context"
	"math"
)

// Handler priorities. Lower values are consulted first.
const (
	HighestPriority = math.MinInt32
	// CommandPriority is used by handlers that answer a fixed slash command.
	CommandPriority = -10
	DefaultPriority = 0
	// LowestPriority is reserved for catch-all fallbacks.
	LowestPriority = math.MaxInt32
)

// Handler inspects an inbound message and optionally produces a reply.
//
// CanHandle must be cheap and free of I/O. Handle returns ok=false when
// the handler matched but chose not to reply; a non-nil error is a handler
// failure and is returned to the caller of Dispatch.
type Handler[I, O any] interface {
	CanHandle(bot *Bot, input I) bool
	Handle(ctx context.Context, bot *Bot, input I) (O, bool, error)
}

// Prioritized is implemented by handlers that do not want DefaultPriority.
type Prioritized interface {
	Priority() int
}

// PriorityOf returns h's priority, falling back to DefaultPriority.
func PriorityOf(h any) int {
	if p, ok := h.(Prioritized); ok {
		return p.Priority()
	}
	return DefaultPriority
}

// Func adapts plain functions to the Handler interface.
type Func[I, O any] struct {
	Match   func(bot *Bot, input I) bool
	Respond func(ctx context.Context, bot *Bot, input I) (O, bool, error)
	Order   int
}

// CanHandle calls f.Match; a nil Match matches everything.
func (f Func[I, O]) CanHandle(bot *Bot, input I) bool {
	if f.Match == nil {
		return true
	}
	return f.Match(bot, input)
}

// Handle calls f.Respond; a nil Respond never replies.
func (f Func[I, O]) Handle(ctx context.Context, bot *Bot, input I) (O, bool, error) {
	if f.Respond == nil {
		var zero O
		return zero, false, nil
	}
	return f.Respond(ctx, bot, input)
}

// Priority returns f.Order.
func (f Func[I, O]) Priority() int { return f.Order }
