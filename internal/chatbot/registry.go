package chatbot

import (
	"cmp"
	"slices"
)

// Registry is an immutable, priority-ordered list of handlers. It is safe
// for concurrent use.
type Registry[I, O any] struct {
	handlers []Handler[I, O]
}

// NewRegistry copies handlers and sorts them by ascending priority.
// Handlers with equal priority keep their registration order.
func NewRegistry[I, O any](handlers ...Handler[I, O]) *Registry[I, O] {
	sorted := make([]Handler[I, O], 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			sorted = append(sorted, h)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Handler[I, O]) int {
		return cmp.Compare(PriorityOf(a), PriorityOf(b))
	})
	return &Registry[I, O]{handlers: sorted}
}

// Resolve returns the first handler, in priority order, that accepts input.
func (r *Registry[I, O]) Resolve(bot *Bot, input I) (Handler[I, O], bool) {
	if r == nil {
		return nil, false
	}
	for _, h := range r.handlers {
		if h.CanHandle(bot, input) {
			return h, true
		}
	}
	return nil, false
}

// Len returns the number of registered handlers.
func (r *Registry[I, O]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.handlers)
}

// Handlers returns the handlers in resolution order.
func (r *Registry[I, O]) Handlers() []Handler[I, O] {
	if r == nil {
		return nil
	}
	return slices.Clone(r.handlers)
}
