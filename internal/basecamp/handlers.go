package basecamp

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/textresource"
)

// Handler is a Basecamp query handler. Replies are HTML fragments.
type Handler = chatbot.Handler[Query, string]

// CommandHandler answers a static command with its canned reply rendered
// to HTML.
type CommandHandler struct {
	Command  string
	Loader   *textresource.Loader
	Renderer *textresource.Renderer
}

// CanHandle matches queries whose first word is "/<Command>", ignoring case.
func (h *CommandHandler) CanHandle(_ *chatbot.Bot, q Query) bool {
	fields := strings.Fields(q.Text())
	return len(fields) > 0 && strings.EqualFold(fields[0], "/"+h.Command)
}

// Handle implements chatbot.Handler.
func (h *CommandHandler) Handle(_ context.Context, _ *chatbot.Bot, _ Query) (string, bool, error) {
	resp, ok := h.Loader.Compose(h.Command)
	if !ok {
		return "", false, nil
	}
	out, err := h.Renderer.HTML(resp)
	if err != nil {
		return "", false, fmt.Errorf("rendering /%s: %w", h.Command, err)
	}
	return out, out != "", nil
}

// Priority implements chatbot.Prioritized.
func (h *CommandHandler) Priority() int { return chatbot.CommandPriority }

// Name describes the handler in logs.
func (h *CommandHandler) Name() string { return "basecamp.command(/" + h.Command + ")" }

// StaticCommandHandlers returns one CommandHandler per command found by
// loader.
func StaticCommandHandlers(loader *textresource.Loader, renderer *textresource.Renderer) ([]Handler, error) {
	commands, err := loader.Commands()
	if err != nil {
		return nil, err
	}
	handlers := make([]Handler, 0, len(commands))
	for _, c := range commands {
		handlers = append(handlers, &CommandHandler{Command: c, Loader: loader, Renderer: renderer})
	}
	return handlers, nil
}

// UnknownCommandHandler answers anything nobody else handled.
type UnknownCommandHandler struct{}

// CanHandle implements chatbot.Handler.
func (UnknownCommandHandler) CanHandle(*chatbot.Bot, Query) bool { return true }

// Handle implements chatbot.Handler.
func (UnknownCommandHandler) Handle(_ context.Context, _ *chatbot.Bot, q Query) (string, bool, error) {
	return fmt.Sprintf("I don't know how to handle your query: %s", html.EscapeString(q.Text())), true, nil
}

// Priority implements chatbot.Prioritized.
func (UnknownCommandHandler) Priority() int { return chatbot.LowestPriority }

// Name describes the handler in logs.
func (UnknownCommandHandler) Name() string { return "basecamp.unknown" }

// Answerer produces a free-text answer to a question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AssistantHandler answers free text that is not a slash command.
type AssistantHandler struct {
	Answerer Answerer
	Renderer *textresource.Renderer
}

// CanHandle implements chatbot.Handler.
func (h *AssistantHandler) CanHandle(_ *chatbot.Bot, q Query) bool {
	return q.Text() != "" && !q.IsCommand()
}

// Handle renders the assistant's markdown answer to HTML.
func (h *AssistantHandler) Handle(ctx context.Context, _ *chatbot.Bot, q Query) (string, bool, error) {
	answer, err := h.Answerer.Answer(ctx, q.Text())
	if err != nil {
		return "", false, err
	}
	out, err := h.Renderer.HTML(textresource.Response{Format: textresource.Markdown, Text: answer})
	if err != nil {
		return "", false, err
	}
	return out, out != "", nil
}

// Priority implements chatbot.Prioritized.
func (h *AssistantHandler) Priority() int { return chatbot.LowestPriority - 1 }

// Name describes the handler in logs.
func (h *AssistantHandler) Name() string { return "basecamp.assistant" }
