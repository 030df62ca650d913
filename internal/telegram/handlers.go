package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/textresource"
)

// Handler is a Telegram update handler.
type Handler = chatbot.Handler[Update, Reply]

// CommandHandler answers a static command with a canned reply.
type CommandHandler struct {
	Command string
	Loader  *textresource.Loader
}

// CanHandle matches updates whose command word is exactly "/<Command>" and
// that are either unaddressed or addressed to this bot.
func (h *CommandHandler) CanHandle(bot *chatbot.Bot, u Update) bool {
	cmd, ok := ParseCommand(u)
	if !ok || commandWord(cmd) != "/"+h.Command {
		return false
	}
	return addressedTo(bot, u)
}

// Handle implements chatbot.Handler.
func (h *CommandHandler) Handle(_ context.Context, _ *chatbot.Bot, u Update) (Reply, bool, error) {
	resp, ok := h.Loader.Compose(h.Command)
	if !ok {
		return Reply{}, false, nil
	}
	reply, ok := Compose(u, resp.Text, ParseModeFor(resp.Format))
	return reply, ok, nil
}

// Priority implements chatbot.Prioritized.
func (h *CommandHandler) Priority() int { return chatbot.CommandPriority }

// Name describes the handler in logs.
func (h *CommandHandler) Name() string { return "telegram.command(/" + h.Command + ")" }

// StaticCommandHandlers returns one CommandHandler per command found by
// loader.
func StaticCommandHandlers(loader *textresource.Loader) ([]Handler, error) {
	commands, err := loader.Commands()
	if err != nil {
		return nil, err
	}
	handlers := make([]Handler, 0, len(commands))
	for _, c := range commands {
		handlers = append(handlers, &CommandHandler{Command: c, Loader: loader})
	}
	return handlers, nil
}

// UnknownCommandHandler answers anything nobody else handled.
type UnknownCommandHandler struct{}

// CanHandle accepts every update that carries a message.
func (UnknownCommandHandler) CanHandle(bot *chatbot.Bot, u Update) bool {
	return message(u) != nil && addressedTo(bot, u)
}

// Handle implements chatbot.Handler.
func (UnknownCommandHandler) Handle(_ context.Context, _ *chatbot.Bot, u Update) (Reply, bool, error) {
	query, ok := ParseCommand(u)
	if !ok {
		query = Text(u)
	}
	reply, ok := Compose(u, fmt.Sprintf("I don't know how to handle your query: %s", query), "")
	return reply, ok, nil
}

// Priority implements chatbot.Prioritized.
func (UnknownCommandHandler) Priority() int { return chatbot.LowestPriority }

// Name describes the handler in logs.
func (UnknownCommandHandler) Name() string { return "telegram.unknown" }

// Answerer produces a free-text answer to a question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AssistantHandler answers free text that is not a slash command.
type AssistantHandler struct {
	Answerer Answerer
}

// CanHandle accepts non-empty text without a leading "/".
func (h *AssistantHandler) CanHandle(_ *chatbot.Bot, u Update) bool {
	text := strings.TrimSpace(Text(u))
	return text != "" && !strings.HasPrefix(text, "/")
}

// Handle implements chatbot.Handler.
func (h *AssistantHandler) Handle(ctx context.Context, _ *chatbot.Bot, u Update) (Reply, bool, error) {
	answer, err := h.Answerer.Answer(ctx, strings.TrimSpace(Text(u)))
	if err != nil {
		return Reply{}, false, err
	}
	reply, ok := Compose(u, answer, "")
	return reply, ok, nil
}

// Priority implements chatbot.Prioritized.
func (h *AssistantHandler) Priority() int { return chatbot.LowestPriority - 1 }

// Name describes the handler in logs.
func (h *AssistantHandler) Name() string { return "telegram.assistant" }

// addressedTo reports whether u is meant for bot. Commands of the form
// "/cmd@name" only reach the bot whose username is name; bots without a
// known username accept them all.
func addressedTo(bot *chatbot.Bot, u Update) bool {
	target := mention(u)
	if target == "" || bot == nil || bot.Username == "" {
		return true
	}
	return strings.EqualFold(target, strings.TrimPrefix(bot.Username, "@"))
}

// commandWord returns the first word of a parsed command: "/about" for
// "/about the team".
func commandWord(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
