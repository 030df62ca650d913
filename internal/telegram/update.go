// Package telegram adapts Telegram webhook updates to the dispatch core.
// Replies are returned in the webhook response body as a sendMessage
// call, so no outbound request to the Bot API is ever made.
package telegram

import (
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/ziadkadry99/chatbots/internal/textresource"
)

// SecretTokenHeader carries the secret_token registered with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Platform is the platform name used in logs and the journal.
const Platform = "telegram"

// Update is an inbound Telegram webhook update.
type Update = telego.Update

// Reply is a Bot API method call answered inline in the webhook response.
type Reply struct {
	Method string `json:"method"`
	*telego.SendMessageParams
}

// message returns the message-like payload of u, if any.
func message(u Update) *telego.Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	}
	return nil
}

// Text returns the text of the update's message, or "".
func Text(u Update) string {
	if m := message(u); m != nil {
		return m.Text
	}
	return ""
}

// ParseChat returns the chat the update's message belongs to.
func ParseChat(u Update) (telego.Chat, bool) {
	m := message(u)
	if m == nil {
		return telego.Chat{}, false
	}
	return m.Chat, true
}

// ParseCommand extracts the slash command of the update's message: the
// text from the first "/", cut at the first "@" so that "/help@my_bot"
// yields "/help".
func ParseCommand(u Update) (string, bool) {
	text := Text(u)
	i := strings.Index(text, "/")
	if i < 0 {
		return "", false
	}
	cmd := text[i:]
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd, true
}

// mention returns the "@username" suffix of the command word, without the
// "@", or "" when the command is not addressed to a particular bot.
func mention(u Update) string {
	text := Text(u)
	i := strings.Index(text, "/")
	if i < 0 {
		return ""
	}
	word, _, _ := strings.Cut(text[i:], " ")
	_, name, found := strings.Cut(word, "@")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}

// Compose builds a sendMessage reply to the update's chat.
func Compose(u Update, text, parseMode string) (Reply, bool) {
	chat, ok := ParseChat(u)
	if !ok || text == "" {
		return Reply{}, false
	}
	params := tu.Message(tu.ID(chat.ID), text)
	if parseMode != "" {
		params = params.WithParseMode(parseMode)
	}
	return Reply{Method: "sendMessage", SendMessageParams: params}, true
}

// ParseModeFor maps a static command format to a Telegram parse mode.
// Plain text gets no parse mode.
func ParseModeFor(f textresource.Format) string {
	switch f {
	case textresource.HTML:
		return telego.ModeHTML
	case textresource.Markdown:
		return telego.ModeMarkdown
	default:
		return ""
	}
}
