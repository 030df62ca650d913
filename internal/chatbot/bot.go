// Package chatbot is the platform-agnostic dispatch core: an ordered
// registry of handlers, a dispatcher that picks exactly one of them for
// each inbound message, and the credential validators that decide which
// configured bot (if any) a webhook call belongs to.
package chatbot

// Bot is the configuration of a single bot endpoint. It is built once at
// startup and never mutated. A nil *Bot means "no particular bot".
type Bot struct {
	Name       string
	Enabled    bool
	Credential string
	// Username is the bot's @username without the leading "@", if known.
	Username string
}

// String returns the bot name, or "-" for a nil bot.
func (b *Bot) String() string {
	if b == nil {
		return "-"
	}
	return b.Name
}
