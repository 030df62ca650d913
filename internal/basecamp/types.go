// Package basecamp adapts Basecamp chatbot callbacks to the dispatch
// core. Basecamp posts the line a user typed after "!botname" and shows
// the HTML returned in the response body as the bot's answer.
package basecamp

import (
	"strings"
	"time"
)

// Platform is the platform name used in logs and the journal.
const Platform = "basecamp"

// Marker must appear in the User-Agent of genuine Basecamp callbacks.
const Marker = "Basecamp"

// Query is the payload of a Basecamp chatbot callback.
type Query struct {
	Command     string   `json:"command"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Creator     *Creator `json:"creator,omitempty"`
}

// Creator is the person who addressed the bot.
type Creator struct {
	ID             int64     `json:"id"`
	AttachableSGID string    `json:"attachable_sgid,omitempty"`
	Name           string    `json:"name"`
	EmailAddress   string    `json:"email_address,omitempty"`
	PersonableType string    `json:"personable_type,omitempty"`
	Title          string    `json:"title,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Admin          bool      `json:"admin"`
	Owner          bool      `json:"owner"`
	Client         bool      `json:"client"`
	TimeZone       string    `json:"time_zone,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	AvatarKind     string    `json:"avatar_kind,omitempty"`
	Company        *Company  `json:"company,omitempty"`
}

// Company is the creator's organization.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Text returns the trimmed command text of q.
func (q Query) Text() string {
	return strings.TrimSpace(q.Command)
}

// IsCommand reports whether the query starts with a slash command.
func (q Query) IsCommand() bool {
	return strings.HasPrefix(q.Text(), "/")
}
