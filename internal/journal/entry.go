// Package journal keeps a queryable record of every webhook exchange:
// which platform and bot it came from, which command it carried, and how
// it ended. Entries are stored in SQLite and streamed live over a
// websocket.
package journal

import (
	"errors"
	"time"

	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// ErrNotFound is returned by GetByID for unknown IDs.
var ErrNotFound = errors.New("journal entry not found")

// Entry is a single journal record.
type Entry struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Platform   string          `json:"platform"`
	Bot        string          `json:"bot"`
	Command    string          `json:"command"`
	Outcome    webhook.Outcome `json:"outcome"`
	Status     int             `json:"status"`
	DurationMS int64           `json:"duration_ms"`
	RequestID  string          `json:"request_id,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// FromEvent converts a finished webhook exchange into an entry.
func FromEvent(ev webhook.Event, at time.Time) Entry {
	bot := ev.Bot
	if bot == "-" {
		bot = ""
	}
	return Entry{
		Timestamp:  at.UTC(),
		Platform:   ev.Platform,
		Bot:        bot,
		Command:    ev.Command,
		Outcome:    ev.Outcome,
		Status:     ev.Status,
		DurationMS: ev.Duration.Milliseconds(),
		RequestID:  ev.RequestID,
		Error:      ev.Error,
	}
}
