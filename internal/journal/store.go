package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/chatbots/internal/db"
	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// timeLayout sorts lexicographically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000"

// Store persists journal entries.
type Store struct {
	db  *db.DB
	hub *Hub
	log *slog.Logger
	now func() time.Time
}

// NewStore creates a Store backed by the given database. New entries are
// published to hub when it is non-nil.
func NewStore(database *db.DB, hub *Hub, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: database, hub: hub, log: logger, now: time.Now}
}

// Record implements webhook.Recorder. Storage failures are logged and
// never affect the webhook response.
func (s *Store) Record(ctx context.Context, ev webhook.Event) {
	// The request may already be cancelled once the response is written.
	ctx = context.WithoutCancel(ctx)
	entry := FromEvent(ev, s.now())
	if err := s.Insert(ctx, &entry); err != nil {
		s.log.Warn("journal write failed", "platform", ev.Platform, "error", err)
		return
	}
	if s.hub != nil {
		s.hub.Publish(entry)
	}
}

// Insert stores entry. If entry.ID is empty a UUID is generated; a zero
// timestamp is set to now.
func (s *Store) Insert(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatch_journal (
			id, timestamp, platform, bot, command, outcome,
			status, duration_ms, request_id, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(timeLayout),
		entry.Platform,
		entry.Bot,
		entry.Command,
		string(entry.Outcome),
		entry.Status,
		entry.DurationMS,
		entry.RequestID,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM dispatch_journal WHERE id = ?", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	Platform string
	Bot      string
	Outcome  webhook.Outcome
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

const columns = "id, timestamp, platform, bot, command, outcome, status, duration_ms, request_id, error"

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Platform != "" {
		clauses = append(clauses, "platform = ?")
		args = append(args, filter.Platform)
	}
	if filter.Bot != "" {
		clauses = append(clauses, "bot = ?")
		args = append(args, filter.Bot)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(timeLayout))
	}

	query := "SELECT " + columns + " FROM dispatch_journal"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM dispatch_journal WHERE timestamp < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old journal entries: %w", err)
	}
	return res.RowsAffected()
}

// Prune applies a retention of days. Zero days keeps everything.
func (s *Store) Prune(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	return s.DeleteBefore(ctx, s.now().AddDate(0, 0, -days))
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		e       Entry
		ts      string
		outcome string
	)
	err := sc.Scan(
		&e.ID, &ts, &e.Platform, &e.Bot, &e.Command, &outcome,
		&e.Status, &e.DurationMS, &e.RequestID, &e.Error,
	)
	if err != nil {
		return nil, err
	}
	e.Outcome = webhook.Outcome(outcome)
	if t, parseErr := time.Parse(timeLayout, ts); parseErr == nil {
		e.Timestamp = t
	}
	return &e, nil
}
