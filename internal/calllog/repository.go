package calllog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/database"
)

// Call is one accepted incoming-call event.
type Call struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entry_id"`
	DoorID     string    `json:"door_id"`
	CallID     string    `json:"call_id,omitempty"`
	DoorName   string    `json:"door_name,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// RelayOpen is one relay-open attempt and its outcome.
type RelayOpen struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Trigger   string    `json:"trigger"` // door_id, key_id, last_call, button
	Status    string    `json:"status"`  // ok, error, skipped
	Reason    string    `json:"reason,omitempty"`
	DoorID    string    `json:"door_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores calls and relay-open outcomes in SQLite.
type Repository struct {
	db *database.DB
}

// NewRepository creates a call-log repository on an open database.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the call-log tables if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS calls (
			id          TEXT PRIMARY KEY,
			entry_id    TEXT NOT NULL,
			door_id     TEXT NOT NULL,
			call_id     TEXT NOT NULL DEFAULT '',
			door_name   TEXT NOT NULL DEFAULT '',
			received_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_calls_received_at ON calls(received_at);
		CREATE INDEX IF NOT EXISTS idx_calls_entry_id ON calls(entry_id);

		CREATE TABLE IF NOT EXISTS relay_opens (
			id         TEXT PRIMARY KEY,
			entry_id   TEXT NOT NULL,
			trigger_by TEXT NOT NULL,
			status     TEXT NOT NULL,
			reason     TEXT NOT NULL DEFAULT '',
			door_id    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_relay_opens_created_at ON relay_opens(created_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating call log schema: %w", err)
	}
	return nil
}

// RecordCall stores an accepted incoming-call event and returns its id.
func (r *Repository) RecordCall(ctx context.Context, c Call) (string, error) {
	id := "call-" + uuid.NewString()[:8]
	if c.ReceivedAt.IsZero() {
		c.ReceivedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calls (id, entry_id, door_id, call_id, door_name, received_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, c.EntryID, c.DoorID, c.CallID, c.DoorName, c.ReceivedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("recording call: %w", err)
	}
	return id, nil
}

// RecordRelayOpen stores a relay-open outcome and returns its id.
func (r *Repository) RecordRelayOpen(ctx context.Context, ro RelayOpen) (string, error) {
	id := "rly-" + uuid.NewString()[:8]
	if ro.CreatedAt.IsZero() {
		ro.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO relay_opens (id, entry_id, trigger_by, status, reason, door_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ro.EntryID, ro.Trigger, ro.Status, ro.Reason, ro.DoorID, ro.CreatedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("recording relay open: %w", err)
	}
	return id, nil
}

// RecentCalls returns the most recent calls, newest first.
func (r *Repository) RecentCalls(ctx context.Context, limit int) ([]Call, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_id, door_id, call_id, door_name, received_at
		FROM calls
		ORDER BY received_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying calls: %w", err)
	}
	defer rows.Close()

	var calls []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.EntryID, &c.DoorID, &c.CallID, &c.DoorName, &c.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calls: %w", err)
	}

	return calls, nil
}

// RecentRelayOpens returns the most recent relay-open outcomes, newest first.
func (r *Repository) RecentRelayOpens(ctx context.Context, limit int) ([]RelayOpen, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_id, trigger_by, status, reason, door_id, created_at
		FROM relay_opens
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying relay opens: %w", err)
	}
	defer rows.Close()

	var opens []RelayOpen
	for rows.Next() {
		var ro RelayOpen
		if err := rows.Scan(&ro.ID, &ro.EntryID, &ro.Trigger, &ro.Status, &ro.Reason, &ro.DoorID, &ro.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning relay open: %w", err)
		}
		opens = append(opens, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relay opens: %w", err)
	}

	return opens, nil
}

// Prune deletes log rows older than the retention window and returns the
// number of rows removed.
func (r *Repository) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)

	var total int64
	for _, stmt := range []string{
		"DELETE FROM calls WHERE received_at < ?",
		"DELETE FROM relay_opens WHERE created_at < ?",
	} {
		res, err := r.db.ExecContext(ctx, stmt, cutoff)
		if err != nil {
			return total, fmt.Errorf("pruning call log: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	return total, nil
}
