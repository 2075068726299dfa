package audit

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the postgres driver for database/sql.
	_ "github.com/lib/pq"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool for the audit store.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the audit table when it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audit_events (
			id            BIGSERIAL PRIMARY KEY,
			ts            TIMESTAMPTZ NOT NULL,
			submission_id TEXT NOT NULL,
			action        TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			reference     TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS audit_events_submission_idx
			ON audit_events (submission_id, ts);
	`)
	if err != nil {
		return fmt.Errorf("migrate audit_events: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (ts, submission_id, action, outcome, reference)
		VALUES ($1, $2, $3, $4, $5)
	`, event.Timestamp, event.SubmissionID, event.Action, event.Outcome, event.Reference)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySubmission(ctx context.Context, submissionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, submission_id, action, outcome, reference
		FROM audit_events
		WHERE submission_id = $1
		ORDER BY ts
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.SubmissionID, &e.Action, &e.Outcome, &e.Reference); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
