// Package journal persists transfer outcomes to a sqlite database so past
// operations can be listed after the fact. It is a side-effect sink like the
// log file: the engine never lets a journal failure change a transfer result.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wizzomafizzo/datasink/internal/transfer"
)

const schema = `
CREATE TABLE IF NOT EXISTS transfers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	occurred_at TIMESTAMP NOT NULL,
	source TEXT NOT NULL,
	destination TEXT NOT NULL,
	operation TEXT NOT NULL,
	success INTEGER NOT NULL,
	message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transfers_occurred_at ON transfers(occurred_at);
`

// Journal records transfer outcomes in sqlite. It implements
// transfer.Recorder.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dsn and applies the
// schema.
func Open(ctx context.Context, dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends one transfer outcome.
func (j *Journal) Record(ctx context.Context, rec transfer.Record) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO transfers (occurred_at, source, destination, operation, success, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Time.UTC().Format(time.RFC3339Nano),
		rec.Source, rec.Destination, string(rec.Operation), rec.Success, rec.Message)
	if err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]transfer.Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT occurred_at, source, destination, operation, success, message
		 FROM transfers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []transfer.Record
	for rows.Next() {
		var rec transfer.Record
		var occurredAt, operation string
		if err := rows.Scan(&occurredAt, &rec.Source, &rec.Destination,
			&operation, &rec.Success, &rec.Message); err != nil {
			return nil, fmt.Errorf("failed to scan transfer record: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, occurredAt); parseErr == nil {
			rec.Time = t
		}
		rec.Operation = transfer.Operation(operation)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfer history: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		if err := j.db.Close(); err != nil {
			return fmt.Errorf("failed to close history database: %w", err)
		}
	}
	return nil
}
