package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id          TEXT PRIMARY KEY,
	operation   TEXT NOT NULL,
	dry_run     INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	report      TEXT NOT NULL DEFAULT '{}',
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_operations_started_at ON operations(started_at DESC);
`

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry is one recorded operation run.
type Entry struct {
	ID         string          `db:"id" json:"id"`
	Operation  string          `db:"operation" json:"operation"`
	DryRun     bool            `db:"dry_run" json:"dry_run"`
	Status     string          `db:"status" json:"status"`
	Error      string          `db:"error" json:"error,omitempty"`
	Report     json.RawMessage `db:"report" json:"report"`
	StartedAt  int64           `db:"started_at" json:"started_at"`
	DurationMS int64           `db:"duration_ms" json:"duration_ms"`
}

// Store persists operation reports in sqlite. Writers should treat it as
// best-effort bookkeeping: a Record failure must never fail the operation
// whose report it records.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record writes one operation run. The report may be any JSON-marshalable
// value (typically an operation report struct); nil records an empty object.
func (s *Store) Record(ctx context.Context, operation string, dryRun bool, report any, started time.Time, opErr error) (*Entry, error) {
	payload := []byte("{}")
	if report != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		payload = data
	}

	entry := &Entry{
		ID:         uuid.NewString(),
		Operation:  operation,
		DryRun:     dryRun,
		Status:     StatusOK,
		Report:     payload,
		StartedAt:  started.UnixMilli(),
		DurationMS: time.Since(started).Milliseconds(),
	}
	if opErr != nil {
		entry.Status = StatusError
		entry.Error = opErr.Error()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO operations (id, operation, dry_run, status, error, report, started_at, duration_ms)
		VALUES (:id, :operation, :dry_run, :status, :error, :report, :started_at, :duration_ms)`,
		entry,
	)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return entry, nil
}

// List returns the most recent entries, newest first. A limit <= 0 defaults
// to 50.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, operation, dry_run, status, error, report, started_at, duration_ms
		FROM operations
		ORDER BY started_at DESC, id
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM operations`); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}
