// Package wellstore persists validated well data so a saved session can be
// fetched again by id.
package wellstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("well data not found")

// schema is executed on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS well_data (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    payload    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

// Record is one saved payload.
type Record struct {
	ID        int64
	Data      wellgeom.WellData
	CreatedAt time.Time
}

// MarshalJSON flattens the record to {id, ...payload, createdAt}.
func (r Record) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	if fields["id"], err = json.Marshal(r.ID); err != nil {
		return nil, err
	}
	if fields["createdAt"], err = json.Marshal(r.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// SQLiteStore keeps records in a local SQLite database in WAL mode.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at dbPath, enables WAL mode
// and a busy timeout, and creates the schema.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("wellstore: open database: %w", err)
	}

	// SQLite has a single writer; one pooled connection avoids SQLITE_BUSY
	// between connections that would each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("wellstore: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("wellstore: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("wellstore: create schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores d and returns the new record.
func (s *SQLiteStore) Save(ctx context.Context, d wellgeom.WellData) (Record, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return Record{}, fmt.Errorf("wellstore: encode payload: %w", err)
	}
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO well_data (payload, created_at) VALUES (?, ?)", string(payload), created)
	if err != nil {
		return Record{}, fmt.Errorf("wellstore: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("wellstore: last insert id: %w", err)
	}
	return Record{ID: id, Data: d, CreatedAt: created}, nil
}

// Get returns the record with the given id, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, payload, created_at FROM well_data WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("wellstore: get %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("wellstore: get %d: %w", id, err)
	}
	return r, nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	q := "SELECT id, payload, created_at FROM well_data ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("wellstore: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("wellstore: list: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes the record with the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM well_data WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("wellstore: delete %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("wellstore: delete %d: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r       Record
		payload string
	)
	if err := sc.Scan(&r.ID, &payload, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(payload), &r.Data); err != nil {
		return Record{}, fmt.Errorf("decode payload %d: %w", r.ID, err)
	}
	return r, nil
}
