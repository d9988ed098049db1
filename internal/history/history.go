// Package history keeps a SQLite log of checked URLs and their verdicts.
// Feature vectors are never stored.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/raysh454/phishlens/internal/logging"
	"github.com/raysh454/phishlens/internal/model"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrNotFound = errors.New("check not found")

// DefaultLimit is used by List when limit is not positive.
const DefaultLimit = 50

// Entry is one recorded check.
type Entry struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Verdict   model.Verdict `json:"verdict"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store records checks in the checks table.
type Store struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewStore runs the embedded schema against db and returns a Store.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Open opens (creating if needed) the SQLite file at path and applies the schema.
// The returned Store owns the connection; call Close when done.
func Open(path string, logger logging.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := NewStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one check and returns its id.
func (s *Store) Record(ctx context.Context, url string, verdict model.Verdict, errMsg string) (*Entry, error) {
	e := &Entry{
		ID:        uuid.New().String(),
		URL:       url,
		Verdict:   verdict,
		Error:     errMsg,
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checks(id, url, verdict, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.URL, string(e.Verdict), e.Error, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert check: %w", err)
	}
	s.logger.Debug("recorded check", logging.Field{Key: "id", Value: e.ID}, logging.Field{Key: "verdict", Value: e.Verdict})
	return e, nil
}

// Get returns the check with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, verdict, error, created_at FROM checks WHERE id = ? LIMIT 1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns up to limit checks, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, verdict, error, created_at
         FROM checks
         ORDER BY created_at DESC, rowid DESC
         LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var e Entry
	var verdict string
	var created int64
	if err := sc.Scan(&e.ID, &e.URL, &verdict, &e.Error, &created); err != nil {
		return nil, err
	}
	e.Verdict = model.Verdict(verdict)
	e.CreatedAt = time.Unix(0, created).UTC()
	return &e, nil
}
