// Package sqlite implements store.Store on an embedded SQLite database
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

// Memory opens a private in-memory database.
const Memory = ":memory:"

const maxIDAttempts = 32

const schema = `
CREATE TABLE IF NOT EXISTS respondents (
	application_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	gender TEXT NOT NULL,
	mobile_number TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL,
	place_of_residence TEXT NOT NULL,
	profession TEXT NOT NULL,
	specialization TEXT NOT NULL,
	download_option TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	full_downloaded INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_respondents_mobile ON respondents(mobile_number);

CREATE TABLE IF NOT EXISTS section_downloads (
	application_id TEXT NOT NULL REFERENCES respondents(application_id),
	section_key TEXT NOT NULL,
	downloaded_at TEXT NOT NULL,
	PRIMARY KEY (application_id, section_key)
);

CREATE TABLE IF NOT EXISTS responses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	application_id TEXT NOT NULL REFERENCES respondents(application_id),
	verification_code TEXT NOT NULL UNIQUE,
	filename TEXT NOT NULL DEFAULT '',
	pdf BLOB NOT NULL,
	answers TEXT NOT NULL DEFAULT '{}',
	uploaded_at TEXT NOT NULL,
	verified INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_responses_application ON responses(application_id);
`

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces the random application id source. Generated ids
// must be 8 ASCII digits; collisions are retried.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock overrides the time source used for created/uploaded stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a SQLite-backed store.Store.
type Store struct {
	db    *sql.DB
	newID func() (string, error)
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open creates or opens the database at path and applies the schema. Pass
// Memory for a throwaway database.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite store: database path is required")
	}

	dsn := path
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite store: create directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open database: %w", err)
	}
	// SQLite serialises writers; one connection also keeps :memory: databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:    db,
		newID: RandomApplicationID,
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: apply schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RandomApplicationID returns a uniformly random 8-digit id in
// [10000000, 99999999].
func RandomApplicationID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		return "", fmt.Errorf("sqlite store: generate application id: %w", err)
	}
	return fmt.Sprintf("%08d", n.Int64()+10000000), nil
}

// Fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite store: parse timestamp %q: %w", raw, err)
	}
	return t, nil
}
