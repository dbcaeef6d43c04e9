package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key        TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL
)`

// SQLiteStore keeps the snapshot blob in a local SQLite file.
type SQLiteStore struct {
	db  *sqlx.DB
	key string
}

// OpenSQLite opens (creating if needed) the snapshot database at path.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	return db, nil
}

// NewSQLiteStore prepares the snapshot table and returns a store bound to
// one key. An empty key uses DefaultKey.
func NewSQLiteStore(db *sqlx.DB, key string) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultKey
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return &SQLiteStore{db: db, key: key}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT data FROM snapshots WHERE key = ?`, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC().Format(time.RFC3339))
	return err
}
