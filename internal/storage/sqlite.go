package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/brawlhub/internal/model"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and migrates it.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied migration version.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the response cache.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS responses (
			key TEXT PRIMARY KEY NOT NULL,
			body BLOB NOT NULL,
			stored_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_responses_stored_at ON responses(stored_at);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the visit history.
func (s *SQLiteStore) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS visits (
			id TEXT PRIMARY KEY NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			visited_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
		CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);

		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Get returns a cached response body and when it was stored.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	var body []byte
	var storedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT body, stored_at FROM responses WHERE key = ?", key,
	).Scan(&body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return body, time.Unix(0, storedAt), true, nil
}

// Put stores a response body, replacing any previous one for key.
func (s *SQLiteStore) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (key, body, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, stored_at = excluded.stored_at
	`, key, body, s.now().UnixNano())
	return err
}

// PruneResponses deletes cached responses stored before cutoff and
// returns how many were removed.
func (s *SQLiteStore) PruneResponses(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM responses WHERE stored_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RecordVisit stores a page visit.
func (s *SQLiteStore) RecordVisit(ctx context.Context, path, title string) (model.Visit, error) {
	v := model.NewVisit(path, title)
	v.VisitedAt = s.now()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO visits (id, path, title, visited_at) VALUES (?, ?, ?, ?)",
		v.ID, v.Path, v.Title, v.VisitedAt.UnixNano(),
	)
	if err != nil {
		return model.Visit{}, err
	}
	return v, nil
}

// RecentVisits returns the latest visit of each distinct path, newest
// first.
func (s *SQLiteStore) RecentVisits(ctx context.Context, limit int) ([]model.Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, title, MAX(visited_at) AS last
		FROM visits
		GROUP BY path
		ORDER BY last DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	visits := []model.Visit{}
	for rows.Next() {
		var v model.Visit
		var visitedAt int64
		if err := rows.Scan(&v.ID, &v.Path, &v.Title, &visitedAt); err != nil {
			return nil, err
		}
		v.VisitedAt = time.Unix(0, visitedAt)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return visits, nil
}

// DefaultSQLitePath returns the default database path: ~/.config/brawlhub/brawlhub.db
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brawlhub.db"), nil
}
