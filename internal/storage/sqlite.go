package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/navtoolbar/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (and migrates) the database at path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion reports the migrated schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Missing table means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the tabs table.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tabs (
			id TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			created_at TEXT NOT NULL,
			visited_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_tabs_url ON tabs(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds pinning.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE tabs ADD COLUMN pinned INTEGER NOT NULL DEFAULT 0;
		ALTER TABLE tabs ADD COLUMN pin_order INTEGER NOT NULL DEFAULT 0;
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database, in saved order.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, title, url, created_at, visited_at, pinned, pin_order
		FROM tabs
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Tab
		var createdAt string
		var visitedAt sql.NullString
		var pinned int

		if err := rows.Scan(&t.ID, &t.Title, &t.URL, &createdAt, &visitedAt, &pinned, &t.PinOrder); err != nil {
			return nil, err
		}

		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if visitedAt.Valid {
			if v, err := time.Parse(time.RFC3339, visitedAt.String); err == nil {
				t.VisitedAt = &v
			}
		}
		t.Pinned = pinned == 1

		store.Tabs = append(store.Tabs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save replaces the stored tabs in one transaction.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tabs"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tabs (id, position, title, url, created_at, visited_at, pinned, pin_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range store.Tabs {
		var visitedAt *string
		if t.VisitedAt != nil {
			v := t.VisitedAt.Format(time.RFC3339)
			visitedAt = &v
		}

		pinned := 0
		if t.Pinned {
			pinned = 1
		}

		if _, err := stmt.Exec(
			t.ID, i, t.Title, t.URL,
			t.CreatedAt.Format(time.RFC3339), visitedAt, pinned, t.PinOrder,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
