// Package sqlite persists cursor state in a SQLite database. It suits
// long-running serve deployments where the JSON file store's whole-file
// rewrites would be wasteful.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is a SQLite-backed implementation of driven.CursorStore.
type CursorStore struct {
	db   *sql.DB
	path string
}

// NewCursorStore creates a new SQLite cursor store at the given data
// directory. If dataDir is empty, defaults to ~/.mailwatch/data/cursors.db.
func NewCursorStore(dataDir string) (*CursorStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mailwatch", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cursors.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &CursorStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *CursorStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *CursorStore) Path() string {
	return s.path
}

// Load returns every stored cursor record.
func (s *CursorStore) Load(ctx context.Context) (domain.Cursors, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email_address, prev_history_id, watch_expiration
		FROM cursors
		ORDER BY email_address
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cursors: %w", err)
	}
	defer rows.Close()

	cursors := domain.Cursors{}
	for rows.Next() {
		var (
			record  domain.CursorRecord
			history int64
			exp     sql.NullInt64
		)
		if err := rows.Scan(&record.EmailAddress, &history, &exp); err != nil {
			return nil, fmt.Errorf("scanning cursor row: %w", err)
		}
		record.PrevHistoryID = uint64(history)
		if exp.Valid {
			v := exp.Int64
			record.WatchExpiration = &v
		}
		cursors = append(cursors, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cursor rows: %w", err)
	}
	return cursors, nil
}

// Save replaces the stored collection with the given one.
func (s *CursorStore) Save(ctx context.Context, cursors domain.Cursors) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cursors"); err != nil {
		return fmt.Errorf("clearing cursors: %w", err)
	}

	for _, record := range cursors {
		var exp sql.NullInt64
		if record.WatchExpiration != nil {
			exp = sql.NullInt64{Int64: *record.WatchExpiration, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cursors (email_address, prev_history_id, watch_expiration)
			VALUES (?, ?, ?)
		`, record.EmailAddress, int64(record.PrevHistoryID), exp)
		if err != nil {
			return fmt.Errorf("inserting cursor for %s: %w", record.EmailAddress, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cursors: %w", err)
	}
	return nil
}

func (s *CursorStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
