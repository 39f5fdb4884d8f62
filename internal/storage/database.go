package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NeverVane/histpick/internal/config"
	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/pkg/security"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps lists as ordered rows of a single SQLite table
type SQLiteStore struct {
	db     *sql.DB
	config *config.StoreConfig
	logger *logger.Logger
	path   string
}

// NewSQLiteStore opens (creating if missing) the database at cfg.DatabasePath
func NewSQLiteStore(cfg *config.StoreConfig) (*SQLiteStore, error) {
	s := &SQLiteStore{
		config: cfg,
		logger: logger.GetLogger().Store(),
		path:   cfg.DatabasePath,
	}

	if err := s.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.path == "" {
		return fmt.Errorf("database path is empty")
	}
	if err := security.NewPermissionEnforcer().CreateSecureDirectory(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	s.logger.Debug().Str("path", s.path).Msg("Opening database connection")

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Pragmas are per connection; one connection keeps them in force.
	s.db.SetMaxOpenConns(1)
	s.db.SetConnMaxIdleTime(5 * time.Minute)

	if err := s.applyPragmas(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := s.createSchema(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := s.setSecurePermissions(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to set secure permissions: %w", err)
	}

	if err := s.ping(); err != nil {
		s.db.Close()
		return fmt.Errorf("database connection test failed: %w", err)
	}

	s.logger.Info().
		Str("path", s.path).
		Bool("new_database", isNew).
		Msg("Database initialized successfully")

	return nil
}

func (s *SQLiteStore) applyPragmas() error {
	journal := "DELETE"
	if s.config.WALMode {
		journal = "WAL"
	}
	syncMode := s.config.SyncMode
	if syncMode == "" {
		syncMode = "NORMAL"
	}

	pragmas := []struct{ name, value string }{
		{"journal_mode", journal},
		{"synchronous", syncMode},
		{"secure_delete", "ON"},
		{"temp_store", "memory"},
		{"busy_timeout", "5000"},
	}

	for _, p := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to set pragma %s: %w", p.name, err)
		}
		s.logger.Debug().Str("pragma", p.name).Str("value", p.value).Msg("Applied pragma")
	}

	return nil
}

func (s *SQLiteStore) createSchema() error {
	schema := GetCurrentSchema()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, table := range schema.Tables {
		if _, err := tx.Exec(table); err != nil {
			return fmt.Errorf("failed to create table %d: %w", i, err)
		}
	}
	for i, index := range schema.Indexes {
		if _, err := tx.Exec(index); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i, err)
		}
	}

	_, err = tx.Exec(
		`INSERT OR IGNORE INTO schema_version (version, applied_at, description) VALUES (?, ?, ?)`,
		schema.Version, time.Now().UnixMilli(), "Initial schema creation",
	)
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// setSecurePermissions restricts the database and its WAL/SHM files to the owner
func (s *SQLiteStore) setSecurePermissions() error {
	enforcer := security.NewPermissionEnforcer()
	if err := enforcer.SetSecureFilePermissions(s.path); err != nil {
		return fmt.Errorf("failed to set database file permissions: %w", err)
	}

	for _, extra := range []string{s.path + "-wal", s.path + "-shm"} {
		if _, err := os.Stat(extra); err == nil {
			if err := enforcer.SetSecureFilePermissions(extra); err != nil {
				s.logger.Warn().Err(err).Str("file", extra).Msg("Failed to set file permissions")
			}
		}
	}

	return nil
}

func (s *SQLiteStore) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return nil
}

// SchemaVersion returns the highest recorded schema version
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`).Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// ReadList returns the entries stored under key in position order
func (s *SQLiteStore) ReadList(key string) ([]string, error) {
	rows, err := s.db.Query(`SELECT entry FROM lists WHERE key = ? ORDER BY position ASC`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query list %s: %w", key, err)
	}
	defer rows.Close()

	entries := []string{}
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("failed to scan list %s: %w", key, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", key, err)
	}

	return entries, nil
}

// WriteList replaces the list stored under key in one transaction
func (s *SQLiteStore) WriteList(key string, entries []string) error {
	start := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lists WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear list %s: %w", key, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO lists (key, position, entry) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		if _, err := stmt.Exec(key, i, entry); err != nil {
			return fmt.Errorf("failed to insert entry %d of %s: %w", i, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit list %s: %w", key, err)
	}

	s.logger.Performance("write_list", time.Since(start))
	return nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close checkpoints the WAL and closes the connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}

	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to perform final WAL checkpoint")
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}
