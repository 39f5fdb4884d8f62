package storage

// DatabaseSchema contains all SQL statements for database initialization
type DatabaseSchema struct {
	// Current schema version
	Version int

	// DDL statements
	Tables  []string
	Indexes []string
}

// GetCurrentSchema returns the current database schema
func GetCurrentSchema() *DatabaseSchema {
	return &DatabaseSchema{
		Version: 1,
		Tables: []string{
			`CREATE TABLE IF NOT EXISTS lists (
				key TEXT NOT NULL,
				position INTEGER NOT NULL,
				entry TEXT NOT NULL,
				PRIMARY KEY (key, position)
			)`,

			`CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at INTEGER NOT NULL,
				description TEXT
			)`,
		},

		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_lists_key ON lists(key)`,
		},
	}
}
