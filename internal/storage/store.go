package storage

import (
	"fmt"

	"github.com/NeverVane/histpick/internal/config"
)

// ListStore persists named, ordered lists of history entries.
// A key that was never written reads back as an empty list.
type ListStore interface {
	ReadList(key string) ([]string, error)
	WriteList(key string, entries []string) error
	Close() error
}

// Open returns the store selected by cfg.Store.Backend
func Open(cfg *config.Config) (ListStore, error) {
	switch cfg.Store.Backend {
	case "", "file":
		return NewFileStore(cfg.Store.Dir)
	case "sqlite":
		return NewSQLiteStore(&cfg.Store)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
