package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/brawlhub/internal/model"
)

// Store persists cached API responses and the visit history.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, time.Time, bool, error)
	Put(ctx context.Context, key string, body []byte) error
	RecordVisit(ctx context.Context, path, title string) (model.Visit, error)
	RecentVisits(ctx context.Context, limit int) ([]model.Visit, error)
	Close() error
}

// DefaultDir returns the application directory: ~/.config/brawlhub
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "brawlhub"), nil
}

// DefaultLogPath returns the default log file: ~/.config/brawlhub/brawlhub.log
func DefaultLogPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brawlhub.log"), nil
}

// OpenStore opens the SQLite store at the default path.
func OpenStore() (Store, error) {
	path, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(path)
}
