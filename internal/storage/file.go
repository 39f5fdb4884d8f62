package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/pkg/security"
)

// FileStore keeps every list in its own newline separated file under dir
type FileStore struct {
	dir      string
	enforcer *security.PermissionEnforcer
	logger   *logger.Logger
}

// NewFileStore creates a file store rooted at dir, creating dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is empty")
	}
	enforcer := security.NewPermissionEnforcer()
	if err := enforcer.CreateSecureDirectory(dir); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{
		dir:      dir,
		enforcer: enforcer,
		logger:   logger.GetLogger().Store(),
	}, nil
}

// Path returns the file backing key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// ReadList reads the list stored under key. A missing file is created empty.
func (s *FileStore) ReadList(key string) ([]string, error) {
	path := s.Path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.Debug().Str("path", path).Msg("Creating empty list file")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			return nil, fmt.Errorf("failed to create list file %s: %w", path, err)
		}
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read list file %s: %w", path, err)
	}

	// list files created by hand or by older versions may be world readable
	if err := s.enforcer.ValidateSecureFile(path); security.IsPermissionError(err) {
		s.logger.Warn().Str("path", path).Msg("List file is accessible by other users, restricting to owner")
		if err := s.enforcer.SetSecureFilePermissions(path); err != nil {
			return nil, err
		}
	}

	entries := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan list file %s: %w", path, err)
	}

	return entries, nil
}

// WriteList replaces the list stored under key. The file is swapped in
// atomically so a failed write never leaves a truncated list behind.
func (s *FileStore) WriteList(key string, entries []string) error {
	path := s.Path(key)

	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write list %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set list file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace list file %s: %w", path, err)
	}

	s.logger.Debug().Str("key", key).Int("entries", len(entries)).Msg("List written")
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
