package security

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/NeverVane/histpick/internal/logger"
)

// File permission constants for the store and history files
const (
	// Read/write for owner only
	SecureFilePermission = 0600

	// Read/write/execute for owner only
	SecureDirPermission = 0700
)

// PermissionEnforcer keeps files that hold history readable by the owner only
type PermissionEnforcer struct {
	logger *logger.Logger
}

// PermissionError reports a file or directory with looser permissions than expected
type PermissionError struct {
	Path     string
	Expected os.FileMode
	Actual   os.FileMode
	Message  string
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission error on %s: %s (expected %o, got %o)",
		pe.Path, pe.Message, pe.Expected, pe.Actual)
}

// NewPermissionEnforcer creates a new permission enforcer
func NewPermissionEnforcer() *PermissionEnforcer {
	return &PermissionEnforcer{
		logger: logger.GetLogger().Security(),
	}
}

// SetSecureFilePermissions sets 0600 on path and verifies the result
func (pe *PermissionEnforcer) SetSecureFilePermissions(path string) error {
	if err := pe.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	if err := os.Chmod(path, SecureFilePermission); err != nil {
		pe.logger.WithError(err).WithField("path", path).Error().Msg("Failed to set secure file permissions")
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := pe.ValidateSecureFile(path); err != nil {
		return fmt.Errorf("permission verification failed: %w", err)
	}

	pe.logger.WithField("path", path).Debug().Msg("Secure file permissions set")
	return nil
}

// CreateSecureDirectory creates path and its parents with 0700
func (pe *PermissionEnforcer) CreateSecureDirectory(path string) error {
	if err := pe.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	if err := os.MkdirAll(path, SecureDirPermission); err != nil {
		pe.logger.WithError(err).WithField("path", path).Error().Msg("Failed to create secure directory")
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}

	// existing directories keep their mode; flag the loose ones
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		pe.logger.Warn().
			Str("path", path).
			Str("mode", fmt.Sprintf("%o", perm)).
			Msg("Directory is accessible by other users")
	}
	return nil
}

// ValidateSecureFile checks that path is a regular file with mode 0600
func (pe *PermissionEnforcer) ValidateSecureFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}

	actual := info.Mode().Perm()
	if actual != SecureFilePermission {
		pe.logger.Warn().
			Str("path", path).
			Str("expected", fmt.Sprintf("%o", SecureFilePermission)).
			Str("actual", fmt.Sprintf("%o", actual)).
			Msg("File permissions validation failed")

		return &PermissionError{
			Path:     path,
			Expected: SecureFilePermission,
			Actual:   actual,
			Message:  "file permissions are not secure",
		}
	}

	return nil
}

// ValidatePath rejects empty paths and directory traversal
func (pe *PermissionEnforcer) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains directory traversal")
	}

	return nil
}

// IsPermissionError checks if an error is a permission-related error
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
