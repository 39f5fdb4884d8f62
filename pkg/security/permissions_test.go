package security

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSecureFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission tests on Windows")
	}

	pe := NewPermissionEnforcer()

	t.Run("valid file", func(t *testing.T) {
		testFile := filepath.Join(t.TempDir(), "favorites")
		require.NoError(t, os.WriteFile(testFile, []byte("ls\n"), 0644))

		require.NoError(t, pe.SetSecureFilePermissions(testFile))

		info, err := os.Stat(testFile)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(SecureFilePermission), info.Mode().Perm())
	})

	t.Run("non-existent file", func(t *testing.T) {
		err := pe.SetSecureFilePermissions(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		err := pe.SetSecureFilePermissions("")
		assert.ErrorContains(t, err, "path cannot be empty")
	})

	t.Run("path with directory traversal", func(t *testing.T) {
		err := pe.SetSecureFilePermissions("../../../etc/passwd")
		assert.ErrorContains(t, err, "directory traversal")
	})
}

func TestValidateSecureFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission tests on Windows")
	}

	pe := NewPermissionEnforcer()
	dir := t.TempDir()

	loose := filepath.Join(dir, "loose")
	require.NoError(t, os.WriteFile(loose, nil, 0644))
	require.NoError(t, os.Chmod(loose, 0644))

	err := pe.ValidateSecureFile(loose)
	require.Error(t, err)
	assert.True(t, IsPermissionError(err))
	assert.True(t, IsPermissionError(fmt.Errorf("wrapped: %w", err)))

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, os.FileMode(0644), permErr.Actual)

	err = pe.ValidateSecureFile(dir)
	require.Error(t, err)
	assert.False(t, IsPermissionError(err))
}

func TestCreateSecureDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission tests on Windows")
	}

	pe := NewPermissionEnforcer()
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, pe.CreateSecureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0), info.Mode().Perm()&0077)

	// idempotent
	require.NoError(t, pe.CreateSecureDirectory(dir))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	assert.Error(t, pe.CreateSecureDirectory(file))
}
