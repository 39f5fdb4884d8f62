package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, cfg.ConfigDir, cfg.Store.Dir)
	assert.Equal(t, 3, cfg.TUI.ReservedRows)
	assert.Equal(t, "ranked", cfg.TUI.DefaultView)
	assert.Equal(t, "auto", cfg.Shell.InjectMode)
	assert.Equal(t, []string{"bash", "zsh"}, cfg.Shell.SupportedShells)
	assert.NotEmpty(t, cfg.Log.Output)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadFrom(ForDir(dir), "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "histpick.db"), cfg.Store.DatabasePath)
		assert.Equal(t, dir, cfg.Store.Dir)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[store]
backend = "sqlite"

[tui]
reserved_rows = 4
default_view = "favorites"
regex_mode = true

[shell]
name = "zsh"
inject_mode = "file"
`
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := LoadFrom(ForDir(dir), path)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Store.Backend)
		assert.Equal(t, 4, cfg.TUI.ReservedRows)
		assert.Equal(t, "favorites", cfg.TUI.DefaultView)
		assert.True(t, cfg.TUI.RegexMode)
		assert.Equal(t, "zsh", cfg.Shell.Name)
		assert.Equal(t, "file", cfg.Shell.InjectMode)
		// untouched sections keep their defaults
		assert.True(t, cfg.TUI.ConfirmDelete)
		assert.Equal(t, "NORMAL", cfg.Store.SyncMode)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[store]\nbackend = \"redis\"\n"), 0600))

		_, err := LoadFrom(ForDir(dir), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.backend")
	})

	t.Run("malformed toml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[store\n"), 0600))

		_, err := LoadFrom(ForDir(dir), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad view", func(c *Config) { c.TUI.DefaultView = "sorted" }, "tui.default_view"},
		{"bad inject mode", func(c *Config) { c.Shell.InjectMode = "clipboard" }, "shell.inject_mode"},
		{"unsupported shell", func(c *Config) { c.Shell.Name = "fish" }, "shell.name"},
		{"negative reserved rows", func(c *Config) { c.TUI.ReservedRows = -1 }, "tui.reserved_rows"},
		{"bad sync mode", func(c *Config) { c.Store.SyncMode = "EXTRA" }, "store.sync_mode"},
		{"bad verbosity", func(c *Config) { c.Output.Verbosity = "loud" }, "output.verbosity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ForDir(t.TempDir())
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := ForDir(filepath.Join(dir, "nested"))
	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.ConfigDir)

	path := DefaultPath(cfg.ConfigDir)
	cfg.TUI.ReservedRows = 5
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFrom(ForDir(cfg.ConfigDir), path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.TUI.ReservedRows)
}
