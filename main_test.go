package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeverVane/histpick/internal/shell"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HISTPICK_CONFIG_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShowConfig(t *testing.T) {
	t.Run("no shell lists options", func(t *testing.T) {
		out, err := runRoot(t, "--show-config")
		require.NoError(t, err)
		assert.Equal(t, shell.AvailableSnippets+"\n", out)
	})

	t.Run("with equals", func(t *testing.T) {
		out, err := runRoot(t, "--show-config=zsh")
		require.NoError(t, err)
		assert.Contains(t, out, shell.MarkerStart)
		assert.Contains(t, out, "bindkey '^R' __histpick_search")
	})

	t.Run("as positional", func(t *testing.T) {
		out, err := runRoot(t, "--show-config", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, `bind -x '"\C-r": __histpick_search'`)
	})

	t.Run("unknown shell", func(t *testing.T) {
		out, err := runRoot(t, "--show-config=fish")
		require.NoError(t, err)
		assert.Equal(t, shell.AvailableSnippets+"\n", out)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("config dir override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HISTPICK_CONFIG_DIR", dir)

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.ConfigDir)
		assert.Equal(t, filepath.Join(dir, "histpick.db"), cfg.Store.DatabasePath)
	})

	t.Run("relative override rejected", func(t *testing.T) {
		t.Setenv("HISTPICK_CONFIG_DIR", "relative/dir")
		_, err := loadConfig("")
		assert.ErrorContains(t, err, "absolute path")
	})

	t.Run("invalid config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HISTPICK_CONFIG_DIR", dir)
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[tui]\ndefault_view = \"sorted\"\n"), 0600))

		_, err := loadConfig(path)
		assert.ErrorContains(t, err, "tui.default_view")
	})
}

func TestStartupFailure(t *testing.T) {
	_, err := runRoot(t, "--shell", "fish")
	require.Error(t, err)
}

func TestInstallHooksCommand(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("HISTPICK_CONFIG_DIR", dir)
	t.Setenv("HOME", home)

	run := func(args ...string) error {
		cmd := newRootCmd(&app{})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	rc, err := shell.ConfigPath("bash")
	require.NoError(t, err)

	require.NoError(t, run("install-hooks", "bash"))
	installed, err := shell.IsInstalled(rc)
	require.NoError(t, err)
	assert.True(t, installed)

	assert.Error(t, run("install-hooks", "bash"))
	require.NoError(t, run("install-hooks", "bash", "--force"))

	require.NoError(t, run("uninstall-hooks", "bash"))
	installed, err = shell.IsInstalled(rc)
	require.NoError(t, err)
	assert.False(t, installed)
}
