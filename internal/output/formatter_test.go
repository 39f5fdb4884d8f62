package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NeverVane/histpick/internal/config"
)

func newTestFormatter(t *testing.T, verbosity string) (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.ForDir(t.TempDir())
	cfg.Output.Verbosity = verbosity

	f := NewFormatter(cfg)
	var out, errOut bytes.Buffer
	f.SetOutput(&out, &errOut)
	f.SetFlags(false, true)
	return f, &out, &errOut
}

func TestFormatterStatusLines(t *testing.T) {
	f, out, errOut := newTestFormatter(t, "minimal")

	f.Success("saved %d entries", 3)
	f.Error("cannot read %s", "~/.bash_history")
	f.Warning("careful")

	assert.Equal(t, "[OK] saved 3 entries\n", out.String())
	assert.Equal(t, "[FAIL] cannot read ~/.bash_history\n[WARN] careful\n", errOut.String())
}

func TestFormatterVerbosity(t *testing.T) {
	t.Run("minimal hides info", func(t *testing.T) {
		f, out, errOut := newTestFormatter(t, "minimal")
		f.Info("loaded")
		f.Verbose("details")
		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("verbose flag shows everything", func(t *testing.T) {
		f, out, errOut := newTestFormatter(t, "minimal")
		f.SetFlags(true, true)
		f.Info("loaded")
		f.Verbose("details")
		assert.Equal(t, "[INFO] loaded\n", out.String())
		assert.Equal(t, "[INFO] details\n", errOut.String())
		assert.True(t, f.IsVerbose())
	})

	t.Run("normal shows info only", func(t *testing.T) {
		f, out, errOut := newTestFormatter(t, "normal")
		f.Info("loaded")
		f.Verbose("details")
		assert.Equal(t, "[INFO] loaded\n", out.String())
		assert.Empty(t, errOut.String())
	})
}

func TestNoColor(t *testing.T) {
	cfg := config.ForDir(t.TempDir())
	cfg.Output.AutoDetectTTY = false

	f := NewFormatter(cfg)
	f.SetFlags(false, true)
	assert.False(t, f.IsColorsEnabled())
	assert.Equal(t, "plain", f.Bold("plain"))

	t.Setenv("NO_COLOR", "1")
	f.SetFlags(false, false)
	assert.False(t, f.IsColorsEnabled())
}
