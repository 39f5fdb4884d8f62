package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/NeverVane/histpick/internal/config"
	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/pkg/history"
)

// DefaultShells is used when no supported shells are configured
var DefaultShells = []string{"bash", "zsh"}

// Detect resolves the shell to work with. A non-empty override wins,
// otherwise the basename of $SHELL is used. The shell must be listed in
// supported and have a history file codec.
func Detect(override string, supported []string) (string, error) {
	if len(supported) == 0 {
		supported = DefaultShells
	}

	name := override
	if name == "" {
		name = filepath.Base(os.Getenv("SHELL"))
	}
	name = strings.ToLower(strings.TrimSpace(name))

	if name == "" || name == "." {
		return "", fmt.Errorf("cannot detect shell: $SHELL is not set (use --shell %s)", strings.Join(supported, "|"))
	}
	if !slices.Contains(supported, name) {
		return "", fmt.Errorf("unsupported shell: %s (supported: %s)", name, strings.Join(supported, ", "))
	}
	if _, err := history.FormatFor(name); err != nil {
		return "", err
	}
	return name, nil
}

// HistoryPath picks the history file: the configured path, then $HISTFILE,
// then the shell's default location
func HistoryPath(configured, shell string) (string, error) {
	if configured != "" {
		return expandHome(configured), nil
	}
	if env := os.Getenv("HISTFILE"); env != "" {
		return expandHome(env), nil
	}
	return history.DetectHistoryFile(shell)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// FavoritesKey names the persisted favorites list of shell
func FavoritesKey(shell string) string {
	return shell + "_favorites"
}

// Adapter reads and rewrites the history file of one shell
type Adapter struct {
	name        string
	historyFile string
	format      history.Format
	logger      *logger.Logger
}

// NewAdapter builds the adapter for the shell chosen by override or the
// shell section of cfg
func NewAdapter(cfg *config.ShellConfig, override string) (*Adapter, error) {
	if override == "" {
		override = cfg.Name
	}
	name, err := Detect(override, cfg.SupportedShells)
	if err != nil {
		return nil, err
	}

	path, err := HistoryPath(cfg.HistoryFile, name)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s history file: %w", name, err)
	}

	return newAdapter(name, path)
}

func newAdapter(name, path string) (*Adapter, error) {
	format, err := history.FormatFor(name)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		name:        name,
		historyFile: path,
		format:      format,
		logger:      logger.GetLogger().Shell(),
	}, nil
}

// Name returns the shell name
func (a *Adapter) Name() string {
	return a.name
}

// HistoryFile returns the path of the history file
func (a *Adapter) HistoryFile() string {
	return a.historyFile
}

// FavoritesKey names the favorites list of this shell
func (a *Adapter) FavoritesKey() string {
	return FavoritesKey(a.name)
}

// ReadHistory returns the history entries in file order
func (a *Adapter) ReadHistory() ([]string, error) {
	start := time.Now()

	entries, err := history.ReadFile(a.historyFile, a.format)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("path", a.historyFile).
		Int("entries", len(entries)).
		Msg("History loaded")
	a.logger.Performance("read_history", time.Since(start))

	return entries, nil
}

// WriteHistory rewrites the history file with entries
func (a *Adapter) WriteHistory(entries []string) error {
	if err := history.WriteFile(a.historyFile, a.format, entries); err != nil {
		return err
	}

	a.logger.Info().
		Str("path", a.historyFile).
		Int("entries", len(entries)).
		Msg("History rewritten")

	return nil
}

// Prompt renders the user@host$ prefix shown before the query
func Prompt() string {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	if user == "" {
		user = "unknown"
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}

	return fmt.Sprintf("%s@%s$", user, host)
}
