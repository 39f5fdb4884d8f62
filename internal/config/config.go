package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the complete configuration for histpick
type Config struct {
	// Persistence store configuration
	Store StoreConfig `toml:"store"`

	// TUI configuration
	TUI TUIConfig `toml:"tui"`

	// Shell integration configuration
	Shell ShellConfig `toml:"shell"`

	// Logging configuration
	Log LogConfig `toml:"log"`

	// Output configuration
	Output OutputConfig `toml:"output"`

	// Directory paths (computed, not stored in TOML)
	DataDir   string `toml:"-"`
	ConfigDir string `toml:"-"`
}

// StoreConfig contains settings for the favorites store
type StoreConfig struct {
	// Backend is "file" or "sqlite"
	Backend string `toml:"backend"`

	// Directory holding one file per list (file backend)
	Dir string `toml:"dir"`

	// Path to the SQLite database file (sqlite backend)
	DatabasePath string `toml:"database_path"`

	// WAL mode settings
	WALMode bool `toml:"wal_mode"`

	// Synchronous mode (NORMAL, FULL)
	SyncMode string `toml:"sync_mode"`
}

// TUIConfig contains TUI interface settings
type TUIConfig struct {
	// Rows used by the prompt, legend and status bar
	ReservedRows int `toml:"reserved_rows"`

	// Ask before deleting an entry from history
	ConfirmDelete bool `toml:"confirm_delete"`

	// Paint matched characters
	HighlightMatches bool `toml:"highlight_matches"`

	// Initial search flags
	CaseSensitive bool `toml:"case_sensitive"`
	RegexMode     bool `toml:"regex_mode"`

	// View shown at startup (ranked, favorites, chronological)
	DefaultView string `toml:"default_view"`
}

// ShellConfig contains shell integration settings
type ShellConfig struct {
	// Shell name override; empty means detect from $SHELL
	Name string `toml:"name"`

	// History file override; empty means $HISTFILE or the shell default
	HistoryFile string `toml:"history_file"`

	// How the selection reaches the shell (auto, tiocsti, file)
	InjectMode string `toml:"inject_mode"`

	// File written when the selection is handed over through a file
	OutputFile string `toml:"output_file"`

	// Supported shells
	SupportedShells []string `toml:"supported_shells"`
}

// LogConfig contains logger settings
type LogConfig struct {
	// Log level (debug, info, warn, error)
	Level string `toml:"level"`

	// Output destination (stdout, stderr, or file path)
	Output string `toml:"output"`

	// Enable colored output (terminal outputs only)
	Color bool `toml:"color"`

	// Enable timestamp in logs
	Timestamp bool `toml:"timestamp"`

	// Enable caller information (file:line)
	Caller bool `toml:"caller"`
}

// OutputConfig contains CLI output formatting settings
type OutputConfig struct {
	// Enable colored output
	ColorsEnabled bool `toml:"colors_enabled"`

	// Automatically disable colors when not in a TTY
	AutoDetectTTY bool `toml:"auto_detect_tty"`

	// Verbosity level: "minimal", "normal", "verbose"
	Verbosity string `toml:"verbosity"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "histpick")
	dataDir := filepath.Join(homeDir, ".local", "share", "histpick")
	return defaultsFor(configDir, dataDir)
}

// ForDir returns the default configuration with every path rooted at dir
func ForDir(dir string) *Config {
	return defaultsFor(dir, dir)
}

func defaultsFor(configDir, dataDir string) *Config {
	return &Config{
		Store: StoreConfig{
			Backend:      "file",
			Dir:          configDir,
			DatabasePath: filepath.Join(dataDir, "histpick.db"),
			WALMode:      true,
			SyncMode:     "NORMAL",
		},
		TUI: TUIConfig{
			ReservedRows:     3,
			ConfirmDelete:    true,
			HighlightMatches: true,
			CaseSensitive:    false,
			RegexMode:        false,
			DefaultView:      "ranked",
		},
		Shell: ShellConfig{
			Name:            "",
			HistoryFile:     "",
			InjectMode:      "auto",
			OutputFile:      filepath.Join(dataDir, "selected_command"),
			SupportedShells: []string{"bash", "zsh"},
		},
		Log: LogConfig{
			Level:     "error",
			Output:    filepath.Join(dataDir, "histpick.log"),
			Color:     false,
			Timestamp: true,
			Caller:    false,
		},
		Output: OutputConfig{
			ColorsEnabled: true,
			AutoDetectTTY: true,
			Verbosity:     "minimal",
		},
		DataDir:   dataDir,
		ConfigDir: configDir,
	}
}

// DefaultPath returns the location of config.toml inside configDir
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the specified file path
func Load(configPath string) (*Config, error) {
	return LoadFrom(DefaultConfig(), configPath)
}

// LoadFrom decodes configPath over base. A missing file leaves the defaults.
func LoadFrom(base *Config, configPath string) (*Config, error) {
	config := base

	if configPath == "" {
		configPath = DefaultPath(config.ConfigDir)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config.ApplyDefaults()
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the specified file path
func (c *Config) Save(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config as TOML: %w", err)
	}

	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validBackends := map[string]bool{"file": true, "sqlite": true}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("store.backend must be one of: file, sqlite")
	}
	validSyncModes := map[string]bool{"OFF": true, "NORMAL": true, "FULL": true}
	if !validSyncModes[c.Store.SyncMode] {
		return fmt.Errorf("store.sync_mode must be one of: OFF, NORMAL, FULL")
	}

	if c.TUI.ReservedRows < 0 {
		return fmt.Errorf("tui.reserved_rows must be non-negative")
	}
	validViews := map[string]bool{"ranked": true, "favorites": true, "chronological": true}
	if !validViews[c.TUI.DefaultView] {
		return fmt.Errorf("tui.default_view must be one of: ranked, favorites, chronological")
	}

	validInjectModes := map[string]bool{"auto": true, "tiocsti": true, "file": true}
	if !validInjectModes[c.Shell.InjectMode] {
		return fmt.Errorf("shell.inject_mode must be one of: auto, tiocsti, file")
	}
	if c.Shell.Name != "" && !c.IsSupportedShell(c.Shell.Name) {
		return fmt.Errorf("shell.name %q is not supported (supported: %v)", c.Shell.Name, c.Shell.SupportedShells)
	}

	validVerbosity := map[string]bool{"minimal": true, "normal": true, "verbose": true}
	if !validVerbosity[c.Output.Verbosity] {
		return fmt.Errorf("output.verbosity must be one of: minimal, normal, verbose")
	}

	return nil
}

// IsSupportedShell reports whether name is one of the configured shells
func (c *Config) IsSupportedShell(name string) bool {
	for _, s := range c.Shell.SupportedShells {
		if s == name {
			return true
		}
	}
	return false
}

// EnsureDirectories creates necessary directories for the configuration
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.ConfigDir,
		c.DataDir,
		c.Store.Dir,
		filepath.Dir(c.Store.DatabasePath),
		filepath.Dir(c.Shell.OutputFile),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ApplyDefaults applies default values for all configuration sections
// This ensures that TOML decoding doesn't override defaults with zero values
func (c *Config) ApplyDefaults() {
	// Store defaults
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = c.ConfigDir
	}
	if c.Store.DatabasePath == "" {
		c.Store.DatabasePath = filepath.Join(c.DataDir, "histpick.db")
	}
	if c.Store.SyncMode == "" {
		c.Store.SyncMode = "NORMAL"
	}

	// TUI defaults
	if c.TUI.ReservedRows == 0 {
		c.TUI.ReservedRows = 3
	}
	if c.TUI.DefaultView == "" {
		c.TUI.DefaultView = "ranked"
	}

	// Shell defaults
	if c.Shell.InjectMode == "" {
		c.Shell.InjectMode = "auto"
	}
	if c.Shell.OutputFile == "" {
		c.Shell.OutputFile = filepath.Join(c.DataDir, "selected_command")
	}
	if len(c.Shell.SupportedShells) == 0 {
		c.Shell.SupportedShells = []string{"bash", "zsh"}
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "error"
	}
	if c.Log.Output == "" {
		c.Log.Output = filepath.Join(c.DataDir, "histpick.log")
	}

	// Output defaults
	if c.Output.Verbosity == "" {
		c.Output.Verbosity = "minimal"
	}
}
