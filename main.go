package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NeverVane/histpick/internal/config"
	"github.com/NeverVane/histpick/internal/history"
	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/internal/output"
	"github.com/NeverVane/histpick/internal/shell"
	"github.com/NeverVane/histpick/internal/storage"
	"github.com/NeverVane/histpick/internal/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// showConfigNoValue marks --show-config given without a shell
const showConfigNoValue = "N/A"

// app carries what every command needs once flags are parsed
type app struct {
	cfg       *config.Config
	formatter *output.Formatter
}

func main() {
	a := &app{}
	rootCmd := newRootCmd(a)

	if err := rootCmd.Execute(); err != nil {
		if a.formatter != nil {
			a.formatter.Error("%v", err)
		} else {
			fmt.Fprintf(os.Stderr, "histpick: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "histpick [query...]",
		Short: "Interactive picker for your shell history",
		Long: `histpick searches, ranks and filters the entries of your shell history
file and places the chosen one on your command line.

Views:
  ranked          most used first, ties in history order
  favorites       entries you pinned with ctrl+f
  chronological   every distinct entry in history order

Get started:
  histpick --show-config=bash >> ~/.bashrc
  histpick install-hooks       Set up shell integration automatically
  histpick git                 Open the picker filtered on "git"`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("show-config") {
				name, _ := cmd.Flags().GetString("show-config")
				if name == showConfigNoValue && len(args) > 0 {
					name = args[0]
				}
				return a.showConfig(cmd.OutOrStdout(), name)
			}

			shellName, _ := cmd.Flags().GetString("shell")
			return a.runPicker(shellName, strings.Join(args, " "))
		},
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.config/histpick/config.toml)")
	rootCmd.PersistentFlags().String("shell", "", "Shell whose history is shown (bash or zsh)")

	rootCmd.Flags().String("show-config", "", "Print the shell integration snippet for a shell and exit")
	rootCmd.Flags().Lookup("show-config").NoOptDefVal = showConfigNoValue

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(installHooksCmd(a))
	rootCmd.AddCommand(uninstallHooksCmd(a))
	rootCmd.AddCommand(versionCmd(a))

	return rootCmd
}

// init loads the configuration and sets up logging and output
func (a *app) init(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.formatter = output.NewFormatter(cfg)
	a.formatter.SetFlags(verbose, noColor)

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := logger.Init(&cfg.Log, verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.GetLogger().Config().Debug().
		Str("config_dir", cfg.ConfigDir).
		Str("data_dir", cfg.DataDir).
		Str("store", cfg.Store.Backend).
		Msg("Configuration loaded")
	return nil
}

// loadConfig reads configPath over the defaults. HISTPICK_CONFIG_DIR roots
// every default path in one directory.
func loadConfig(configPath string) (*config.Config, error) {
	base := config.DefaultConfig()

	if dir := os.Getenv("HISTPICK_CONFIG_DIR"); dir != "" {
		if !filepath.IsAbs(dir) {
			return nil, fmt.Errorf("HISTPICK_CONFIG_DIR must be an absolute path, got: %s", dir)
		}
		base = config.ForDir(filepath.Clean(dir))
	}

	cfg, err := config.LoadFrom(base, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// showConfig prints the integration snippet for name, or the list of
// shells when none or an unknown one was given
func (a *app) showConfig(w io.Writer, name string) error {
	if name == "" || name == showConfigNoValue {
		fmt.Fprintln(w, shell.AvailableSnippets)
		return nil
	}

	snippet, err := shell.Snippet(name, executablePath(), a.cfg.Shell.OutputFile)
	if err != nil {
		// display mode never fails; unknown shells get the list of options
		logger.GetLogger().Shell().Debug().Err(err).Str("shell", name).Msg("No snippet for shell")
		fmt.Fprintln(w, shell.AvailableSnippets)
		return nil
	}

	fmt.Fprint(w, snippet)
	return nil
}

func (a *app) runPicker(shellName, query string) error {
	log := logger.GetLogger().WithComponent("main")

	adapter, err := shell.NewAdapter(&a.cfg.Shell, shellName)
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to open favorites store: %w", err)
	}
	defer store.Close()

	view, err := history.ParseView(a.cfg.TUI.DefaultView)
	if err != nil {
		return err
	}

	hm, err := history.Load(adapter, store, adapter.FavoritesKey(), &history.Options{
		View:          view,
		RegexMode:     a.cfg.TUI.RegexMode,
		CaseSensitive: a.cfg.TUI.CaseSensitive,
	})
	if err != nil {
		return err
	}
	a.formatter.Verbose("Loaded %d entries from %s", len(hm.Raw()), adapter.HistoryFile())

	if query != "" {
		if err := hm.SetQuery(query); err != nil {
			// the picker shows the cue once the user edits the query
			log.Warn().Err(err).Str("query", query).Msg("Initial query did not compile")
		}
	}

	result, err := tui.Run(hm, &tui.Options{
		Prompt:           shell.Prompt(),
		ReservedRows:     a.cfg.TUI.ReservedRows,
		ConfirmDelete:    a.cfg.TUI.ConfirmDelete,
		HighlightMatches: a.cfg.TUI.HighlightMatches,
	})
	if err != nil {
		return err
	}

	if !result.Chosen {
		log.Debug().Msg("Picker closed without a selection")
		return nil
	}

	injector := shell.NewInjector(&a.cfg.Shell)
	if err := injector.Inject(result.Entry, result.Execute); err != nil {
		return fmt.Errorf("failed to hand the selection to the shell: %w", err)
	}

	log.Info().Bool("execute", result.Execute).Msg("Selection handed to shell")
	return nil
}

func installHooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install-hooks [shell]",
		Short: "Add the ctrl+r integration to your shell rc file",
		Long: `Append the histpick integration block to ~/.bashrc or ~/.zshrc.
If no shell is specified, the current shell is detected from $SHELL.
A backup of the rc file is written next to it before any change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			name, err := targetShell(a.cfg, args)
			if err != nil {
				return err
			}

			configPath, err := shell.ConfigPath(name)
			if err != nil {
				return err
			}

			snippet, err := shell.Snippet(name, executablePath(), a.cfg.Shell.OutputFile)
			if err != nil {
				return err
			}

			backupPath, err := shell.Install(configPath, snippet, force)
			if err != nil {
				return err
			}

			a.formatter.Success("%s integration installed in %s", name, configPath)
			if backupPath != "" {
				a.formatter.Verbose("Backup written to %s", backupPath)
			}
			a.formatter.Println("Restart your shell or run: source " + configPath)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Replace an existing integration block")
	return cmd
}

func uninstallHooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall-hooks [shell]",
		Short: "Remove the histpick integration from your shell rc file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := targetShell(a.cfg, args)
			if err != nil {
				return err
			}

			configPath, err := shell.ConfigPath(name)
			if err != nil {
				return err
			}

			installed, err := shell.IsInstalled(configPath)
			if err != nil {
				return err
			}
			if !installed {
				a.formatter.Warning("histpick is not installed in %s", configPath)
				return nil
			}

			backupPath, err := shell.Uninstall(configPath)
			if err != nil {
				return err
			}

			a.formatter.Success("%s integration removed from %s", name, configPath)
			if backupPath != "" {
				a.formatter.Verbose("Backup written to %s", backupPath)
			}
			return nil
		},
	}
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.formatter.Println(fmt.Sprintf(`%s %s

Build Date:  %s
Commit:      %s
OS/Arch:     %s/%s
Go Version:  %s`, a.formatter.Bold("histpick"), version, date, commit,
				runtime.GOOS, runtime.GOARCH, runtime.Version()))
			return nil
		},
	}
}

// targetShell picks the shell named in args, then config, then $SHELL
func targetShell(cfg *config.Config, args []string) (string, error) {
	override := cfg.Shell.Name
	if len(args) > 0 {
		override = args[0]
	}
	return shell.Detect(override, cfg.Shell.SupportedShells)
}

func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "histpick"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}
