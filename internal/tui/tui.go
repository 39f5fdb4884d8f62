package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/NeverVane/histpick/internal/history"
	"github.com/NeverVane/histpick/internal/logger"
)

// Run shows the picker until the user chooses an entry or quits
func Run(hm *history.Model, opts *Options) (Result, error) {
	if opts == nil {
		opts = &Options{ConfirmDelete: true, HighlightMatches: true}
	}

	log := logger.GetLogger().TUI()

	if opts.Width == 0 || opts.Height == 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts.Width, opts.Height = w, h
		} else {
			log.Debug().Err(err).Msg("Terminal size unavailable, waiting for resize event")
		}
	}

	program := tea.NewProgram(NewModel(hm, opts), tea.WithAltScreen())

	log.Info().
		Int("entries", len(hm.ActiveEntries())).
		Str("view", hm.View().String()).
		Msg("Launching picker")

	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("TUI execution failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
