package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NeverVane/histpick/internal/history"
	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/internal/pager"
)

// DefaultReservedRows covers the prompt, legend and status bar
const DefaultReservedRows = 3

type mode int

const (
	modeSearch mode = iota
	modeDeleteConfirm
)

// Options configures the picker
type Options struct {
	// Prompt drawn before the query, e.g. "user@host$"
	Prompt string

	// Rows not available to entries
	ReservedRows int

	// Initial terminal size; updated by resize events
	Width  int
	Height int

	// Ask y/n before deleting an entry
	ConfirmDelete bool

	// Paint matched characters
	HighlightMatches bool
}

// Result is what the user picked when the picker exited
type Result struct {
	Entry   string
	Execute bool
	Chosen  bool
}

// Model is the bubbletea model of the picker
type Model struct {
	history *history.Model
	pager   *pager.Pager
	keys    keyMap
	help    help.Model
	styles  styles

	prompt           string
	reserved         int
	width            int
	height           int
	confirmDelete    bool
	highlightMatches bool

	mode          mode
	pendingDelete string
	status        string

	result Result
	copy   func(string) error
	logger *logger.Logger
}

// NewModel builds the picker over a loaded history model
func NewModel(hm *history.Model, opts *Options) Model {
	if opts == nil {
		opts = &Options{ConfirmDelete: true, HighlightMatches: true}
	}
	reserved := opts.ReservedRows
	if reserved <= 0 {
		reserved = DefaultReservedRows
	}

	h := help.New()
	h.ShortSeparator = ", "
	h.Width = opts.Width

	return Model{
		history:          hm,
		pager:            pager.New(pager.PageSizeFor(opts.Height, reserved)),
		keys:             keys,
		help:             h,
		styles:           defaultStyles(),
		prompt:           opts.Prompt,
		reserved:         reserved,
		width:            opts.Width,
		height:           opts.Height,
		confirmDelete:    opts.ConfirmDelete,
		highlightMatches: opts.HighlightMatches,
		copy:             clipboard.WriteAll,
		logger:           logger.GetLogger().TUI(),
	}
}

// Result returns the selection made before the picker quit
func (m Model) Result() Result {
	return m.result
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.pager.Resize(pager.PageSizeFor(msg.Height, m.reserved), len(m.entries()))
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeDeleteConfirm {
			return m.handleDeleteConfirmKeys(msg)
		}
		return m.handleSearchKeys(msg)
	}

	return m, nil
}

func (m Model) entries() []string {
	return m.history.ActiveEntries()
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.entries())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		return m.choose(false)

	case key.Matches(msg, m.keys.Execute):
		return m.choose(true)

	case key.Matches(msg, m.keys.Up):
		m.pager.MoveSelected(n, pager.Backward)

	case key.Matches(msg, m.keys.Down):
		m.pager.MoveSelected(n, pager.Forward)

	case key.Matches(msg, m.keys.PageUp):
		m.pager.TurnPage(n, pager.Backward)
		m.pager.Clamp(n)

	case key.Matches(msg, m.keys.PageDown):
		m.pager.TurnPage(n, pager.Forward)
		m.pager.Clamp(n)

	case key.Matches(msg, m.keys.ToggleRegex):
		m.history.ToggleRegexMode()
		m.pager.Reset()

	case key.Matches(msg, m.keys.ToggleCase):
		m.history.ToggleCase()
		m.pager.Reset()

	case key.Matches(msg, m.keys.ToggleView):
		view := m.history.ToggleView()
		m.pager.Reset()
		m.logger.Debug().Str("view", view.String()).Msg("View changed")

	case key.Matches(msg, m.keys.Favorite):
		entry, err := m.pager.SelectedEntry(m.entries())
		if err != nil {
			return m, nil
		}
		if err := m.history.FavoriteToggle(entry); err != nil {
			m.setError(err)
			return m, nil
		}
		if m.history.View() == history.Favorites {
			m.pager.RetainSelectedAfterRemoval(len(m.entries()))
		}
		m.status = ""

	case key.Matches(msg, m.keys.Delete):
		entry, err := m.pager.SelectedEntry(m.entries())
		if err != nil {
			return m, nil
		}
		if m.confirmDelete {
			m.mode = modeDeleteConfirm
			m.pendingDelete = entry
			return m, nil
		}
		m.deleteEntry(entry)

	case key.Matches(msg, m.keys.Copy):
		entry, err := m.pager.SelectedEntry(m.entries())
		if err != nil {
			return m, nil
		}
		if err := m.copy(entry); err != nil {
			m.setError(fmt.Errorf("failed to copy to clipboard: %w", err))
			return m, nil
		}
		m.status = "copied to clipboard"

	case key.Matches(msg, m.keys.Backspace):
		m.searchResult(m.history.TrimQuery())
		m.pager.Reset()

	// alt-modified keys are not text
	case msg.Type == tea.KeySpace && !msg.Alt:
		m.searchResult(m.history.AppendQuery(" "))
		m.pager.Reset()

	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.searchResult(m.history.AppendQuery(string(msg.Runes)))
		m.pager.Reset()
	}

	return m, nil
}

func (m Model) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry := m.pendingDelete
	m.mode = modeSearch
	m.pendingDelete = ""

	if msg.Type == tea.KeyRunes && !msg.Alt && strings.EqualFold(string(msg.Runes), "y") {
		m.deleteEntry(entry)
	}
	return m, nil
}

func (m *Model) deleteEntry(entry string) {
	if err := m.history.Delete(entry); err != nil {
		m.setError(err)
	} else {
		m.status = ""
	}
	m.pager.RetainSelectedAfterRemoval(len(m.entries()))
}

func (m Model) choose(execute bool) (tea.Model, tea.Cmd) {
	entry, err := m.pager.SelectedEntry(m.entries())
	if errors.Is(err, pager.ErrEmptySelection) {
		return m, nil
	}
	m.result = Result{Entry: entry, Execute: execute, Chosen: true}
	return m, tea.Quit
}

// searchResult turns a search error into the status line. Invalid patterns
// keep the last good result on screen.
func (m *Model) searchResult(err error) {
	if err == nil {
		m.status = ""
		return
	}
	if history.IsInvalidPattern(err) {
		m.status = "invalid pattern"
		return
	}
	m.setError(err)
}

func (m *Model) setError(err error) {
	m.logger.Error().Err(err).Msg("Action failed")
	m.status = err.Error()
}

// View renders the prompt, legend, status bar and the current page
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTopBar())
	b.WriteByte('\n')
	b.WriteString(m.renderLegend())
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())

	for i, entry := range m.pager.Entries(m.entries()) {
		b.WriteByte('\n')
		b.WriteString(m.renderEntry(entry, i == m.pager.Selected()))
	}

	return b.String()
}
