package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NeverVane/histpick/internal/search"
)

const ellipsis = "…"

func (m Model) renderTopBar() string {
	query := m.history.SearchState().Query
	if m.width > 0 {
		room := m.width - runewidth.StringWidth(m.prompt) - 1
		if room < 0 {
			room = 0
		}
		// keep the end of long queries visible
		for runewidth.StringWidth(query) > room {
			_, size := utf8.DecodeRuneInString(query)
			query = query[size:]
		}
	}
	return m.styles.Prompt.Render(m.prompt) + " " + query
}

func (m Model) renderLegend() string {
	switch {
	case m.mode == modeDeleteConfirm:
		return m.styles.Confirm.Render(m.truncate(deletionPrompt(m.pendingDelete)))
	case m.status != "":
		return m.styles.Error.Render(m.truncate(m.status))
	default:
		return m.styles.Legend.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}

func deletionPrompt(entry string) string {
	return fmt.Sprintf("Do you want to delete all occurrences of %s? y/n", entry)
}

func (m Model) renderStatusBar() string {
	return m.styles.StatusBar.Render(m.pad(m.statusLine()))
}

func (m Model) statusLine() string {
	state := m.history.SearchState()
	n := len(m.entries())

	regex := "off"
	if state.RegexMode {
		regex = "on"
	}
	caseMode := "insensitive"
	if state.CaseSensitive {
		caseMode = "sensitive"
	}

	return fmt.Sprintf("- view:%s (C-/) - regex:%s (C-e) - case:%s (C-t) - page %d/%d -",
		m.history.View(), regex, caseMode, m.pager.PageNumber(), m.pager.PageCount(n))
}

func (m Model) renderEntry(entry string, selected bool) string {
	text := m.truncate(entry)

	if selected {
		return m.styles.Selected.Render(m.pad(text))
	}

	base := m.styles.Entry
	if m.history.IsFavorite(entry) {
		base = m.styles.Favorite
	}

	if !m.highlightMatches {
		return base.Render(text)
	}
	return highlight(text, m.history.Matcher(), base, m.styles.Match)
}

// highlight paints the matched byte ranges of text with match
func highlight(text string, matcher *search.Matcher, base, match lipgloss.Style) string {
	indices := matcher.Indices(text)
	if len(indices) == 0 {
		return base.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, r := range indices {
		if r[0] > pos {
			b.WriteString(base.Render(text[pos:r[0]]))
		}
		b.WriteString(match.Render(text[r[0]:r[1]]))
		pos = r[1]
	}
	if pos < len(text) {
		b.WriteString(base.Render(text[pos:]))
	}
	return b.String()
}

// truncate cuts s to the terminal width, counting display cells
func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width, ellipsis)
}

// pad fills s with spaces up to the terminal width
func (m Model) pad(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, m.width, ellipsis), m.width)
}
