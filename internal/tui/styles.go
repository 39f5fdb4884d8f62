package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Prompt    lipgloss.Style
	Legend    lipgloss.Style
	StatusBar lipgloss.Style
	Error     lipgloss.Style
	Confirm   lipgloss.Style
	Entry     lipgloss.Style
	Favorite  lipgloss.Style
	Match     lipgloss.Style
	Selected  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Prompt: lipgloss.NewStyle().Bold(true),
		Legend: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("7")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		Confirm: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")),
		Entry:    lipgloss.NewStyle(),
		Favorite: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("2")),
	}
}
