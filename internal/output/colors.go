package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NeverVane/histpick/internal/config"
)

// StatusType represents different types of CLI output status
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
	StatusWarning StatusType = "warning"
	StatusInfo    StatusType = "info"
)

var indicators = map[StatusType]string{
	StatusSuccess: "[OK]",
	StatusError:   "[FAIL]",
	StatusWarning: "[WARN]",
	StatusInfo:    "[INFO]",
}

// ColorFormatter handles colored output based on configuration
type ColorFormatter struct {
	config  *config.OutputConfig
	enabled bool
	isTTY   bool
	styles  map[StatusType]lipgloss.Style
	bold    lipgloss.Style
}

// NewColorFormatter creates a new color formatter with the given configuration
func NewColorFormatter(cfg *config.OutputConfig) *ColorFormatter {
	cf := &ColorFormatter{
		config: cfg,
		isTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		styles: map[StatusType]lipgloss.Style{
			StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		},
		bold: lipgloss.NewStyle().Bold(true),
	}
	cf.SetNoColor(false)
	return cf
}

// SetNoColor disables color output (for --no-color flag)
func (cf *ColorFormatter) SetNoColor(noColor bool) {
	cf.enabled = cf.config.ColorsEnabled && !noColor && (!cf.config.AutoDetectTTY || cf.isTTY)

	// NO_COLOR always wins (https://no-color.org)
	if os.Getenv("NO_COLOR") != "" {
		cf.enabled = false
	}
}

// Status formats message with the indicator of statusType
func (cf *ColorFormatter) Status(statusType StatusType, message string) string {
	indicator := indicators[statusType]
	if indicator == "" {
		return message
	}
	return cf.Colorize(indicator, statusType) + " " + message
}

// Colorize applies color to text based on status type
func (cf *ColorFormatter) Colorize(text string, statusType StatusType) string {
	style, ok := cf.styles[statusType]
	if !cf.enabled || !ok {
		return text
	}
	return style.Render(text)
}

// Bold makes text bold (if colors are enabled)
func (cf *ColorFormatter) Bold(text string) string {
	if !cf.enabled {
		return text
	}
	return cf.bold.Render(text)
}

// IsEnabled returns whether colors are currently enabled
func (cf *ColorFormatter) IsEnabled() bool {
	return cf.enabled
}

// Verbosity returns the configured verbosity level
func (cf *ColorFormatter) Verbosity() string {
	return cf.config.Verbosity
}
