package output

import (
	"fmt"
	"io"
	"os"

	"github.com/NeverVane/histpick/internal/config"
)

// Formatter provides a high-level interface for CLI output formatting
type Formatter struct {
	colorFormatter *ColorFormatter
	out            io.Writer
	errOut         io.Writer
	verboseMode    bool
}

// NewFormatter creates a new formatter instance from config
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		colorFormatter: NewColorFormatter(&cfg.Output),
		out:            os.Stdout,
		errOut:         os.Stderr,
	}
}

// SetFlags configures the formatter based on command line flags
func (f *Formatter) SetFlags(verbose, noColor bool) {
	f.verboseMode = verbose
	f.colorFormatter.SetNoColor(noColor)
}

// SetOutput redirects regular and error output
func (f *Formatter) SetOutput(out, errOut io.Writer) {
	f.out = out
	f.errOut = errOut
}

// Success prints a success message
func (f *Formatter) Success(format string, args ...interface{}) {
	fmt.Fprintln(f.out, f.colorFormatter.Status(StatusSuccess, fmt.Sprintf(format, args...)))
}

// Error prints an error message to the error output
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintln(f.errOut, f.colorFormatter.Status(StatusError, fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to the error output
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintln(f.errOut, f.colorFormatter.Status(StatusWarning, fmt.Sprintf(format, args...)))
}

// Info prints an info message (normal and verbose modes)
func (f *Formatter) Info(format string, args ...interface{}) {
	if f.verboseMode || f.colorFormatter.Verbosity() != "minimal" {
		fmt.Fprintln(f.out, f.colorFormatter.Status(StatusInfo, fmt.Sprintf(format, args...)))
	}
}

// Verbose prints a message only in verbose mode
func (f *Formatter) Verbose(format string, args ...interface{}) {
	if f.IsVerbose() {
		fmt.Fprintln(f.errOut, f.colorFormatter.Status(StatusInfo, fmt.Sprintf(format, args...)))
	}
}

// Println prints a plain message with newline
func (f *Formatter) Println(text string) {
	fmt.Fprintln(f.out, text)
}

// Bold formats text as bold
func (f *Formatter) Bold(text string) string {
	return f.colorFormatter.Bold(text)
}

// IsColorsEnabled returns whether colors are enabled
func (f *Formatter) IsColorsEnabled() bool {
	return f.colorFormatter.IsEnabled()
}

// IsVerbose returns whether verbose mode is active
func (f *Formatter) IsVerbose() bool {
	return f.verboseMode || f.colorFormatter.Verbosity() == "verbose"
}
