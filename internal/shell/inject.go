package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/NeverVane/histpick/internal/config"
	"github.com/NeverVane/histpick/internal/logger"
)

// Inject modes
const (
	ModeAuto    = "auto"
	ModeTIOCSTI = "tiocsti"
	ModeFile    = "file"
)

// ErrTIOCSTIUnsupported is returned where the platform has no TIOCSTI ioctl
var ErrTIOCSTIUnsupported = errors.New("TIOCSTI is not supported on this platform")

// tiocstiRestricted is the first kernel able to disable TIOCSTI
// (CONFIG_LEGACY_TIOCSTI / dev.tty.legacy_tiocsti)
var tiocstiRestricted = semver.MustParse("6.2.0")

var kernelVersionPrefix = regexp.MustCompile(`^\d+(\.\d+){0,2}`)

// Injector hands the chosen entry back to the shell
type Injector struct {
	mode       string
	outputFile string
	tty        *os.File
	push       func(f *os.File, text string) error
	logger     *logger.Logger
}

// NewInjector builds an injector from the shell section of the configuration
func NewInjector(cfg *config.ShellConfig) *Injector {
	mode := cfg.InjectMode
	if mode == "" {
		mode = ModeAuto
	}
	return &Injector{
		mode:       mode,
		outputFile: cfg.OutputFile,
		tty:        os.Stdin,
		push:       pushTIOCSTI,
		logger:     logger.GetLogger().Shell(),
	}
}

// OutputFile returns the file written in file mode
func (inj *Injector) OutputFile() string {
	return inj.outputFile
}

// Inject places text on the shell's command line. With execute set the
// entry is submitted as if enter had been pressed.
func (inj *Injector) Inject(text string, execute bool) error {
	switch inj.mode {
	case ModeFile:
		return inj.writeOutputFile(text, execute)

	case ModeTIOCSTI:
		return inj.pushToTerminal(text, execute)

	case ModeAuto:
		err := inj.pushToTerminal(text, execute)
		if err == nil {
			return nil
		}
		inj.logger.Warn().Err(err).
			Str("output_file", inj.outputFile).
			Msg("TIOCSTI refused, falling back to output file")
		return inj.writeOutputFile(text, execute)

	default:
		return fmt.Errorf("unknown inject mode %q", inj.mode)
	}
}

func (inj *Injector) pushToTerminal(text string, execute bool) error {
	if execute {
		text += "\n"
	}
	if err := inj.push(inj.tty, text); err != nil {
		if release, kerr := KernelRelease(); kerr == nil && KernelMayRestrictTIOCSTI(release) {
			inj.logger.Debug().Str("kernel", release).
				Msg("Kernel may have legacy TIOCSTI disabled (dev.tty.legacy_tiocsti)")
		}
		return fmt.Errorf("failed to push input to terminal: %w", err)
	}
	return nil
}

// writeOutputFile stores the entry for the shell integration to pick up.
// The second line reads "exec" when the entry should run immediately.
func (inj *Injector) writeOutputFile(text string, execute bool) error {
	if inj.outputFile == "" {
		return fmt.Errorf("no output file configured")
	}
	if err := os.MkdirAll(filepath.Dir(inj.outputFile), 0700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	content := text
	if execute {
		content += "\nexec"
	}
	if err := os.WriteFile(inj.outputFile, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write selected command: %w", err)
	}

	inj.logger.Debug().Str("path", inj.outputFile).Bool("execute", execute).Msg("Selection written")
	return nil
}

// KernelMayRestrictTIOCSTI reports whether a kernel release is new enough
// to be built or configured without legacy TIOCSTI
func KernelMayRestrictTIOCSTI(release string) bool {
	v, err := parseKernelRelease(release)
	if err != nil {
		return false
	}
	return !v.LessThan(tiocstiRestricted)
}

func parseKernelRelease(release string) (*semver.Version, error) {
	prefix := kernelVersionPrefix.FindString(release)
	if prefix == "" {
		return nil, fmt.Errorf("unrecognized kernel release %q", release)
	}
	return semver.NewVersion(prefix)
}
