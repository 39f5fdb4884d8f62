package history

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies the on-disk layout of a shell history file
type Format string

const (
	FormatBash Format = "bash"
	FormatZsh  Format = "zsh"
)

// zshMeta is the escape byte zsh writes before bytes it metafies
const zshMeta = 0x83

var (
	bashTimestampLine = regexp.MustCompile(`^#\d+$`)
	zshExtendedPrefix = regexp.MustCompile(`^: *\d+:\d+;`)
)

// FormatFor maps a shell name to its history format
func FormatFor(shell string) (Format, error) {
	switch strings.ToLower(shell) {
	case "bash":
		return FormatBash, nil
	case "zsh":
		return FormatZsh, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
}

// ReadFile loads every entry of the history file at path in file order.
// A missing file yields an empty history.
func ReadFile(path string, format Format) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s history file: %w", format, err)
	}

	return Parse(bytes.NewReader(data), format)
}

// Parse decodes history entries from r
func Parse(r io.Reader, format Format) ([]string, error) {
	switch format {
	case FormatBash:
		return ParseBash(r)
	case FormatZsh:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading zsh history: %w", err)
		}
		return ParseZsh(data)
	default:
		return nil, fmt.Errorf("unsupported history format: %s", format)
	}
}

// ParseBash reads bash history, dropping the #<epoch> lines written
// when HISTTIMEFORMAT is set
func ParseBash(r io.Reader) ([]string, error) {
	return scanEntries(r, func(line string) (string, bool) {
		if bashTimestampLine.MatchString(line) {
			return "", false
		}
		return line, true
	})
}

// ParseZsh un-metafies zsh history and strips extended history prefixes
// of the form ": <epoch>:<duration>;"
func ParseZsh(data []byte) ([]string, error) {
	return scanEntries(bytes.NewReader(Unmetafy(data)), func(line string) (string, bool) {
		return zshExtendedPrefix.ReplaceAllString(line, ""), true
	})
}

func scanEntries(r io.Reader, keep func(string) (string, bool)) ([]string, error) {
	entries := []string{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entry, ok := keep(line)
		if !ok || entry == "" {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}

	return entries, nil
}

// Unmetafy drops every meta byte and XORs the byte following it with 32
func Unmetafy(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == zshMeta && i+1 < len(data) {
			i++
			out = append(out, data[i]^32)
			continue
		}
		out = append(out, data[i])
	}
	return out
}

// DetectHistoryFile returns the history file of shell under the user's
// home directory. The first existing candidate wins; when none exists the
// conventional location is returned so it can be created on write.
func DetectHistoryFile(shell string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	var candidates []string
	switch strings.ToLower(shell) {
	case "bash":
		candidates = []string{
			filepath.Join(homeDir, ".bash_history"),
			filepath.Join(homeDir, ".bashrc_history"),
		}
	case "zsh":
		candidates = []string{
			filepath.Join(homeDir, ".zsh_history"),
			filepath.Join(homeDir, ".zhistory"),
		}
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return candidates[0], nil
}
