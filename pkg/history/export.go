package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// zshMarker is the last byte zsh treats as an internal token
const zshMarker = 0xa2

// Encode writes entries to w in the given format, one per line.
// Zsh entries are metafied; extended history timestamps are not kept.
func Encode(w io.Writer, format Format, entries []string) (int64, error) {
	switch format {
	case FormatBash:
		return encodeLines(w, entries, func(s string) []byte { return []byte(s) })
	case FormatZsh:
		return encodeLines(w, entries, func(s string) []byte { return Metafy([]byte(s)) })
	default:
		return 0, fmt.Errorf("unsupported history format: %s", format)
	}
}

func encodeLines(w io.Writer, entries []string, conv func(string) []byte) (int64, error) {
	bufWriter := bufio.NewWriter(w)

	var bytesWritten int64
	for _, entry := range entries {
		n, err := bufWriter.Write(conv(entry))
		bytesWritten += int64(n)
		if err != nil {
			return bytesWritten, err
		}
		if err := bufWriter.WriteByte('\n'); err != nil {
			return bytesWritten, err
		}
		bytesWritten++
	}

	return bytesWritten, bufWriter.Flush()
}

// Metafy escapes NUL and the zsh token range with a meta byte followed
// by the original byte XOR 32
func Metafy(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b == 0 || (b >= zshMeta && b <= zshMarker) {
			out = append(out, zshMeta, b^32)
			continue
		}
		out = append(out, b)
	}
	return out
}

// WriteFile replaces the history file at path with entries. The existing
// file mode is preserved; new files are created owner-only.
func WriteFile(path string, format Format, entries []string) error {
	mode := os.FileMode(0600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := Encode(tmp, format, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s history: %w", format, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set history file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}
