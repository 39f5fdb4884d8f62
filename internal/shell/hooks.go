package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
)

// AvailableSnippets is printed when no shell is named for --show-config
const AvailableSnippets = "Available options: bash, zsh"

// Marker lines around the integration block
const (
	MarkerStart = "# histpick integration - START"
	MarkerEnd   = "# histpick integration - END"
)

type snippetData struct {
	BinaryPath  string
	OutputFile  string
	ConfigPath  string
	MarkerStart string
	MarkerEnd   string
}

// Snippet renders the integration block for shell. It binds ctrl+r to
// histpick and picks up the selection written to outputFile.
func Snippet(shell, binaryPath, outputFile string) (string, error) {
	var src string
	switch shell {
	case "bash":
		src = bashSnippetTemplate
	case "zsh":
		src = zshSnippetTemplate
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}

	configPath, err := ConfigPath(shell)
	if err != nil {
		return "", err
	}

	tmpl := template.Must(template.New(shell + "_snippet").Parse(src))

	var buf strings.Builder
	data := snippetData{
		BinaryPath:  binaryPath,
		OutputFile:  outputFile,
		ConfigPath:  configPath,
		MarkerStart: MarkerStart,
		MarkerEnd:   MarkerEnd,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s snippet template: %w", shell, err)
	}

	return buf.String(), nil
}

// ConfigPath returns the rc file the snippet belongs in
func ConfigPath(shell string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	var candidates []string
	switch shell {
	case "bash":
		candidates = []string{filepath.Join(homeDir, ".bashrc")}
		// macOS login shells read .bash_profile
		if runtime.GOOS == "darwin" {
			candidates = append([]string{filepath.Join(homeDir, ".bash_profile")}, candidates...)
		}
	case "zsh":
		candidates = []string{
			filepath.Join(homeDir, ".zshrc"),
			filepath.Join(homeDir, ".zprofile"),
		}
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

const bashSnippetTemplate = `{{.MarkerStart}}
# Append this block to {{.ConfigPath}}
__histpick_search() {
    local cmd_file="{{.OutputFile}}"
    local query="$READLINE_LINE"
    rm -f "$cmd_file" 2>/dev/null
    READLINE_LINE=""
    READLINE_POINT=0
    "{{.BinaryPath}}" -- "$query" </dev/tty
    if [[ -f "$cmd_file" ]]; then
        local selected_cmd=$(sed -n 1p "$cmd_file" 2>/dev/null)
        local exec_flag=$(sed -n 2p "$cmd_file" 2>/dev/null)
        rm -f "$cmd_file" 2>/dev/null
        if [[ -n "$selected_cmd" ]]; then
            READLINE_LINE="$selected_cmd"
            READLINE_POINT=${#READLINE_LINE}
            if [[ "$exec_flag" == "exec" ]]; then
                printf '%s\n' "$selected_cmd"
                history -s "$selected_cmd"
                eval "$selected_cmd"
                READLINE_LINE=""
                READLINE_POINT=0
            fi
        fi
    fi
}
if [[ $- == *i* ]]; then
    bind -x '"\C-r": __histpick_search'
fi
{{.MarkerEnd}}
`

const zshSnippetTemplate = `{{.MarkerStart}}
# Append this block to {{.ConfigPath}}
__histpick_search() {
    local cmd_file="{{.OutputFile}}"
    local query="$BUFFER"
    rm -f "$cmd_file" 2>/dev/null
    BUFFER=""
    zle -R
    "{{.BinaryPath}}" -- "$query" </dev/tty
    if [[ -f "$cmd_file" ]]; then
        local selected_cmd=$(sed -n 1p "$cmd_file" 2>/dev/null)
        local exec_flag=$(sed -n 2p "$cmd_file" 2>/dev/null)
        rm -f "$cmd_file" 2>/dev/null
        if [[ -n "$selected_cmd" ]]; then
            BUFFER="$selected_cmd"
            CURSOR=${#BUFFER}
            if [[ "$exec_flag" == "exec" ]]; then
                zle accept-line
            fi
        fi
    fi
    zle reset-prompt
}
if [[ -o interactive ]]; then
    zle -N __histpick_search
    bindkey '^R' __histpick_search
fi
{{.MarkerEnd}}
`
