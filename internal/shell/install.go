package shell

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NeverVane/histpick/internal/logger"
)

// IsInstalled reports whether the rc file at configPath already carries
// the integration block
func IsInstalled(configPath string) (bool, error) {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return strings.Contains(string(content), MarkerStart), nil
}

// Install appends snippet to the rc file, replacing a previous block.
// Without force an existing block is an error.
func Install(configPath, snippet string, force bool) (string, error) {
	log := logger.GetLogger().Shell()

	installed, err := IsInstalled(configPath)
	if err != nil {
		return "", err
	}
	if installed && !force {
		return "", fmt.Errorf("histpick is already installed in %s (use --force to reinstall)", configPath)
	}

	backupPath, err := backupConfig(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var content string
	if existing, err := os.ReadFile(configPath); err == nil {
		content = string(existing)
	}

	clean := removeIntegration(content)
	if clean != "" && !strings.HasSuffix(clean, "\n") {
		clean += "\n"
	}

	if err := os.WriteFile(configPath, []byte(clean+"\n"+snippet), 0644); err != nil {
		return "", fmt.Errorf("failed to write to config file: %w", err)
	}

	log.Info().
		Str("config_path", configPath).
		Str("backup_path", backupPath).
		Msg("Installed shell integration")
	return backupPath, nil
}

// Uninstall strips the integration block from the rc file
func Uninstall(configPath string) (string, error) {
	installed, err := IsInstalled(configPath)
	if err != nil {
		return "", err
	}
	if !installed {
		return "", fmt.Errorf("histpick is not installed in %s", configPath)
	}

	backupPath, err := backupConfig(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(removeIntegration(string(content))), 0644); err != nil {
		return "", fmt.Errorf("failed to write cleaned config file: %w", err)
	}

	logger.GetLogger().Shell().Info().Str("config_path", configPath).Msg("Removed shell integration")
	return backupPath, nil
}

// backupConfig copies configPath next to itself. A missing file needs no backup.
func backupConfig(configPath string) (string, error) {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config file for backup: %w", err)
	}

	backupPath := fmt.Sprintf("%s.histpick-backup-%s", configPath, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, content, 0600); err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	return backupPath, nil
}

func removeIntegration(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inBlock := false

	for _, line := range lines {
		switch {
		case strings.Contains(line, MarkerStart):
			inBlock = true
		case strings.Contains(line, MarkerEnd):
			inBlock = false
		case !inBlock:
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
