package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[storage]
# Backend: "sqlite", "file" (one JSON document per key) or "memory"
backend = "sqlite"
# Database file or data directory; empty derives it from data_dir
path = ""
# Directory holding the journal data; empty uses this config directory
data_dir = ""

[log]
# Level: debug, info, warn, error
level = "info"
console = true
file = true
# Empty writes to logs/journal.log under this config directory
file_path = ""
# Rotation: size in MB, number of old files, age in days
max_size = 10
max_backups = 5
max_age = 30

[notifications]
# Desktop notifications through notify-send or osascript
desktop = true
# Ring the terminal bell for notifications with a sound
bell = false
# Command used to play notification sounds, e.g. "mpv --really-quiet {sound}"
# Empty disables sounds
sound_command = ""

[display]
# ISO 4217 currency used to display amounts
currency = "USD"
# Default statistics window: Week, Month, Year or All
default_filter = "All"
color_enabled = true
date_format = "2006-01-02"
`

func createTemplateConfig(configDir, name string) (string, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
