package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupFileName is the name under which a backup taken at t is saved.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("journal-trading-backup-%s.json", t.Format("2006-01-02"))
}

// WriteBackup writes data to dir under BackupFileName(t) and returns the
// file path.
func WriteBackup(dir string, data []byte, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	path := filepath.Join(dir, BackupFileName(t))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return path, nil
}
