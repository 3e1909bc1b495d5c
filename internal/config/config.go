// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// Config holds all application configuration.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Display       DisplayConfig      `mapstructure:"display"`

	// Dir is the directory the configuration was read from.
	Dir string `mapstructure:"-"`
	// TemplatePath is set when Load wrote a fresh config.toml.
	TemplatePath string `mapstructure:"-"`
}

// StorageConfig selects where the journal is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sqlite, file, memory
	Path    string `mapstructure:"path"`    // empty: derived from data_dir
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// NotificationConfig holds delivery channel configuration. Which events
// notify is part of the persisted journal settings, not of this file.
type NotificationConfig struct {
	Desktop      bool   `mapstructure:"desktop"`
	Bell         bool   `mapstructure:"bell"`
	SoundCommand string `mapstructure:"sound_command"`
}

// DisplayConfig holds presentation configuration.
type DisplayConfig struct {
	Currency      string `mapstructure:"currency"`
	DefaultFilter string `mapstructure:"default_filter"`
	ColorEnabled  bool   `mapstructure:"color_enabled"`
	DateFormat    string `mapstructure:"date_format"`
}

const appName = "trading-journal"

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A .env file in
// the working directory is loaded first when present.
func Load(configDir string) (*Config, error) {
	_ = godotenv.Load()

	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{Dir: configDir}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.data_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", true)
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("notifications.desktop", true)
	v.SetDefault("notifications.bell", false)
	v.SetDefault("notifications.sound_command", "")

	v.SetDefault("display.currency", utils.DefaultCurrency)
	v.SetDefault("display.default_filter", string(models.FilterAll))
	v.SetDefault("display.color_enabled", true)
	v.SetDefault("display.date_format", "2006-01-02")
}

func loadConfigFile(configDir, name string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Defaults apply; a template is written for the next run.
		if path, err := createTemplateConfig(configDir, name); err == nil {
			cfg.TemplatePath = path
		}
	}

	return v.Unmarshal(cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOURNAL_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("JOURNAL_STORE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// resolvePaths fills the derived storage and log locations.
func (c *Config) resolvePaths() {
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = c.Dir
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case "file":
			c.Storage.Path = filepath.Join(c.Storage.DataDir, "data")
		default:
			c.Storage.Path = filepath.Join(c.Storage.DataDir, "journal.db")
		}
	}
	if c.Log.FilePath == "" {
		c.Log.FilePath = filepath.Join(c.Dir, "logs", "journal.log")
	}
	c.Display.Currency = strings.ToUpper(c.Display.Currency)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("%w: storage.backend %q (must be sqlite, file or memory)", errors.ErrConfigInvalid, c.Storage.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("%w: log.level %q", errors.ErrConfigInvalid, c.Log.Level)
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("%w: log rotation limits must be non-negative", errors.ErrConfigInvalid)
	}

	if !utils.ValidCurrency(c.Display.Currency) {
		return fmt.Errorf("%w: display.currency %q is not an ISO 4217 code", errors.ErrConfigInvalid, c.Display.Currency)
	}
	if _, ok := models.ParseTimeFilter(c.Display.DefaultFilter); !ok {
		return fmt.Errorf("%w: display.default_filter %q (must be Week, Month, Year or All)", errors.ErrConfigInvalid, c.Display.DefaultFilter)
	}
	return nil
}

// DefaultFilter returns the configured statistics window.
func (c *Config) DefaultFilter() models.TimeFilter {
	if f, ok := models.ParseTimeFilter(c.Display.DefaultFilter); ok {
		return f
	}
	return models.FilterAll
}
