package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names accepted in StorageConfig.Backend.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// StorageConfig selects and locates the durable key-value substrate.
type StorageConfig struct {
	// Backend is "sqlite" or "keyring".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir holds the encrypted files of the keyring file backend.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds the dashboard's initial sort and filters.
type DisplayConfig struct {
	Sort     string `mapstructure:"sort" yaml:"sort"`
	Status   string `mapstructure:"status" yaml:"status"`
	Category string `mapstructure:"category" yaml:"category"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// ViewOptions parses the display section into dashboard options.
func (c DisplayConfig) ViewOptions() (ViewOptions, error) {
	opts := DefaultViewOptions()
	var err error
	if c.Sort != "" {
		if opts.Sort, err = ParseSortOption(c.Sort); err != nil {
			return ViewOptions{}, fmt.Errorf("display.sort: %w", err)
		}
	}
	if c.Status != "" {
		if opts.Status, err = ParseStatusFilter(c.Status); err != nil {
			return ViewOptions{}, fmt.Errorf("display.status: %w", err)
		}
	}
	if c.Category != "" {
		if opts.Category, err = ParseCategoryFilter(c.Category); err != nil {
			return ViewOptions{}, fmt.Errorf("display.category: %w", err)
		}
	}
	return opts, nil
}

// DisplayConfigFrom records opts as the display section.
func DisplayConfigFrom(opts ViewOptions) DisplayConfig {
	return DisplayConfig{
		Sort:     string(opts.Sort),
		Status:   string(opts.Status),
		Category: string(opts.Category),
	}
}

// ConfigDir returns ~/.config/taskflow, or the working directory when the
// home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskflow")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskflow/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Path:       filepath.Join(dir, "taskflow.db"),
			KeyringDir: filepath.Join(dir, "keyring"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "taskflow.log"),
		},
		Display: DisplayConfig{
			Sort:     string(SortDeadline),
			Status:   string(StatusAll),
			Category: string(CategoryAll),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with TASKFLOW_ override file values
// (TASKFLOW_STORAGE_BACKEND, TASKFLOW_LOG_LEVEL, ...). If the file does not
// exist, defaults and environment overrides are used.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("taskflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("storage.keyring_dir", defaults.Storage.KeyringDir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("display.sort", defaults.Display.Sort)
	v.SetDefault("display.status", defaults.Display.Status)
	v.SetDefault("display.category", defaults.Display.Category)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendKeyring:
	default:
		return nil, fmt.Errorf("config %s: unknown storage backend %q", path, cfg.Storage.Backend)
	}
	if _, err := cfg.Display.ViewOptions(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"backend":     cfg.Storage.Backend,
		"path":        cfg.Storage.Path,
		"keyring_dir": cfg.Storage.KeyringDir,
	})
	v.Set("log", map[string]any{
		"level":  cfg.Log.Level,
		"format": cfg.Log.Format,
		"file":   cfg.Log.File,
	})
	v.Set("display", map[string]any{
		"sort":     cfg.Display.Sort,
		"status":   cfg.Display.Status,
		"category": cfg.Display.Category,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
