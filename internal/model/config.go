package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Grouping modes for building session projects.
const (
	GroupByTag    = "tag"
	GroupByStatus = "status"
	GroupByNone   = "none"
)

// StorageConfig selects and locates the task store.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the JSON task file used by the file backend.
	Path string `mapstructure:"path" yaml:"path"`

	// DBPath is the database used by the sqlite backend.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// KeepSnapshots bounds the sqlite snapshot history; 0 keeps everything.
	KeepSnapshots int `mapstructure:"keep_snapshots" yaml:"keep_snapshots"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DisplayConfig holds rendering preferences.
type DisplayConfig struct {
	// Theme is the glamour style used for markdown reports.
	Theme   string `mapstructure:"theme" yaml:"theme"`
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns ~/.config/todobar/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todobar", "config.yaml")
}

// DefaultDataDir returns ~/.local/share/todobar, honouring XDG_DATA_HOME.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "todobar")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "todobar")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := DefaultDataDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend:       BackendFile,
			Path:          filepath.Join(dataDir, "tasks.json"),
			DBPath:        filepath.Join(dataDir, "todobar.db"),
			KeepSnapshots: 20,
		},
		Log: LogConfig{Level: "info"},
		Display: DisplayConfig{
			Theme:   "auto",
			GroupBy: GroupByTag,
		},
	}
}

// NewViper returns a viper instance carrying the defaults and the
// TODOBAR_ environment overrides. Callers may bind flags to it before
// handing it to LoadConfigFrom.
func NewViper() *viper.Viper {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("todobar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.db_path", def.Storage.DBPath)
	v.SetDefault("storage.keep_snapshots", def.Storage.KeepSnapshots)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.group_by", def.Display.GroupBy)
	return v
}

// LoadConfig reads configuration from the given YAML file path.
// If the file does not exist, defaults (plus environment) are used.
func LoadConfig(path string) (*AppConfig, error) {
	return LoadConfigFrom(NewViper(), path)
}

// LoadConfigFrom reads path into v and unmarshals the result.
func LoadConfigFrom(v *viper.Viper, path string) (*AppConfig, error) {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Display.GroupBy {
	case GroupByTag, GroupByStatus, GroupByNone:
	default:
		return fmt.Errorf("unknown group_by %q", c.Display.GroupBy)
	}
	if c.Storage.KeepSnapshots < 0 {
		return fmt.Errorf("keep_snapshots must not be negative, got %d", c.Storage.KeepSnapshots)
	}
	return nil
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
		"backend":        cfg.Storage.Backend,
		"path":           cfg.Storage.Path,
		"db_path":        cfg.Storage.DBPath,
		"keep_snapshots": cfg.Storage.KeepSnapshots,
	})
	v.Set("log", map[string]any{"level": cfg.Log.Level})
	v.Set("display", map[string]any{
		"theme":    cfg.Display.Theme,
		"group_by": cfg.Display.GroupBy,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
