package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitual/internal/constants"
)

const (
	EnvDB       = "HABITUAL_DB"
	EnvDebug    = "HABITUAL_DEBUG"
	EnvTimezone = "HABITUAL_TIMEZONE"
)

// Config holds all habitual configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// Timezone overrides the stored timezone setting for this run.
	Timezone string `toml:"timezone,omitempty"`
}

// StorageConfig selects the store. Path is a file path (".json" selects the
// JSON store, anything else SQLite) or a PostgreSQL connection string.
type StorageConfig struct {
	Path string `toml:"path,omitempty"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir,omitempty"`
}

// DisplayConfig holds the defaults used until `habitual settings` stores
// explicit preferences.
type DisplayConfig struct {
	HeatmapWindow string `toml:"heatmap_window"`
	TrendWeeks    int    `toml:"trend_weeks"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			HeatmapWindow: constants.DefaultHeatmapWindow,
			TrendWeeks:    constants.DefaultTrendWeeks,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", constants.AppName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path (ConfigPath when empty), returning
// defaults if it doesn't exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path (ConfigPath when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is not an error; variables that are already
// set are left alone.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ApplyEnv overlays HABITUAL_* variables found through lookup onto cfg.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.Storage.Path = v
	}
	if v, ok := lookup(EnvTimezone); ok && v != "" {
		cfg.General.Timezone = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvDebug, v, err)
		}
		cfg.Log.Debug = debug
	}
	return nil
}

// DBPath returns the configured store location with "~" expanded, or the
// default SQLite file under the config directory.
func (cfg Config) DBPath() string {
	if cfg.Storage.Path == "" {
		return filepath.Join(ConfigDir(), constants.AppName+".db")
	}
	return ExpandPath(cfg.Storage.Path)
}

// LogDir returns the directory that holds the rotating log file.
func (cfg Config) LogDir() string {
	if cfg.Log.Dir != "" {
		return ExpandPath(cfg.Log.Dir)
	}
	return filepath.Join(ConfigDir(), "logs")
}

// ExpandPath replaces a leading "~" with the user's home directory.
// Connection strings and other values are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
