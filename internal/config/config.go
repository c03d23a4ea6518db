package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultStateKey is the key the store's persisted state lives under in the
// state database. It matches the storage name the mobile app used, so a
// migrated state file keeps working.
const defaultStateKey = "workout-storage"

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	// Path to the SQLite state database file.
	Path string `yaml:"path"`
	// StateKey the serialized state is stored under. Defaults to
	// "workout-storage".
	StateKey string `yaml:"state_key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog.Level. Unknown or empty
// names fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the config used when no config file exists: state database
// under the user config dir, info logging.
func Default() *Config {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		Storage: StorageConfig{
			Path:     filepath.Join(dir, "repbook", "state.db"),
			StateKey: defaultStateKey,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply. Env vars use the
// prefix REPBOOK_:
//
//	REPBOOK_STORAGE_PATH, REPBOOK_STORAGE_STATE_KEY, REPBOOK_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPBOOK_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("REPBOOK_STORAGE_STATE_KEY"); v != "" {
		cfg.Storage.StateKey = v
	}
	if v := os.Getenv("REPBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Storage.StateKey == "" {
		c.Storage.StateKey = defaultStateKey
	}
	return nil
}
