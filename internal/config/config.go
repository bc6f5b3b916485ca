package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig locates the two persistence backends: the SQLite
// database and the legacy flat-file store the migration reads from.
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
	LegacyPath   string `mapstructure:"legacy_path" yaml:"legacy_path"`
}

// DisplayConfig holds read-side presentation preferences.
type DisplayConfig struct {
	// RefreshIntervalSec is how often an open task's elapsed time
	// display is recomputed.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// ProfileConfig seeds the singleton profile when none exists yet.
type ProfileConfig struct {
	DefaultName      string `mapstructure:"default_name" yaml:"default_name"`
	DefaultBirthdate string `mapstructure:"default_birthdate" yaml:"default_birthdate"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Profile ProfileConfig `mapstructure:"profile" yaml:"profile"`
}

// DefaultPath returns the default configuration file location,
// ~/.config/devdash/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "devdash", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "devdash")
}

func defaultConfig() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Storage: StorageConfig{
			DatabasePath: filepath.Join(dataDir, "devdash.db"),
			LegacyPath:   filepath.Join(dataDir, "legacy.json"),
		},
		Display: DisplayConfig{RefreshIntervalSec: 1},
		Profile: ProfileConfig{
			DefaultName:      "Juan Dela Cruz",
			DefaultBirthdate: "1992-04-14",
		},
	}
}

// Load reads configuration from the given YAML file using Viper.
// A missing file resolves to the default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultConfig()
	v.SetDefault("storage.database_path", def.Storage.DatabasePath)
	v.SetDefault("storage.legacy_path", def.Storage.LegacyPath)
	v.SetDefault("display.refresh_interval_sec", def.Display.RefreshIntervalSec)
	v.SetDefault("profile.default_name", def.Profile.DefaultName)
	v.SetDefault("profile.default_birthdate", def.Profile.DefaultBirthdate)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("profile", cfg.Profile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
