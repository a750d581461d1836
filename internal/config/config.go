package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	SeedDefaults bool   `mapstructure:"seed_defaults"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string        `mapstructure:"date_format"`
	HighlightColor string        `mapstructure:"highlight_color"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ProfileConfig identifies whose assessments the profile page lists.
type ProfileConfig struct {
	Identity string `mapstructure:"identity"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const envPrefix = "SKILLBOARD"

// Load reads configuration from file and env. Env var overrides use prefix SKILLBOARD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(envPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "skillboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that is missing is an error; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "skillboard", "skillboard.db"))
	v.SetDefault("database.seed_defaults", true)
	v.SetDefault("ui.date_format", "Mon Jan 02 2006")
	v.SetDefault("ui.highlight_color", "12")
	v.SetDefault("ui.request_timeout", "5s")
	v.SetDefault("profile.identity", "")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "skillboard", "skillboard.log"))
	v.SetDefault("log.level", "info")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv(envPrefix + "_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "skillboard", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.seed_defaults", cfg.Database.SeedDefaults)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.highlight_color", cfg.UI.HighlightColor)
	v.Set("ui.request_timeout", cfg.UI.RequestTimeout.String())
	v.Set("profile.identity", cfg.Profile.Identity)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
