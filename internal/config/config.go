// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. ACTIONBOARD_SERVER_BASE_URL.
const EnvPrefix = "ACTIONBOARD"

const appName = "actionboard"

// Config represents the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Auth   AuthConfig   `yaml:"auth" mapstructure:"auth"`
	UI     UIConfig     `yaml:"ui" mapstructure:"ui"`
}

// ServerConfig describes how to reach the backend.
type ServerConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// AuthConfig holds authentication-related settings.
type AuthConfig struct {
	// APIToken is sent as a bearer token when the backend sits behind a proxy that wants one
	APIToken string `yaml:"api_token,omitempty" mapstructure:"api_token"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	HistoryLimit  int  `yaml:"history_limit" mapstructure:"history_limit"`
	ResultTTL     int  `yaml:"result_ttl" mapstructure:"result_ttl"` // seconds; 0 keeps success messages
	Notifications bool `yaml:"notifications" mapstructure:"notifications"`
	Debug         bool `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30,
		},
		UI: UIConfig{
			HistoryLimit: 5,
			ResultTTL:    5,
		},
	}
}

// RequestTimeout returns the HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.Server.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Server.Timeout) * time.Second
}

// ResultDuration returns how long success messages stay visible.
func (c *Config) ResultDuration() time.Duration {
	if c.UI.ResultTTL <= 0 {
		return 0
	}
	return time.Duration(c.UI.ResultTTL) * time.Second
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
// If the file doesn't exist, defaults are used. Environment overrides always apply.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path, layered over defaults and under
// ACTIONBOARD_* environment variables.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only affects keys viper already knows about.
	v.SetDefault("server.base_url", cfg.Server.BaseURL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("auth.api_token", cfg.Auth.APIToken)
	v.SetDefault("ui.history_limit", cfg.UI.HistoryLimit)
	v.SetDefault("ui.result_ttl", cfg.UI.ResultTTL)
	v.SetDefault("ui.notifications", cfg.UI.Notifications)
	v.SetDefault("ui.debug", cfg.UI.Debug)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.UI.HistoryLimit <= 0 {
		cfg.UI.HistoryLimit = 5
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path.
func SaveFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
