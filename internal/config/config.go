// Package config handles the configuration directory, config.yaml and the stored token.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todos"

	// ConfigFile is the settings filename.
	ConfigFile = "config.yaml"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// DefaultBaseURL is the REST store used when none is configured.
	DefaultBaseURL = "https://mate.academy/students-api"

	// DefaultTimeout bounds every remote call.
	DefaultTimeout = 5 * time.Second
)

// Environment overrides.
const (
	EnvBaseURL = "TODOS_BASE_URL"
	EnvUserID  = "TODOS_USER_ID"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// BaseURL is the root of the REST store, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// UserID scopes every todo. Zero means not configured.
	UserID int `yaml:"user_id"`

	// Timeout bounds each remote call. In config.yaml it is a duration
	// string such as "5s"; see decode.
	Timeout time.Duration `yaml:"-"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// New creates a Config with defaults for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todos or $HOME/.config/todos.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogFormat: "text",
	}, nil
}

// Load creates a Config, then applies config.yaml (if present) and environment overrides.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.ConfigPath())
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// decode applies config.yaml. timeout is read as a string so that a bare
// number is rejected instead of being taken as nanoseconds.
func (c *Config) decode(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	var raw struct {
		Timeout string `yaml:"timeout"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if raw.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(raw.Timeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q in %s (want a duration such as 5s)", raw.Timeout, ConfigFile)
	}
	c.Timeout = d
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvUserID); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvUserID, v)
		}
		c.UserID = id
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// HasUser reports whether a user id is configured.
func (c *Config) HasUser() bool {
	return c.UserID != 0
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// LoadToken reads the stored token.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("invalid %s: empty access token", TokenFile)
	}
	return &tok, nil
}

// SaveToken writes the token with mode 0600, creating the directory if needed.
func (c *Config) SaveToken(tok *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
