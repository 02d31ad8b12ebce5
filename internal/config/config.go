// Package config handles the configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"tasks/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "tasks"

	// ConfigFile is the settings filename.
	ConfigFile = "config.toml"

	// EnvFile holds optional KEY=value overrides.
	EnvFile = ".env"

	// SessionFile is the stored identity and token filename.
	SessionFile = "session.json"

	// DebugLogFile receives logs from the interactive page when debugging.
	DebugLogFile = "debug.log"

	// DefaultAPIURL is used when nothing else is configured.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultTimeout bounds each API call.
	DefaultTimeout = 10 * time.Second
)

// Environment variables that override config.toml.
const (
	EnvAPIURL   = "TASKS_API_URL"
	EnvTimeout  = "TASKS_API_TIMEOUT"
	EnvLogLevel = "TASKS_LOG_LEVEL"
)

// AuthConfig describes the OAuth client used by login.
type AuthConfig struct {
	// Provider selects well-known endpoints ("google"); empty means AuthURL/TokenURL are used.
	Provider     string   `toml:"provider"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
}

// Configured reports whether an OAuth client is available.
func (a AuthConfig) Configured() bool {
	return a.ClientID != "" && (a.Provider != "" || (a.AuthURL != "" && a.TokenURL != ""))
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// LogLevel is the minimum level logged when Debug is off. Empty means WARN.
	LogLevel logging.Level

	// APIURL is the base URL of the Tasks API.
	APIURL string

	// Timeout bounds each API call.
	Timeout time.Duration

	// DefaultFilter and DefaultSort seed the task page and `list`.
	DefaultFilter string
	DefaultSort   string

	Auth AuthConfig
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIURL        string     `toml:"api_url"`
	Timeout       string     `toml:"timeout"`
	DefaultFilter string     `toml:"default_filter"`
	DefaultSort   string     `toml:"default_sort"`
	LogLevel      string     `toml:"log_level"`
	Auth          AuthConfig `toml:"auth"`
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasks or $HOME/.config/tasks.
// Settings are read from config.toml, then .env and the process environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:           dir,
		APIURL:        DefaultAPIURL,
		Timeout:       DefaultTimeout,
		DefaultFilter: "all",
		DefaultSort:   "newest",
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	var fc fileConfig
	_, err := toml.DecodeFile(c.Path(), &fc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: timeout: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	if fc.DefaultFilter != "" {
		c.DefaultFilter = fc.DefaultFilter
	}
	if fc.DefaultSort != "" {
		c.DefaultSort = fc.DefaultSort
	}
	if fc.LogLevel != "" {
		l, err := logging.ParseLevel(fc.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.LogLevel = l
	}
	c.Auth = fc.Auth
	return nil
}

// loadEnv applies .env (without clobbering variables already set) and then
// the process environment.
func (c *Config) loadEnv() error {
	if err := godotenv.Load(c.EnvPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		l, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		c.LogLevel = l
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DefaultFilter {
	case "all", "active", "completed":
	default:
		return fmt.Errorf("invalid default_filter: %s", c.DefaultFilter)
	}
	switch c.DefaultSort {
	case "newest", "oldest", "a-z", "z-a":
	default:
		return fmt.Errorf("invalid default_sort: %s", c.DefaultSort)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
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

// Path returns the path to config.toml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// SessionPath returns the path to the stored session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// DebugLogPath returns the path of the interactive page's debug log.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if the session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}

// RemoveSession deletes the session file.
func (c *Config) RemoveSession() error {
	return os.Remove(c.SessionPath())
}

// Logger returns a logger writing to w: DEBUG when Debug is set, otherwise
// LogLevel, falling back to WARN.
func (c *Config) Logger(w io.Writer) *logging.Logger {
	l := logging.New()
	l.SetOutput(w)
	switch {
	case c.Debug:
		l.SetLevel(logging.LevelDebug)
	case c.LogLevel != "":
		l.SetLevel(c.LogLevel)
	default:
		l.SetLevel(logging.LevelWarn)
	}
	return l
}
