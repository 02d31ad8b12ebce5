package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tasks/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected api url %q, got %q", DefaultAPIURL, cfg.APIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %s, got %s", DefaultTimeout, cfg.Timeout)
	}
	if cfg.DefaultFilter != "all" || cfg.DefaultSort != "newest" {
		t.Errorf("unexpected defaults: %q %q", cfg.DefaultFilter, cfg.DefaultSort)
	}
	if cfg.Auth.Configured() {
		t.Error("expected no auth client by default")
	}
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	dir := t.TempDir()
	writeFile(t, dir, ConfigFile, `
api_url = "https://tasks.example.com"
timeout = "3s"
default_filter = "active"
default_sort = "a-z"

[auth]
provider = "google"
client_id = "cid"
scopes = ["openid", "email"]
`)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", cfg.Timeout)
	}
	if cfg.DefaultFilter != "active" || cfg.DefaultSort != "a-z" {
		t.Errorf("unexpected defaults: %q %q", cfg.DefaultFilter, cfg.DefaultSort)
	}
	if !cfg.Auth.Configured() {
		t.Error("expected auth client to be configured")
	}
	if len(cfg.Auth.Scopes) != 2 {
		t.Errorf("expected 2 scopes, got %v", cfg.Auth.Scopes)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFile, `api_url = "https://from-file"`)
	t.Setenv(EnvAPIURL, "https://from-env")
	t.Setenv(EnvTimeout, "1500ms")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://from-env" {
		t.Errorf("expected env override, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Errorf("unexpected timeout %s", cfg.Timeout)
	}
}

func TestNew_DotEnvFile(t *testing.T) {
	// Registered so the variable is restored after the test; godotenv only
	// sets variables that are not present, so it must start unset.
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL)
	t.Setenv(EnvTimeout, "")

	dir := t.TempDir()
	writeFile(t, dir, EnvFile, EnvAPIURL+"=https://from-dotenv\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://from-dotenv" {
		t.Errorf("expected .env value, got %q", cfg.APIURL)
	}
}

func TestNew_InvalidValues(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "")

	tests := map[string]string{
		"bad toml":   `api_url = `,
		"bad filter": `default_filter = "done"`,
		"bad sort":   `default_sort = "random"`,
		"bad time":   `timeout = "soon"`,
		"zero time":  `timeout = "0s"`,
		"bad level":  `log_level = "loud"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ConfigFile, content)
			if _, err := New(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestSessionFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	cfg, err := New(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasSession() {
		t.Fatal("expected no session")
	}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	writeFile(t, cfg.Dir, SessionFile, "{}")
	if !cfg.HasSession() {
		t.Fatal("expected session")
	}
	if err := cfg.RemoveSession(); err != nil {
		t.Fatalf("RemoveSession: %v", err)
	}
	if cfg.HasSession() {
		t.Error("expected session to be removed")
	}
}

func TestNew_LogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	dir := t.TempDir()
	writeFile(t, dir, ConfigFile, `log_level = "error"`)
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != logging.LevelError {
		t.Errorf("expected ERROR from file, got %q", cfg.LogLevel)
	}

	t.Setenv(EnvLogLevel, "info")
	cfg, err = New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("expected env override INFO, got %q", cfg.LogLevel)
	}

	t.Setenv(EnvLogLevel, "chatty")
	if _, err := New(dir); err == nil {
		t.Error("expected error for unknown env log level")
	}
}

func TestConfig_LoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		debug bool
		info  bool
		warn  bool
	}{
		{"default", Config{}, false, false, true},
		{"log level", Config{LogLevel: logging.LevelInfo}, false, true, true},
		{"debug wins", Config{Debug: true, LogLevel: logging.LevelError}, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.cfg.Logger(io.Discard)
			if got := l.Enabled(logging.LevelDebug); got != tt.debug {
				t.Errorf("expected debug %v, got %v", tt.debug, got)
			}
			if got := l.Enabled(logging.LevelInfo); got != tt.info {
				t.Errorf("expected info %v, got %v", tt.info, got)
			}
			if got := l.Enabled(logging.LevelWarn); got != tt.warn {
				t.Errorf("expected warn %v, got %v", tt.warn, got)
			}
		})
	}
}
