package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasks/internal/auth"
	"tasks/internal/commands"
	"tasks/internal/config"
	"tasks/internal/exitcode"
)

// TestLoginCommand_NoOAuthClient verifies login fails without a configured client
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !strings.Contains(errBuf.String(), "tasks login --user <id> --token <token>") {
		t.Errorf("expected setup instructions, got %q", errBuf.String())
	}
}

// TestLoginCommand_Token verifies --token stores a session the file provider accepts
func TestLoginCommand_Token(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("u1", "secret-token")

	tmpDir := filepath.Join(t.TempDir(), "tasks")
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	info, err := os.Stat(cfg.SessionPath())
	if err != nil {
		t.Fatalf("expected session file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	id, err := auth.NewFileProvider(cfg).Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id.UserID != "u1" {
		t.Errorf("expected user u1, got %q", id.UserID)
	}
	tok, err := auth.NewFileProvider(cfg).TokenSource(ctx).Token()
	if err != nil || tok.AccessToken != "secret-token" {
		t.Errorf("expected stored token, got %v %v", tok, err)
	}
}

// TestLoginCommand_TokenNeedsUser verifies --token without --user is rejected
func TestLoginCommand_TokenNeedsUser(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("", "secret-token")

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := cmd.Run(context.Background(), cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if errBuf.String() != "error: --user is required with --token\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

// TestLoginCommand_AlreadyLoggedIn verifies a usable session short-circuits login
func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	tmpDir := t.TempDir()
	session := `{"user_id":"u1","token":{"access_token":"abc","token_type":"Bearer"}}`
	if err := os.WriteFile(filepath.Join(tmpDir, config.SessionFile), []byte(session), 0600); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "already logged in\n" {
		t.Errorf("expected 'already logged in', got %q", outBuf.String())
	}
}

// TestLoginCommand_ExpiredSession verifies an expired session without refresh is not reused
func TestLoginCommand_ExpiredSession(t *testing.T) {
	tmpDir := t.TempDir()
	session := `{"user_id":"u1","token":{"access_token":"abc","expiry":"2001-01-01T00:00:00Z"}}`
	if err := os.WriteFile(filepath.Join(tmpDir, config.SessionFile), []byte(session), 0600); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, nil, &outBuf, &errBuf)

	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with an expired token")
	}
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d without an OAuth client, got %d", exitcode.AuthError, code)
	}
}

// TestLogoutCommand_OnlyRemovesSession verifies logout only removes session.json
func TestLogoutCommand_OnlyRemovesSession(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, config.ConfigFile)
	if err := os.WriteFile(configPath, []byte(`api_url = "http://localhost:8000"`), 0600); err != nil {
		t.Fatalf("failed to write config.toml: %v", err)
	}

	sessionPath := filepath.Join(tmpDir, config.SessionFile)
	if err := os.WriteFile(sessionPath, []byte(`{"user_id":"u1"}`), 0600); err != nil {
		t.Fatalf("failed to write session.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   tmpDir,
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Error("session.json should have been deleted")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Error("config.toml should NOT have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := cmd.Run(context.Background(), cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", outBuf.String())
	}
}

// TestLogoutCommand_NotLoggedInQuiet verifies quiet mode suppresses output
func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}

	code := cmd.Run(context.Background(), cfg, nil, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no output in quiet mode, got %q", outBuf.String())
	}
}
