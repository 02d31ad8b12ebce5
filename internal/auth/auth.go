// Package auth resolves the signed-in identity and supplies request tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tasks/internal/config"
)

// ErrNoSession is returned by token sources when nobody is signed in.
var ErrNoSession = errors.New("not signed in")

// Identity is the signed-in user. A zero Identity means unauthenticated.
type Identity struct {
	UserID string
	Email  string
}

// Authenticated reports whether the identity carries a user id.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Provider is the authentication context consumed by the task page and commands.
type Provider interface {
	// Resolve returns the current identity. An unauthenticated user is a
	// zero Identity with a nil error; errors mean the state could not be read.
	Resolve(ctx context.Context) (Identity, error)

	// TokenSource returns the source of bearer tokens for API requests.
	TokenSource(ctx context.Context) oauth2.TokenSource
}

// Session is what login stores on disk.
type Session struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email,omitempty"`
	Token  *oauth2.Token `json:"token"`
}

// LoadSession reads a session file. A missing file yields (nil, nil).
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	return &s, nil
}

// SaveSession writes a session file with mode 0600.
func SaveSession(path string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// OAuthConfig builds the OAuth client described by cfg.
// Returns nil if no client is configured.
func OAuthConfig(cfg config.AuthConfig, redirectURL string) *oauth2.Config {
	if !cfg.Configured() {
		return nil
	}
	endpoint := oauth2.Endpoint{
		AuthURL:  cfg.AuthURL,
		TokenURL: cfg.TokenURL,
	}
	if cfg.Provider == "google" {
		endpoint = google.Endpoint
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       cfg.Scopes,
	}
}

// FileProvider resolves the identity from the session file in the config dir.
type FileProvider struct {
	path  string
	oauth *oauth2.Config

	mu sync.Mutex
	ts oauth2.TokenSource
}

// NewFileProvider creates a provider for cfg's session file.
func NewFileProvider(cfg *config.Config) *FileProvider {
	return &FileProvider{
		path:  cfg.SessionPath(),
		oauth: OAuthConfig(cfg.Auth, ""),
	}
}

// Resolve implements Provider.
// A session whose token has expired and cannot be refreshed is unauthenticated.
func (p *FileProvider) Resolve(ctx context.Context) (Identity, error) {
	s, err := LoadSession(p.path)
	if err != nil {
		return Identity{}, err
	}
	if s == nil || s.UserID == "" || s.Token == nil {
		return Identity{}, nil
	}
	if !s.Token.Valid() && (s.Token.RefreshToken == "" || p.oauth == nil) {
		return Identity{}, nil
	}
	return Identity{UserID: s.UserID, Email: s.Email}, nil
}

// TokenSource implements Provider. The session is read on first use.
func (p *FileProvider) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &lazySource{p: p, ctx: ctx}
}

func (p *FileProvider) source(ctx context.Context) (oauth2.TokenSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ts != nil {
		return p.ts, nil
	}

	s, err := LoadSession(p.path)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Token == nil {
		return nil, ErrNoSession
	}

	if p.oauth != nil && s.Token.RefreshToken != "" {
		p.ts = p.oauth.TokenSource(ctx, s.Token)
	} else {
		p.ts = oauth2.StaticTokenSource(s.Token)
	}
	return p.ts, nil
}

type lazySource struct {
	p   *FileProvider
	ctx context.Context
}

func (l *lazySource) Token() (*oauth2.Token, error) {
	ts, err := l.p.source(l.ctx)
	if err != nil {
		return nil, err
	}
	return ts.Token()
}
