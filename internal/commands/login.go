package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/service"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	user  string
	email string
	token string
}

// SetCredentials sets the user id and bearer token (for testing).
func (c *LoginCmd) SetCredentials(user, token string) {
	c.user = user
	c.token = token
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the Tasks API" }
func (c *LoginCmd) Usage() string {
	return "tasks login [--user <id>] [--email <email>] [--token <bearer-token>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if c.token != "" {
		if c.user == "" {
			fmt.Fprintln(errOut, "error: --user is required with --token")
			return exitcode.UserError
		}
		token := &oauth2.Token{AccessToken: c.token, TokenType: "Bearer"}
		return c.save(cfg, &auth.Session{UserID: c.user, Email: c.email, Token: token}, out, errOut)
	}

	// Already signed in with a usable session
	if cfg.HasSession() {
		id, err := auth.NewFileProvider(cfg).Resolve(ctx)
		if err == nil && id.Authenticated() {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	if !cfg.Auth.Configured() {
		fmt.Fprintf(errOut, "error: no OAuth client configured in %s\n\n", cfg.Path())
		fmt.Fprintln(errOut, "Either sign in with a token issued by the Tasks API:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "   tasks login --user <id> --token <token>")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "or add an [auth] section to config.toml:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "   [auth]")
		fmt.Fprintln(errOut, `   provider = "google"`)
		fmt.Fprintln(errOut, `   client_id = "..."`)
		fmt.Fprintln(errOut, `   client_secret = "..."`)
		fmt.Fprintln(errOut, `   scopes = ["openid", "email"]`)
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Then run 'tasks login' again.")
		return exitcode.AuthError
	}

	token, err := c.authorize(ctx, cfg, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	userID := c.user
	if userID == "" {
		userID = tokenExtra(token, "user_id")
	}
	if userID == "" {
		userID = tokenExtra(token, "sub")
	}
	if userID == "" {
		fmt.Fprintln(errOut, "error: token response has no user id (pass --user)")
		return exitcode.AuthError
	}
	email := c.email
	if email == "" {
		email = tokenExtra(token, "email")
	}
	return c.save(cfg, &auth.Session{UserID: userID, Email: email, Token: token}, out, errOut)
}

func (c *LoginCmd) save(cfg *config.Config, s *auth.Session, out, errOut io.Writer) int {
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := auth.SaveSession(cfg.SessionPath(), s); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// authorize runs the PKCE loopback flow and returns the issued token.
func (c *LoginCmd) authorize(ctx context.Context, cfg *config.Config, errOut io.Writer) (*oauth2.Token, error) {
	port, listener, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("could not bind to local port for OAuth callback")
	}
	defer listener.Close()

	redirectURL := fmt.Sprintf("http://localhost:%d/callback", port)
	oauthConfig := auth.OAuthConfig(cfg.Auth, redirectURL)

	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- fmt.Errorf("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Signed in</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(oauthCallbackTimeout):
		return nil, fmt.Errorf("oauth callback timed out")
	case <-ctx.Done():
		return nil, fmt.Errorf("cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		addr := fmt.Sprintf("localhost:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

func tokenExtra(token *oauth2.Token, key string) string {
	switch v := token.Extra(key).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
