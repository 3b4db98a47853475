package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// webFlowTimeout bounds how long we wait for the browser callback
const webFlowTimeout = 5 * time.Minute

// WebFlowConfig configures the authorization-code flow
type WebFlowConfig struct {
	ClientID     string
	ClientSecret string

	// Port for the localhost callback server; 0 picks a free port
	Port   int
	Scopes []string

	// Endpoint defaults to GitHub's OAuth endpoints
	Endpoint oauth2.Endpoint

	// APIBaseURL is used to look up the authenticated login
	APIBaseURL string
}

// RunWebFlow runs the redirect-based authorization-code flow: it starts a
// localhost callback server, opens the authorization page, exchanges the
// returned code for a token and resolves the token owner's login.
func RunWebFlow(ctx context.Context, cfg WebFlowConfig, openBrowser func(string) error) (*OAuthResult, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &AuthError{Description: "oauth.client_id and oauth.client_secret must be configured"}
	}

	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}

	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = github.Endpoint
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     cfg.Endpoint,
		Scopes:       cfg.Scopes,
		RedirectURL:  fmt.Sprintf("http://%s/callback", listener.Addr().String()),
	}

	state, err := newState()
	if err != nil {
		_ = listener.Close()

		return nil, err
	}

	tokenChan := make(chan *oauth2.Token, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		token, err := exchangeCallback(r.Context(), conf, state, r.URL.Query())
		if err != nil {
			offer(errChan, err)

			w.Header().Set("Content-Type", "text/html")
			_, _ = fmt.Fprintf(w, `<html><body><h1>Authorization Failed</h1><p>%s</p></body></html>`, err)

			return
		}

		offer(tokenChan, token)

		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, `<html><body>
			<h1>Authorization Successful!</h1>
			<p>You can close this window and return to the terminal.</p>
			<script>window.close();</script>
		</body></html>`)
	})

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			offer(errChan, fmt.Errorf("server error: %w", err))
		}
	}()

	defer func() { //nolint:contextcheck // fresh context for shutdown is intentional
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent"))

	if err := openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}

	var token *oauth2.Token

	select {
	case token = <-tokenChan:
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(webFlowTimeout):
		return nil, &AuthError{Description: "timed out waiting for the GitHub callback"}
	}

	client, err := NewGitHubClient(ctx, token.AccessToken, cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}

	username, err := AuthenticatedLogin(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to get username: %w", err)
	}

	return &OAuthResult{
		Token:    token.AccessToken,
		Username: username,
		Scopes:   cfg.Scopes,
	}, nil
}

// exchangeCallback validates the redirect query and trades the code for a token.
func exchangeCallback(ctx context.Context, conf *oauth2.Config, state string, query url.Values) (*oauth2.Token, error) {
	if query.Get("state") != state {
		return nil, &AuthError{Description: "state mismatch in OAuth callback"}
	}

	code := query.Get("code")
	if code == "" {
		desc := query.Get("error_description")
		if desc == "" {
			desc = query.Get("error")
		}

		if desc == "" {
			desc = "no code received from GitHub"
		}

		return nil, &AuthError{Description: desc}
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			desc := retrieveErr.ErrorDescription
			if desc == "" {
				desc = retrieveErr.ErrorCode
			}

			if desc == "" {
				desc = "token exchange failed"
			}

			return nil, &AuthError{Description: desc, Err: err}
		}

		return nil, &AuthError{Err: err}
	}

	if token.AccessToken == "" {
		return nil, &AuthError{Description: "token exchange failed"}
	}

	return token, nil
}

func newState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// offer sends v unless ch is already full. Only the first callback result
// counts; later hits (reloads, stray requests) must not block their handler.
func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}
