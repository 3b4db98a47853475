package core

import (
	"fmt"
	"os"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/inovacc/katasync/internal/store"
)

// TokenSource indicates where the token was found
type TokenSource string

const (
	TokenSourceFlag      TokenSource = "flag"
	TokenSourceStore     TokenSource = "store"
	TokenSourceEnvGitHub TokenSource = "GITHUB_TOKEN"
	TokenSourceEnvGH     TokenSource = "GH_TOKEN"
	TokenSourceGHCLI     TokenSource = "gh-cli"
	TokenSourceNone      TokenSource = "none"
)

// ghTokenForHost is swapped in tests to keep the gh CLI out of them
var ghTokenForHost = func(host string) string {
	token, _ := auth.TokenForHost(host)

	return token
}

// ResolveGitHubToken attempts to find a GitHub token from multiple sources.
// Priority order:
//  1. flagToken (explicit --token flag)
//  2. token saved by `katasync auth login` or `config set`
//  3. GITHUB_TOKEN environment variable
//  4. GH_TOKEN environment variable
//  5. gh CLI auth (keyring + config file)
func ResolveGitHubToken(flagToken string, st store.Store) (token string, source TokenSource, err error) {
	if flagToken != "" {
		return flagToken, TokenSourceFlag, nil
	}

	if st != nil {
		token, _, err = st.Get(store.KeyAccessToken)
		if err != nil {
			return "", TokenSourceNone, fmt.Errorf("failed to read stored token: %w", err)
		}

		if token != "" {
			return token, TokenSourceStore, nil
		}
	}

	if token = os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, TokenSourceEnvGitHub, nil
	}

	if token = os.Getenv("GH_TOKEN"); token != "" {
		return token, TokenSourceEnvGH, nil
	}

	if token = ghTokenForHost("github.com"); token != "" {
		return token, TokenSourceGHCLI, nil
	}

	return "", TokenSourceNone, fmt.Errorf(`GitHub token required

Provide a token via one of:
  * katasync auth login       (recommended - OAuth in the browser)
  * gh auth login             (auto-detected from gh CLI)
  * GITHUB_TOKEN env var
  * --token flag`)
}
