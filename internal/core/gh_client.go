package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/katasync/internal/application"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a new authenticated GitHub client using the provided token.
// A non-empty baseURL points the client at another API root (GitHub Enterprise or a test server).
func NewGitHubClient(ctx context.Context, token, baseURL string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	client := github.NewClient(tc)
	client.UserAgent = application.UserAgent

	if baseURL == "" {
		return client, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}

	client.BaseURL = u

	return client, nil
}
