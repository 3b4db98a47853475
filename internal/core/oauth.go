package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/oauth"
)

// DefaultScopes grants read/write access to repository contents
var DefaultScopes = []string{"repo"}

// OAuthResult contains the result of an OAuth flow
type OAuthResult struct {
	Token    string
	Username string
	Scopes   []string
}

// DeviceFlow handles the OAuth device flow
type DeviceFlow struct {
	ClientID   string
	Host       string
	Scopes     []string
	APIBaseURL string

	onDeviceCode func(code, verificationURL string)
}

// NewDeviceFlow creates a device flow for the given OAuth app.
func NewDeviceFlow(clientID string) *DeviceFlow {
	return &DeviceFlow{
		ClientID: clientID,
		Host:     "github.com",
		Scopes:   DefaultScopes,
	}
}

// OnDeviceCode sets the callback for when a device code is received
func (f *DeviceFlow) OnDeviceCode(callback func(code, verificationURL string)) {
	f.onDeviceCode = callback
}

// Run executes the OAuth device flow and returns the result
func (f *DeviceFlow) Run(ctx context.Context) (*OAuthResult, error) {
	if f.ClientID == "" {
		return nil, &AuthError{Description: "oauth.client_id is not configured"}
	}

	host, err := oauth.NewGitHubHost("https://" + f.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub host: %w", err)
	}

	flow := &oauth.Flow{
		Host:     host,
		ClientID: f.ClientID,
		Scopes:   f.Scopes,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if f.onDeviceCode != nil {
		flow.DisplayCode = func(code, verificationURL string) error {
			f.onDeviceCode(code, verificationURL)

			return nil
		}
	}

	accessToken, err := flow.DeviceFlow()
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	client, err := NewGitHubClient(ctx, accessToken.Token, f.APIBaseURL)
	if err != nil {
		return nil, err
	}

	username, err := AuthenticatedLogin(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to get username: %w", err)
	}

	return &OAuthResult{
		Token:    accessToken.Token,
		Username: username,
		Scopes:   f.Scopes,
	}, nil
}
