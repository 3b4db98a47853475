// Package codewars talks to the public Codewars REST API.
package codewars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/katasync/internal/application"
	"github.com/inovacc/katasync/internal/model"
)

// DefaultBaseURL is the public Codewars site
const DefaultBaseURL = "https://www.codewars.com"

// ErrUserNotFound is returned when the username does not exist
var ErrUserNotFound = errors.New("codewars user not found")

// APIError is a non-404 error response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("codewars API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is a client for the Codewars API
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// ClientOptions configures the Codewars client
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a Codewars API client
func NewClient(opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{httpClient: httpClient, baseURL: baseURL, logger: logger}
}

type userResponse struct {
	Username string `json:"username"`
	Honor    int    `json:"honor"`
	Ranks    struct {
		Overall struct {
			Name string `json:"name"`
		} `json:"overall"`
	} `json:"ranks"`
}

// GetUser looks up a public profile.
func (c *Client) GetUser(ctx context.Context, username string) (*model.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	path := "/api/v1/users/" + url.PathEscape(username)

	c.logger.Debug("making Codewars API request", slog.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", application.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if user.Username == "" {
		user.Username = username
	}

	return &model.Account{
		Username: user.Username,
		Rank:     user.Ranks.Overall.Name,
		Honor:    user.Honor,
	}, nil
}
