package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SlackSender posts notifications to a Slack incoming webhook.
type SlackSender struct {
	webhookURL string
	httpClient *http.Client
}

// SlackOption configures a SlackSender.
type SlackOption func(*SlackSender)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) SlackOption {
	return func(s *SlackSender) {
		s.httpClient = client
	}
}

// NewSlackSender creates a new Slack notification sender.
func NewSlackSender(webhookURL string, opts ...SlackOption) *SlackSender {
	s := &SlackSender{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the sender name.
func (s *SlackSender) Name() string {
	return "slack"
}

type slackMessage struct {
	Text string `json:"text"`
}

// Send sends a notification for the given event.
func (s *SlackSender) Send(ctx context.Context, event *Event) error {
	body, err := json.Marshal(slackMessage{Text: FormatSlackText(event)})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// FormatSlackText renders an event using Slack mrkdwn.
func FormatSlackText(event *Event) string {
	icon := ":white_check_mark:"
	if !event.Success {
		icon = ":x:"
	}

	text := fmt.Sprintf("%s *%s*: %s", icon, event.Title, event.Message)

	if event.Repository != "" {
		text += fmt.Sprintf(" (`%s`)", event.Repository)
	}

	if event.URL != "" {
		text += fmt.Sprintf("\n<%s|View solution>", event.URL)
	}

	if event.Error != "" {
		text += "\n> " + event.Error
	}

	return text
}
