// Package notify provides notification dispatching for katasync events.
package notify

import (
	"context"
	"time"
)

// Event represents a notification event with all context needed for formatting.
type Event struct {
	// Type is the event type (auto-sync, sync, error)
	Type string

	// Title is a short headline
	Title string

	// Message is the human readable body
	Message string

	// Repository is the target repository (owner/repo)
	Repository string

	// URL is a link to the published file
	URL string

	// Timestamp is when the event occurred
	Timestamp time.Time

	// Success indicates if the operation succeeded
	Success bool

	// Error contains error details if the operation failed
	Error string
}

// Sender is the interface for notification senders.
type Sender interface {
	// Send sends a notification for the given event.
	Send(ctx context.Context, event *Event) error

	// Name returns the sender's name for logging purposes.
	Name() string
}

// Event types that can trigger notifications.
const (
	EventAutoSync = "auto-sync"
	EventSync     = "sync"
	EventError    = "error"
)

// NewEvent creates a new event with the given type and sets the timestamp.
func NewEvent(eventType, title, message string) *Event {
	return &Event{
		Type:      eventType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Success:   true,
	}
}

// WithError sets the error on the event and marks it as failed.
func (e *Event) WithError(err string) *Event {
	e.Error = err
	e.Success = false

	return e
}
