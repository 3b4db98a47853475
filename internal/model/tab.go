package model

import "time"

// EventSubmit marks a snapshot captured right after the submit button was clicked.
const EventSubmit = "submit"

// Tab is a captured kata page: its address and rendered HTML.
type Tab struct {
	ID         string    `json:"id,omitempty"`
	URL        string    `json:"url"`
	HTML       string    `json:"html"`
	Event      string    `json:"event,omitempty"`
	CapturedAt time.Time `json:"captured_at,omitempty"`
}
