package model

import "time"

// HistoryLimit is the maximum number of records kept in the local history.
const HistoryLimit = 50

// SyncRecord describes one published solution.
type SyncRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rank      string    `json:"rank"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
	Repo      string    `json:"repo"`
	FilePath  string    `json:"filePath"`
	URL       string    `json:"url,omitempty"`
}

// Stats summarizes the local history.
type Stats struct {
	ProblemsSolved int `json:"problemsSolved"`
	Streak         int `json:"streak"`
}

// RemoteFile is a file read from the target repository.
type RemoteFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url,omitempty"`
}

// WriteResult is what the contents API reports after a create or update.
type WriteResult struct {
	Path      string `json:"path"`
	SHA       string `json:"sha"`
	HTMLURL   string `json:"html_url,omitempty"`
	CommitSHA string `json:"commit_sha"`
	CommitURL string `json:"commit_url,omitempty"`
	Created   bool   `json:"created"`
}
