package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigIncomplete is returned before any network call when the
	// account, token or repository is missing
	ErrConfigIncomplete = errors.New("configuration incomplete")

	// ErrNoActiveTab is returned when no page is available to extract from
	ErrNoActiveTab = errors.New("no active tab found")

	// ErrNotPlatformPage is returned when the page is not on codewars.com
	ErrNotPlatformPage = errors.New("not a Codewars page")

	// ErrExtractionFailed is returned when the extractor produced nothing
	ErrExtractionFailed = errors.New("failed to extract kata data")

	// ErrNoSolutionCode is returned when the extracted code is blank
	ErrNoSolutionCode = errors.New("no solution code found, are you on a solution page?")

	// ErrRemoteNotFound is returned when a remote file does not exist
	ErrRemoteNotFound = errors.New("remote file not found")

	// ErrDuplicateContent is returned when the remote file already holds
	// the same solution; no commit is made
	ErrDuplicateContent = errors.New("file already exists with identical content, no changes made")
)

// ConfigError lists the configuration fields a sync is missing
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrConfigIncomplete, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigIncomplete
}

// ExtractionError wraps a failure to talk to the extractor
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("connection failed, please reload the Codewars page: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// RemoteError wraps a failed GitHub API call other than "not found"
type RemoteError struct {
	Operation  string
	Path       string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (HTTP %d): %v", e.Operation, e.Path, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s %s failed: %v", e.Operation, e.Path, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// AuthError is returned when the OAuth flow does not yield a token
type AuthError struct {
	Description string
	Err         error
}

func (e *AuthError) Error() string {
	if e.Description != "" {
		return "GitHub authorization failed: " + e.Description
	}

	if e.Err != nil {
		return fmt.Sprintf("GitHub authorization failed: %v", e.Err)
	}

	return "GitHub authorization failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
