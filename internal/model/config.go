package model

import (
	"fmt"
	"strings"
)

// Config holds the user configuration kept in the local store
type Config struct {
	// AccountUsername is the verified Codewars username
	AccountUsername string `json:"codewars_username"`

	// AccessToken is the GitHub token used for the contents API
	AccessToken string `json:"-"`

	// RemoteAccountName is the GitHub login the token belongs to
	RemoteAccountName string `json:"github_username"`

	// Repository is the target repository as owner/name
	Repository string `json:"github_repo"`
}

// Complete reports whether every field a sync needs is present.
func (c Config) Complete() bool {
	return c.AccountUsername != "" && c.AccessToken != "" && c.Repository != ""
}

// Missing lists the names of the required fields that are empty.
func (c Config) Missing() []string {
	var missing []string

	if c.AccountUsername == "" {
		missing = append(missing, "codewars username")
	}

	if c.AccessToken == "" {
		missing = append(missing, "github token")
	}

	if c.Repository == "" {
		missing = append(missing, "repository")
	}

	return missing
}

// SplitRepository splits an owner/name identifier.
func SplitRepository(full string) (owner, name string, err error) {
	parts := strings.Split(strings.Trim(full, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", full)
	}

	return parts[0], parts[1], nil
}
