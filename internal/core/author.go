package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// UserSection is the [user] block of a git config file
type UserSection struct {
	Name  string `ini:"name"`
	Email string `ini:"email"`
}

// GitAuthor reads the commit author from ~/.gitconfig. It returns nil, nil
// when the file or its [user] block is absent.
func GitAuthor() (*CommitAuthor, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return GitAuthorFromFile(filepath.Join(home, ".gitconfig"))
}

// GitAuthorFromFile reads the [user] name and email from a git config file.
func GitAuthorFromFile(path string) (*CommitAuthor, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var user UserSection
	if err := cfg.Section("user").MapTo(&user); err != nil {
		return nil, err
	}

	if user.Name == "" || user.Email == "" {
		return nil, nil
	}

	return &CommitAuthor{Name: user.Name, Email: user.Email}, nil
}
