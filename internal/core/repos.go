package core

import (
	"context"
	"fmt"

	"github.com/google/go-github/v82/github"
)

// repoPageSize is the single page fetched when listing repositories
const repoPageSize = 100

// ListRepositories returns the full names (owner/name) of the authenticated
// user's repositories, most recently updated first. Only the first page of
// 100 is fetched.
func ListRepositories(ctx context.Context, client *github.Client) ([]string, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: repoPageSize},
	}

	repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, &RemoteError{Operation: "list repositories", Path: "/user/repos", StatusCode: statusOf(resp), Err: err}
	}

	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.GetFullName())
	}

	return names, nil
}

// AuthenticatedLogin returns the login of the token's owner.
func AuthenticatedLogin(ctx context.Context, client *github.Client) (string, error) {
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	return user.GetLogin(), nil
}
