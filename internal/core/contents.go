package core

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/katasync/internal/model"
)

// Contents reads and writes files in a repository identified as owner/name.
type Contents interface {
	// Get returns the file at path, or ErrRemoteNotFound.
	Get(ctx context.Context, repo, path string) (*model.RemoteFile, error)
	// Put creates the file, or updates it when opts.SHA is set.
	Put(ctx context.Context, repo, path string, opts PutOptions) (*model.WriteResult, error)
}

// ContentsFactory builds a Contents bound to an access token.
type ContentsFactory func(ctx context.Context, token string) (Contents, error)

// PutOptions configures a single create-or-update request
type PutOptions struct {
	Message string
	Content string
	// SHA is the blob SHA of the file being replaced; empty creates the file
	SHA    string
	Author *CommitAuthor
}

// CommitAuthor names the author recorded on commits
type CommitAuthor struct {
	Name  string
	Email string
}

// GitHubContents implements Contents on the GitHub REST contents API.
type GitHubContents struct {
	client *github.Client
}

// NewGitHubContents wraps an authenticated client.
func NewGitHubContents(client *github.Client) *GitHubContents {
	return &GitHubContents{client: client}
}

// GitHubContentsFactory returns a ContentsFactory talking to baseURL
// (empty for api.github.com).
func GitHubContentsFactory(baseURL string) ContentsFactory {
	return func(ctx context.Context, token string) (Contents, error) {
		client, err := NewGitHubClient(ctx, token, baseURL)
		if err != nil {
			return nil, err
		}

		return NewGitHubContents(client), nil
	}
}

func (g *GitHubContents) Get(ctx context.Context, repo, path string) (*model.RemoteFile, error) {
	owner, name, err := model.SplitRepository(repo)
	if err != nil {
		return nil, err
	}

	file, _, resp, err := g.client.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRemoteNotFound
		}

		return nil, &RemoteError{Operation: "read", Path: path, StatusCode: statusOf(resp), Err: err}
	}

	if file == nil {
		return nil, &RemoteError{Operation: "read", Path: path, Err: errors.New("path is a directory")}
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, &RemoteError{Operation: "decode", Path: path, Err: err}
	}

	return &model.RemoteFile{
		Path:    file.GetPath(),
		Content: content,
		SHA:     file.GetSHA(),
		HTMLURL: file.GetHTMLURL(),
	}, nil
}

func (g *GitHubContents) Put(ctx context.Context, repo, path string, opts PutOptions) (*model.WriteResult, error) {
	owner, name, err := model.SplitRepository(repo)
	if err != nil {
		return nil, err
	}

	fileOpts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(opts.Message),
		Content: []byte(opts.Content),
	}

	if opts.Author != nil {
		fileOpts.Author = &github.CommitAuthor{
			Name:  github.Ptr(opts.Author.Name),
			Email: github.Ptr(opts.Author.Email),
		}
	}

	var (
		result *github.RepositoryContentResponse
		resp   *github.Response
	)

	if opts.SHA == "" {
		result, resp, err = g.client.Repositories.CreateFile(ctx, owner, name, path, fileOpts)
	} else {
		fileOpts.SHA = github.Ptr(opts.SHA)
		result, resp, err = g.client.Repositories.UpdateFile(ctx, owner, name, path, fileOpts)
	}

	if err != nil {
		return nil, &RemoteError{Operation: "write", Path: path, StatusCode: statusOf(resp), Err: err}
	}

	out := &model.WriteResult{
		Path:      path,
		CommitSHA: result.Commit.GetSHA(),
		CommitURL: result.Commit.GetHTMLURL(),
		Created:   opts.SHA == "",
	}

	if result.Content != nil {
		out.SHA = result.Content.GetSHA()
		out.HTMLURL = result.Content.GetHTMLURL()
	}

	return out, nil
}

func statusOf(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}

	return resp.StatusCode
}

// IsNotFound reports whether err means the remote file is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRemoteNotFound)
}
