// Package service exposes every user-facing Kata-Sync operation on top of
// the store, the sync workflow and the remote APIs. The CLI and the message
// server both go through it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/store"
)

// ErrAutoSyncSkipped is returned by AutoSync when no token or repository is stored
var ErrAutoSyncSkipped = errors.New("auto-sync skipped: configuration missing")

// AccountVerifier looks up a Codewars profile.
type AccountVerifier interface {
	GetUser(ctx context.Context, username string) (*model.Account, error)
}

// RepoLister lists the repositories a token can see.
type RepoLister func(ctx context.Context, token string) ([]string, error)

// Authorizer runs an interactive GitHub authorization.
type Authorizer func(ctx context.Context) (*core.OAuthResult, error)

// Options configures a Service
type Options struct {
	Store    store.Store
	Syncer   *core.Syncer
	Accounts AccountVerifier
	Repos    RepoLister
	Logger   *slog.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// Service is the Kata-Sync application facade.
type Service struct {
	store    store.Store
	syncer   *core.Syncer
	accounts AccountVerifier
	repos    RepoLister
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Service.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		store:    opts.Store,
		syncer:   opts.Syncer,
		accounts: opts.Accounts,
		repos:    opts.Repos,
		logger:   logger,
		now:      now,
	}
}

// GitHubRepoLister lists repositories through the REST API at baseURL.
func GitHubRepoLister(baseURL string) RepoLister {
	return func(ctx context.Context, token string) ([]string, error) {
		client, err := core.NewGitHubClient(ctx, token, baseURL)
		if err != nil {
			return nil, err
		}

		return core.ListRepositories(ctx, client)
	}
}

// Config returns the stored user configuration.
func (s *Service) Config() (*model.Config, error) {
	return store.LoadConfig(s.store)
}

// SaveConfig stores the non-empty fields of cfg.
func (s *Service) SaveConfig(cfg model.Config) error {
	if cfg.Repository != "" {
		if _, _, err := model.SplitRepository(cfg.Repository); err != nil {
			return err
		}
	}

	return store.SaveConfig(s.store, cfg)
}

// ResetConfig forgets the account, token and repository. History is kept.
func (s *Service) ResetConfig() error {
	return store.ResetConfig(s.store)
}

// VerifyAccount looks up a Codewars user and stores the username only when
// the account exists.
func (s *Service) VerifyAccount(ctx context.Context, username string) (*model.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("please enter a username")
	}

	account, err := s.accounts.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(store.KeyAccountUsername, account.Username); err != nil {
		return nil, fmt.Errorf("failed to save username: %w", err)
	}

	s.logger.Info("codewars account verified",
		slog.String("username", account.Username),
		slog.String("rank", account.Rank),
	)

	return account, nil
}

// Authorize runs the authorizer and stores the token and login it returns.
func (s *Service) Authorize(ctx context.Context, authorize Authorizer) (*core.OAuthResult, error) {
	result, err := authorize(ctx)
	if err != nil {
		return nil, err
	}

	if err := store.SaveConfig(s.store, model.Config{
		AccessToken:       result.Token,
		RemoteAccountName: result.Username,
	}); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	return result, nil
}

// ListRepositories lists the repositories visible to token, falling back
// to the stored token.
func (s *Service) ListRepositories(ctx context.Context, token string) ([]string, error) {
	if token == "" {
		cfg, err := s.Config()
		if err != nil {
			return nil, err
		}

		token = cfg.AccessToken
	}

	if token == "" {
		return nil, &core.ConfigError{Missing: []string{"github token"}}
	}

	return s.repos(ctx, token)
}

// CurrentKata extracts the solution from tab, or the active tab when nil.
func (s *Service) CurrentKata(ctx context.Context, tab *model.Tab) (*model.Solution, error) {
	return s.syncer.Extract(ctx, tab)
}

// Sync runs one manual sync. Empty token or repository fall back to the
// stored values.
func (s *Service) Sync(ctx context.Context, req core.SyncRequest) (*core.SyncResult, error) {
	if req.AccessToken == "" || req.Repository == "" {
		cfg, err := s.Config()
		if err != nil {
			return nil, err
		}

		if req.AccessToken == "" {
			req.AccessToken = cfg.AccessToken
		}

		if req.Repository == "" {
			req.Repository = cfg.Repository
		}
	}

	return s.syncer.Sync(ctx, req)
}

// AutoSync syncs a page right after its solution was submitted, using only
// the stored token and repository.
func (s *Service) AutoSync(ctx context.Context, tab *model.Tab, sol *model.Solution) (*core.SyncResult, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}

	if cfg.AccessToken == "" || cfg.Repository == "" {
		s.logger.Warn("auto-sync skipped: configuration missing")

		return nil, ErrAutoSyncSkipped
	}

	s.logger.Info("auto-sync triggered")

	return s.syncer.Sync(ctx, core.SyncRequest{
		AccessToken: cfg.AccessToken,
		Repository:  cfg.Repository,
		Automatic:   true,
		Tab:         tab,
		Solution:    sol,
	})
}

// History returns the local sync history, newest first.
func (s *Service) History() ([]model.SyncRecord, error) {
	return store.LoadHistory(s.store)
}

// ClearHistory deletes the local sync history.
func (s *Service) ClearHistory() error {
	return store.ClearHistory(s.store)
}

// Stats counts synced problems and the current daily streak.
func (s *Service) Stats() (model.Stats, error) {
	history, err := s.History()
	if err != nil {
		return model.Stats{}, err
	}

	return core.ComputeStats(history, s.now()), nil
}
