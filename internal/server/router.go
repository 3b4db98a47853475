package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/service"
)

// Message actions
const (
	ActionGetKataData       = "GET_KATA_DATA"
	ActionAuthGitHub        = "AUTH_GITHUB"
	ActionVerifyUser        = "VERIFY_USER"
	ActionFetchRepos        = "FETCH_REPOS"
	ActionGetStats          = "GET_STATS"
	ActionSyncKata          = "SYNC_KATA"
	ActionAutoSyncTriggered = "AUTO_SYNC_TRIGGERED"
	ActionGetHistory        = "GET_HISTORY"
	ActionClearHistory      = "CLEAR_HISTORY"
	ActionGetConfig         = "GET_CONFIG"
	ActionSaveConfig        = "SAVE_CONFIG"
	ActionResetConfig       = "RESET_CONFIG"
)

// ErrUnknownAction is returned for an unrecognized action name
var ErrUnknownAction = errors.New("unknown action")

// Request is the message envelope. Only the fields an action needs are read.
type Request struct {
	Action   string          `json:"action"`
	Username string          `json:"username,omitempty"`
	Token    string          `json:"token,omitempty"`
	Repo     string          `json:"repo,omitempty"`
	URL      string          `json:"url,omitempty"`
	HTML     string          `json:"html,omitempty"`
	KataData *model.Solution `json:"kataData,omitempty"`
}

// Response is the reply envelope
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// configView is the stored configuration as reported to clients
type configView struct {
	CodewarsUsername string `json:"codewarsUsername,omitempty"`
	GitHubUsername   string `json:"githubUsername,omitempty"`
	GitHubRepo       string `json:"githubRepo,omitempty"`
	HasToken         bool   `json:"hasToken"`
	Complete         bool   `json:"complete"`
}

// Router dispatches message actions to the service. Every call is
// independent.
type Router struct {
	svc       *service.Service
	authorize service.Authorizer
	logger    *slog.Logger
}

// NewRouter creates a Router. authorize may be nil, in which case
// AUTH_GITHUB fails.
func NewRouter(svc *service.Service, authorize service.Authorizer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{svc: svc, authorize: authorize, logger: logger}
}

// Handle runs one action and wraps the outcome in a Response.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	data, err := r.dispatch(ctx, req)
	if err != nil {
		r.logger.Debug("action failed",
			slog.String("action", req.Action),
			slog.String("error", err.Error()),
		)

		return Response{Success: false, Error: err.Error()}
	}

	return Response{Success: true, Data: data}
}

func (r *Router) dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Action {
	case ActionGetKataData:
		return r.svc.CurrentKata(ctx, req.tab())

	case ActionAuthGitHub:
		if r.authorize == nil {
			return nil, &core.AuthError{Description: "no authorization flow configured"}
		}

		result, err := r.svc.Authorize(ctx, r.authorize)
		if err != nil {
			return nil, err
		}

		return map[string]string{"username": result.Username}, nil

	case ActionVerifyUser:
		return r.svc.VerifyAccount(ctx, req.Username)

	case ActionFetchRepos:
		return r.svc.ListRepositories(ctx, req.Token)

	case ActionGetStats:
		return r.svc.Stats()

	case ActionSyncKata:
		return r.svc.Sync(ctx, core.SyncRequest{
			AccessToken: req.Token,
			Repository:  req.Repo,
			Tab:         req.tab(),
			Solution:    req.KataData,
		})

	case ActionAutoSyncTriggered:
		return r.svc.AutoSync(ctx, req.tab(), req.KataData)

	case ActionGetHistory:
		return r.svc.History()

	case ActionClearHistory:
		return nil, r.svc.ClearHistory()

	case ActionGetConfig:
		cfg, err := r.svc.Config()
		if err != nil {
			return nil, err
		}

		return configView{
			CodewarsUsername: cfg.AccountUsername,
			GitHubUsername:   cfg.RemoteAccountName,
			GitHubRepo:       cfg.Repository,
			HasToken:         cfg.AccessToken != "",
			Complete:         cfg.Complete(),
		}, nil

	case ActionSaveConfig:
		return nil, r.svc.SaveConfig(model.Config{
			AccountUsername: req.Username,
			AccessToken:     req.Token,
			Repository:      req.Repo,
		})

	case ActionResetConfig:
		return nil, r.svc.ResetConfig()

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

// tab returns the page carried by the request, or nil for the active tab.
func (req Request) tab() *model.Tab {
	if req.URL == "" && req.HTML == "" {
		return nil
	}

	return &model.Tab{URL: req.URL, HTML: req.HTML}
}
