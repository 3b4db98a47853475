package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/notify"
	"github.com/inovacc/katasync/internal/store"
)

// platformHost is the domain a page must belong to
const platformHost = "codewars.com"

// TabResolver finds the page the user is currently looking at.
// It returns nil, nil when there is none.
type TabResolver interface {
	ActiveTab(ctx context.Context) (*model.Tab, error)
}

// Extractor reads a Solution from a page. A nil Solution with a nil error
// means the page could not be parsed.
type Extractor interface {
	Extract(ctx context.Context, tab *model.Tab) (*model.Solution, error)
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Dispatch(ctx context.Context, event *notify.Event)
}

// SyncRequest starts one sync
type SyncRequest struct {
	AccessToken string
	Repository  string
	Automatic   bool

	// Tab overrides the TabResolver
	Tab *model.Tab

	// Solution skips tab resolution and extraction entirely
	Solution *model.Solution
}

// SyncResult reports a completed sync
type SyncResult struct {
	Success       bool               `json:"success"`
	FilePath      string             `json:"filePath"`
	ReadmeUpdated bool               `json:"readmeUpdated"`
	HistorySaved  bool               `json:"historySaved"`
	Write         *model.WriteResult `json:"write,omitempty"`
	Record        *model.SyncRecord  `json:"record,omitempty"`
}

// SyncerOptions configures a Syncer
type SyncerOptions struct {
	Store     store.Store
	Tabs      TabResolver
	Extractor Extractor
	Contents  ContentsFactory
	Notifier  Notifier
	Logger    *slog.Logger

	Root         string
	ReadmePath   string
	HistoryLimit int
	SettleDelay  time.Duration
	Author       *CommitAuthor

	// Now defaults to time.Now
	Now func() time.Time
}

// Syncer publishes extracted solutions to the configured repository.
type Syncer struct {
	opts   SyncerOptions
	logger *slog.Logger
}

// NewSyncer creates a Syncer, filling in defaults for empty options.
func NewSyncer(opts SyncerOptions) *Syncer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Root == "" {
		opts.Root = "codewars"
	}

	if opts.ReadmePath == "" {
		opts.ReadmePath = "README.md"
	}

	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = model.HistoryLimit
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Syncer{opts: opts, logger: logger}
}

// Sync runs the full workflow: resolve the page, extract the solution,
// write it unless the remote copy is identical, append a README row,
// record local history and notify on automatic syncs.
func (s *Syncer) Sync(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	if err := s.checkConfig(req); err != nil {
		return nil, err
	}

	sol := req.Solution
	if sol == nil {
		var err error

		sol, err = s.Extract(ctx, req.Tab)
		if err != nil {
			return nil, err
		}
	}

	if !sol.HasCode() {
		return nil, ErrNoSolutionCode
	}

	// pre-extracted payloads bypass the extractor's cleanup
	sol = sol.Normalized()

	filePath := SolutionPath(s.opts.Root, sol.Language, sol.Rank, sol.Title)

	logger := s.logger.With(
		slog.String("repo", req.Repository),
		slog.String("path", filePath),
	)

	contents, err := s.opts.Contents(ctx, req.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	write, err := s.push(ctx, contents, req.Repository, filePath, sol)
	if err != nil {
		return nil, err
	}

	logger.Info("solution pushed",
		slog.String("commit", write.CommitSHA),
		slog.Bool("created", write.Created),
	)

	now := s.opts.Now()

	readmeUpdated := true
	if err := UpdateReadme(ctx, contents, req.Repository, s.opts.ReadmePath, sol, filePath, now); err != nil {
		readmeUpdated = false

		logger.Warn("failed to update README",
			slog.String("readme", s.opts.ReadmePath),
			slog.String("error", err.Error()),
		)
	}

	record := model.SyncRecord{
		ID:        sol.Slug,
		Title:     sol.Title,
		Rank:      sol.Rank,
		Language:  sol.Language,
		Timestamp: now,
		Repo:      req.Repository,
		FilePath:  filePath,
		URL:       write.HTMLURL,
	}

	if record.ID == model.UnknownSlug {
		record.ID = uuid.New().String()
	}

	historySaved := true
	if _, err := store.AppendHistory(s.opts.Store, record, s.opts.HistoryLimit); err != nil {
		historySaved = false

		logger.Warn("failed to save sync history", slog.String("error", err.Error()))
	}

	if req.Automatic && s.opts.Notifier != nil {
		s.opts.Notifier.Dispatch(ctx, &notify.Event{
			Type:       notify.EventAutoSync,
			Title:      "Codewars Sync",
			Message:    fmt.Sprintf("Auto-synced %q to GitHub!", sol.Title),
			Repository: req.Repository,
			URL:        write.HTMLURL,
			Timestamp:  now,
			Success:    true,
		})
	}

	return &SyncResult{
		Success:       true,
		FilePath:      filePath,
		ReadmeUpdated: readmeUpdated,
		HistorySaved:  historySaved,
		Write:         write,
		Record:        &record,
	}, nil
}

// checkConfig runs before any page or network access.
func (s *Syncer) checkConfig(req SyncRequest) error {
	cfg, err := store.LoadConfig(s.opts.Store)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.AccessToken = req.AccessToken
	cfg.Repository = req.Repository

	if missing := cfg.Missing(); len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if _, _, err := model.SplitRepository(req.Repository); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigIncomplete, err)
	}

	return nil
}

// Extract resolves the page (tab, or the active tab when nil), checks it
// is a Codewars page and extracts the solution from it.
func (s *Syncer) Extract(ctx context.Context, tab *model.Tab) (*model.Solution, error) {
	if tab == nil && s.opts.Tabs != nil {
		var err error

		tab, err = s.opts.Tabs.ActiveTab(ctx)
		if err != nil {
			return nil, &ExtractionError{Err: err}
		}
	}

	if tab == nil {
		return nil, ErrNoActiveTab
	}

	if !IsPlatformURL(tab.URL) {
		return nil, ErrNotPlatformPage
	}

	if s.opts.SettleDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.opts.SettleDelay):
		}
	}

	sol, err := s.opts.Extractor.Extract(ctx, tab)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	if sol == nil {
		return nil, ErrExtractionFailed
	}

	return sol, nil
}

// push writes the solution unless the remote file already holds it.
func (s *Syncer) push(ctx context.Context, contents Contents, repo, filePath string, sol *model.Solution) (*model.WriteResult, error) {
	var sha string

	existing, err := contents.Get(ctx, repo, filePath)

	switch {
	case err == nil:
		if strings.TrimSpace(existing.Content) == strings.TrimSpace(sol.Code) {
			return nil, ErrDuplicateContent
		}

		sha = existing.SHA
	case IsNotFound(err):
	default:
		return nil, fmt.Errorf("failed to check existing file: %w", err)
	}

	message := sol.Title
	if message == "" {
		message = "Add " + filePath
	}

	return contents.Put(ctx, repo, filePath, PutOptions{
		Message: message,
		Content: sol.Code,
		SHA:     sha,
		Author:  s.opts.Author,
	})
}

// IsPlatformURL reports whether raw points at codewars.com or a subdomain.
func IsPlatformURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())

	return host == platformHost || strings.HasSuffix(host, "."+platformHost)
}
