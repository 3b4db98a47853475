package service

import (
	"context"
	"testing"
	"time"

	"github.com/inovacc/katasync/internal/codewars"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts map[string]*model.Account

func (f fakeAccounts) GetUser(_ context.Context, username string) (*model.Account, error) {
	if account, ok := f[username]; ok {
		return account, nil
	}

	return nil, codewars.ErrUserNotFound
}

type memContents struct {
	files map[string]string
	puts  int
}

func (m *memContents) Get(_ context.Context, _, path string) (*model.RemoteFile, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, core.ErrRemoteNotFound
	}

	return &model.RemoteFile{Path: path, Content: content, SHA: "sha-" + path}, nil
}

func (m *memContents) Put(_ context.Context, _, path string, opts core.PutOptions) (*model.WriteResult, error) {
	m.puts++
	m.files[path] = opts.Content

	return &model.WriteResult{Path: path, SHA: "sha-" + path, Created: opts.SHA == ""}, nil
}

type fixture struct {
	svc      *Service
	store    store.Store
	contents *memContents
	tokens   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.Open(store.DriverBolt, t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{store: st, contents: &memContents{files: map[string]string{}}}

	syncer := core.NewSyncer(core.SyncerOptions{
		Store: st,
		Contents: func(context.Context, string) (core.Contents, error) {
			return f.contents, nil
		},
	})

	f.svc = New(Options{
		Store:    st,
		Syncer:   syncer,
		Accounts: fakeAccounts{"warrior": {Username: "warrior", Rank: "5 kyu", Honor: 321}},
		Repos: func(_ context.Context, token string) ([]string, error) {
			f.tokens = append(f.tokens, token)
			return []string{"octo/katas"}, nil
		},
		Now: func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local) },
	})

	return f
}

func TestVerifyAccount_NotFoundLeavesConfigUnset(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.VerifyAccount(context.Background(), "nobody")
	require.ErrorIs(t, err, codewars.ErrUserNotFound)

	cfg, err := f.svc.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg.AccountUsername)
}

func TestVerifyAccount_SavesUsername(t *testing.T) {
	f := newFixture(t)

	account, err := f.svc.VerifyAccount(context.Background(), "  warrior ")
	require.NoError(t, err)
	assert.Equal(t, "5 kyu", account.Rank)

	cfg, err := f.svc.Config()
	require.NoError(t, err)
	assert.Equal(t, "warrior", cfg.AccountUsername)
}

func TestVerifyAccount_EmptyUsername(t *testing.T) {
	_, err := newFixture(t).svc.VerifyAccount(context.Background(), " ")
	require.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Authorize(context.Background(), func(context.Context) (*core.OAuthResult, error) {
		return &core.OAuthResult{Token: "gho_abc", Username: "octo"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "octo", result.Username)

	cfg, err := f.svc.Config()
	require.NoError(t, err)
	assert.Equal(t, "gho_abc", cfg.AccessToken)
	assert.Equal(t, "octo", cfg.RemoteAccountName)
}

func TestAuthorize_FailureStoresNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authorize(context.Background(), func(context.Context) (*core.OAuthResult, error) {
		return nil, &core.AuthError{Description: "access_denied"}
	})

	var authErr *core.AuthError
	require.ErrorAs(t, err, &authErr)

	cfg, err := f.svc.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg.AccessToken)
}

func TestListRepositories(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListRepositories(context.Background(), "")
	require.ErrorIs(t, err, core.ErrConfigIncomplete)

	require.NoError(t, f.svc.SaveConfig(model.Config{AccessToken: "stored"}))

	repos, err := f.svc.ListRepositories(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"octo/katas"}, repos)

	_, err = f.svc.ListRepositories(context.Background(), "explicit")
	require.NoError(t, err)
	assert.Equal(t, []string{"stored", "explicit"}, f.tokens)
}

func TestSaveConfig_RejectsBadRepository(t *testing.T) {
	err := newFixture(t).svc.SaveConfig(model.Config{Repository: "no-slash"})
	require.Error(t, err)
}

func TestAutoSync_SkippedWithoutConfig(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AutoSync(context.Background(), nil, &model.Solution{Title: "x", Code: "y"})
	require.ErrorIs(t, err, ErrAutoSyncSkipped)
	assert.Zero(t, f.contents.puts)
}

func TestSyncThenStatsAndHistory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.SaveConfig(model.Config{
		AccountUsername: "warrior",
		AccessToken:     "token",
		Repository:      "octo/katas",
	}))

	sol := &model.Solution{Title: "Sum Array", Slug: "sum-array", Language: "python", Rank: "6 kyu", Code: "def f(): pass"}

	result, err := f.svc.AutoSync(context.Background(), nil, sol)
	require.NoError(t, err)
	assert.Equal(t, "codewars/python/6-kyu/sum-array.py", result.FilePath)

	_, err = f.svc.Sync(context.Background(), core.SyncRequest{Solution: sol})
	require.ErrorIs(t, err, core.ErrDuplicateContent)

	history, err := f.svc.History()
	require.NoError(t, err)
	require.Len(t, history, 1)

	stats, err := f.svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ProblemsSolved)

	require.NoError(t, f.svc.ClearHistory())

	stats, err = f.svc.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.ProblemsSolved)
}

func TestResetConfigKeepsHistory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.SaveConfig(model.Config{AccountUsername: "warrior", AccessToken: "t", Repository: "o/r"}))

	_, err := store.AppendHistory(f.store, model.SyncRecord{ID: "x"}, 0)
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetConfig())

	cfg, err := f.svc.Config()
	require.NoError(t, err)
	assert.False(t, cfg.Complete())

	history, err := f.svc.History()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGitHubRepoLister(t *testing.T) {
	lister := GitHubRepoLister("::bad")
	_, err := lister(context.Background(), "token")
	require.Error(t, err)
}
