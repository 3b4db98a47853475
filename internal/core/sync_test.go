package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/notify"
	"github.com/inovacc/katasync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContents is an in-memory repository.
type fakeContents struct {
	mu       sync.Mutex
	files    map[string]*model.RemoteFile
	getErr   map[string]error
	putErr   map[string]error
	messages []string
	gets     int
	puts     int
}

func newFakeContents() *fakeContents {
	return &fakeContents{
		files:  make(map[string]*model.RemoteFile),
		getErr: make(map[string]error),
		putErr: make(map[string]error),
	}
}

func (f *fakeContents) Get(_ context.Context, _, path string) (*model.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets++

	if err := f.getErr[path]; err != nil {
		return nil, err
	}

	file, ok := f.files[path]
	if !ok {
		return nil, ErrRemoteNotFound
	}

	copied := *file

	return &copied, nil
}

func (f *fakeContents) Put(_ context.Context, _, path string, opts PutOptions) (*model.WriteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts++

	if err := f.putErr[path]; err != nil {
		return nil, err
	}

	existing, ok := f.files[path]
	if ok && existing.SHA != opts.SHA {
		return nil, &RemoteError{Operation: "write", Path: path, StatusCode: 409, Err: errors.New("sha mismatch")}
	}

	sha := "sha-" + strings.Repeat("x", f.puts)
	f.files[path] = &model.RemoteFile{Path: path, Content: opts.Content, SHA: sha, HTMLURL: "https://github.com/octo/katas/blob/main/" + path}
	f.messages = append(f.messages, opts.Message)

	return &model.WriteResult{
		Path:      path,
		SHA:       sha,
		HTMLURL:   f.files[path].HTMLURL,
		CommitSHA: "commit-" + sha,
		Created:   opts.SHA == "",
	}, nil
}

func (f *fakeContents) factory() ContentsFactory {
	return func(context.Context, string) (Contents, error) { return f, nil }
}

type fakeExtractor struct {
	sol   *model.Solution
	err   error
	calls int
}

func (e *fakeExtractor) Extract(context.Context, *model.Tab) (*model.Solution, error) {
	e.calls++

	return e.sol, e.err
}

type fakeTabs struct {
	tab *model.Tab
	err error
}

func (f fakeTabs) ActiveTab(context.Context) (*model.Tab, error) { return f.tab, f.err }

type recordingNotifier struct {
	events []*notify.Event
}

func (r *recordingNotifier) Dispatch(_ context.Context, event *notify.Event) {
	r.events = append(r.events, event)
}

type syncFixture struct {
	store     store.Store
	contents  *fakeContents
	extractor *fakeExtractor
	notifier  *recordingNotifier
	syncer    *Syncer
	now       time.Time
}

func newSyncFixture(t *testing.T, configured bool) *syncFixture {
	t.Helper()

	st, err := store.NewBolt(filepath.Join(t.TempDir(), "sync.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })

	if configured {
		require.NoError(t, store.SaveConfig(st, model.Config{
			AccountUsername: "warrior",
			AccessToken:     "token",
			Repository:      "octo/katas",
		}))
	}

	f := &syncFixture{
		store:     st,
		contents:  newFakeContents(),
		extractor: &fakeExtractor{sol: sumArray},
		notifier:  &recordingNotifier{},
		now:       time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}

	f.syncer = NewSyncer(SyncerOptions{
		Store:     st,
		Tabs:      fakeTabs{tab: &model.Tab{URL: "https://www.codewars.com/kata/sum-array/train/python"}},
		Extractor: f.extractor,
		Contents:  f.contents.factory(),
		Notifier:  f.notifier,
		Now:       func() time.Time { return f.now },
	})

	return f
}

func (f *syncFixture) request() SyncRequest {
	return SyncRequest{AccessToken: "token", Repository: "octo/katas"}
}

func TestSync_Scenario(t *testing.T) {
	f := newSyncFixture(t, true)

	result, err := f.syncer.Sync(context.Background(), f.request())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.ReadmeUpdated)
	assert.True(t, result.HistorySaved)
	assert.Equal(t, "codewars/python/6-kyu/sum-array.py", result.FilePath)
	assert.Equal(t, sumArray.Code, f.contents.files[result.FilePath].Content)
	assert.Equal(t, "Sum Array", f.contents.messages[0])

	readme := f.contents.files["README.md"].Content
	assert.Equal(t, 1, strings.Count(readme, readmeSectionHeading))
	assert.Equal(t, 1, strings.Count(readme, "[Sum Array](https://www.codewars.com/kata/sum-array)"))

	history, err := store.LoadHistory(f.store)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "sum-array", history[0].ID)
	assert.Equal(t, "octo/katas", history[0].Repo)
	assert.Equal(t, result.FilePath, history[0].FilePath)
	assert.Empty(t, f.notifier.events)
}

func TestSync_MissingConfigFailsBeforeNetwork(t *testing.T) {
	f := newSyncFixture(t, false)

	_, err := f.syncer.Sync(context.Background(), SyncRequest{})
	require.ErrorIs(t, err, ErrConfigIncomplete)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "codewars username")

	assert.Zero(t, f.contents.gets)
	assert.Zero(t, f.contents.puts)
	assert.Zero(t, f.extractor.calls)
}

func TestSync_InvalidRepository(t *testing.T) {
	f := newSyncFixture(t, true)

	_, err := f.syncer.Sync(context.Background(), SyncRequest{AccessToken: "token", Repository: "not-a-repo"})
	require.ErrorIs(t, err, ErrConfigIncomplete)
	assert.Zero(t, f.contents.gets)
}

func TestSync_DuplicateContentSkipsWrite(t *testing.T) {
	f := newSyncFixture(t, true)
	path := "codewars/python/6-kyu/sum-array.py"
	f.contents.files[path] = &model.RemoteFile{Path: path, Content: "\n" + sumArray.Code + "   \n", SHA: "abc"}

	_, err := f.syncer.Sync(context.Background(), f.request())
	require.ErrorIs(t, err, ErrDuplicateContent)
	assert.Zero(t, f.contents.puts)

	history, err := store.LoadHistory(f.store)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSync_UpdatesExistingFile(t *testing.T) {
	f := newSyncFixture(t, true)
	path := "codewars/python/6-kyu/sum-array.py"
	f.contents.files[path] = &model.RemoteFile{Path: path, Content: "old", SHA: "abc"}

	result, err := f.syncer.Sync(context.Background(), f.request())
	require.NoError(t, err)
	assert.False(t, result.Write.Created)
	assert.Equal(t, sumArray.Code, f.contents.files[path].Content)
}

func TestSync_ReadmeFailureIsNotFatal(t *testing.T) {
	f := newSyncFixture(t, true)
	f.contents.putErr["README.md"] = &RemoteError{Operation: "write", Path: "README.md", StatusCode: 422, Err: errors.New("invalid")}

	result, err := f.syncer.Sync(context.Background(), f.request())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.ReadmeUpdated)

	history, err := store.LoadHistory(f.store)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSync_WriteFailure(t *testing.T) {
	f := newSyncFixture(t, true)
	path := "codewars/python/6-kyu/sum-array.py"
	f.contents.putErr[path] = &RemoteError{Operation: "write", Path: path, StatusCode: 403, Err: errors.New("forbidden")}

	_, err := f.syncer.Sync(context.Background(), f.request())

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 403, remoteErr.StatusCode)
	assert.NotContains(t, f.contents.files, "README.md")
}

func TestSync_AutomaticNotifies(t *testing.T) {
	f := newSyncFixture(t, true)

	req := f.request()
	req.Automatic = true

	_, err := f.syncer.Sync(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notify.EventAutoSync, f.notifier.events[0].Type)
	assert.Contains(t, f.notifier.events[0].Message, `"Sum Array"`)
}

func TestSync_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name    string
		tabs    TabResolver
		sol     *model.Solution
		extErr  error
		wantErr error
	}{
		{"no tab", fakeTabs{}, sumArray, nil, ErrNoActiveTab},
		{"other site", fakeTabs{tab: &model.Tab{URL: "https://example.com/kata"}}, sumArray, nil, ErrNotPlatformPage},
		{"lookalike host", fakeTabs{tab: &model.Tab{URL: "https://notcodewars.com/kata"}}, sumArray, nil, ErrNotPlatformPage},
		{"nothing extracted", fakeTabs{tab: &model.Tab{URL: "https://www.codewars.com/kata/x"}}, nil, nil, ErrExtractionFailed},
		{"blank code", fakeTabs{tab: &model.Tab{URL: "https://www.codewars.com/kata/x"}}, &model.Solution{Title: "x", Code: "  \n"}, nil, ErrNoSolutionCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t, true)
			f.syncer.opts.Tabs = tt.tabs
			f.extractor.sol = tt.sol
			f.extractor.err = tt.extErr

			_, err := f.syncer.Sync(context.Background(), f.request())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.contents.puts)
		})
	}
}

func TestSync_ExtractorErrorWrapsConnection(t *testing.T) {
	f := newSyncFixture(t, true)
	f.extractor.err = errors.New("receiving end does not exist")

	_, err := f.syncer.Sync(context.Background(), f.request())

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, err.Error(), "reload the Codewars page")
}

func TestSync_ProvidedSolutionSkipsExtraction(t *testing.T) {
	f := newSyncFixture(t, true)

	req := f.request()
	req.Solution = &model.Solution{Title: "Multiply", Language: "go", Rank: "8 kyu", Code: "package kata"}

	result, err := f.syncer.Sync(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "codewars/go/8-kyu/multiply.go", result.FilePath)
	assert.Zero(t, f.extractor.calls)
	assert.NotEmpty(t, result.Record.ID)
	assert.NotEqual(t, model.UnknownSlug, result.Record.ID)
	assert.Equal(t, "8-kyu", result.Record.Rank)

	readme := f.contents.files["README.md"].Content
	assert.Contains(t, readme, "| [Multiply](https://www.codewars.com/kata/unknown-kata) | 8-kyu | go |")
	assert.NotContains(t, readme, "8 kyu")
	assert.Equal(t, "Multiply", req.Solution.Title, "caller's solution is left alone")
	assert.Equal(t, "8 kyu", req.Solution.Rank)
}

// failingHistoryStore refuses to write the sync history.
type failingHistoryStore struct {
	store.Store
}

func (s failingHistoryStore) Set(key, value string) error {
	if key == store.KeySyncHistory {
		return errors.New("disk full")
	}

	return s.Store.Set(key, value)
}

func TestSync_HistoryFailureIsNotFatal(t *testing.T) {
	f := newSyncFixture(t, true)
	f.syncer.opts.Store = failingHistoryStore{Store: f.store}

	result, err := f.syncer.Sync(context.Background(), f.request())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.ReadmeUpdated)
	assert.False(t, result.HistorySaved)
	assert.Equal(t, 2, f.contents.puts)
	assert.Contains(t, f.contents.files, "codewars/python/6-kyu/sum-array.py")
}

func TestIsPlatformURL(t *testing.T) {
	assert.True(t, IsPlatformURL("https://www.codewars.com/kata/abc"))
	assert.True(t, IsPlatformURL("https://codewars.com/"))
	assert.False(t, IsPlatformURL("https://codewars.com.evil.io/"))
	assert.False(t, IsPlatformURL("::bad"))
}

func TestSync_WrappedNotFoundCreatesFiles(t *testing.T) {
	f := newSyncFixture(t, true)
	path := "codewars/python/6-kyu/sum-array.py"
	f.contents.getErr[path] = fmt.Errorf("lookup %s: %w", path, ErrRemoteNotFound)
	f.contents.getErr["README.md"] = fmt.Errorf("lookup README.md: %w", ErrRemoteNotFound)

	result, err := f.syncer.Sync(context.Background(), f.request())
	require.NoError(t, err)
	assert.True(t, result.Write.Created)
	assert.True(t, result.ReadmeUpdated)
	assert.Contains(t, f.contents.files["README.md"].Content, readmeSectionHeading)
}
