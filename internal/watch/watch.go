// Package watch turns captured submit snapshots into automatic syncs.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/inovacc/katasync/internal/extract"
	"github.com/inovacc/katasync/internal/model"
)

// DefaultSettle is how long a snapshot must stay unchanged before it is read
const DefaultSettle = 50 * time.Millisecond

// Trigger handles one submitted page.
type Trigger func(ctx context.Context, tab *model.Tab)

// Options configures a Watcher
type Options struct {
	Dir     string
	Settle  time.Duration
	Trigger Trigger
	Logger  *slog.Logger
}

// Watcher watches a capture directory and fires Trigger once per submit
// capture. A file may be reused for later captures: it fires again when its
// captured_at changes (or, without captured_at, its URL or HTML), but never
// twice for the same capture however often it is rewritten.
type Watcher struct {
	opts   Options
	logger *slog.Logger

	// fired maps a snapshot path to the key of the capture that fired last
	fired   map[string]string
	pending map[string]*time.Timer
	ready   chan string
	wg      sync.WaitGroup
}

// New validates opts and creates a Watcher.
func New(opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, errors.New("watch directory is required")
	}

	if opts.Trigger == nil {
		return nil, errors.New("trigger is required")
	}

	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		opts:    opts,
		logger:  logger.With(slog.String("dir", opts.Dir)),
		fired:   make(map[string]string),
		pending: make(map[string]*time.Timer),
		ready:   make(chan string),
	}, nil
}

// Run blocks until ctx is cancelled, then waits for running triggers.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Dir, err)
	}

	w.logger.Info("watching for submitted katas", slog.Duration("settle", w.opts.Settle))

	defer w.wg.Wait()
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			w.handleEvent(ctx, event)

		case path := <-w.ready:
			delete(w.pending, path)
			w.handleReady(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return
	}

	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(w.opts.Settle)
		return
	}

	path := event.Name
	w.pending[path] = time.AfterFunc(w.opts.Settle, func() {
		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) handleReady(ctx context.Context, path string) {
	tab, err := extract.LoadSnapshot(path)
	if err != nil {
		// Possibly still being written; the next write event retries.
		w.logger.Debug("snapshot not readable yet", slog.String("file", path), slog.String("error", err.Error()))
		return
	}

	if tab.Event != model.EventSubmit {
		return
	}

	key := captureKey(tab)
	if w.fired[path] == key {
		return
	}

	w.fired[path] = key

	w.logger.Info("submit detected, triggering auto-sync", slog.String("file", filepath.Base(path)))

	w.wg.Go(func() {
		w.opts.Trigger(ctx, tab)
	})
}

func (w *Watcher) stopTimers() {
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func captureKey(tab *model.Tab) string {
	if !tab.CapturedAt.IsZero() {
		return tab.CapturedAt.UTC().Format(time.RFC3339Nano)
	}

	sum := sha256.Sum256([]byte(tab.URL + "\x00" + tab.HTML))

	return hex.EncodeToString(sum[:])
}
