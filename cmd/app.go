package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inovacc/katasync/internal/codewars"
	"github.com/inovacc/katasync/internal/config"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/extract"
	"github.com/inovacc/katasync/internal/notify"
	"github.com/inovacc/katasync/internal/service"
	"github.com/inovacc/katasync/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds everything a command needs, built from settings once per run.
type app struct {
	settings *config.Settings
	store    store.Store
	svc      *service.Service
	notifier *notify.Dispatcher
	logger   *slog.Logger
	json     bool
	out      io.Writer
}

// newLogger creates a logger for commands.
// Uses JSON handler when JSON output is enabled, text otherwise.
func newLogger(jsonOutput, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	if jsonOutput {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newApp(cmd *cobra.Command) (*app, error) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := newLogger(jsonOutput, verbose)
	slog.SetDefault(logger)

	settings, err := config.Load(viper.New(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	st, err := store.Open(settings.StorageDriver, settings.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	dispatcher := notify.NewDispatcher(logger)
	dispatcher.Register(notify.NewConsoleSender(os.Stderr))

	if settings.SlackWebhook != "" {
		dispatcher.Register(notify.NewSlackSender(settings.SlackWebhook))
	}

	var author *core.CommitAuthor

	if settings.UseGitAuthor {
		author, err = core.GitAuthor()
		if err != nil {
			logger.Warn("failed to read git author, committing as token owner", slog.String("error", err.Error()))
		}
	}

	syncer := core.NewSyncer(core.SyncerOptions{
		Store:        st,
		Tabs:         extract.SnapshotDir{Dir: settings.CaptureDir},
		Extractor:    extract.New(logger),
		Contents:     core.GitHubContentsFactory(settings.GitHubAPIURL),
		Notifier:     dispatcher,
		Logger:       logger,
		Root:         settings.SyncRoot,
		ReadmePath:   settings.ReadmePath,
		HistoryLimit: settings.HistoryLimit,
		SettleDelay:  settings.SettleDelay,
		Author:       author,
	})

	svc := service.New(service.Options{
		Store:  st,
		Syncer: syncer,
		Accounts: codewars.NewClient(codewars.ClientOptions{
			BaseURL: settings.CodewarsAPIURL,
			Logger:  logger,
		}),
		Repos:  service.GitHubRepoLister(settings.GitHubAPIURL),
		Logger: logger,
	})

	return &app{
		settings: settings,
		store:    st,
		svc:      svc,
		notifier: dispatcher,
		logger:   logger,
		json:     jsonOutput,
		out:      cmd.OutOrStdout(),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", slog.String("error", err.Error()))
	}
}

// printJSON writes v as indented JSON to stdout.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// withApp builds the app for a command and closes it afterwards.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		defer a.Close()

		return run(cmd, args, a)
	}
}
