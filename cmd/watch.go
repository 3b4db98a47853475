package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/katasync/internal/application"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
	"github.com/inovacc/katasync/internal/notify"
	"github.com/inovacc/katasync/internal/service"
	"github.com/inovacc/katasync/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Sync automatically whenever a solution is submitted",
	Long: `Watch the capture directory for page snapshots. A snapshot whose event is
"submit" triggers exactly one automatic sync using the stored token and
repository. Defaults to capture.dir from settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		dir := a.settings.CaptureDir
		if len(args) > 0 {
			dir = args[0]
		}

		if err := application.EnsureDir(dir); err != nil {
			return err
		}

		w, err := watch.New(watch.Options{
			Dir:     dir,
			Settle:  a.settings.WatchSettle,
			Trigger: a.autoSync,
			Logger:  a.logger,
		})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.out, "Watching %s for submitted katas (ctrl+c to stop)\n", dir)

		return w.Run(cmd.Context())
	}),
}

// autoSync runs one automatic sync and reports failures as notifications.
func (a *app) autoSync(ctx context.Context, tab *model.Tab) {
	_, err := a.svc.AutoSync(ctx, tab, nil)

	switch {
	case err == nil:
	case errors.Is(err, service.ErrAutoSyncSkipped):
	case errors.Is(err, core.ErrDuplicateContent):
		a.logger.Info("auto-sync: nothing to do", slog.String("url", tab.URL))
	default:
		a.notifier.Dispatch(ctx, notify.NewEvent(notify.EventError, "Codewars Sync", "Auto-sync failed").WithError(err.Error()))
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
