package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/katasync/internal/application"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Sync Codewars solutions to GitHub",
	Long: `Kata-Sync publishes your Codewars kata solutions to a GitHub repository.

Each solution is written to codewars/<language>/<rank>/<title>.<ext>, a row is
appended to the repository README, and a local history powers stats and
daily streaks. Pages are read from captured snapshots or saved HTML, and a
watcher can sync automatically whenever a solution is submitted.`,
	SilenceUsage: true,
}

// Execute runs the root command; interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (logs go to stderr as JSON too)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
