package cmd

import (
	"fmt"
	"time"

	"github.com/inovacc/katasync/internal/cli"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently synced katas",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		limit, _ := cmd.Flags().GetInt("limit")

		history, err := a.svc.History()
		if err != nil {
			return err
		}

		if limit > 0 && len(history) > limit {
			history = history[:limit]
		}

		if a.json {
			return a.printJSON(history)
		}

		cli.RenderHistory(a.out, history, time.Now())

		return nil
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the local sync history",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !promptConfirm("Clear sync history? [y/N]: ") {
			_, _ = fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}

		if err := a.svc.ClearHistory(); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(a.out, "History cleared.")

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntP("limit", "n", 0, "Show at most n entries")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
