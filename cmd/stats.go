package cmd

import (
	"github.com/inovacc/katasync/internal/cli"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of synced katas and your daily streak",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ *cobra.Command, _ []string, a *app) error {
		stats, err := a.svc.Stats()
		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(stats)
		}

		cli.RenderStats(a.out, stats)

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
