package cmd

import (
	"fmt"

	"github.com/inovacc/katasync/internal/cli"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List your GitHub repositories, optionally picking the sync target",
	Long: `List the 100 most recently updated repositories of the authenticated user.

With --pick an interactive list is shown and the chosen repository becomes
the sync target.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		tokenFlag, _ := cmd.Flags().GetString("token")
		pick, _ := cmd.Flags().GetBool("pick")

		token, _, err := core.ResolveGitHubToken(tokenFlag, a.store)
		if err != nil {
			return err
		}

		repos, err := a.svc.ListRepositories(cmd.Context(), token)
		if err != nil {
			return err
		}

		if !pick {
			if a.json {
				return a.printJSON(repos)
			}

			for _, repo := range repos {
				_, _ = fmt.Fprintln(a.out, repo)
			}

			return nil
		}

		cfg, err := a.svc.Config()
		if err != nil {
			return err
		}

		selected, err := cli.PickRepository(repos, cfg.Repository)
		if err != nil {
			return err
		}

		if selected == "" {
			_, _ = fmt.Fprintln(a.out, "No repository selected.")
			return nil
		}

		if err := a.svc.SaveConfig(model.Config{Repository: selected}); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.out, "Sync target set to %s\n", selected)

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(reposCmd)

	reposCmd.Flags().String("token", "", "GitHub token (defaults to the stored token, env or gh CLI)")
	reposCmd.Flags().Bool("pick", false, "Pick the sync target interactively")
}
