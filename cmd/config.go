package cmd

import (
	"fmt"

	"github.com/inovacc/katasync/internal/cli"
	"github.com/inovacc/katasync/internal/model"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the Codewars account, GitHub token and target repository",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored configuration",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ *cobra.Command, _ []string, a *app) error {
		cfg, err := a.svc.Config()
		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(map[string]any{
				"codewars_username": cfg.AccountUsername,
				"github_username":   cfg.RemoteAccountName,
				"github_repo":       cfg.Repository,
				"has_token":         cfg.AccessToken != "",
				"missing":           cfg.Missing(),
			})
		}

		cli.RenderConfig(a.out, cfg)

		return nil
	}),
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store configuration values",
	Long: `Store one or more configuration values. Empty flags leave the stored value
unchanged. Pass --token - to type the token without echo.

Examples:
  katasync config set --repo octocat/codewars
  katasync config set --token -
  katasync config set --username warrior --repo octocat/codewars`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		username, _ := cmd.Flags().GetString("username")
		token, _ := cmd.Flags().GetString("token")
		repo, _ := cmd.Flags().GetString("repo")

		if token == "-" {
			var err error

			token, err = readSecret("GitHub token: ", cmd.InOrStdin())
			if err != nil {
				return err
			}
		}

		if username == "" && token == "" && repo == "" {
			return fmt.Errorf("nothing to set: use --username, --token or --repo")
		}

		if err := a.svc.SaveConfig(model.Config{
			AccountUsername: username,
			AccessToken:     token,
			Repository:      repo,
		}); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(a.out, "Configuration saved.")

		return nil
	}),
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the account, token and repository (history is kept)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !promptConfirm("Reset configuration? [y/N]: ") {
			_, _ = fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}

		if err := a.svc.ResetConfig(); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(a.out, "Configuration reset.")

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd)

	configSetCmd.Flags().String("username", "", "Codewars username (not verified; use 'katasync verify' to check it)")
	configSetCmd.Flags().String("token", "", "GitHub token, or - to read it from stdin")
	configSetCmd.Flags().String("repo", "", "Target repository as owner/name")

	configResetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
