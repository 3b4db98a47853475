package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/katasync/internal/cli"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/extract"
	"github.com/inovacc/katasync/internal/model"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish the current kata solution to GitHub",
	Long: `Extract the solution from a kata page and commit it to the target repository.

The page is, in order of preference:
  --page <file>              a captured snapshot (JSON with url and html)
  --html <file> --url <url>  a saved HTML page and the address it came from
  (neither)                  the newest snapshot in the capture directory

Examples:
  katasync sync
  katasync sync --page ~/captures/sum-array.json
  katasync sync --html sum-array.html --url https://www.codewars.com/kata/sum-array/train/python`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		tokenFlag, _ := cmd.Flags().GetString("token")
		repo, _ := cmd.Flags().GetString("repo")

		tab, err := tabFromFlags(cmd)
		if err != nil {
			return err
		}

		// No token at all is reported by the sync itself as missing configuration.
		token, _, _ := core.ResolveGitHubToken(tokenFlag, a.store)

		result, err := a.svc.Sync(cmd.Context(), core.SyncRequest{
			AccessToken: token,
			Repository:  repo,
			Tab:         tab,
		})
		if errors.Is(err, core.ErrDuplicateContent) {
			_, _ = fmt.Fprintln(a.out, "Already up to date: "+err.Error())
			return nil
		}

		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(result)
		}

		cli.RenderSyncResult(a.out, result)

		return nil
	}),
}

func tabFromFlags(cmd *cobra.Command) (*model.Tab, error) {
	page, _ := cmd.Flags().GetString("page")
	htmlFile, _ := cmd.Flags().GetString("html")
	pageURL, _ := cmd.Flags().GetString("url")

	switch {
	case page != "":
		return extract.LoadSnapshot(page)
	case htmlFile != "":
		if pageURL == "" {
			return nil, fmt.Errorf("--url is required with --html")
		}

		return extract.LoadHTML(htmlFile, pageURL)
	default:
		return nil, nil
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("page", "", "Captured page snapshot (JSON)")
	syncCmd.Flags().String("html", "", "Saved kata page (HTML)")
	syncCmd.Flags().String("url", "", "Address of the page given with --html")
	syncCmd.Flags().String("token", "", "GitHub token (defaults to the stored token)")
	syncCmd.Flags().String("repo", "", "Target repository as owner/name (defaults to the stored repository)")

	syncCmd.MarkFlagsMutuallyExclusive("page", "html")
}
