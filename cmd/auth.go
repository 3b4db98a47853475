package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cli/browser"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/service"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with GitHub",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Kata-Sync to write to your repositories",
	Long: `Authorize with GitHub using OAuth and store the resulting token.

By default the browser is sent to GitHub's authorization page and a local
callback server receives the code. With --device a one-time code is shown
instead, which works on headless machines.

Both flows need an OAuth app configured in settings (oauth.client_id, and
oauth.client_secret for the browser flow).`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		device, _ := cmd.Flags().GetBool("device")

		result, err := a.svc.Authorize(cmd.Context(), a.authorizer(device))
		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(map[string]any{"username": result.Username, "scopes": result.Scopes})
		}

		_, _ = fmt.Fprintf(a.out, "Authenticated as %s\n", result.Username)

		return nil
	}),
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the GitHub token comes from",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ *cobra.Command, _ []string, a *app) error {
		_, source, err := core.ResolveGitHubToken("", a.store)
		if err != nil {
			return err
		}

		cfg, err := a.svc.Config()
		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(map[string]string{"source": string(source), "username": cfg.RemoteAccountName})
		}

		_, _ = fmt.Fprintf(a.out, "Token source: %s\n", source)

		if cfg.RemoteAccountName != "" {
			_, _ = fmt.Fprintf(a.out, "GitHub user:  %s\n", cfg.RemoteAccountName)
		}

		return nil
	}),
}

// authorizer picks the OAuth flow for auth login.
func (a *app) authorizer(device bool) service.Authorizer {
	if device {
		return func(ctx context.Context) (*core.OAuthResult, error) {
			flow := core.NewDeviceFlow(a.settings.OAuthClientID)
			flow.APIBaseURL = a.settings.GitHubAPIURL
			flow.OnDeviceCode(func(code, verificationURL string) {
				_, _ = fmt.Fprintf(a.out, "First copy your one-time code: %s\n", code)
				_, _ = fmt.Fprintf(a.out, "Then open: %s\n", verificationURL)

				if err := browser.OpenURL(verificationURL); err != nil {
					a.logger.Debug("failed to open browser", slog.String("error", err.Error()))
				}
			})

			return flow.Run(ctx)
		}
	}

	return func(ctx context.Context) (*core.OAuthResult, error) {
		return core.RunWebFlow(ctx, core.WebFlowConfig{
			ClientID:     a.settings.OAuthClientID,
			ClientSecret: a.settings.OAuthClientSecret,
			Port:         a.settings.OAuthPort,
			APIBaseURL:   a.settings.GitHubAPIURL,
		}, func(authURL string) error {
			_, _ = fmt.Fprintf(a.out, "Opening browser for GitHub authorization...\nIf it does not open, visit:\n  %s\n", authURL)

			if err := browser.OpenURL(authURL); err != nil {
				a.logger.Debug("failed to open browser", slog.String("error", err.Error()))
			}

			return nil
		})
	}
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authStatusCmd)

	authLoginCmd.Flags().Bool("device", false, "Use the device flow instead of a browser redirect")
}
