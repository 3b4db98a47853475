package cmd

import (
	"fmt"

	"github.com/inovacc/katasync/internal/server"
	"github.com/inovacc/katasync/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the message API for a browser extension",
	Long: `Listen on server.addr (loopback by default) for action messages:

  POST /v1/messages  {"action": "SYNC_KATA", "url": "...", "html": "..."}

Every message must be sent as application/json with the header
"Authorization: Bearer <secret>". The secret is generated on the first
run and printed with --show-secret. Browser requests are only accepted
from origins listed in server.allowed_origins.

Actions: GET_KATA_DATA, AUTH_GITHUB, VERIFY_USER, FETCH_REPOS, GET_STATS,
SYNC_KATA, AUTO_SYNC_TRIGGERED, GET_HISTORY, CLEAR_HISTORY, GET_CONFIG,
SAVE_CONFIG and RESET_CONFIG. Every reply is {"success", "error", "data"}.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		secret, err := store.ServerSecret(a.store)
		if err != nil {
			return err
		}

		if show, _ := cmd.Flags().GetBool("show-secret"); show {
			_, err := fmt.Fprintln(a.out, secret)

			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.settings.ServerAddr
		}

		router := server.NewRouter(a.svc, a.authorizer(false), a.logger)

		srv := server.New(addr, router, server.Options{
			Secret:         secret,
			AllowedOrigins: a.settings.AllowedOrigins,
			Logger:         a.logger,
		})

		return srv.ListenAndServe(cmd.Context())
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (defaults to server.addr)")
	serveCmd.Flags().Bool("show-secret", false, "Print the bearer secret clients must send and exit")
}
