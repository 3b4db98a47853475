package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/katasync/internal/cli"
	"github.com/inovacc/katasync/internal/codewars"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <username>",
	Short: "Verify a Codewars username and store it",
	Long: `Look up a Codewars user. The username is stored only when the account
exists; otherwise the configuration is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		account, err := a.svc.VerifyAccount(cmd.Context(), args[0])
		if errors.Is(err, codewars.ErrUserNotFound) {
			return fmt.Errorf("user %q not found on Codewars", args[0])
		}

		if err != nil {
			return err
		}

		if a.json {
			return a.printJSON(account)
		}

		cli.RenderAccount(a.out, account)

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
