package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendwise/internal/apiclient"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/form"
)

func newAddExpenseCmd(global *globalOptions) *cobra.Command {
	opts := &splitOptions{}
	var email, password string

	cmd := &cobra.Command{
		Use:   "add-expense <group-id>",
		Short: "Record an expense in a group",
		Long: `Loads the group from the backend, splits the expense among its members
and submits it. Without --token, --email and --password sign in first.

Example:
  spendwise add-expense 3f0c... --title Dinner --total 90 --exclude Carol`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID := args[0]
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*global.timeout)
			defer cancel()

			client, err := apiclient.New(apiclient.Config{
				BaseURL: global.apiURL,
				Timeout: global.timeout,
			})
			if err != nil {
				return err
			}

			token := global.token
			if token == "" {
				if email == "" {
					return fmt.Errorf("%w: pass --token or --email/--password", auth.ErrMissingToken)
				}
				if password == "" {
					password = os.Getenv("SPENDWISE_PASSWORD")
				}
				token, err = auth.NewPasswordAuthenticator(client).Authenticate(ctx, email, password)
				if err != nil {
					return err
				}
				slog.Debug("Signed in", "email", email)
			}
			api := client.WithToken(token)

			page, err := api.GroupPage(ctx, groupID)
			if err != nil {
				return fmt.Errorf("failed to load group %s: %w", groupID, err)
			}

			f := form.New(page.GroupMembers, page.UserID)
			if err := opts.apply(f); err != nil {
				return err
			}
			printShares(cmd.OutOrStdout(), f.State())

			req, err := f.Submit(ctx, groupID, api)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nAdded %q (%s %s) to %s.\n",
				req.Title, req.Category.Emoji(), calculator.FormatAmount(req.Amount), page.GroupName)
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&email, "email", "", "Sign in with this email when no token is given")
	cmd.Flags().StringVar(&password, "password", "", "Password for --email (or set SPENDWISE_PASSWORD)")
	return cmd
}
