package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendwise/internal/config"
	"github.com/mmynk/spendwise/pkg/logging"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	verbose bool
	apiURL  string
	token   string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "spendwise",
		Short: "Split shared expenses from the terminal",
		Long: `spendwise previews expense splits offline and records expenses in a
SpendWise group through the backend API.

The backend address and timeout default to API_BASE_URL and API_TIMEOUT
(a .env file is honoured). The session token comes from --token or
SPENDWISE_TOKEN.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			logging.Setup(cmd.ErrOrStderr(), level, os.Getenv("LOG_FORMAT"))

			cfg := config.Load()
			if opts.apiURL == "" {
				opts.apiURL = cfg.APIBaseURL
			}
			if opts.timeout <= 0 {
				opts.timeout = cfg.APITimeout
			}
			if opts.token == "" {
				opts.token = os.Getenv("SPENDWISE_TOKEN")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Backend API base URL (or set API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "Session token (or set SPENDWISE_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Backend request timeout (or set API_TIMEOUT)")

	rootCmd.AddCommand(
		newSplitCmd(),
		newAddExpenseCmd(opts),
		newCategoriesCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
