// Package cli provides the command-line interface for callhub.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	accountFlag string

	// Global config and credential store
	cfg      config.Config
	accounts *auth.Store
	logger   *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "callhub",
	Short: "CallHub account and agent activation toolkit",
	Long: `Callhub manages CallHub accounts from the terminal: store credentials,
export activation URLs for pending agents, and activate agents in resumable
batches.

The heavy lifting (batching, checkpointing, retries) is the same code the
callhub-mcp server uses, so runs started in either place behave identically.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		accounts = auth.NewStore(cfg.CredentialsPath, logger)
		return nil
	},
}

// account returns the account name selected by flag or configuration.
func account() string {
	if accountFlag != "" {
		return accountFlag
	}
	return cfg.DefaultAccount
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&accountFlag, "account", "a", "", "account name (defaults to CALLHUB_ACCOUNT)")

	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(watchCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
