package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// apiClient builds a CallHub client for the selected account.
func apiClient() (*callhub.Client, error) {
	acct, err := accounts.Get(account())
	if err != nil {
		return nil, err
	}
	return callhub.New(callhub.Config{
		BaseURL: acct.BaseURL,
		APIKey:  acct.APIKey,
		Timeout: cfg.HTTPTimeout,
		Retry: callhub.RetryPolicy{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxBackoff:     cfg.MaxBackoff,
			Factor:         cfg.BackoffFactor,
		},
	}, logger), nil
}

var (
	exportOut     string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export activation URLs for pending agents as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := apiClient()
		if err != nil {
			exitWithError("%v", err)
		}

		fmt.Fprintln(os.Stderr, "Requesting export from CallHub...")
		csv, err := client.ExportActivationCSV(context.Background(), 0, exportTimeout)
		if err != nil {
			exitWithError("export: %v", err)
		}

		if exportOut == "" || exportOut == "-" {
			os.Stdout.Write(csv)
			return
		}
		if err := os.WriteFile(exportOut, csv, 0o600); err != nil {
			exitWithError("write %s: %v", exportOut, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", exportOut, len(csv))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 5*time.Minute, "how long to wait for the export job")
}
