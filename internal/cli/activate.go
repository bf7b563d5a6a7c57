package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/batch"
	"github.com/johncallhub/CallHub-MCP/internal/state"
)

var (
	activateCSV       string
	activateBatchSize int
	activateDelay     time.Duration
	activatePassword  string
	activateNoUI      bool
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Activate pending agents in batches",
	Long: `Exports the pending-agent list (or reads a previously exported CSV),
then visits each activation URL and sets the given password. Completed
agents are checkpointed per account, so an interrupted run picks up
where it left off.`,
	Run: func(cmd *cobra.Command, args []string) {
		var raw []byte
		var err error

		if activateCSV != "" {
			raw, err = os.ReadFile(activateCSV)
			if err != nil {
				exitWithError("read %s: %v", activateCSV, err)
			}
		} else {
			client, cerr := apiClient()
			if cerr != nil {
				exitWithError("%v", cerr)
			}
			fmt.Fprintln(os.Stderr, "Exporting pending agents from CallHub...")
			raw, err = client.ExportActivationCSV(context.Background(), 0, 5*time.Minute)
			if err != nil {
				exitWithError("export: %v", err)
			}
		}

		records, err := activation.ParseCSV(bytes.NewReader(raw))
		if err != nil {
			exitWithError("parse CSV: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No pending agents found.")
			return
		}

		password := activatePassword
		if password == "" {
			password, err = promptSecret("Password for new agents: ")
			if err != nil {
				exitWithError("read password: %v", err)
			}
		}

		runner := batch.NewRunner(
			activation.NewHTTPActivator(cfg.HTTPTimeout, logger),
			state.NewStore("", logger),
			logger,
		)

		batchSize := activateBatchSize
		if batchSize <= 0 {
			batchSize = cfg.BatchSize
		}
		delay := activateDelay
		if !cmd.Flags().Changed("delay") {
			delay = cfg.BatchDelay
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if activateNoUI {
			result, err := runner.Run(ctx, records, password, batch.Options{
				Account:         account(),
				BatchSize:       batchSize,
				InterBatchDelay: delay,
				OnEvent: func(ev batch.Event) {
					fmt.Fprintf(os.Stderr, "%s %s\n", ev.Type, ev.Message)
				},
			})
			if err != nil {
				exitWithError("activation: %v", err)
			}
			fmt.Println(result.Message)
			return
		}

		events := make(chan batch.Event, 64)
		done := make(chan doneMsg, 1)

		go func() {
			result, err := runner.Run(ctx, records, password, batch.Options{
				Account:         account(),
				BatchSize:       batchSize,
				InterBatchDelay: delay,
				OnEvent: func(ev batch.Event) {
					select {
					case events <- ev:
					default:
					}
				},
			})
			done <- doneMsg{result: result, err: err}
			close(events)
		}()

		// The final view already renders the result.
		if _, err := runActivationProgress(events, done, cancel); err != nil {
			exitWithError("activation: %v", err)
		}
	},
}

func init() {
	activateCmd.Flags().StringVar(&activateCSV, "csv", "", "use a previously exported CSV instead of exporting")
	activateCmd.Flags().IntVar(&activateBatchSize, "batch-size", 0, "agents per batch (default from config)")
	activateCmd.Flags().DurationVar(&activateDelay, "delay", 0, "pause between batches (default from CALLHUB_BATCH_DELAY)")
	activateCmd.Flags().StringVar(&activatePassword, "password", "", "password to set (prompted when omitted)")
	activateCmd.Flags().BoolVar(&activateNoUI, "no-ui", false, "plain log output instead of the progress display")
}
