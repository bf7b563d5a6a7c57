package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/batch"
	"github.com/johncallhub/CallHub-MCP/internal/progress"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream activation progress events from a running MCP server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", watchURL)
		err := progress.Watch(ctx, watchURL, func(ev batch.Event) {
			switch ev.Type {
			case batch.EventBatchComplete:
				fmt.Printf("[%s] batch %d/%d done: %d/%d agents (%.0f%%)\n",
					ev.Time.Format("15:04:05"), ev.Batch, ev.Batches, ev.Completed, ev.Total, ev.Percent)
			case batch.EventComplete:
				fmt.Printf("[%s] %s\n", ev.Time.Format("15:04:05"), ev.Message)
			default:
				fmt.Printf("[%s] %s: %s\n", ev.Time.Format("15:04:05"), ev.Type, ev.Message)
			}
		})
		if err != nil && ctx.Err() == nil {
			exitWithError("watch: %v", err)
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "ws://127.0.0.1:8377/ws", "websocket URL of the progress endpoint")
}
