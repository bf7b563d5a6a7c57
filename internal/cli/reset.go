package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved activation checkpoint for the account",
	Run: func(cmd *cobra.Command, args []string) {
		store := state.NewStore("", logger)
		if err := store.Clear(account()); err != nil {
			exitWithError("clear checkpoint: %v", err)
		}
		fmt.Printf("Checkpoint cleared for account %q. The next run starts from scratch.\n", account())
	},
}
