package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.csv>",
	Short: "Parse an activation CSV and show what would be activated",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			exitWithError("open %s: %v", args[0], err)
		}
		defer f.Close()

		records, err := activation.ParseCSV(f)
		if err != nil {
			exitWithError("parse %s: %v", args[0], err)
		}

		fmt.Printf("%d agent records\n\n", len(records))
		for _, rec := range records {
			name := rec.Username
			if name == "" {
				name = rec.Email
			}
			if name == "" {
				name = "(no name)"
			}
			fmt.Printf("  %-25s %s\n", name, rec.URL)
		}
	},
}
