package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage stored CallHub accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured accounts",
	Run: func(cmd *cobra.Command, args []string) {
		all, err := accounts.Load()
		if err != nil {
			exitWithError("load accounts: %v", err)
		}
		if len(all) == 0 {
			fmt.Println("No accounts configured. Run 'callhub accounts add <name>'.")
			return
		}

		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			acct := all[name]
			marker := " "
			if name == cfg.DefaultAccount {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s\n", marker, name, acct.BaseURL)
		}
	},
}

var (
	addUsername string
	addBaseURL  string
	addAPIKey   string
)

var accountsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Store credentials for an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		apiKey := addAPIKey
		if apiKey == "" {
			var err error
			apiKey, err = promptSecret("API key: ")
			if err != nil {
				exitWithError("read API key: %v", err)
			}
		}
		if apiKey == "" {
			exitWithError("an API key is required")
		}

		err := accounts.Set(name, auth.Account{
			Username: addUsername,
			APIKey:   apiKey,
			BaseURL:  addBaseURL,
		})
		if err != nil {
			exitWithError("save account: %v", err)
		}
		fmt.Printf("Account %q saved.\n", name)
	},
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a stored account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := accounts.Delete(args[0]); err != nil {
			exitWithError("remove account: %v", err)
		}
		fmt.Printf("Account %q removed.\n", args[0])
	},
}

// promptSecret reads a line without echoing it. Falls back to plain input
// when stdin is not a terminal (pipes, CI).
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var line string
		_, err := fmt.Fscanln(os.Stdin, &line)
		return line, err
	}
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func init() {
	accountsAddCmd.Flags().StringVar(&addUsername, "username", "", "CallHub username (informational)")
	accountsAddCmd.Flags().StringVar(&addBaseURL, "base-url", "", "API base URL for non-default data centers")
	accountsAddCmd.Flags().StringVar(&addAPIKey, "api-key", "", "API key (prompted when omitted)")

	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsRemoveCmd)
}
