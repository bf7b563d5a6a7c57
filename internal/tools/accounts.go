package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
)

// ListAccountsInput has no parameters.
type ListAccountsInput struct{}

// NewListAccountsHandler lists configured accounts without exposing keys.
func NewListAccountsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListAccountsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListAccountsInput) (*mcp.CallToolResult, any, error) {
		accounts, err := deps.Accounts.Load()
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		if len(accounts) == 0 {
			return TextResult("No accounts configured. Add one with add_account or set CALLHUB_API_KEY."), nil, nil
		}

		names := make([]string, 0, len(accounts))
		for name := range accounts {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		for _, name := range names {
			acct := accounts[name]
			fmt.Fprintf(&b, "%s: %s (key %s)\n", name, acct.BaseURL, maskKey(acct.APIKey))
		}
		return TextResult(strings.TrimRight(b.String(), "\n")), nil, nil
	}
}

// maskKey keeps enough of a key to identify it in a dashboard, nothing more.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// AddAccountInput defines the input schema for the add_account tool.
type AddAccountInput struct {
	Name     string `json:"name" jsonschema:"required,Account name used to reference these credentials"`
	APIKey   string `json:"api_key" jsonschema:"required,CallHub API key"`
	Username string `json:"username,omitempty" jsonschema:"CallHub username (informational)"`
	BaseURL  string `json:"base_url,omitempty" jsonschema:"API base URL for non-default data centers"`
}

// NewAddAccountHandler stores credentials for an account.
func NewAddAccountHandler(deps *Dependencies) mcp.ToolHandlerFor[AddAccountInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddAccountInput) (*mcp.CallToolResult, any, error) {
		if input.Name == "" {
			return ErrorResult("account name is required", ""), nil, nil
		}
		err := deps.Accounts.Set(input.Name, auth.Account{
			Username: input.Username,
			APIKey:   input.APIKey,
			BaseURL:  input.BaseURL,
		})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return TextResult(fmt.Sprintf("Account %q saved", input.Name)), nil, nil
	}
}

// RemoveAccountInput defines the input schema for the remove_account tool.
type RemoveAccountInput struct {
	Name string `json:"name" jsonschema:"required,Account name to remove"`
}

// NewRemoveAccountHandler deletes stored credentials.
func NewRemoveAccountHandler(deps *Dependencies) mcp.ToolHandlerFor[RemoveAccountInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RemoveAccountInput) (*mcp.CallToolResult, any, error) {
		if err := deps.Accounts.Delete(input.Name); err != nil {
			return apiErrorResult(err), nil, nil
		}
		return TextResult(fmt.Sprintf("Account %q removed", input.Name)), nil, nil
	}
}
