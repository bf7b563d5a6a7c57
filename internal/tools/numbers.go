package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AccountOnlyInput is shared by tools that take nothing but the account.
type AccountOnlyInput struct {
	AccountInput
}

// NewListRentedNumbersHandler lists the account's rented calling numbers.
func NewListRentedNumbersHandler(deps *Dependencies) mcp.ToolHandlerFor[AccountOnlyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AccountOnlyInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListRentedNumbers(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewListValidatedNumbersHandler lists verified caller IDs.
func NewListValidatedNumbersHandler(deps *Dependencies) mcp.ToolHandlerFor[AccountOnlyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AccountOnlyInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListValidatedNumbers(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// RentNumberInput defines the input schema for the rent_number tool.
type RentNumberInput struct {
	AccountInput
	CountryISO string `json:"country_iso" jsonschema:"required,Two-letter country code"`
	Prefix     string `json:"prefix,omitempty" jsonschema:"Preferred number prefix"`
}

// NewRentNumberHandler rents a calling number.
func NewRentNumberHandler(deps *Dependencies) mcp.ToolHandlerFor[RentNumberInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RentNumberInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.RentNumber(ctx, input.CountryISO, input.Prefix)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewListUsersHandler lists the account's users.
func NewListUsersHandler(deps *Dependencies) mcp.ToolHandlerFor[AccountOnlyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AccountOnlyInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListUsers(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewCreditUsageHandler reports credit usage for the account.
func NewCreditUsageHandler(deps *Dependencies) mcp.ToolHandlerFor[AccountOnlyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AccountOnlyInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreditUsage(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
