package tools

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// CreateDNCContactInput defines the input schema for the create_dnc_contact
// tool.
type CreateDNCContactInput struct {
	AccountInput
	PhoneNumber string `json:"phone_number" jsonschema:"required,Phone number to mark as do-not-call"`
	DNCListID   string `json:"dnc_list_id" jsonschema:"required,DNC list to add the number to"`
}

// NewCreateDNCContactHandler adds a number to a do-not-call list.
func NewCreateDNCContactHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateDNCContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateDNCContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateDNCContact(ctx, input.PhoneNumber, input.DNCListID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// ListDNCInput is shared by the DNC listing tools.
type ListDNCInput struct {
	AccountInput
	Page int `json:"page,omitempty" jsonschema:"Page number"`
}

// NewListDNCContactsHandler lists do-not-call numbers.
func NewListDNCContactsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListDNCInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDNCInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListDNCContacts(ctx, callhub.ListOptions{Page: input.Page})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateDNCContactInput defines the input schema for the update_dnc_contact
// tool.
type UpdateDNCContactInput struct {
	AccountInput
	ContactID   string `json:"contact_id" jsonschema:"required,DNC contact ID"`
	PhoneNumber string `json:"phone_number,omitempty" jsonschema:"New phone number"`
	DNCListID   string `json:"dnc_list_id,omitempty" jsonschema:"New DNC list"`
}

// NewUpdateDNCContactHandler updates a DNC entry.
func NewUpdateDNCContactHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateDNCContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateDNCContactInput) (*mcp.CallToolResult, any, error) {
		fields := url.Values{}
		if input.PhoneNumber != "" {
			fields.Set("phone_number", input.PhoneNumber)
		}
		if input.DNCListID != "" {
			fields.Set("dnc", input.DNCListID)
		}
		if len(fields) == 0 {
			return ErrorResult("nothing to update", "Pass phone_number or dnc_list_id"), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateDNCContact(ctx, input.ContactID, fields)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// DNCContactInput identifies a DNC entry.
type DNCContactInput struct {
	AccountInput
	ContactID string `json:"contact_id" jsonschema:"required,DNC contact ID"`
}

// NewDeleteDNCContactHandler removes a number from the do-not-call registry.
func NewDeleteDNCContactHandler(deps *Dependencies) mcp.ToolHandlerFor[DNCContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DNCContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteDNCContact(ctx, input.ContactID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateDNCListInput defines the input schema for the create_dnc_list tool.
type CreateDNCListInput struct {
	AccountInput
	Name string `json:"name" jsonschema:"required,DNC list name"`
}

// NewCreateDNCListHandler creates a do-not-call list.
func NewCreateDNCListHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateDNCListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateDNCListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateDNCList(ctx, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewListDNCListsHandler lists do-not-call lists.
func NewListDNCListsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListDNCInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDNCInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListDNCLists(ctx, callhub.ListOptions{Page: input.Page})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateDNCListInput defines the input schema for the update_dnc_list tool.
type UpdateDNCListInput struct {
	AccountInput
	ListID string `json:"list_id" jsonschema:"required,DNC list ID"`
	Name   string `json:"name" jsonschema:"required,New list name"`
}

// NewUpdateDNCListHandler renames a do-not-call list.
func NewUpdateDNCListHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateDNCListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateDNCListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateDNCList(ctx, input.ListID, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// DNCListInput identifies a DNC list.
type DNCListInput struct {
	AccountInput
	ListID string `json:"list_id" jsonschema:"required,DNC list ID"`
}

// NewDeleteDNCListHandler deletes a do-not-call list.
func NewDeleteDNCListHandler(deps *Dependencies) mcp.ToolHandlerFor[DNCListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DNCListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteDNCList(ctx, input.ListID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
