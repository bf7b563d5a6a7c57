package tools

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListPhonebooksInput defines the input schema for the list_phonebooks tool.
type ListPhonebooksInput struct {
	AccountInput
	Page     int  `json:"page,omitempty" jsonschema:"Page number"`
	AllPages bool `json:"all_pages,omitempty" jsonschema:"Fetch every page and merge the results"`
}

// NewListPhonebooksHandler lists phonebooks.
func NewListPhonebooksHandler(deps *Dependencies) mcp.ToolHandlerFor[ListPhonebooksInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListPhonebooksInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListPhonebooks(ctx, callhub.ListOptions{Page: input.Page, AllPages: input.AllPages})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// PhonebookInput identifies a phonebook.
type PhonebookInput struct {
	AccountInput
	PhonebookID string `json:"phonebook_id" jsonschema:"required,Phonebook ID"`
}

// NewGetPhonebookHandler retrieves one phonebook.
func NewGetPhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[PhonebookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PhonebookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetPhonebook(ctx, input.PhonebookID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreatePhonebookInput defines the input schema for the create_phonebook tool.
type CreatePhonebookInput struct {
	AccountInput
	Name        string `json:"name" jsonschema:"required,Phonebook name"`
	Description string `json:"description,omitempty" jsonschema:"Phonebook description"`
}

// NewCreatePhonebookHandler creates a phonebook.
func NewCreatePhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[CreatePhonebookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreatePhonebookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		fields := url.Values{"name": []string{input.Name}}
		if input.Description != "" {
			fields.Set("description", input.Description)
		}
		result, err := client.CreatePhonebook(ctx, fields)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdatePhonebookInput defines the input schema for the update_phonebook tool.
type UpdatePhonebookInput struct {
	AccountInput
	PhonebookID string `json:"phonebook_id" jsonschema:"required,Phonebook ID"`
	Name        string `json:"name,omitempty" jsonschema:"New name"`
	Description string `json:"description,omitempty" jsonschema:"New description"`
}

// NewUpdatePhonebookHandler updates a phonebook's name or description.
func NewUpdatePhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdatePhonebookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdatePhonebookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		fields := url.Values{}
		if input.Name != "" {
			fields.Set("name", input.Name)
		}
		if input.Description != "" {
			fields.Set("description", input.Description)
		}
		if len(fields) == 0 {
			return ErrorResult("nothing to update", "Pass name or description"), nil, nil
		}
		result, err := client.UpdatePhonebook(ctx, input.PhonebookID, fields)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeletePhonebookHandler deletes a phonebook.
func NewDeletePhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[PhonebookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PhonebookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeletePhonebook(ctx, input.PhonebookID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// PhonebookContactsChangeInput defines the input schema for the
// add_contacts_to_phonebook tool.
type PhonebookContactsChangeInput struct {
	AccountInput
	PhonebookID string   `json:"phonebook_id" jsonschema:"required,Phonebook ID"`
	ContactIDs  []string `json:"contact_ids" jsonschema:"required,Contact IDs to add"`
}

// NewAddContactsToPhonebookHandler adds existing contacts to a phonebook.
func NewAddContactsToPhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[PhonebookContactsChangeInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PhonebookContactsChangeInput) (*mcp.CallToolResult, any, error) {
		if len(input.ContactIDs) == 0 {
			return ErrorResult("contact_ids is empty", ""), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.AddContactsToPhonebook(ctx, input.PhonebookID, input.ContactIDs)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// RemovePhonebookContactInput defines the input schema for the
// remove_contact_from_phonebook tool.
type RemovePhonebookContactInput struct {
	AccountInput
	PhonebookID string `json:"phonebook_id" jsonschema:"required,Phonebook ID"`
	ContactID   string `json:"contact_id" jsonschema:"required,Contact ID to remove"`
}

// NewRemoveContactFromPhonebookHandler removes a contact from a phonebook.
func NewRemoveContactFromPhonebookHandler(deps *Dependencies) mcp.ToolHandlerFor[RemovePhonebookContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RemovePhonebookContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.RemoveContactFromPhonebook(ctx, input.PhonebookID, input.ContactID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewPhonebookCountHandler reports the number of contacts in a phonebook.
func NewPhonebookCountHandler(deps *Dependencies) mcp.ToolHandlerFor[PhonebookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PhonebookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.PhonebookCount(ctx, input.PhonebookID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// PhonebookContactsInput defines the input schema for the
// get_phonebook_contacts tool.
type PhonebookContactsInput struct {
	AccountInput
	PhonebookID string `json:"phonebook_id" jsonschema:"required,Phonebook ID"`
	Page        int    `json:"page,omitempty" jsonschema:"Page number"`
}

// NewPhonebookContactsHandler lists the contacts in a phonebook.
func NewPhonebookContactsHandler(deps *Dependencies) mcp.ToolHandlerFor[PhonebookContactsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PhonebookContactsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.PhonebookContacts(ctx, input.PhonebookID, input.Page)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
