package tools

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListContactsInput defines the input schema for the list_contacts tool.
type ListContactsInput struct {
	AccountInput
	Page     int  `json:"page,omitempty" jsonschema:"Page number"`
	PageSize int  `json:"page_size,omitempty" jsonschema:"Results per page"`
	AllPages bool `json:"all_pages,omitempty" jsonschema:"Fetch every page and merge the results"`
}

func (i ListContactsInput) options() callhub.ListOptions {
	return callhub.ListOptions{Page: i.Page, PageSize: i.PageSize, AllPages: i.AllPages}
}

// NewListContactsHandler lists contacts.
func NewListContactsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListContactsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListContacts(ctx, input.options())
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// GetContactInput defines the input schema for the get_contact tool.
type GetContactInput struct {
	AccountInput
	ContactID string `json:"contact_id" jsonschema:"required,Contact ID"`
}

// NewGetContactHandler retrieves one contact.
func NewGetContactHandler(deps *Dependencies) mcp.ToolHandlerFor[GetContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetContact(ctx, input.ContactID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// ContactFieldsInput maps arbitrary contact attributes onto the API's form
// fields. "contact" (the phone number) is the only required one.
type ContactFieldsInput struct {
	AccountInput
	Fields map[string]string `json:"fields" jsonschema:"required,Contact fields; 'contact' (phone number) is required"`
}

// NewCreateContactHandler creates a contact.
func NewCreateContactHandler(deps *Dependencies) mcp.ToolHandlerFor[ContactFieldsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ContactFieldsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateContact(ctx, toValues(input.Fields))
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateContactInput defines the input schema for the update_contact tool.
type UpdateContactInput struct {
	AccountInput
	ContactID string            `json:"contact_id" jsonschema:"required,Contact ID"`
	Fields    map[string]string `json:"fields" jsonschema:"required,Fields to update"`
}

// NewUpdateContactHandler updates a contact.
func NewUpdateContactHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateContact(ctx, input.ContactID, toValues(input.Fields))
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// DeleteContactInput defines the input schema for the delete_contact tool.
type DeleteContactInput struct {
	AccountInput
	ContactID string `json:"contact_id" jsonschema:"required,Contact ID"`
}

// NewDeleteContactHandler deletes a contact.
func NewDeleteContactHandler(deps *Dependencies) mcp.ToolHandlerFor[DeleteContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteContact(ctx, input.ContactID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// BulkCreateContactsInput defines the input schema for the
// bulk_create_contacts tool.
type BulkCreateContactsInput struct {
	AccountInput
	PhonebookID   string `json:"phonebook_id" jsonschema:"required,Phonebook to import into"`
	CSVURL        string `json:"csv_url" jsonschema:"required,Publicly reachable URL of the CSV to import"`
	CountryChoice string `json:"country_choice,omitempty" jsonschema:"Country handling mode"`
	CountryISO    string `json:"country_iso,omitempty" jsonschema:"Two-letter country code"`
}

// NewBulkCreateContactsHandler imports contacts from a hosted CSV.
func NewBulkCreateContactsHandler(deps *Dependencies) mcp.ToolHandlerFor[BulkCreateContactsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BulkCreateContactsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.BulkCreateContacts(ctx, input.PhonebookID, input.CSVURL, input.CountryChoice, input.CountryISO)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// ContactFieldsListInput defines the input schema for the
// get_contact_fields tool.
type ContactFieldsListInput struct {
	AccountInput
}

// NewContactFieldsHandler lists the importable contact fields.
func NewContactFieldsHandler(deps *Dependencies) mcp.ToolHandlerFor[ContactFieldsListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ContactFieldsListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ContactFields(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

func toValues(fields map[string]string) url.Values {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return values
}
