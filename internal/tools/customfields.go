package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListCustomFieldsInput defines the input schema for the list_custom_fields
// tool.
type ListCustomFieldsInput struct {
	AccountInput
	Page int `json:"page,omitempty" jsonschema:"Page number"`
}

// NewListCustomFieldsHandler lists custom contact fields.
func NewListCustomFieldsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListCustomFieldsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListCustomFieldsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListCustomFields(ctx, callhub.ListOptions{Page: input.Page})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CustomFieldInput identifies a custom field.
type CustomFieldInput struct {
	AccountInput
	FieldID string `json:"field_id" jsonschema:"required,Custom field ID"`
}

// NewGetCustomFieldHandler retrieves one custom field.
func NewGetCustomFieldHandler(deps *Dependencies) mcp.ToolHandlerFor[CustomFieldInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CustomFieldInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetCustomField(ctx, input.FieldID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateCustomFieldInput defines the input schema for the
// create_custom_field tool. Field types: 1=text, 2=number, 3=boolean,
// 4=multi-choice.
type CreateCustomFieldInput struct {
	AccountInput
	Name      string   `json:"name" jsonschema:"required,Field name"`
	FieldType int      `json:"field_type" jsonschema:"required,Field type: 1=text 2=number 3=boolean 4=multi-choice"`
	Choices   []string `json:"choices,omitempty" jsonschema:"Choices for multi-choice fields"`
}

// NewCreateCustomFieldHandler creates a custom field.
func NewCreateCustomFieldHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateCustomFieldInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateCustomFieldInput) (*mcp.CallToolResult, any, error) {
		if input.FieldType < 1 || input.FieldType > 4 {
			return ErrorResult("field_type must be 1-4", "1=text 2=number 3=boolean 4=multi-choice"), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateCustomField(ctx, input.Name, input.FieldType, input.Choices)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateCustomFieldInput defines the input schema for the
// update_custom_field tool.
type UpdateCustomFieldInput struct {
	AccountInput
	FieldID string `json:"field_id" jsonschema:"required,Custom field ID"`
	Name    string `json:"name" jsonschema:"required,New field name"`
}

// NewUpdateCustomFieldHandler renames a custom field.
func NewUpdateCustomFieldHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateCustomFieldInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateCustomFieldInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateCustomField(ctx, input.FieldID, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteCustomFieldHandler deletes a custom field.
func NewDeleteCustomFieldHandler(deps *Dependencies) mcp.ToolHandlerFor[CustomFieldInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CustomFieldInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteCustomField(ctx, input.FieldID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// SetContactCustomFieldInput defines the input schema for the
// set_contact_custom_field tool.
type SetContactCustomFieldInput struct {
	AccountInput
	ContactID string `json:"contact_id" jsonschema:"required,Contact ID"`
	FieldName string `json:"field_name" jsonschema:"required,Custom field name"`
	Value     string `json:"value" jsonschema:"required,Value to set"`
}

// NewSetContactCustomFieldHandler sets a custom field value on a contact.
func NewSetContactCustomFieldHandler(deps *Dependencies) mcp.ToolHandlerFor[SetContactCustomFieldInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetContactCustomFieldInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.SetContactCustomField(ctx, input.ContactID, input.FieldName, input.Value)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
