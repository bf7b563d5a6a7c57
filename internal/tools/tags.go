package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListTagsInput defines the input schema for the list_tags tool.
type ListTagsInput struct {
	AccountInput
	Page     int  `json:"page,omitempty" jsonschema:"Page number"`
	AllPages bool `json:"all_pages,omitempty" jsonschema:"Fetch every page and merge the results"`
}

// NewListTagsHandler lists tags.
func NewListTagsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListTagsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTagsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListTags(ctx, callhub.ListOptions{Page: input.Page, AllPages: input.AllPages})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// TagInput identifies a tag.
type TagInput struct {
	AccountInput
	TagID string `json:"tag_id" jsonschema:"required,Tag ID"`
}

// NewGetTagHandler retrieves one tag.
func NewGetTagHandler(deps *Dependencies) mcp.ToolHandlerFor[TagInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TagInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetTag(ctx, input.TagID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateTagInput defines the input schema for the create_tag tool.
type CreateTagInput struct {
	AccountInput
	Name string `json:"name" jsonschema:"required,Tag name"`
}

// NewCreateTagHandler creates a tag.
func NewCreateTagHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateTagInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateTagInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateTag(ctx, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateTagInput defines the input schema for the update_tag tool.
type UpdateTagInput struct {
	AccountInput
	TagID string `json:"tag_id" jsonschema:"required,Tag ID"`
	Name  string `json:"name" jsonschema:"required,New tag name"`
}

// NewUpdateTagHandler renames a tag.
func NewUpdateTagHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateTagInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateTagInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateTag(ctx, input.TagID, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteTagHandler deletes a tag.
func NewDeleteTagHandler(deps *Dependencies) mcp.ToolHandlerFor[TagInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TagInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteTag(ctx, input.TagID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// TagContactInput defines the input schema for the tag_contact tool.
type TagContactInput struct {
	AccountInput
	ContactID string   `json:"contact_id" jsonschema:"required,Contact ID"`
	Tags      []string `json:"tags" jsonschema:"required,Tag names to apply"`
}

// NewTagContactHandler applies tags to a contact.
func NewTagContactHandler(deps *Dependencies) mcp.ToolHandlerFor[TagContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TagContactInput) (*mcp.CallToolResult, any, error) {
		if len(input.Tags) == 0 {
			return ErrorResult("tags is empty", ""), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.TagContact(ctx, input.ContactID, input.Tags)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UntagContactInput defines the input schema for the untag_contact tool.
type UntagContactInput struct {
	AccountInput
	ContactID string `json:"contact_id" jsonschema:"required,Contact ID"`
	TagID     string `json:"tag_id" jsonschema:"required,Tag ID to remove"`
}

// NewUntagContactHandler removes a tag from a contact.
func NewUntagContactHandler(deps *Dependencies) mcp.ToolHandlerFor[UntagContactInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UntagContactInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UntagContact(ctx, input.ContactID, input.TagID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
