package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListWebhooksInput defines the input schema for the list_webhooks tool.
type ListWebhooksInput struct {
	AccountInput
	Page int `json:"page,omitempty" jsonschema:"Page number"`
}

// NewListWebhooksHandler lists webhooks.
func NewListWebhooksHandler(deps *Dependencies) mcp.ToolHandlerFor[ListWebhooksInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListWebhooksInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListWebhooks(ctx, callhub.ListOptions{Page: input.Page})
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// WebhookInput identifies a webhook.
type WebhookInput struct {
	AccountInput
	WebhookID string `json:"webhook_id" jsonschema:"required,Webhook ID"`
}

// NewGetWebhookHandler retrieves one webhook.
func NewGetWebhookHandler(deps *Dependencies) mcp.ToolHandlerFor[WebhookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WebhookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetWebhook(ctx, input.WebhookID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateWebhookInput defines the input schema for the create_webhook tool.
type CreateWebhookInput struct {
	AccountInput
	Event  string `json:"event" jsonschema:"required,Event to subscribe to (vb.transfer sb.reply cc.notes agent.activation)"`
	Target string `json:"target" jsonschema:"required,URL CallHub should POST the event to"`
}

// NewCreateWebhookHandler subscribes a target URL to a CallHub event.
func NewCreateWebhookHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateWebhookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateWebhookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateWebhook(ctx, input.Event, input.Target)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteWebhookHandler removes a webhook subscription.
func NewDeleteWebhookHandler(deps *Dependencies) mcp.ToolHandlerFor[WebhookInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WebhookInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteWebhook(ctx, input.WebhookID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
