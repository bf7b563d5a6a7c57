package callhub

import (
	"context"
	"fmt"
	"slices"
)

// Valid webhook event types.
var webhookEvents = []string{"vb.transfer", "sb.reply", "cc.notes", "agent.activation"}

// ListWebhooks lists webhooks with optional pagination.
func (c *Client) ListWebhooks(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/webhooks/", opts)
}

// GetWebhook returns one webhook by ID.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/webhooks/%s/", webhookID), nil)
}

// CreateWebhook registers a target URL for one of the supported events.
func (c *Client) CreateWebhook(ctx context.Context, event, target string) (map[string]any, error) {
	if !slices.Contains(webhookEvents, event) {
		return nil, fmt.Errorf("invalid event %q (valid: %v)", event, webhookEvents)
	}
	if target == "" {
		return nil, fmt.Errorf("'target' URL is required")
	}
	return c.postJSON(ctx, "/v1/webhooks/", map[string]string{
		"event":  event,
		"target": target,
	})
}

// DeleteWebhook deletes a webhook by ID.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/webhooks/%s/", webhookID))
}
