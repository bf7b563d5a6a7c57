package callhub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListAgents returns agents for the account. includePending adds agents in
// states the v1 API exposes; agents still awaiting email verification are
// never included and must go through the activation export workflow.
func (c *Client) ListAgents(ctx context.Context, page int, includePending bool) (map[string]any, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if includePending {
		q.Set("include_pending", "true")
	}
	return c.get(ctx, "/v1/agents/", q)
}

// GetAgent returns one agent by ID.
func (c *Client) GetAgent(ctx context.Context, agentID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/agents/%s/", agentID), nil)
}

// CreateAgent creates a new agent. The API accepts exactly these three
// fields; the team must be referenced by name, so ID references are resolved
// first. The agent receives a verification email and stays pending until it
// is confirmed.
func (c *Client) CreateAgent(ctx context.Context, email, username string, team TeamRef) (map[string]any, error) {
	resolved, err := c.ResolveTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	teamName, _ := resolved["name"].(string)
	if teamName == "" {
		return nil, fmt.Errorf("resolved team has no name")
	}
	return c.postJSON(ctx, "/v1/agents/", map[string]string{
		"email":    email,
		"username": username,
		"team":     teamName,
	})
}

// DeleteAgent deletes an agent by ID.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/agents/%s/", agentID))
}

// LiveAgents returns agents currently connected to any campaign.
func (c *Client) LiveAgents(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v2/campaign/agent/live/", nil)
}
