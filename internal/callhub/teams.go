package callhub

import (
	"context"
	"fmt"
	"net/url"
)

// TeamRef references a team either by numeric ID or by name. Callers say
// which one they mean; the client never guesses from the string shape.
type TeamRef struct {
	id   string
	name string
}

// TeamByID references a team by its numeric ID.
func TeamByID(id string) TeamRef { return TeamRef{id: id} }

// TeamByName references a team by its display name.
func TeamByName(name string) TeamRef { return TeamRef{name: name} }

func (r TeamRef) String() string {
	if r.id != "" {
		return "id:" + r.id
	}
	return "name:" + r.name
}

// ListTeams returns all teams for the account.
func (c *Client) ListTeams(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v1/teams/", nil)
}

// GetTeam returns one team by ID.
func (c *Client) GetTeam(ctx context.Context, teamID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/teams/%s/", teamID), nil)
}

// CreateTeam creates a team with the given name.
func (c *Client) CreateTeam(ctx context.Context, name string) (map[string]any, error) {
	return c.postForm(ctx, "/v1/teams/", url.Values{"name": {name}})
}

// UpdateTeam renames a team.
func (c *Client) UpdateTeam(ctx context.Context, teamID, name string) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/teams/%s/", teamID), url.Values{"name": {name}})
}

// DeleteTeam deletes a team by ID.
func (c *Client) DeleteTeam(ctx context.Context, teamID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/teams/%s/", teamID))
}

// TeamAgents lists the agents that belong to a team.
func (c *Client) TeamAgents(ctx context.Context, teamID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/teams/%s/agents/", teamID), nil)
}

// TeamAgentDetails returns one agent of a team.
func (c *Client) TeamAgentDetails(ctx context.Context, teamID, agentID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/teams/%s/agents/%s/", teamID, agentID), nil)
}

// AddAgentsToTeam assigns agents to a team.
func (c *Client) AddAgentsToTeam(ctx context.Context, teamID string, agentIDs []string) (map[string]any, error) {
	return c.postJSON(ctx, fmt.Sprintf("/v1/teams/%s/agents/", teamID), map[string]any{"agents": agentIDs})
}

// RemoveAgentsFromTeam removes agents from a team.
func (c *Client) RemoveAgentsFromTeam(ctx context.Context, teamID string, agentIDs []string) (map[string]any, error) {
	var lastErr error
	removed := 0
	for _, agentID := range agentIDs {
		if _, err := c.delete(ctx, fmt.Sprintf("/v1/teams/%s/agents/%s/", teamID, agentID)); err != nil {
			lastErr = err
			continue
		}
		removed++
	}
	if lastErr != nil {
		return nil, fmt.Errorf("removed %d/%d agents: %w", removed, len(agentIDs), lastErr)
	}
	return map[string]any{"success": true, "removed": removed}, nil
}

// ResolveTeam looks up a team by the given reference and returns it.
func (c *Client) ResolveTeam(ctx context.Context, ref TeamRef) (map[string]any, error) {
	resp, err := c.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	results, _ := resp["results"].([]any)
	for _, t := range results {
		team, ok := t.(map[string]any)
		if !ok {
			continue
		}
		switch {
		case ref.id != "" && fmt.Sprint(team["id"]) == ref.id:
			return team, nil
		case ref.name != "" && team["name"] == ref.name:
			return team, nil
		}
	}
	return nil, fmt.Errorf("team %s not found", ref)
}
