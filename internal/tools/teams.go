package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTeamsInput defines the input schema for the list_teams tool.
type ListTeamsInput struct {
	AccountInput
}

// NewListTeamsHandler lists all teams.
func NewListTeamsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListTeamsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTeamsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListTeams(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// GetTeamInput defines the input schema for the get_team tool.
type GetTeamInput struct {
	AccountInput
	TeamID string `json:"team_id" jsonschema:"required,Team ID"`
}

// NewGetTeamHandler retrieves one team.
func NewGetTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[GetTeamInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetTeamInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetTeam(ctx, input.TeamID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateTeamInput defines the input schema for the create_team tool.
type CreateTeamInput struct {
	AccountInput
	Name string `json:"name" jsonschema:"required,Team name"`
}

// NewCreateTeamHandler creates a team.
func NewCreateTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateTeamInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateTeamInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateTeam(ctx, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// UpdateTeamInput defines the input schema for the update_team tool.
type UpdateTeamInput struct {
	AccountInput
	TeamID string `json:"team_id" jsonschema:"required,Team ID"`
	Name   string `json:"name" jsonschema:"required,New team name"`
}

// NewUpdateTeamHandler renames a team.
func NewUpdateTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateTeamInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateTeamInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateTeam(ctx, input.TeamID, input.Name)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// DeleteTeamInput defines the input schema for the delete_team tool.
type DeleteTeamInput struct {
	AccountInput
	TeamID string `json:"team_id" jsonschema:"required,Team ID"`
}

// NewDeleteTeamHandler deletes a team.
func NewDeleteTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[DeleteTeamInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteTeamInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteTeam(ctx, input.TeamID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// TeamAgentsInput defines the input schema for the get_team_agents tool.
type TeamAgentsInput struct {
	AccountInput
	TeamID string `json:"team_id" jsonschema:"required,Team ID"`
}

// NewTeamAgentsHandler lists a team's agents.
func NewTeamAgentsHandler(deps *Dependencies) mcp.ToolHandlerFor[TeamAgentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TeamAgentsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.TeamAgents(ctx, input.TeamID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// TeamAgentDetailsInput defines the input schema for the
// get_team_agent_details tool.
type TeamAgentDetailsInput struct {
	AccountInput
	TeamID  string `json:"team_id" jsonschema:"required,Team ID"`
	AgentID string `json:"agent_id" jsonschema:"required,Agent ID"`
}

// NewTeamAgentDetailsHandler retrieves one agent's membership details.
func NewTeamAgentDetailsHandler(deps *Dependencies) mcp.ToolHandlerFor[TeamAgentDetailsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TeamAgentDetailsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.TeamAgentDetails(ctx, input.TeamID, input.AgentID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// TeamMembershipInput defines the input schema for the add/remove team
// agent tools.
type TeamMembershipInput struct {
	AccountInput
	TeamID   string   `json:"team_id" jsonschema:"required,Team ID"`
	AgentIDs []string `json:"agent_ids" jsonschema:"required,Agent IDs"`
}

// NewAddAgentsToTeamHandler assigns agents to a team.
func NewAddAgentsToTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[TeamMembershipInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TeamMembershipInput) (*mcp.CallToolResult, any, error) {
		if len(input.AgentIDs) == 0 {
			return ErrorResult("agent_ids is empty", ""), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.AddAgentsToTeam(ctx, input.TeamID, input.AgentIDs)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewRemoveAgentsFromTeamHandler removes agents from a team.
func NewRemoveAgentsFromTeamHandler(deps *Dependencies) mcp.ToolHandlerFor[TeamMembershipInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TeamMembershipInput) (*mcp.CallToolResult, any, error) {
		if len(input.AgentIDs) == 0 {
			return ErrorResult("agent_ids is empty", ""), nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.RemoveAgentsFromTeam(ctx, input.TeamID, input.AgentIDs)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
