package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ListAgentsInput defines the input schema for the list_agents tool.
type ListAgentsInput struct {
	AccountInput
	Page           int  `json:"page,omitempty" jsonschema:"Page number"`
	IncludePending bool `json:"include_pending,omitempty" jsonschema:"Include agents that have not activated their login yet"`
}

// NewListAgentsHandler lists agents for an account.
func NewListAgentsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListAgentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListAgentsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListAgents(ctx, input.Page, input.IncludePending)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// GetAgentInput defines the input schema for the get_agent tool.
type GetAgentInput struct {
	AccountInput
	AgentID string `json:"agent_id" jsonschema:"required,Agent ID"`
}

// NewGetAgentHandler retrieves one agent.
func NewGetAgentHandler(deps *Dependencies) mcp.ToolHandlerFor[GetAgentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetAgentInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.GetAgent(ctx, input.AgentID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateAgentInput defines the input schema for the create_agent tool.
// Exactly one of team_id or team_name selects the agent's team.
type CreateAgentInput struct {
	AccountInput
	Email    string `json:"email" jsonschema:"required,Agent email address"`
	Username string `json:"username" jsonschema:"required,Agent username"`
	TeamID   string `json:"team_id,omitempty" jsonschema:"Team ID to assign the agent to"`
	TeamName string `json:"team_name,omitempty" jsonschema:"Team name to assign the agent to"`
}

// NewCreateAgentHandler creates an agent. The agent still has to activate
// the emailed login link before they can take calls.
func NewCreateAgentHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateAgentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateAgentInput) (*mcp.CallToolResult, any, error) {
		team, result := teamRefFromInput(input.TeamID, input.TeamName)
		if result != nil {
			return result, nil, nil
		}
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		created, err := client.CreateAgent(ctx, input.Email, input.Username, team)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(created), nil, nil
	}
}

// teamRefFromInput builds a TeamRef from the mutually exclusive id/name pair.
func teamRefFromInput(teamID, teamName string) (callhub.TeamRef, *mcp.CallToolResult) {
	switch {
	case teamID != "" && teamName != "":
		return callhub.TeamRef{}, ErrorResult("team_id and team_name are mutually exclusive", "Pass only one of them")
	case teamID != "":
		return callhub.TeamByID(teamID), nil
	case teamName != "":
		return callhub.TeamByName(teamName), nil
	default:
		return callhub.TeamRef{}, ErrorResult("a team is required", "Pass team_id or team_name")
	}
}

// DeleteAgentInput defines the input schema for the delete_agent tool.
type DeleteAgentInput struct {
	AccountInput
	AgentID string `json:"agent_id" jsonschema:"required,Agent ID"`
}

// NewDeleteAgentHandler removes an agent.
func NewDeleteAgentHandler(deps *Dependencies) mcp.ToolHandlerFor[DeleteAgentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteAgentInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteAgent(ctx, input.AgentID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// LiveAgentsInput defines the input schema for the get_live_agents tool.
type LiveAgentsInput struct {
	AccountInput
}

// NewLiveAgentsHandler reports agents currently connected to the call center.
func NewLiveAgentsHandler(deps *Dependencies) mcp.ToolHandlerFor[LiveAgentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input LiveAgentsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.LiveAgents(ctx)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
