package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// CampaignListInput is shared by the campaign listing tools.
type CampaignListInput struct {
	AccountInput
	Page     int  `json:"page,omitempty" jsonschema:"Page number"`
	AllPages bool `json:"all_pages,omitempty" jsonschema:"Fetch every page and merge the results"`
}

func (i CampaignListInput) options() callhub.ListOptions {
	return callhub.ListOptions{Page: i.Page, AllPages: i.AllPages}
}

// CampaignStatusInput is shared by the campaign status update tools. Status
// accepts either a word (pause, resume, stop, restart for call center; start,
// pause, abort, end for broadcast and SMS) or the numeric code.
type CampaignStatusInput struct {
	AccountInput
	CampaignID string `json:"campaign_id" jsonschema:"required,Campaign ID"`
	Status     string `json:"status" jsonschema:"required,New status word or numeric code"`
}

// CampaignInput identifies a campaign.
type CampaignInput struct {
	AccountInput
	CampaignID string `json:"campaign_id" jsonschema:"required,Campaign ID"`
}

// NewListCallCenterCampaignsHandler lists call center campaigns.
func NewListCallCenterCampaignsHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListCallCenterCampaigns(ctx, input.options())
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewUpdateCallCenterCampaignHandler changes a call center campaign's status.
func NewUpdateCallCenterCampaignHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignStatusInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignStatusInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateCallCenterCampaign(ctx, input.CampaignID, input.Status)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteCallCenterCampaignHandler deletes a call center campaign.
func NewDeleteCallCenterCampaignHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteCallCenterCampaign(ctx, input.CampaignID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// CreateCallCenterCampaignInput defines the input schema for the
// create_call_center_campaign tool. The campaign object follows the power
// campaign API: name, phonebook_ids, callerid and script are required.
type CreateCallCenterCampaignInput struct {
	AccountInput
	Campaign map[string]any `json:"campaign" jsonschema:"required,Campaign definition (name, phonebook_ids, callerid, script, ...)"`
}

// NewCreateCallCenterCampaignHandler creates a call center campaign.
func NewCreateCallCenterCampaignHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateCallCenterCampaignInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateCallCenterCampaignInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.CreateCallCenterCampaign(ctx, input.Campaign)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewListVoiceBroadcastsHandler lists voice broadcast campaigns.
func NewListVoiceBroadcastsHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListVoiceBroadcasts(ctx, input.options())
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewUpdateVoiceBroadcastHandler changes a voice broadcast's status.
func NewUpdateVoiceBroadcastHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignStatusInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignStatusInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateVoiceBroadcast(ctx, input.CampaignID, input.Status)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteVoiceBroadcastHandler deletes a voice broadcast campaign.
func NewDeleteVoiceBroadcastHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteVoiceBroadcast(ctx, input.CampaignID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewListSMSCampaignsHandler lists SMS campaigns.
func NewListSMSCampaignsHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignListInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignListInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.ListSMSCampaigns(ctx, input.options())
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewUpdateSMSCampaignHandler changes an SMS campaign's status.
func NewUpdateSMSCampaignHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignStatusInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignStatusInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.UpdateSMSCampaign(ctx, input.CampaignID, input.Status)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}

// NewDeleteSMSCampaignHandler deletes an SMS campaign.
func NewDeleteSMSCampaignHandler(deps *Dependencies) mcp.ToolHandlerFor[CampaignInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CampaignInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		result, err := client.DeleteSMSCampaign(ctx, input.CampaignID)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
