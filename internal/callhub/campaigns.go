package callhub

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Status words accepted by the campaign update endpoints, mapped to the
// numeric codes the API wants.
var (
	callCenterStatuses = map[string]int{
		"pause":   4,
		"resume":  2,
		"stop":    5,
		"restart": 2,
	}
	broadcastStatuses = map[string]int{
		"start": 1,
		"pause": 2,
		"abort": 3,
		"end":   4,
	}
)

func resolveStatus(status string, mapping map[string]int) (int, error) {
	if code, ok := mapping[strings.ToLower(status)]; ok {
		return code, nil
	}
	if code, err := strconv.Atoi(status); err == nil {
		return code, nil
	}
	valid := make([]string, 0, len(mapping))
	for k := range mapping {
		valid = append(valid, k)
	}
	return 0, fmt.Errorf("invalid status %q (valid: %s, or a numeric code)", status, strings.Join(valid, ", "))
}

// ListCallCenterCampaigns lists call center campaigns.
func (c *Client) ListCallCenterCampaigns(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/callcenter_campaigns/", opts)
}

// UpdateCallCenterCampaign changes a call center campaign's status
// (pause, resume, stop, restart).
func (c *Client) UpdateCallCenterCampaign(ctx context.Context, campaignID, status string) (map[string]any, error) {
	code, err := resolveStatus(status, callCenterStatuses)
	if err != nil {
		return nil, err
	}
	return c.patchJSON(ctx, fmt.Sprintf("/v1/callcenter_campaigns/%s/", campaignID), map[string]int{"status": code})
}

// DeleteCallCenterCampaign deletes a call center campaign by ID.
func (c *Client) DeleteCallCenterCampaign(ctx context.Context, campaignID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/callcenter_campaigns/%s/", campaignID))
}

// CreateCallCenterCampaign creates a call center campaign from the full
// campaign payload (name, phonebook_ids, callerid, script, schedule fields).
// The script structure is passed through untouched; the API validates it.
func (c *Client) CreateCallCenterCampaign(ctx context.Context, campaign map[string]any) (map[string]any, error) {
	for _, field := range []string{"name", "phonebook_ids", "callerid", "script"} {
		if _, ok := campaign[field]; !ok {
			return nil, fmt.Errorf("campaign field %q is required", field)
		}
	}
	return c.postJSON(ctx, "/v1/power_campaign/create/", campaign)
}

// ListVoiceBroadcasts lists voice broadcast campaigns.
func (c *Client) ListVoiceBroadcasts(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/voice_broadcasts/", opts)
}

// UpdateVoiceBroadcast changes a voice broadcast campaign's status
// (start, pause, abort, end).
func (c *Client) UpdateVoiceBroadcast(ctx context.Context, campaignID, status string) (map[string]any, error) {
	code, err := resolveStatus(status, broadcastStatuses)
	if err != nil {
		return nil, err
	}
	return c.patchJSON(ctx, fmt.Sprintf("/v1/voice_broadcasts/%s/", campaignID), map[string]int{"status": code})
}

// DeleteVoiceBroadcast deletes a voice broadcast campaign by ID.
func (c *Client) DeleteVoiceBroadcast(ctx context.Context, campaignID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/voice_broadcasts/%s/", campaignID))
}

// ListSMSCampaigns lists SMS campaigns.
func (c *Client) ListSMSCampaigns(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/sms_campaigns/", opts)
}

// UpdateSMSCampaign changes an SMS campaign's status
// (start, pause, abort, end).
func (c *Client) UpdateSMSCampaign(ctx context.Context, campaignID, status string) (map[string]any, error) {
	code, err := resolveStatus(status, broadcastStatuses)
	if err != nil {
		return nil, err
	}
	return c.patchJSON(ctx, fmt.Sprintf("/v1/sms_campaigns/%s/", campaignID), map[string]int{"status": code})
}

// DeleteSMSCampaign deletes an SMS campaign by ID.
func (c *Client) DeleteSMSCampaign(ctx context.Context, campaignID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/sms_campaigns/%s/", campaignID))
}
