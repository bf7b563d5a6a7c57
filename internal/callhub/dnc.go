package callhub

import (
	"context"
	"fmt"
	"net/url"
)

// CreateDNCContact adds a phone number to a DNC (Do Not Call) list.
func (c *Client) CreateDNCContact(ctx context.Context, phoneNumber, dncListID string) (map[string]any, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("'phoneNumber' is required")
	}
	payload := map[string]string{"phone_number": phoneNumber}
	if dncListID != "" {
		payload["dnc"] = dncListID
	}
	return c.postJSON(ctx, "/v1/dnc_contacts/", payload)
}

// ListDNCContacts lists DNC contacts with optional pagination.
func (c *Client) ListDNCContacts(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/dnc_contacts/", opts)
}

// UpdateDNCContact moves a DNC contact to a different list or number.
func (c *Client) UpdateDNCContact(ctx context.Context, contactID string, fields url.Values) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/dnc_contacts/%s/", contactID), fields)
}

// DeleteDNCContact removes a contact from the DNC list.
func (c *Client) DeleteDNCContact(ctx context.Context, contactID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/dnc_contacts/%s/", contactID))
}

// CreateDNCList creates a named DNC list.
func (c *Client) CreateDNCList(ctx context.Context, name string) (map[string]any, error) {
	if name == "" {
		return nil, fmt.Errorf("'name' is required")
	}
	return c.postForm(ctx, "/v1/dnc_lists/", url.Values{"name": {name}})
}

// ListDNCLists lists DNC lists with optional pagination.
func (c *Client) ListDNCLists(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/dnc_lists/", opts)
}

// UpdateDNCList renames a DNC list.
func (c *Client) UpdateDNCList(ctx context.Context, listID, name string) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/dnc_lists/%s/", listID), url.Values{"name": {name}})
}

// DeleteDNCList deletes a DNC list.
func (c *Client) DeleteDNCList(ctx context.Context, listID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/dnc_lists/%s/", listID))
}
