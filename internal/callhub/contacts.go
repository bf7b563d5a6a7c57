package callhub

import (
	"context"
	"fmt"
	"net/url"
)

// ListContacts lists contacts with optional pagination, filters, or a full
// walk of every page.
func (c *Client) ListContacts(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/contacts/", opts)
}

// GetContact returns one contact by ID.
func (c *Client) GetContact(ctx context.Context, contactID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/contacts/%s/", contactID), nil)
}

// CreateContact creates a contact from urlencoded fields
// (e.g. contact=1234567890&first_name=John).
func (c *Client) CreateContact(ctx context.Context, fields url.Values) (map[string]any, error) {
	if fields.Get("contact") == "" {
		return nil, fmt.Errorf("'contact' (phone number) field is required")
	}
	return c.postForm(ctx, "/v1/contacts/", fields)
}

// BulkCreateContacts imports contacts into a phonebook from a CSV URL.
// The endpoint is rate limited to one call per minute; the retry policy
// absorbs the 429 it answers with when called faster.
func (c *Client) BulkCreateContacts(ctx context.Context, phonebookID, csvURL, countryChoice, countryISO string) (map[string]any, error) {
	if phonebookID == "" {
		return nil, fmt.Errorf("'phonebookID' is required")
	}
	if csvURL == "" {
		return nil, fmt.Errorf("'csvURL' is required")
	}
	payload := map[string]string{
		"phonebook_id": phonebookID,
		"csv_url":      csvURL,
	}
	if countryChoice != "" {
		payload["country_choice"] = countryChoice
	}
	if countryISO != "" {
		payload["country_iso"] = countryISO
	}
	return c.postJSON(ctx, "/v1/contacts/bulk_create/", payload)
}

// UpdateContact updates a contact addressed by phone number. CallHub may
// create a new contact when several share the same number.
func (c *Client) UpdateContact(ctx context.Context, contactID string, fields url.Values) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/contacts/%s/", contactID), fields)
}

// DeleteContact deletes a contact by ID.
func (c *Client) DeleteContact(ctx context.Context, contactID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/contacts/%s/", contactID))
}

// ContactFields lists every available contact field for the account.
func (c *Client) ContactFields(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v1/contacts/fields/", nil)
}
