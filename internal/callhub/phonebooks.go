package callhub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListPhonebooks lists phonebooks with optional pagination.
func (c *Client) ListPhonebooks(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/phonebooks/", opts)
}

// GetPhonebook returns one phonebook by ID.
func (c *Client) GetPhonebook(ctx context.Context, phonebookID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/phonebooks/%s/", phonebookID), nil)
}

// CreatePhonebook creates a phonebook from urlencoded fields
// (e.g. name=Volunteers&description=...).
func (c *Client) CreatePhonebook(ctx context.Context, fields url.Values) (map[string]any, error) {
	if fields.Get("name") == "" {
		return nil, fmt.Errorf("'name' field is required")
	}
	return c.postForm(ctx, "/v1/phonebooks/", fields)
}

// UpdatePhonebook updates a phonebook's fields.
func (c *Client) UpdatePhonebook(ctx context.Context, phonebookID string, fields url.Values) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/phonebooks/%s/", phonebookID), fields)
}

// DeletePhonebook deletes a phonebook by ID.
func (c *Client) DeletePhonebook(ctx context.Context, phonebookID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/phonebooks/%s/", phonebookID))
}

// AddContactsToPhonebook upserts contacts into a phonebook.
func (c *Client) AddContactsToPhonebook(ctx context.Context, phonebookID string, contactIDs []string) (map[string]any, error) {
	return c.postJSON(ctx, fmt.Sprintf("/v1/phonebooks/%s/contacts/", phonebookID), map[string]any{
		"contact_ids": contactIDs,
	})
}

// RemoveContactFromPhonebook removes a single contact from a phonebook.
func (c *Client) RemoveContactFromPhonebook(ctx context.Context, phonebookID, contactID string) (map[string]any, error) {
	return c.doJSON(ctx, request{
		method: "DELETE",
		path:   fmt.Sprintf("/v1/phonebooks/%s/contacts/", phonebookID),
		json:   map[string]any{"contact_ids": []string{contactID}},
	})
}

// PhonebookCount returns the number of contacts in a phonebook.
func (c *Client) PhonebookCount(ctx context.Context, phonebookID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/phonebooks/%s/numbers_count/", phonebookID), nil)
}

// PhonebookContacts returns one page of a phonebook's contacts.
func (c *Client) PhonebookContacts(ctx context.Context, phonebookID string, page int) (map[string]any, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return c.get(ctx, fmt.Sprintf("/v1/phonebooks/%s/contacts/", phonebookID), q)
}
