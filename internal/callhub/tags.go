package callhub

import (
	"context"
	"fmt"
	"net/url"
)

// ListTags lists tags with optional pagination.
func (c *Client) ListTags(ctx context.Context, opts ListOptions) (map[string]any, error) {
	return c.list(ctx, "/v1/tags/", opts)
}

// GetTag returns one tag by ID.
func (c *Client) GetTag(ctx context.Context, tagID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/tags/%s/", tagID), nil)
}

// CreateTag creates a tag with the given name.
func (c *Client) CreateTag(ctx context.Context, name string) (map[string]any, error) {
	if name == "" {
		return nil, fmt.Errorf("'name' is required")
	}
	return c.postForm(ctx, "/v1/tags/", url.Values{"tag": {name}})
}

// UpdateTag renames a tag.
func (c *Client) UpdateTag(ctx context.Context, tagID, name string) (map[string]any, error) {
	return c.putForm(ctx, fmt.Sprintf("/v1/tags/%s/", tagID), url.Values{"tag": {name}})
}

// DeleteTag deletes a tag by ID.
func (c *Client) DeleteTag(ctx context.Context, tagID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/tags/%s/", tagID))
}

// TagContact applies tags (by name) to a contact. Unknown tags are created
// by the API on the fly.
func (c *Client) TagContact(ctx context.Context, contactID string, tags []string) (map[string]any, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("at least one tag is required")
	}
	return c.postJSON(ctx, fmt.Sprintf("/v2/contacts/%s/taggings/", contactID), map[string]any{
		"tags": tags,
	})
}

// UntagContact removes one tag from a contact.
func (c *Client) UntagContact(ctx context.Context, contactID, tagID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/contacts/%s/tags/%s/", contactID, tagID))
}
