package callhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListCustomFields lists custom fields. The endpoint sometimes answers with
// multiple JSON objects concatenated back to back instead of a proper list;
// that external quirk is normalized here into a count/results shape.
func (c *Client) ListCustomFields(ctx context.Context, opts ListOptions) (map[string]any, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/v1/custom_fields/", query: opts.values()})
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err == nil {
		return result, nil
	}

	objects, err := decodeConcatenated(body)
	if err != nil {
		return nil, err
	}
	return map[string]any{"count": len(objects), "results": objects}, nil
}

// GetCustomField returns one custom field by ID.
func (c *Client) GetCustomField(ctx context.Context, fieldID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/v1/custom_fields/%s/", fieldID), nil)
}

// CreateCustomField creates a custom field. fieldType is 1 Text, 2 Number,
// 3 Boolean, 4 Multi-choice; choices apply only to Multi-choice fields.
func (c *Client) CreateCustomField(ctx context.Context, name string, fieldType int, choices []string) (map[string]any, error) {
	if name == "" {
		return nil, fmt.Errorf("'name' is required")
	}
	if fieldType < 1 || fieldType > 4 {
		return nil, fmt.Errorf("'fieldType' must be 1-4")
	}
	payload := map[string]any{
		"name":       name,
		"field_type": fieldType,
	}
	if len(choices) > 0 {
		payload["choices"] = choices
	}
	return c.postJSON(ctx, "/v1/custom_fields/", payload)
}

// UpdateCustomField updates a custom field's name.
func (c *Client) UpdateCustomField(ctx context.Context, fieldID, name string) (map[string]any, error) {
	return c.patchJSON(ctx, fmt.Sprintf("/v1/custom_fields/%s/", fieldID), map[string]string{"name": name})
}

// DeleteCustomField deletes a custom field by ID.
func (c *Client) DeleteCustomField(ctx context.Context, fieldID string) (map[string]any, error) {
	return c.delete(ctx, fmt.Sprintf("/v1/custom_fields/%s/", fieldID))
}

// SetContactCustomField sets a custom field value on a contact.
func (c *Client) SetContactCustomField(ctx context.Context, contactID, fieldName, value string) (map[string]any, error) {
	return c.patchJSON(ctx, fmt.Sprintf("/v1/contacts/%s/", contactID), map[string]any{
		"custom_fields": map[string]string{fieldName: value},
	})
}
