package callhub

import (
	"context"
	"fmt"
)

// ListRentedNumbers lists rented calling numbers (caller IDs).
func (c *Client) ListRentedNumbers(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v1/numbers/rented_calling_numbers/", nil)
}

// ListValidatedNumbers lists validated personal numbers usable as caller IDs.
func (c *Client) ListValidatedNumbers(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v1/numbers/validated_numbers/", nil)
}

// RentNumber rents a phone number in the given country, optionally
// constrained to an area-code prefix.
func (c *Client) RentNumber(ctx context.Context, countryISO, prefix string) (map[string]any, error) {
	if countryISO == "" {
		return nil, fmt.Errorf("'countryISO' is required")
	}
	payload := map[string]string{"country_iso": countryISO}
	if prefix != "" {
		payload["phone_number_prefix"] = prefix
	}
	return c.postJSON(ctx, "/v1/numbers/rent/", payload)
}

// ListUsers lists the users of the account.
func (c *Client) ListUsers(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v1/users/", nil)
}

// CreditUsage returns credit usage details for the account.
func (c *Client) CreditUsage(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/v2/credits_usage/", nil)
}
