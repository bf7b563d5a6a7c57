package callhub

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// RequestError is returned when a request could not be completed after all
// retry attempts. Status is 0 when the failure was transport-level
// (connection error, timeout).
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request failed after retries (HTTP %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("request failed after retries: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// APIError carries the structured field-level messages CallHub returns for
// 4xx responses, e.g. {"username": ["This field is required."]}.
type APIError struct {
	Status int
	Fields map[string][]string
	Body   string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		if e.Body != "" {
			return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
		}
		return fmt.Sprintf("HTTP %d", e.Status)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, msg := range e.Fields[k] {
			parts = append(parts, k+": "+msg)
		}
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, strings.Join(parts, "; "))
}

// decodeAPIError builds an APIError from an error response body. CallHub
// error bodies are JSON objects mapping field names to a message or a list
// of messages; anything else is kept verbatim.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: strings.TrimSpace(string(body))}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	fields := make(map[string][]string)
	for field, v := range raw {
		switch msg := v.(type) {
		case string:
			fields[field] = []string{msg}
		case []any:
			for _, m := range msg {
				fields[field] = append(fields[field], fmt.Sprint(m))
			}
		default:
			fields[field] = []string{fmt.Sprint(msg)}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}
