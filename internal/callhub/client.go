// Package callhub is a REST client for the CallHub API.
//
// All requests authenticate with a token header, retry transparently on rate
// limits and server errors, and surface CallHub's field-level error messages
// as APIError values instead of raw response bodies.
package callhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds everything needed to talk to one CallHub account.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   RetryPolicy
}

// Client talks to the CallHub REST API for a single account.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retry   RetryPolicy
	logger  *slog.Logger
}

// New creates a client. A zero Timeout defaults to 30s; zero retry fields
// pick up DefaultRetryPolicy.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		retry:   cfg.Retry.withDefaults(),
		logger:  logger,
	}
}

// BaseURL returns the account's API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values // urlencoded body
	json   any        // JSON body
}

// do performs one API request with retries and returns the raw response
// body. 4xx responses (other than 429, which is retried) become APIError.
// 204 and empty bodies are normalized to a generic success payload.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	fullURL := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body []byte
	contentType := ""
	switch {
	case r.json != nil:
		var err error
		body, err = json.Marshal(r.json)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		contentType = "application/json"
	case r.form != nil:
		body = []byte(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	c.logger.Info("callhub request", "method", r.method, "url", fullURL)

	resp, err := c.retry.Do(ctx, c.logger, func(ctx context.Context) (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, fullURL, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Token "+c.apiKey)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return c.http.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("callhub response", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}
	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return []byte(`{"success": true, "message": "Operation successful"}`), nil
	}
	return respBody, nil
}

// doJSON performs a request and decodes the body into a generic map. A body
// that is not valid JSON is wrapped rather than treated as a failure; some
// CallHub endpoints answer plain text on success.
func (c *Client) doJSON(ctx context.Context, r request) (map[string]any, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return map[string]any{"success": true, "message": strings.TrimSpace(string(body))}, nil
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodGet, path: path, query: query})
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodPost, path: path, form: form})
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodPost, path: path, json: payload})
}

func (c *Client) putForm(ctx context.Context, path string, form url.Values) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodPut, path: path, form: form})
}

func (c *Client) patchJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodPatch, path: path, json: payload})
}

func (c *Client) delete(ctx context.Context, path string) (map[string]any, error) {
	return c.doJSON(ctx, request{method: http.MethodDelete, path: path})
}

// ListOptions controls pagination for listing endpoints.
type ListOptions struct {
	Page     int
	PageSize int
	AllPages bool
	Filters  map[string]string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	for k, v := range o.Filters {
		q.Set(k, v)
	}
	return q
}

type pageResponse struct {
	Count    int              `json:"count"`
	Next     string           `json:"next"`
	Previous string           `json:"previous"`
	Results  []map[string]any `json:"results"`
}

// list fetches one page, or walks every page when opts.AllPages is set.
func (c *Client) list(ctx context.Context, path string, opts ListOptions) (map[string]any, error) {
	if !opts.AllPages {
		return c.get(ctx, path, opts.values())
	}

	page := opts.Page
	if page == 0 {
		page = 1
	}

	var all []map[string]any
	for {
		opts.Page = page
		body, err := c.do(ctx, request{method: http.MethodGet, path: path, query: opts.values()})
		if err != nil {
			return nil, err
		}
		var pr pageResponse
		if err := json.Unmarshal(body, &pr); err != nil {
			return nil, fmt.Errorf("decode page %d of %s: %w", page, path, err)
		}
		all = append(all, pr.Results...)
		if pr.Next == "" {
			break
		}
		page++
	}
	return map[string]any{"count": len(all), "results": all}, nil
}
