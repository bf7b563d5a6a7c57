package callhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The activation export is not part of the documented REST API. Requesting
// the reactivation page kicks off a server-side export job whose id is only
// available embedded in the returned HTML.
var progressJobIDRe = regexp.MustCompile(`var progress_job_id = "([^"]+)";`)

// StartActivationExport asks CallHub to export activation URLs for all
// pending agents and returns the id of the export job.
func (c *Client) StartActivationExport(ctx context.Context) (string, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/agent/reactivate_export/"})
	if err != nil {
		return "", fmt.Errorf("start activation export: %w", err)
	}
	m := progressJobIDRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("start activation export: no job id in response")
	}
	return string(m[1]), nil
}

// ExportStatus is the state of an export job.
type ExportStatus struct {
	State       string
	DownloadURL string
	Progress    map[string]any
}

// Done reports whether the export finished and its file can be downloaded.
func (s ExportStatus) Done() bool { return s.State == "SUCCESS" }

// CheckExportStatus polls the progress endpoint for an export job.
func (c *Client) CheckExportStatus(ctx context.Context, jobID string) (ExportStatus, error) {
	// Cache buster, same as the page's own polling script sends.
	q := url.Values{"_": []string{strconv.FormatInt(time.Now().UnixMilli(), 10)}}
	body, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/exported_file/progress/" + jobID + "/",
		query:  q,
	})
	if err != nil {
		return ExportStatus{}, fmt.Errorf("check export %s: %w", jobID, err)
	}

	var raw struct {
		State string          `json:"state"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ExportStatus{}, fmt.Errorf("check export %s: decode response: %w", jobID, err)
	}

	status := ExportStatus{State: raw.State}
	if len(raw.Data) == 0 {
		return status, nil
	}
	switch raw.State {
	case "SUCCESS":
		// On success data is either the download URL string or an object
		// carrying it under "url".
		var asString string
		if json.Unmarshal(raw.Data, &asString) == nil {
			status.DownloadURL = asString
			return status, nil
		}
		var asObject map[string]any
		if json.Unmarshal(raw.Data, &asObject) == nil {
			if u, ok := asObject["url"].(string); ok {
				status.DownloadURL = u
			}
			status.Progress = asObject
		}
	default:
		var progress map[string]any
		if json.Unmarshal(raw.Data, &progress) == nil {
			status.Progress = progress
		}
	}
	return status, nil
}

// DownloadExport fetches the exported CSV. The progress endpoint hands back
// URLs relative to the account host.
func (c *Client) DownloadExport(ctx context.Context, downloadURL string) ([]byte, error) {
	path := downloadURL
	if strings.HasPrefix(downloadURL, "http://") || strings.HasPrefix(downloadURL, "https://") {
		u, err := url.Parse(downloadURL)
		if err != nil {
			return nil, fmt.Errorf("download export: %w", err)
		}
		path = u.RequestURI()
	}
	body, err := c.do(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, fmt.Errorf("download export: %w", err)
	}
	return body, nil
}

// ExportActivationCSV runs the whole export workflow: trigger the job, poll
// until it succeeds, download the CSV. Polling stops when ctx is done or
// timeout elapses.
func (c *Client) ExportActivationCSV(ctx context.Context, pollInterval, timeout time.Duration) ([]byte, error) {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	jobID, err := c.StartActivationExport(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("activation export started", "job_id", jobID)

	deadline := time.Now().Add(timeout)
	for {
		status, err := c.CheckExportStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if status.Done() {
			if status.DownloadURL == "" {
				return nil, fmt.Errorf("export %s finished without a download url", jobID)
			}
			return c.DownloadExport(ctx, status.DownloadURL)
		}

		c.logger.Debug("activation export pending", "job_id", jobID, "state", status.State)
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("export %s did not finish within %s", jobID, timeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
