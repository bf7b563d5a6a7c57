// Package batch runs agent activations in resumable batches, checkpointing
// progress after every batch so an interrupted run can pick up where it
// stopped.
package batch

import (
	"fmt"
	"time"
)

// EventType identifies a progress event.
type EventType string

const (
	EventResume        EventType = "resume"
	EventStart         EventType = "start"
	EventBatchStart    EventType = "batch_start"
	EventBatchComplete EventType = "batch_complete"
	EventBatchError    EventType = "batch_error"
	EventComplete      EventType = "complete"
)

// Event is a progress update emitted while a run advances. Completed counts
// every record accounted for so far, whether it was skipped from a previous
// run, activated, or failed; it only ever grows and reaches Total when the
// run finishes cleanly.
type Event struct {
	Type    EventType `json:"type"`
	Time    time.Time `json:"time"`
	Message string    `json:"message,omitempty"`

	// Batch-level fields, set on batch_start/batch_complete/batch_error.
	Batch           int `json:"batch,omitempty"`
	Batches         int `json:"batches,omitempty"`
	BatchSize       int `json:"batch_size,omitempty"`
	BatchSuccessful int `json:"batch_successful,omitempty"`
	BatchFailed     int `json:"batch_failed,omitempty"`

	// Cumulative counters, set on every event.
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Pending    int     `json:"pending"`
	Successful int     `json:"successful"`
	Failed     int     `json:"failed"`
	Skipped    int     `json:"skipped"`
	Percent    float64 `json:"percent"`

	ETASeconds float64 `json:"eta_seconds,omitempty"`
	ETA        string  `json:"eta,omitempty"`
}

// formatETA renders a duration the way the progress UI shows it.
func formatETA(d time.Duration) string {
	if d < time.Minute {
		return "less than 1 minute"
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
