// Package activation handles pending-agent activation: parsing activation
// CSV exports and driving individual activation URLs to completion.
package activation

// Record is one pending-agent entry with a one-time URL to set a password
// and complete signup. The URL is the record's identity.
type Record struct {
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Outcome is the result of one activation attempt. It is created once and
// never mutated.
type Outcome struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}
