// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"
	"time"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/callhub"
	"github.com/johncallhub/CallHub-MCP/internal/config"
	"github.com/johncallhub/CallHub-MCP/internal/jobs"
	"github.com/johncallhub/CallHub-MCP/internal/progress"
	"github.com/johncallhub/CallHub-MCP/internal/state"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Accounts    *auth.Store
	Jobs        *jobs.Manager
	State       *state.Store
	Broadcaster *progress.Broadcaster // nil when broadcasting is disabled
	Config      *config.Config
	Logger      *slog.Logger

	// NewClient and NewActivator are factories so tests can substitute
	// fakes. Nil means build the real thing from Config.
	NewClient    func(acct auth.Account) *callhub.Client
	NewActivator func() activation.Activator
}

// AccountInput is embedded in every tool input that talks to the API.
type AccountInput struct {
	Account string `json:"account,omitempty" jsonschema:"Configured account name (uses the default account if omitted)"`
}

// client resolves credentials for the named account and builds an API
// client for it.
func (d *Dependencies) client(account string) (*callhub.Client, error) {
	acct, err := d.Accounts.Get(account)
	if err != nil {
		return nil, err
	}
	if d.NewClient != nil {
		return d.NewClient(acct), nil
	}

	cfg := callhub.Config{
		BaseURL: acct.BaseURL,
		APIKey:  acct.APIKey,
	}
	if d.Config != nil {
		cfg.Timeout = d.Config.HTTPTimeout
		cfg.Retry = callhub.RetryPolicy{
			MaxRetries:     d.Config.MaxRetries,
			InitialBackoff: d.Config.InitialBackoff,
			MaxBackoff:     d.Config.MaxBackoff,
			Factor:         d.Config.BackoffFactor,
		}
	}
	return callhub.New(cfg, d.logger()), nil
}

func (d *Dependencies) activator() activation.Activator {
	if d.NewActivator != nil {
		return d.NewActivator()
	}
	var timeout time.Duration
	if d.Config != nil {
		timeout = d.Config.HTTPTimeout
	}
	return activation.NewHTTPActivator(timeout, d.logger())
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// batchSize returns the configured batch size, falling back to the default.
func (d *Dependencies) batchSize() int {
	if d.Config != nil && d.Config.BatchSize > 0 {
		return d.Config.BatchSize
	}
	return 10
}

// batchDelay is the pause between batches. CallHub throttles bursts, so
// back-to-back batches need a breather.
func (d *Dependencies) batchDelay() time.Duration {
	if d.Config != nil {
		return d.Config.BatchDelay
	}
	return 500 * time.Millisecond
}
