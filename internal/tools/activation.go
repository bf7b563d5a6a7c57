package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

// ExportActivationURLsInput defines the input schema for the
// export_agent_activation_urls tool.
type ExportActivationURLsInput struct {
	AccountInput
	TimeoutSeconds int `json:"timeout_seconds,omitempty" jsonschema:"How long to wait for the export job (default 300)"`
}

// NewExportActivationURLsHandler asks CallHub to export activation URLs for
// all pending agents and returns the CSV.
func NewExportActivationURLsHandler(deps *Dependencies) mcp.ToolHandlerFor[ExportActivationURLsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExportActivationURLsInput) (*mcp.CallToolResult, any, error) {
		client, err := deps.client(input.Account)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		timeout := time.Duration(input.TimeoutSeconds) * time.Second
		csv, err := client.ExportActivationCSV(ctx, 0, timeout)
		if err != nil {
			return apiErrorResult(err), nil, nil
		}
		records, err := activation.ParseCSV(strings.NewReader(string(csv)))
		if err != nil {
			// Hand the raw CSV back anyway; the caller may still use it.
			return TextResult(string(csv)), nil, nil
		}
		deps.logger().Info("activation export finished", "agents", len(records))
		return TextResult(fmt.Sprintf("Exported %d pending agents.\n\n%s", len(records), string(csv))), nil, nil
	}
}

// ProcessActivationCSVInput defines the input schema for the
// process_activation_csv tool.
type ProcessActivationCSVInput struct {
	CSVContent string `json:"csv_content" jsonschema:"required,CSV text with a URL column and optional username and email columns"`
}

// parsedRecords is the JSON shape returned by process_activation_csv.
type parsedRecords struct {
	Count   int                 `json:"count"`
	Records []activation.Record `json:"records"`
}

// NewProcessActivationCSVHandler parses an activation CSV without touching
// the API, so callers can inspect what activate_agents would act on.
func NewProcessActivationCSVHandler(deps *Dependencies) mcp.ToolHandlerFor[ProcessActivationCSVInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ProcessActivationCSVInput) (*mcp.CallToolResult, any, error) {
		records, err := activation.ParseCSV(strings.NewReader(input.CSVContent))
		if err != nil {
			return ErrorResult(fmt.Sprintf("failed to parse CSV: %v", err),
				"The CSV needs a header row with a column containing 'url', 'link' or 'activation'"), nil, nil
		}
		return JSONResult(parsedRecords{Count: len(records), Records: records}), nil, nil
	}
}

// ActivateAgentsInput defines the input schema for the activate_agents tool.
type ActivateAgentsInput struct {
	AccountInput
	CSVContent string `json:"csv_content,omitempty" jsonschema:"Activation CSV; omit to export it from CallHub first"`
	Password   string `json:"password" jsonschema:"required,Password to set for every agent (minimum 8 characters)"`
	BatchSize  int    `json:"batch_size,omitempty" jsonschema:"Agents per batch (default from configuration)"`
}

// NewActivateAgentsHandler starts a background activation run and returns
// its job id. Progress is available through get_activation_progress; the
// run survives the MCP request that started it.
func NewActivateAgentsHandler(deps *Dependencies) mcp.ToolHandlerFor[ActivateAgentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ActivateAgentsInput) (*mcp.CallToolResult, any, error) {
		if len(input.Password) < 8 {
			return ErrorResult("password must be at least 8 characters", ""), nil, nil
		}

		account := input.Account
		if account == "" && deps.Config != nil {
			account = deps.Config.DefaultAccount
		}

		var records []activation.Record
		if input.CSVContent != "" {
			var err error
			records, err = activation.ParseCSV(strings.NewReader(input.CSVContent))
			if err != nil {
				return ErrorResult(fmt.Sprintf("failed to parse CSV: %v", err), ""), nil, nil
			}
			if len(records) == 0 {
				return ErrorResult("CSV contains no agent records", ""), nil, nil
			}
		}

		batchSize := input.BatchSize
		if batchSize <= 0 {
			batchSize = deps.batchSize()
		}

		runner := batch.NewRunner(deps.activator(), deps.State, deps.logger())
		job := deps.Jobs.Start(ctx, "activation", account, func(runCtx context.Context, record func(batch.Event)) (*batch.Result, error) {
			recs := records
			if recs == nil {
				client, err := deps.client(input.Account)
				if err != nil {
					return nil, err
				}
				csv, err := client.ExportActivationCSV(runCtx, 0, 0)
				if err != nil {
					return nil, err
				}
				recs, err = activation.ParseCSV(strings.NewReader(string(csv)))
				if err != nil {
					return nil, fmt.Errorf("exported CSV is unusable: %w", err)
				}
			}

			return runner.Run(runCtx, recs, input.Password, batch.Options{
				Account:         account,
				BatchSize:       batchSize,
				InterBatchDelay: deps.batchDelay(),
				OnEvent: func(ev batch.Event) {
					record(ev)
					if deps.Broadcaster != nil {
						deps.Broadcaster.Publish(ev)
					}
				},
			})
		})

		return TextResult(fmt.Sprintf(
			"Activation started as job %s for account %q. Poll get_activation_progress with this job id.",
			job.ID, account)), nil, nil
	}
}

// ActivationProgressInput defines the input schema for the
// get_activation_progress tool.
type ActivationProgressInput struct {
	JobID string `json:"job_id,omitempty" jsonschema:"Job to inspect; omit to list all jobs"`
}

// jobSummary is the JSON shape of one job in progress output.
type jobSummary struct {
	ID          string        `json:"id"`
	Account     string        `json:"account"`
	Status      string        `json:"status"`
	Completed   int           `json:"completed"`
	Total       int           `json:"total"`
	Percent     float64       `json:"percent"`
	Error       string        `json:"error,omitempty"`
	Result      *batch.Result `json:"result,omitempty"`
	Events      []batch.Event `json:"events,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// NewActivationProgressHandler reports the state of activation jobs.
func NewActivationProgressHandler(deps *Dependencies) mcp.ToolHandlerFor[ActivationProgressInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ActivationProgressInput) (*mcp.CallToolResult, any, error) {
		if input.JobID != "" {
			job := deps.Jobs.Get(input.JobID)
			if job == nil {
				return ErrorResult(fmt.Sprintf("no job %q", input.JobID), "List jobs by calling this tool without job_id"), nil, nil
			}
			snap := job.Snapshot()
			return JSONResult(jobSummary{
				ID:          snap.ID,
				Account:     snap.Account,
				Status:      string(snap.Status),
				Completed:   snap.Completed,
				Total:       snap.Total,
				Percent:     snap.Percent,
				Error:       snap.Error,
				Result:      snap.Result,
				Events:      job.Events(),
				StartedAt:   snap.StartedAt,
				CompletedAt: snap.CompletedAt,
			}), nil, nil
		}

		all := deps.Jobs.List()
		if len(all) == 0 {
			return TextResult("No activation jobs have been started."), nil, nil
		}
		summaries := make([]jobSummary, 0, len(all))
		for _, job := range all {
			snap := job.Snapshot()
			summaries = append(summaries, jobSummary{
				ID:          snap.ID,
				Account:     snap.Account,
				Status:      string(snap.Status),
				Completed:   snap.Completed,
				Total:       snap.Total,
				Percent:     snap.Percent,
				Error:       snap.Error,
				StartedAt:   snap.StartedAt,
				CompletedAt: snap.CompletedAt,
			})
		}
		return JSONResult(summaries), nil, nil
	}
}

// CancelActivationInput defines the input schema for the cancel_activation
// tool.
type CancelActivationInput struct {
	JobID string `json:"job_id" jsonschema:"required,Job to cancel"`
}

// NewCancelActivationHandler stops a running activation job. The checkpoint
// survives, so a new run resumes where this one stopped.
func NewCancelActivationHandler(deps *Dependencies) mcp.ToolHandlerFor[CancelActivationInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CancelActivationInput) (*mcp.CallToolResult, any, error) {
		if !deps.Jobs.Cancel(input.JobID) {
			return ErrorResult(fmt.Sprintf("no job %q", input.JobID), ""), nil, nil
		}
		return TextResult(fmt.Sprintf("Job %s cancelled. Progress is checkpointed; start a new run to resume.", input.JobID)), nil, nil
	}
}

// ResetActivationProgressInput defines the input schema for the
// reset_activation_progress tool.
type ResetActivationProgressInput struct {
	AccountInput
}

// NewResetActivationProgressHandler deletes the account's checkpoint so the
// next run starts from scratch.
func NewResetActivationProgressHandler(deps *Dependencies) mcp.ToolHandlerFor[ResetActivationProgressInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ResetActivationProgressInput) (*mcp.CallToolResult, any, error) {
		account := input.Account
		if account == "" && deps.Config != nil {
			account = deps.Config.DefaultAccount
		}
		if err := deps.State.Clear(account); err != nil {
			return ErrorResult(fmt.Sprintf("failed to clear progress: %v", err), ""), nil, nil
		}
		return TextResult(fmt.Sprintf("Activation progress for account %q cleared.", account)), nil, nil
	}
}
