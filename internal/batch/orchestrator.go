package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/state"
)

// ValidationError reports invalid run input. No activation is attempted when
// one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

const minPasswordLength = 8

// Options configures a single run.
type Options struct {
	// Account scopes the checkpoint file. Empty disables checkpointing.
	Account string
	// BatchSize must be positive.
	BatchSize int
	// InterBatchDelay is a pause between batches to stay under rate limits.
	InterBatchDelay time.Duration
	// OnEvent, when set, receives every progress event synchronously.
	OnEvent func(Event)
}

// Result summarizes a finished run. SuccessfulActivations includes the
// SkippedAgents restored from a checkpoint; together with
// FailedActivations it adds up to TotalAgents unless a batch hit an
// infrastructure error.
type Result struct {
	TotalAgents           int                  `json:"total_agents"`
	SuccessfulActivations int                  `json:"successful_activations"`
	FailedActivations     int                  `json:"failed_activations"`
	SkippedAgents         int                  `json:"skipped_agents"`
	SuccessRate           string               `json:"success_rate"`
	Details               []activation.Outcome `json:"details"`
	Message               string               `json:"message"`
}

// Runner executes activation runs. Records are processed strictly one at a
// time; CallHub throttles aggressively and parallel activations trip it.
type Runner struct {
	Activator activation.Activator
	Store     *state.Store
	Logger    *slog.Logger
}

// NewRunner wires a runner.
func NewRunner(act activation.Activator, store *state.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Activator: act, Store: store, Logger: logger}
}

// Run activates every record not already covered by the account's
// checkpoint. Progress is persisted after each batch; a batch that fails on
// infrastructure is reported and retried on the next run, while the rest of
// the batches still execute. The checkpoint file is removed only once every
// record is accounted for.
func (r *Runner) Run(ctx context.Context, records []activation.Record, password string, opts Options) (*Result, error) {
	if len(records) == 0 {
		return nil, &ValidationError{Reason: "no agent records to process"}
	}
	if len(password) < minPasswordLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}
	if opts.BatchSize <= 0 {
		return nil, &ValidationError{Reason: "batch size must be positive"}
	}

	run := &runState{
		runner: r,
		opts:   opts,
		total:  len(records),
	}

	pending := run.loadCheckpoint(records)

	batches := (len(pending) + opts.BatchSize - 1) / opts.BatchSize
	run.emit(Event{
		Type:      EventStart,
		Batches:   batches,
		BatchSize: opts.BatchSize,
		Message:   fmt.Sprintf("Activating %d agents in %d batches", len(pending), batches),
	})

	for i := 0; i < batches; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lo := i * opts.BatchSize
		hi := min(lo+opts.BatchSize, len(pending))
		if err := run.runBatch(ctx, i+1, batches, pending[lo:hi], password); err != nil {
			return nil, err
		}

		if i < batches-1 && opts.InterBatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.InterBatchDelay):
			}
		}
	}

	return run.finish(), nil
}

// runState carries the counters for one Run invocation. successful counts
// only this run's activations; skipped records were successes of an earlier
// run, restored from the checkpoint.
type runState struct {
	runner *Runner
	opts   Options
	total  int

	skipped    int
	successful int
	failed     int
	details    []activation.Outcome
	completed  []string // successfully activated URLs, checkpoint order
}

func (s *runState) emit(ev Event) {
	ev.Time = time.Now()
	ev.Total = s.total
	ev.Completed = s.skipped + s.successful + s.failed
	ev.Pending = s.total - ev.Completed
	ev.Successful = s.skipped + s.successful
	ev.Failed = s.failed
	ev.Skipped = s.skipped
	if s.total > 0 {
		ev.Percent = 100 * float64(ev.Completed) / float64(s.total)
	}
	if s.opts.OnEvent != nil {
		s.opts.OnEvent(ev)
	}
}

// loadCheckpoint filters out records a previous run already processed and
// returns the ones still pending.
func (s *runState) loadCheckpoint(records []activation.Record) []activation.Record {
	done := map[string]bool{}
	if s.runner.Store != nil && s.opts.Account != "" {
		if cp := s.runner.Store.Load(s.opts.Account); cp != nil {
			done = cp.Completed()
		}
	}
	if len(done) == 0 {
		return records
	}

	pending := make([]activation.Record, 0, len(records))
	for _, rec := range records {
		if done[rec.URL] {
			s.skipped++
			s.completed = append(s.completed, rec.URL)
			continue
		}
		pending = append(pending, rec)
	}

	if s.skipped > 0 {
		s.emit(Event{
			Type:    EventResume,
			Message: fmt.Sprintf("Resuming: %d of %d agents already processed", s.skipped, s.total),
		})
	}
	return pending
}

// runBatch activates one chunk sequentially. A record-level error means the
// infrastructure broke mid-batch: the whole batch's outcomes are discarded
// so its records stay pending for the next run. Only context cancellation
// aborts the run.
func (s *runState) runBatch(ctx context.Context, num, batches int, chunk []activation.Record, password string) error {
	s.emit(Event{Type: EventBatchStart, Batch: num, Batches: batches, BatchSize: len(chunk)})

	batchStart := time.Now()
	outcomes := make([]activation.Outcome, 0, len(chunk))
	for _, rec := range chunk {
		out, err := s.runner.Activator.Activate(ctx, rec, password)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.runner.Logger.Error("batch aborted", "batch", num, "error", err)
			s.emit(Event{
				Type:    EventBatchError,
				Batch:   num,
				Batches: batches,
				Message: fmt.Sprintf("Batch %d failed: %v", num, err),
			})
			return nil
		}
		outcomes = append(outcomes, out)
	}

	var batchSuccess, batchFailed int
	for i, out := range outcomes {
		if out.Success {
			s.successful++
			batchSuccess++
			// Failures never enter the checkpoint, so a resumed run
			// retries them.
			s.completed = append(s.completed, chunk[i].URL)
		} else {
			s.failed++
			batchFailed++
		}
		s.details = append(s.details, out)
	}
	s.persist()

	ev := Event{
		Type:            EventBatchComplete,
		Batch:           num,
		Batches:         batches,
		BatchSize:       len(chunk),
		BatchSuccessful: batchSuccess,
		BatchFailed:     batchFailed,
		Message:         fmt.Sprintf("Batch %d/%d complete: %d activated, %d failed", num, batches, batchSuccess, batchFailed),
	}
	if eta := s.eta(time.Since(batchStart), len(chunk)); eta > 0 {
		ev.ETASeconds = eta.Seconds()
		ev.ETA = formatETA(eta)
	}
	s.emit(ev)
	return nil
}

func (s *runState) persist() {
	if s.runner.Store == nil || s.opts.Account == "" {
		return
	}
	cp := &state.Checkpoint{CompletedURLs: s.completed}
	if err := s.runner.Store.Save(s.opts.Account, cp); err != nil {
		s.runner.Logger.Warn("failed to save checkpoint", "account", s.opts.Account, "error", err)
	}
}

// eta estimates time remaining from the last batch's throughput, so long
// inter-batch pauses do not inflate the per-record rate.
func (s *runState) eta(batchDur time.Duration, batchProcessed int) time.Duration {
	remaining := s.total - s.skipped - s.successful - s.failed
	if batchProcessed <= 0 || remaining <= 0 {
		return 0
	}
	return time.Duration(remaining) * (batchDur / time.Duration(batchProcessed))
}

func (s *runState) finish() *Result {
	// Checkpointed records were activated by an earlier run, so they count
	// toward the job's successes.
	successTotal := s.skipped + s.successful
	processed := successTotal + s.failed
	if processed >= s.total && s.runner.Store != nil && s.opts.Account != "" {
		if err := s.runner.Store.Clear(s.opts.Account); err != nil {
			s.runner.Logger.Warn("failed to remove checkpoint", "account", s.opts.Account, "error", err)
		}
	}

	res := &Result{
		TotalAgents:           s.total,
		SuccessfulActivations: successTotal,
		FailedActivations:     s.failed,
		SkippedAgents:         s.skipped,
		Details:               s.details,
		SuccessRate:           fmt.Sprintf("%.1f%%", 100*float64(successTotal)/float64(s.total)),
	}

	switch {
	case s.successful == 0 && s.failed == 0 && s.skipped == s.total:
		res.Message = "All agents already activated"
	case processed < s.total:
		res.Message = fmt.Sprintf("Activated %d of %d agents; %d left pending, run again to retry",
			successTotal, s.total, s.total-processed)
	default:
		res.Message = fmt.Sprintf("Activated %d of %d agents", successTotal, s.total)
	}

	s.emit(Event{Type: EventComplete, Message: res.Message})
	return res
}
