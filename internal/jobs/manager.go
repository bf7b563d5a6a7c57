// Package jobs tracks background activation runs so MCP tools can start a
// run, poll its progress, and fetch the result after it finishes.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

// Status represents the state of a background job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// maxEvents bounds the per-job event history. Old events fall off; pollers
// mostly care about the tail anyway.
const maxEvents = 100

// Job is one background activation run.
type Job struct {
	ID          string
	Type        string
	Account     string
	Status      Status
	Completed   int
	Total       int
	Percent     float64
	Result      *batch.Result
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time

	mu     sync.RWMutex
	events []batch.Event
	cancel context.CancelFunc
}

// Record appends a progress event and refreshes the job's counters.
func (j *Job) Record(ev batch.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status == StatusPending {
		j.Status = StatusRunning
	}
	j.Completed = ev.Completed
	j.Total = ev.Total
	j.Percent = ev.Percent
	j.events = append(j.events, ev)
	if len(j.events) > maxEvents {
		j.events = j.events[len(j.events)-maxEvents:]
	}
}

// Snapshot returns a consistent copy of the job's state and event history.
func (j *Job) Snapshot() Job {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return Job{
		ID:          j.ID,
		Type:        j.Type,
		Account:     j.Account,
		Status:      j.Status,
		Completed:   j.Completed,
		Total:       j.Total,
		Percent:     j.Percent,
		Result:      j.Result,
		Error:       j.Error,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		events:      slices.Clone(j.events),
	}
}

// Events returns the recorded event history.
func (j *Job) Events() []batch.Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.events)
}

// RunFunc does the actual work of a job, reporting progress through record.
type RunFunc func(ctx context.Context, record func(batch.Event)) (*batch.Result, error)

// Manager tracks background jobs.
type Manager struct {
	jobs   map[string]*Job
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewManager creates an empty job manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{jobs: make(map[string]*Job), logger: logger}
}

// Start launches fn in the background and returns its job immediately. The
// job outlives the caller's request context; only an explicit Cancel stops
// it.
func (m *Manager) Start(ctx context.Context, jobType, account string, fn RunFunc) *Job {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	job := &Job{
		ID:        uuid.New().String()[:8], // short IDs read better in tool output
		Type:      jobType,
		Account:   account,
		Status:    StatusPending,
		StartedAt: time.Now(),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.logger.Info("job started", "job_id", job.ID, "type", jobType, "account", account)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("job panicked", "job_id", job.ID, "panic", r)
				m.fail(job, fmt.Errorf("internal panic: %v", r))
			}
		}()

		result, err := fn(runCtx, job.Record)
		switch {
		case runCtx.Err() != nil:
			m.finish(job, StatusCancelled, nil, runCtx.Err())
		case err != nil:
			m.fail(job, err)
		default:
			m.finish(job, StatusCompleted, result, nil)
		}
	}()

	return job
}

// Get retrieves a job by ID.
func (m *Manager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// List returns all jobs, most recent first.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	slices.SortFunc(jobs, func(a, b *Job) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return jobs
}

// Cancel asks a running job to stop. It returns false when no such job
// exists.
func (m *Manager) Cancel(id string) bool {
	job := m.Get(id)
	if job == nil {
		return false
	}
	job.mu.RLock()
	cancel := job.cancel
	job.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
	return true
}

func (m *Manager) fail(job *Job, err error) {
	m.finish(job, StatusFailed, nil, err)
	m.logger.Error("job failed", "job_id", job.ID, "error", err)
}

func (m *Manager) finish(job *Job, status Status, result *batch.Result, err error) {
	job.mu.Lock()
	job.Status = status
	job.Result = result
	if err != nil {
		job.Error = err.Error()
	}
	now := time.Now()
	job.CompletedAt = &now
	job.mu.Unlock()

	if status == StatusCompleted {
		m.logger.Info("job completed", "job_id", job.ID)
	}
}
