package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

func testManager() *Manager {
	return NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func waitForStatus(t *testing.T, job *Job, want Status) Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		if snap.Status == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job never reached status %s", want)
	return Job{}
}

func TestStartAndComplete(t *testing.T) {
	m := testManager()

	job := m.Start(context.Background(), "activation", "acct", func(ctx context.Context, record func(batch.Event)) (*batch.Result, error) {
		record(batch.Event{Type: batch.EventStart, Total: 10})
		record(batch.Event{Type: batch.EventComplete, Total: 10, Completed: 10, Percent: 100})
		return &batch.Result{TotalAgents: 10, SuccessfulActivations: 10, SuccessRate: "100.0%"}, nil
	})

	assert.Len(t, job.ID, 8)

	snap := waitForStatus(t, job, StatusCompleted)
	assert.Equal(t, 10, snap.Completed)
	assert.Equal(t, float64(100), snap.Percent)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "100.0%", snap.Result.SuccessRate)
	assert.NotNil(t, snap.CompletedAt)
	assert.Len(t, job.Events(), 2)
}

func TestStartFailure(t *testing.T) {
	m := testManager()

	job := m.Start(context.Background(), "activation", "acct", func(ctx context.Context, record func(batch.Event)) (*batch.Result, error) {
		return nil, errors.New("export failed")
	})

	snap := waitForStatus(t, job, StatusFailed)
	assert.Equal(t, "export failed", snap.Error)
	assert.Nil(t, snap.Result)
}

func TestJobSurvivesCallerContext(t *testing.T) {
	m := testManager()
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	job := m.Start(ctx, "activation", "acct", func(runCtx context.Context, record func(batch.Event)) (*batch.Result, error) {
		cancel()
		<-done
		if runCtx.Err() != nil {
			return nil, runCtx.Err()
		}
		return &batch.Result{}, nil
	})
	close(done)

	snap := waitForStatus(t, job, StatusCompleted)
	assert.Empty(t, snap.Error)
}

func TestCancel(t *testing.T) {
	m := testManager()
	started := make(chan struct{})

	job := m.Start(context.Background(), "activation", "acct", func(ctx context.Context, record func(batch.Event)) (*batch.Result, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	<-started
	require.True(t, m.Cancel(job.ID))

	snap := waitForStatus(t, job, StatusCancelled)
	assert.NotNil(t, snap.CompletedAt)

	assert.False(t, m.Cancel("missing"))
}

func TestListMostRecentFirst(t *testing.T) {
	m := testManager()

	first := m.Start(context.Background(), "activation", "a", func(ctx context.Context, record func(batch.Event)) (*batch.Result, error) {
		return &batch.Result{}, nil
	})
	time.Sleep(10 * time.Millisecond)
	second := m.Start(context.Background(), "activation", "b", func(ctx context.Context, record func(batch.Event)) (*batch.Result, error) {
		return &batch.Result{}, nil
	})

	jobs := m.List()
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)

	assert.NotNil(t, m.Get(first.ID))
	assert.Nil(t, m.Get("nope"))
}

func TestEventRingBounded(t *testing.T) {
	job := &Job{}
	for i := 0; i < maxEvents+50; i++ {
		job.Record(batch.Event{Completed: i})
	}
	events := job.Events()
	assert.Len(t, events, maxEvents)
	assert.Equal(t, maxEvents+49, events[len(events)-1].Completed)
}
