package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeActivator records calls and answers from canned outcomes.
type fakeActivator struct {
	mu      sync.Mutex
	calls   []string
	reject  map[string]bool  // soft failures
	hardErr map[string]error // infrastructure failures
}

func (f *fakeActivator) Activate(ctx context.Context, rec activation.Record, password string) (activation.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return activation.Outcome{}, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, rec.URL)
	f.mu.Unlock()

	if err := f.hardErr[rec.URL]; err != nil {
		return activation.Outcome{}, err
	}
	out := activation.Outcome{Username: rec.Username, Email: rec.Email, Success: !f.reject[rec.URL]}
	if out.Success {
		out.Message = "Successfully activated"
	} else {
		out.Message = "activation rejected"
	}
	return out, nil
}

func makeRecords(n int) []activation.Record {
	recs := make([]activation.Record, n)
	for i := range recs {
		recs[i] = activation.Record{
			URL:      fmt.Sprintf("https://callhub.io/activate/%d", i),
			Username: fmt.Sprintf("agent%d", i),
		}
	}
	return recs
}

func testRunner(t *testing.T, act activation.Activator) (*Runner, *state.Store) {
	t.Helper()
	store := state.NewStore(t.TempDir(), testLogger())
	return NewRunner(act, store, testLogger()), store
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestRunThreeBatches(t *testing.T) {
	act := &fakeActivator{}
	runner, store := testRunner(t, act)

	var events []Event
	res, err := runner.Run(context.Background(), makeRecords(25), "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 10,
		OnEvent:   func(ev Event) { events = append(events, ev) },
	})

	require.NoError(t, err)
	assert.Equal(t, 25, res.TotalAgents)
	assert.Equal(t, 25, res.SuccessfulActivations)
	assert.Equal(t, 0, res.FailedActivations)
	assert.Equal(t, "100.0%", res.SuccessRate)
	assert.Len(t, res.Details, 25)
	assert.Len(t, act.calls, 25)

	assert.Equal(t, []EventType{
		EventStart,
		EventBatchStart, EventBatchComplete,
		EventBatchStart, EventBatchComplete,
		EventBatchStart, EventBatchComplete,
		EventComplete,
	}, eventTypes(events))

	first := events[2]
	assert.Equal(t, 10, first.BatchSuccessful)
	assert.Equal(t, 0, first.BatchFailed)
	assert.Equal(t, 15, first.Pending)
	assert.Equal(t, "Batch 1/3 complete: 10 activated, 0 failed", first.Message)

	final := events[len(events)-1]
	assert.Equal(t, 25, final.Completed)
	assert.Equal(t, 0, final.Pending)
	assert.Equal(t, float64(100), final.Percent)

	// Clean finish removes the checkpoint.
	assert.Nil(t, store.Load("acct"))
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	records := makeRecords(25)
	act := &fakeActivator{}
	runner, store := testRunner(t, act)

	done := make([]string, 5)
	for i := range done {
		done[i] = records[i].URL
	}
	require.NoError(t, store.Save("acct", &state.Checkpoint{CompletedURLs: done}))

	var events []Event
	res, err := runner.Run(context.Background(), records, "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 10,
		OnEvent:   func(ev Event) { events = append(events, ev) },
	})

	require.NoError(t, err)
	assert.Equal(t, 5, res.SkippedAgents)
	assert.Equal(t, 25, res.SuccessfulActivations)
	assert.Equal(t, "100.0%", res.SuccessRate)
	assert.Len(t, act.calls, 20)
	for _, url := range done {
		assert.NotContains(t, act.calls, url)
	}

	require.Equal(t, EventResume, events[0].Type)
	assert.Equal(t, 5, events[0].Completed)
	assert.Equal(t, 25, events[0].Total)

	require.Equal(t, EventStart, events[1].Type)
	assert.Equal(t, 2, events[1].Batches)

	assert.Nil(t, store.Load("acct"))
}

func TestRunValidation(t *testing.T) {
	act := &fakeActivator{}
	runner, _ := testRunner(t, act)

	tests := []struct {
		name     string
		records  []activation.Record
		password string
		opts     Options
	}{
		{"no records", nil, "str0ngpass", Options{BatchSize: 10}},
		{"short password", makeRecords(3), "short", Options{BatchSize: 10}},
		{"zero batch size", makeRecords(3), "str0ngpass", Options{}},
		{"negative batch size", makeRecords(3), "str0ngpass", Options{BatchSize: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), tt.records, tt.password, tt.opts)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Empty(t, act.calls)
		})
	}
}

func TestRunSoftFailuresCounted(t *testing.T) {
	records := makeRecords(5)
	act := &fakeActivator{reject: map[string]bool{
		records[1].URL: true,
		records[3].URL: true,
	}}
	runner, store := testRunner(t, act)

	res, err := runner.Run(context.Background(), records, "str0ngpass", Options{Account: "acct", BatchSize: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, res.SuccessfulActivations)
	assert.Equal(t, 2, res.FailedActivations)
	assert.Equal(t, "60.0%", res.SuccessRate)

	// Failed activations are still processed, so the run completed.
	assert.Nil(t, store.Load("acct"))
}

func TestRunRetriesFailuresOnResume(t *testing.T) {
	records := makeRecords(4)
	act := &fakeActivator{reject: map[string]bool{records[1].URL: true}}
	store := state.NewStore(t.TempDir(), testLogger())

	// Interrupt after the first batch: record 0 succeeded, record 1 failed.
	ctx, cancel := context.WithCancel(context.Background())
	_, err := NewRunner(act, store, testLogger()).Run(ctx, records, "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 2,
		OnEvent: func(ev Event) {
			if ev.Type == EventBatchComplete {
				cancel()
			}
		},
	})
	assert.ErrorIs(t, err, context.Canceled)

	// Only the success is checkpointed; the failure stays retryable.
	cp := store.Load("acct")
	require.NotNil(t, cp)
	assert.Equal(t, []string{records[0].URL}, cp.CompletedURLs)

	second := &fakeActivator{}
	res, err := NewRunner(second, store, testLogger()).Run(context.Background(), records, "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 2,
	})

	require.NoError(t, err)
	assert.Contains(t, second.calls, records[1].URL)
	assert.NotContains(t, second.calls, records[0].URL)
	assert.Equal(t, 4, res.SuccessfulActivations)
	assert.Nil(t, store.Load("acct"))
}

func TestRunBatchInfrastructureError(t *testing.T) {
	records := makeRecords(9)
	act := &fakeActivator{hardErr: map[string]error{
		records[4].URL: errors.New("connection reset"),
	}}
	runner, store := testRunner(t, act)

	var events []Event
	res, err := runner.Run(context.Background(), records, "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 3,
		OnEvent:   func(ev Event) { events = append(events, ev) },
	})

	require.NoError(t, err)
	assert.Equal(t, 6, res.SuccessfulActivations+res.FailedActivations)
	assert.Contains(t, res.Message, "run again")
	assert.Contains(t, eventTypes(events), EventBatchError)

	// Batches 1 and 3 are checkpointed, the failed batch stays pending.
	cp := store.Load("acct")
	require.NotNil(t, cp)
	assert.Len(t, cp.CompletedURLs, 6)
	assert.NotContains(t, cp.CompletedURLs, records[3].URL)
	assert.NotContains(t, cp.CompletedURLs, records[4].URL)
	assert.NotContains(t, cp.CompletedURLs, records[5].URL)
}

func TestRunCancelledBetweenBatches(t *testing.T) {
	records := makeRecords(6)
	act := &fakeActivator{}
	runner, store := testRunner(t, act)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := runner.Run(ctx, records, "str0ngpass", Options{
		Account:   "acct",
		BatchSize: 3,
		OnEvent: func(ev Event) {
			if ev.Type == EventBatchComplete {
				cancel()
			}
		},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, act.calls, 3)

	// First batch survived in the checkpoint, so a rerun skips it.
	cp := store.Load("acct")
	require.NotNil(t, cp)
	assert.Len(t, cp.CompletedURLs, 3)
}

func TestRunAllAlreadyActivated(t *testing.T) {
	records := makeRecords(4)
	act := &fakeActivator{}
	runner, store := testRunner(t, act)

	urls := make([]string, len(records))
	for i, rec := range records {
		urls[i] = rec.URL
	}
	require.NoError(t, store.Save("acct", &state.Checkpoint{CompletedURLs: urls}))

	res, err := runner.Run(context.Background(), records, "str0ngpass", Options{Account: "acct", BatchSize: 2})

	require.NoError(t, err)
	assert.Empty(t, act.calls)
	assert.Equal(t, "All agents already activated", res.Message)
	assert.Equal(t, 4, res.SuccessfulActivations)
	assert.Equal(t, "100.0%", res.SuccessRate)
	assert.Nil(t, store.Load("acct"))
}

func TestRunWithoutAccountSkipsCheckpointing(t *testing.T) {
	act := &fakeActivator{}
	runner, store := testRunner(t, act)

	res, err := runner.Run(context.Background(), makeRecords(3), "str0ngpass", Options{BatchSize: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, res.SuccessfulActivations)
	assert.Nil(t, store.Load(""))
}

func TestETAUsesLastBatchRate(t *testing.T) {
	s := &runState{total: 100, skipped: 10, successful: 15, failed: 5}

	// 70 remaining at 2s per record from the last batch.
	assert.Equal(t, 140*time.Second, s.eta(10*time.Second, 5))

	assert.Zero(t, s.eta(10*time.Second, 0))

	s.successful = 90
	assert.Zero(t, s.eta(10*time.Second, 5))
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "less than 1 minute", formatETA(30*time.Second))
	assert.Equal(t, "1m 30s", formatETA(90*time.Second))
	assert.Equal(t, "12m 5s", formatETA(12*time.Minute+5*time.Second))
}
