package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

func TestFinalViewListsFailedAgents(t *testing.T) {
	m := newActivationModel(nil, nil, func() {})
	m.finished = true
	m.result = &batch.Result{
		TotalAgents:           3,
		SuccessfulActivations: 2,
		FailedActivations:     1,
		SuccessRate:           "66.7%",
		Details: []activation.Outcome{
			{Username: "agent0", Success: true, Message: "Successfully activated"},
			{Username: "agent1", Success: false, Message: "no password field found"},
			{Username: "agent2", Success: true, Message: "Successfully activated"},
		},
	}

	view := m.finalView()
	assert.Contains(t, view, "agent1: no password field found")
	assert.NotContains(t, view, "agent0:")
	assert.Contains(t, view, "66.7%")
}

func TestFinalViewStoppedRun(t *testing.T) {
	m := newActivationModel(nil, nil, func() {})
	m.finished = true
	m.quitting = true
	m.err = assert.AnError

	assert.Contains(t, m.finalView(), "resume")
}

func TestRenderContentShowsBatchProgress(t *testing.T) {
	m := newActivationModel(nil, nil, func() {})
	m.last = batch.Event{
		Type:      batch.EventBatchComplete,
		Batch:     2,
		Batches:   5,
		Total:     50,
		Completed: 20,
		ETA:       "1m 30s",
	}

	view := m.renderContent()
	assert.Contains(t, view, "batch 2/5")
	assert.Contains(t, view, "20/50 agents")
	assert.Contains(t, view, "1m 30s")
}
