package tools

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/callhub"
	"github.com/johncallhub/CallHub-MCP/internal/config"
)

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****5678", maskKey("abcd5678"))
	assert.Equal(t, "****", maskKey("abc"))
	assert.Equal(t, "****", maskKey(""))
}

func TestTeamRefFromInput(t *testing.T) {
	ref, errResult := teamRefFromInput("42", "")
	require.Nil(t, errResult)
	assert.Equal(t, callhub.TeamByID("42"), ref)

	ref, errResult = teamRefFromInput("", "Weekend Callers")
	require.Nil(t, errResult)
	assert.Equal(t, callhub.TeamByName("Weekend Callers"), ref)

	_, errResult = teamRefFromInput("42", "Weekend Callers")
	require.NotNil(t, errResult)
	assert.True(t, errResult.IsError)

	_, errResult = teamRefFromInput("", "")
	require.NotNil(t, errResult)
	assert.True(t, errResult.IsError)
}

func TestAPIErrorResultHints(t *testing.T) {
	cfg := apiErrorResult(&auth.ConfigError{Account: "x", Reason: "no API key"})
	assert.True(t, cfg.IsError)

	unauthorized := apiErrorResult(&callhub.APIError{Status: http.StatusUnauthorized})
	assert.True(t, unauthorized.IsError)

	exhausted := apiErrorResult(&callhub.RequestError{Status: http.StatusInternalServerError})
	assert.True(t, exhausted.IsError)
}

func TestBatchDelay(t *testing.T) {
	deps := &Dependencies{}
	assert.Equal(t, 500*time.Millisecond, deps.batchDelay())

	deps.Config = &config.Config{BatchDelay: 2 * time.Second}
	assert.Equal(t, 2*time.Second, deps.batchDelay())
}

func TestJSONResult(t *testing.T) {
	result := JSONResult(map[string]int{"count": 3})
	require.Len(t, result.Content, 1)
	assert.False(t, result.IsError)
}
