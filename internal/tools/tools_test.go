//go:build integration

package tools_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johncallhub/CallHub-MCP/internal/activation"
	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/callhub"
	"github.com/johncallhub/CallHub-MCP/internal/config"
	"github.com/johncallhub/CallHub-MCP/internal/jobs"
	"github.com/johncallhub/CallHub-MCP/internal/state"
	"github.com/johncallhub/CallHub-MCP/internal/tools"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// stubActivator approves every record it sees.
type stubActivator struct{}

func (stubActivator) Activate(ctx context.Context, rec activation.Record, password string) (activation.Outcome, error) {
	return activation.Outcome{Username: rec.Username, Success: true, Message: "Successfully activated"}, nil
}

func testDeps(t *testing.T, apiURL string) *tools.Dependencies {
	t.Helper()
	logger := testLogger()

	accounts := auth.NewStore(filepath.Join(t.TempDir(), "accounts.yaml"), logger)
	require.NoError(t, accounts.Set("default", auth.Account{APIKey: "test-key", BaseURL: apiURL}))

	cfg := config.Load()
	return &tools.Dependencies{
		Accounts: accounts,
		Jobs:     jobs.NewManager(logger),
		State:    state.NewStore(t.TempDir(), logger),
		Config:   &cfg,
		Logger:   logger,
		NewClient: func(acct auth.Account) *callhub.Client {
			return callhub.New(callhub.Config{BaseURL: acct.BaseURL, APIKey: acct.APIKey}, logger)
		},
		NewActivator: func() activation.Activator { return stubActivator{} },
	}
}

func startSession(t *testing.T, deps *tools.Dependencies) (*mcp.ClientSession, context.Context) {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{Name: "test-callhub-mcp", Version: "0.0.1-test"}, nil)
	tools.RegisterAll(server, deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { session.Close() })

	return session, ctx
}

func callText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text
}

func TestToolRegistration(t *testing.T) {
	session, ctx := startSession(t, testDeps(t, "http://unused"))

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, result.Tools, 79)

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"list_agents", "create_agent", "list_accounts",
		"export_agent_activation_urls", "process_activation_csv",
		"activate_agents", "get_activation_progress", "reset_activation_progress",
	} {
		assert.True(t, names[want], "tool %s should be registered", want)
	}
}

func TestListAgentsTool(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/agents/", r.URL.Path)
		fmt.Fprint(w, `{"count": 1, "results": [{"id": 7, "username": "alice"}]}`)
	}))
	defer api.Close()

	session, ctx := startSession(t, testDeps(t, api.URL))

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_agents",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, callText(t, result), "alice")
}

func TestProcessActivationCSVTool(t *testing.T) {
	session, ctx := startSession(t, testDeps(t, "http://unused"))

	csv := "username,activation url,email\nalice,https://x/a,a@x.com\nbob,https://x/b,b@x.com\n"
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "process_activation_csv",
		Arguments: map[string]any{"csv_content": csv},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := callText(t, result)
	assert.Contains(t, text, `"count": 2`)
	assert.Contains(t, text, "https://x/a")
}

func TestActivateAgentsToolEndToEnd(t *testing.T) {
	deps := testDeps(t, "http://unused")
	session, ctx := startSession(t, deps)

	csv := "username,activation url\n"
	for i := 0; i < 5; i++ {
		csv += fmt.Sprintf("agent%d,https://x/%d\n", i, i)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "activate_agents",
		Arguments: map[string]any{
			"csv_content": csv,
			"password":    "str0ngpass",
			"batch_size":  2,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := callText(t, result)
	require.Contains(t, text, "job ")
	fields := strings.Fields(text)
	var jobID string
	for i, f := range fields {
		if f == "job" && i+1 < len(fields) {
			jobID = fields[i+1]
			break
		}
	}
	require.NotEmpty(t, jobID)

	// Poll until the background run finishes.
	var progressText string
	require.Eventually(t, func() bool {
		progress, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get_activation_progress",
			Arguments: map[string]any{"job_id": jobID},
		})
		if err != nil || progress.IsError {
			return false
		}
		progressText = callText(t, progress)
		return strings.Contains(progressText, `"status": "completed"`)
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, progressText, `"success_rate": "100.0%"`)
	assert.Contains(t, progressText, `"total_agents": 5`)
}

func TestActivateAgentsRejectsShortPassword(t *testing.T) {
	session, ctx := startSession(t, testDeps(t, "http://unused"))

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "activate_agents",
		Arguments: map[string]any{
			"csv_content": "url\nhttps://x/a\n",
			"password":    "short",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, callText(t, result), "at least 8 characters")
}

func TestResetActivationProgressTool(t *testing.T) {
	deps := testDeps(t, "http://unused")
	require.NoError(t, deps.State.Save("default", &state.Checkpoint{CompletedURLs: []string{"https://x/a"}}))

	session, ctx := startSession(t, deps)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "reset_activation_progress",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Nil(t, deps.State.Load("default"))
}
