package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/callhub"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so LLM can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult renders a value as indented JSON text content.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("failed to encode result", err.Error())
	}
	return TextResult(string(data))
}

// apiErrorResult turns client and credential errors into tool errors with a
// hint the caller can act on.
func apiErrorResult(err error) *mcp.CallToolResult {
	var cfgErr *auth.ConfigError
	if errors.As(err, &cfgErr) {
		return ErrorResult(cfgErr.Error(),
			"Configure the account with add_account or set CALLHUB_<NAME>_API_KEY")
	}

	var apiErr *callhub.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrorResult(apiErr.Error(), "Check that the account's API key is valid")
		case http.StatusNotFound:
			return ErrorResult(apiErr.Error(), "Check the ID; the resource may have been deleted")
		default:
			return ErrorResult(apiErr.Error(), "")
		}
	}

	var reqErr *callhub.RequestError
	if errors.As(err, &reqErr) {
		return ErrorResult(fmt.Sprintf("CallHub did not respond: %v", err),
			"Retries were exhausted; try again later")
	}

	return ErrorResult(err.Error(), "")
}
