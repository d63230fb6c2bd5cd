// Package tools implements the MCP tool handlers for the spec
// iterator server.
//
// Each tool is a struct that receives its dependencies via the
// constructor and exposes Definition() plus a Handle compatible with
// mcp-go's CallToolRequest signature. Handlers translate dialogue
// results into JSON payloads; every failure path returns a structured
// object with an error kind, details, and a recovery hint — never a
// raw stack trace.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
	"github.com/HendryAvila/spec-iterator/internal/llm"
)

// jsonResult marshals v as an indented JSON tool result.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// errorPayload is the uniform error shape: kind, details, recovery.
type errorPayload struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Recovery  string `json:"recovery"`
}

func errorResult(p errorPayload) *mcp.CallToolResult {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(p.Error)
	}
	return mcp.NewToolResultError(string(b))
}

// notFoundResult builds the error payload for an unknown session id.
func notFoundResult(sessionID string) *mcp.CallToolResult {
	return errorResult(errorPayload{
		Error:     "session_not_found",
		SessionID: sessionID,
		Recovery:  "Use spec_list_sessions to see available sessions, or spec_start_session to create a new one.",
	})
}

// operationError maps a dialogue error to the right payload: unknown
// session ids become session_not_found, everything else surfaces the
// gateway error kind with its recovery hint.
func operationError(err error, sessionID string) *mcp.CallToolResult {
	if errors.Is(err, dialogue.ErrNotFound) {
		return notFoundResult(sessionID)
	}
	return errorResult(errorPayload{
		Error:     string(llm.KindOf(err)),
		Details:   err.Error(),
		SessionID: sessionID,
		Recovery:  llm.HintOf(err),
	})
}

// parseAnswers converts the raw tool argument into typed answers. The
// transport delivers arrays as []any of map[string]any; a JSON
// round-trip is the simplest faithful conversion.
func parseAnswers(raw any) ([]dialogue.Answer, error) {
	if raw == nil {
		return nil, fmt.Errorf("'answers' is required")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	var answers []dialogue.Answer
	if err := json.Unmarshal(b, &answers); err != nil {
		return nil, fmt.Errorf("answers must be a list of {question_id, answer} objects: %w", err)
	}
	return answers, nil
}
