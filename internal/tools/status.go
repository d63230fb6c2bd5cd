package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
)

// StatusTool handles the spec_get_status MCP tool.
type StatusTool struct {
	svc *dialogue.Service
}

// NewStatusTool creates a StatusTool with its dependencies.
func NewStatusTool(svc *dialogue.Service) *StatusTool {
	return &StatusTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_get_status",
		mcp.WithDescription(
			"Get a quick status overview of a clarification session. "+
				"USE THIS TOOL WHEN: you need to check progress or resume work on a session.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session_id to check"),
		),
	)
}

// Handle processes the spec_get_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	result, err := t.svc.Status(sessionID)
	if err != nil {
		return operationError(err, sessionID), nil
	}

	return jsonResult(result), nil
}
