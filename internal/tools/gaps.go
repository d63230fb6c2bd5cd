package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
)

// GapsTool handles the spec_get_gaps MCP tool.
type GapsTool struct {
	svc *dialogue.Service
}

// NewGapsTool creates a GapsTool with its dependencies.
func NewGapsTool(svc *dialogue.Service) *GapsTool {
	return &GapsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GapsTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_get_gaps",
		mcp.WithDescription(
			"Analyze what's missing in a specification session and get recommendations. "+
				"USE THIS TOOL WHEN: you want to understand why completeness is low or identify blocking gaps.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session_id to analyze"),
		),
	)
}

// Handle processes the spec_get_gaps tool call.
func (t *GapsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	result, err := t.svc.Gaps(ctx, sessionID)
	if err != nil {
		return operationError(err, sessionID), nil
	}

	return jsonResult(result), nil
}
