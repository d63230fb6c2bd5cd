package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
)

// GenerateTool handles the spec_generate MCP tool.
type GenerateTool struct {
	svc *dialogue.Service
}

// NewGenerateTool creates a GenerateTool with its dependencies.
func NewGenerateTool(svc *dialogue.Service) *GenerateTool {
	return &GenerateTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_generate",
		mcp.WithDescription(
			"Generate the final structured specification from a completed session. "+
				"USE THIS TOOL WHEN: completeness is 80%+ and you're ready to generate the spec. "+
				"Generation below 60% returns a warning instead of a document.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session_id to compile into a specification"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json'"),
		),
	)
}

// Handle processes the spec_generate tool call. In markdown mode the
// rendered document is returned as raw text; json mode and the
// below-threshold warning return structured payloads.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	format := dialogue.ParseFormat(req.GetString("format", "markdown"))

	result, err := t.svc.Generate(ctx, sessionID, format)
	if err != nil {
		return operationError(err, sessionID), nil
	}

	if result.Document != "" {
		return mcp.NewToolResultText(result.Document), nil
	}
	return jsonResult(result), nil
}
