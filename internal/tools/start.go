package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
)

// StartTool handles the spec_start_session MCP tool.
type StartTool struct {
	svc *dialogue.Service
}

// NewStartTool creates a StartTool with its dependencies.
func NewStartTool(svc *dialogue.Service) *StartTool {
	return &StartTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_start_session",
		mcp.WithDescription(
			"Start a new specification clarification session from a rough or incomplete requirement. "+
				"USE THIS TOOL WHEN: you have a vague requirement like 'build a dashboard' or 'we need order tracking' "+
				"and need to systematically uncover missing details before implementation. "+
				"RETURNS: a session_id (save this!) and initial clarifying questions organized by category. "+
				"TYPICAL WORKFLOW: spec_start_session -> spec_answer_questions (repeat until 80%+) -> spec_generate",
		),
		mcp.WithString("requirement",
			mcp.Required(),
			mcp.Description("The initial requirement, idea, or feature request to clarify"),
		),
		mcp.WithString("domain",
			mcp.Description("Optional domain context (e.g. 'e-commerce', 'healthcare', 'fintech')"),
		),
		mcp.WithString("audience",
			mcp.Description("Optional target audience: 'technical', 'business', or 'mixed'"),
		),
	)
}

// Handle processes the spec_start_session tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requirement := req.GetString("requirement", "")
	if requirement == "" {
		return mcp.NewToolResultError("'requirement' is required"), nil
	}

	domain := req.GetString("domain", "")
	audience := req.GetString("audience", "")

	result, err := t.svc.Start(ctx, requirement, domain, audience)
	if err != nil {
		// No session was registered — creation is atomic.
		return operationError(err, ""), nil
	}

	return jsonResult(result), nil
}
