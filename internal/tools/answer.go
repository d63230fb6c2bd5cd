package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/dialogue"
)

// AnswerTool handles the spec_answer_questions MCP tool.
type AnswerTool struct {
	svc *dialogue.Service
}

// NewAnswerTool creates an AnswerTool with its dependencies.
func NewAnswerTool(svc *dialogue.Service) *AnswerTool {
	return &AnswerTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_answer_questions",
		mcp.WithDescription(
			"Provide answers to clarifying questions in an active session. "+
				"USE THIS TOOL WHEN: you have a session_id from spec_start_session and want to answer pending questions. "+
				"RETURNS: updated completeness scores and any new follow-up questions.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session_id returned from spec_start_session"),
		),
		mcp.WithArray("answers",
			mcp.Required(),
			mcp.Description(`List of {"question_id": "q1_1", "answer": "your answer"} objects`),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question_id": map[string]any{"type": "string"},
					"answer":      map[string]any{"type": "string"},
				},
				"required": []string{"question_id", "answer"},
			}),
		),
	)
}

// Handle processes the spec_answer_questions tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	answers, err := parseAnswers(req.GetArguments()["answers"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.svc.SubmitAnswers(ctx, sessionID, answers)
	if err != nil {
		return operationError(err, sessionID), nil
	}

	return jsonResult(result), nil
}
