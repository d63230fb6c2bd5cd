package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/session"
)

// ListTool handles the spec_list_sessions MCP tool.
type ListTool struct {
	registry *session.Registry
}

// NewListTool creates a ListTool over the given registry.
func NewListTool(registry *session.Registry) *ListTool {
	return &ListTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_list_sessions",
		mcp.WithDescription(
			"List all clarification sessions stored on this server. "+
				"USE THIS TOOL WHEN: you need to find a previous session or see all work in progress.",
		),
	)
}

type sessionSummary struct {
	ID           string         `json:"id"`
	Requirement  string         `json:"requirement"`
	Status       session.Status `json:"status"`
	Completeness int            `json:"completeness"`
	CreatedAt    string         `json:"created_at"`
}

// Handle processes the spec_list_sessions tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries := t.registry.List()

	views := make([]sessionSummary, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, sessionSummary{
			ID:           s.ID,
			Requirement:  s.Requirement,
			Status:       s.Status,
			Completeness: s.Completeness,
			CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		})
	}

	return jsonResult(struct {
		Sessions []sessionSummary `json:"sessions"`
	}{Sessions: views}), nil
}
