package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/spec-iterator/internal/session"
)

// InfoTool handles the spec_info MCP tool: server health and
// capabilities metadata.
type InfoTool struct {
	registry      *session.Registry
	version       string
	apiConfigured bool
}

// NewInfoTool creates an InfoTool. apiConfigured reports whether an
// API key was present at startup — the server runs degraded without
// one (every gateway call will fail with authentication_failure).
func NewInfoTool(registry *session.Registry, version string, apiConfigured bool) *InfoTool {
	return &InfoTool{registry: registry, version: version, apiConfigured: apiConfigured}
}

// Definition returns the MCP tool definition for registration.
func (t *InfoTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_info",
		mcp.WithDescription(
			"Get server information and health status. "+
				"USE THIS TOOL WHEN: you want to verify the server is working correctly.",
		),
	)
}

type serverInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type healthInfo struct {
	Status     string `json:"status"`
	API        string `json:"api"`
	APIMessage string `json:"api_message"`
}

type capabilitiesInfo struct {
	Tools                  []string `json:"tools"`
	CompletenessCategories []string `json:"completeness_categories"`
	OutputFormats          []string `json:"output_formats"`
}

type usageInfo struct {
	TypicalWorkflow string `json:"typical_workflow"`
}

type infoResponse struct {
	Server       serverInfo       `json:"server"`
	Health       healthInfo       `json:"health"`
	Statistics   session.Stats    `json:"statistics"`
	Capabilities capabilitiesInfo `json:"capabilities"`
	Usage        usageInfo        `json:"usage"`
}

// Handle processes the spec_info tool call.
func (t *InfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	health := healthInfo{
		Status:     "healthy",
		API:        "configured",
		APIMessage: "Anthropic API key is configured",
	}
	if !t.apiConfigured {
		health = healthInfo{
			Status:     "degraded",
			API:        "missing",
			APIMessage: "ANTHROPIC_API_KEY environment variable is missing",
		}
	}

	return jsonResult(infoResponse{
		Server: serverInfo{
			Name:        "spec-iterator",
			Version:     t.version,
			Description: "Transform rough requirements into complete technical specifications through AI-powered clarification dialogues",
		},
		Health:     health,
		Statistics: t.registry.Stats(),
		Capabilities: capabilitiesInfo{
			Tools: []string{
				"spec_start_session",
				"spec_answer_questions",
				"spec_get_gaps",
				"spec_generate",
				"spec_get_status",
				"spec_list_sessions",
				"spec_info",
			},
			CompletenessCategories: []string{
				"functional (30%)",
				"technical (25%)",
				"ux (20%)",
				"edge_cases (15%)",
				"constraints (10%)",
			},
			OutputFormats: []string{"markdown", "json"},
		},
		Usage: usageInfo{
			TypicalWorkflow: "spec_start_session -> spec_answer_questions (repeat) -> spec_generate",
		},
	}), nil
}
