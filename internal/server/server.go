// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it creates the session registry, the
// text-generation gateway, and the dialogue service, and injects them
// into the tool handlers. No business logic lives here — only wiring.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/spec-iterator/internal/config"
	"github.com/HendryAvila/spec-iterator/internal/dialogue"
	"github.com/HendryAvila/spec-iterator/internal/llm"
	"github.com/HendryAvila/spec-iterator/internal/session"
	"github.com/HendryAvila/spec-iterator/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools
// registered. This is the single place where dependencies are
// resolved.
//
// A missing API key does not fail startup: the server comes up
// degraded (spec_info reports it) and every gateway call returns
// authentication_failure with a recovery hint.
func New(cfg config.Config) (*server.MCPServer, error) {
	registry := session.NewRegistry()

	apiConfigured := cfg.Anthropic.APIKey != ""

	var client llm.Client
	if apiConfigured {
		var err error
		client, err = llm.NewAnthropicClient(llm.Config{
			APIKey:  cfg.Anthropic.APIKey,
			BaseURL: cfg.Anthropic.BaseURL,
			Model:   cfg.Anthropic.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gateway client: %w", err)
		}
	} else {
		client = unconfiguredClient{}
	}

	svc := dialogue.New(registry, client)

	s := server.NewMCPServer(
		"spec-iterator",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	startTool := tools.NewStartTool(svc)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := tools.NewAnswerTool(svc)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	gapsTool := tools.NewGapsTool(svc)
	s.AddTool(gapsTool.Definition(), gapsTool.Handle)

	generateTool := tools.NewGenerateTool(svc)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	statusTool := tools.NewStatusTool(svc)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	listTool := tools.NewListTool(registry)
	s.AddTool(listTool.Definition(), listTool.Handle)

	infoTool := tools.NewInfoTool(registry, Version, apiConfigured)
	s.AddTool(infoTool.Definition(), infoTool.Handle)

	return s, nil
}

// unconfiguredClient stands in for the gateway when no API key is
// set. Every call fails with the same recoverable error.
type unconfiguredClient struct{}

func (unconfiguredClient) Complete(_ context.Context, _, _ string) (string, error) {
	return "", &llm.Error{
		Kind:    llm.KindAuthenticationFailure,
		Message: "no API key configured",
		Hint:    "set ANTHROPIC_API_KEY and restart the server",
	}
}

func (unconfiguredClient) Model() string { return "unconfigured" }

// serverInstructions returns the system instructions that tell the AI
// how to use the spec iterator effectively.
func serverInstructions() string {
	return `You have access to Spec Iterator, a requirement clarification MCP server.

## WHEN TO USE IT

Use Spec Iterator when the user has a vague requirement ("build a dashboard",
"we need order tracking") and wants a structured specification before coding.

## WORKFLOW

1. spec_start_session with the rough requirement (plus optional domain/audience)
2. Present the returned questions to the user and collect answers
3. spec_answer_questions with the answers — repeat until completeness >= 80%
4. spec_generate to produce the final specification (markdown or json)

## SUPPORTING TOOLS

- spec_get_gaps: understand why completeness is low and what's blocking
- spec_get_status: check progress or resume a session
- spec_list_sessions: find previous sessions
- spec_info: server health and capabilities

## COMPLETENESS MODEL

Completeness is scored per category (functional 30%, technical 25%, ux 20%,
edge_cases 15%, constraints 10%) with a bonus for each clarification round.
Sessions become ready_to_generate at 80%. Generation is allowed from 60%
but warns below that. At most 5 question rounds run per session.

## IMPORTANT

- Save the session_id from spec_start_session — every other tool needs it
- Sessions are in-memory only; they do not survive a server restart
- Answer questions with specifics, not yes/no
`
}
