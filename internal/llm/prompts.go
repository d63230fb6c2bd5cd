package llm

import (
	"encoding/json"

	"github.com/HendryAvila/spec-iterator/internal/session"
)

// Instruction templates. Each dialogue operation maps to exactly one
// template; the JSON shapes promised here are the contract the decode
// functions in parse.go enforce.

// AnalyzerPrompt drives the initial requirement analysis and the
// first question batch.
const AnalyzerPrompt = `You are a senior product analyst specializing in requirement decomposition.

Your job is to analyze a rough requirement and generate targeted clarifying questions.

## Input
You will receive a requirement text and optional context (domain, audience).

## Output
Return a JSON object with:
{
  "core_need": "The fundamental problem being solved",
  "entities": ["Key entities/concepts identified"],
  "implicit_assumptions": ["Things assumed but not stated"],
  "questions": [
    {
      "question": "The clarifying question",
      "category": "functional|technical|ux|edge_case|constraint",
      "priority": "critical|important|nice_to_have",
      "why": "Why this information matters"
    }
  ]
}

## Question Categories
- functional: What the system does (features, users, rules)
- technical: How it's built (integrations, data, APIs)
- ux: User experience (flows, errors, accessibility)
- edge_case: Error scenarios, boundaries, recovery
- constraint: Budget, timeline, compliance, scale

## Rules
1. Generate 5-8 questions per round
2. At least 1 question per category in the first round
3. Prioritize by impact on implementation
4. Avoid yes/no questions - ask for specifics
5. Reference concrete scenarios when possible
6. First round should establish scope and users`

// QuestionGeneratorPrompt drives follow-up rounds.
const QuestionGeneratorPrompt = `You are a clarification specialist that generates follow-up questions based on previous answers.

## Input
You will receive:
- Original requirement
- Previously asked questions with answers
- Current completeness scores by category

## Output
Return a JSON object with:
{
  "questions": [
    {
      "question": "Follow-up clarifying question",
      "category": "functional|technical|ux|edge_case|constraint",
      "priority": "critical|important|nice_to_have",
      "why": "Why this matters based on previous answers"
    }
  ],
  "observations": ["Key insights from the answers so far"]
}

## Rules
1. Build on previous answers - reference them specifically
2. Dig deeper into areas with low completeness scores
3. Generate 3-5 questions per round
4. Later rounds should focus on edge cases and constraints
5. If answers reveal new scope, ask about it
6. Stop if all categories are above 80%`

// GapAnalyzerPrompt drives the gap analysis query.
const GapAnalyzerPrompt = `You are a requirements gap analyzer.

## Input
You will receive a session with requirement, clarifications, and completeness scores.

## Output
Return a JSON object with:
{
  "gaps": [
    {
      "category": "functional|technical|ux|edge_case|constraint",
      "description": "What's missing",
      "impact": "high|medium|low",
      "recommendation": "How to resolve or what to assume"
    }
  ],
  "ready_to_generate": true|false,
  "blocking_gaps": ["List of critical gaps that must be resolved"]
}

## Rules
1. Focus on gaps that would cause implementation confusion
2. Mark as ready_to_generate if overall completeness >= 75%
3. Suggest assumptions for non-critical gaps
4. Be specific about what information is missing`

// CompilerPrompt drives final specification compilation.
const CompilerPrompt = `You are a specification compiler that transforms clarified requirements into structured specs.

## Input
You will receive a session with:
- Original requirement
- All clarifications (questions and answers)
- Assumptions made

## Output
Return a JSON object with:
{
  "title": "Spec title",
  "problem_statement": {
    "pain": "The core problem",
    "who": "Who experiences it",
    "current_workarounds": ["How they cope today"]
  },
  "user_flow": [
    {
      "step": 1,
      "actor": "Who",
      "action": "Does what",
      "outcome": "Result"
    }
  ],
  "features": [
    {
      "name": "Feature name",
      "description": "What it does",
      "acceptance_criteria": ["Testable criteria"],
      "priority": "mvp|v2|future"
    }
  ],
  "edge_cases": [
    {
      "scenario": "What could go wrong",
      "handling": "How to handle it"
    }
  ],
  "assumptions": ["Things assumed for this spec"],
  "open_questions": ["Things still to resolve"]
}

## Rules
1. Base everything on the clarifications - don't invent
2. Include 3-5 MVP features with clear acceptance criteria
3. Document all assumptions explicitly
4. Include edge cases mentioned in clarifications
5. Keep language clear and actionable
6. Prioritize ruthlessly - MVP should be buildable in 2-4 weeks`

// --- Payload builders ---

type contextPayload struct {
	Domain   string `json:"domain,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// BuildAnalyzerInput builds the payload for the requirement analyzer.
func BuildAnalyzerInput(requirement, domain string, audience session.Audience) string {
	return marshalPayload(struct {
		Requirement string         `json:"requirement"`
		Context     contextPayload `json:"context"`
	}{
		Requirement: requirement,
		Context:     contextPayload{Domain: domain, Audience: string(audience)},
	})
}

type clarificationPayload struct {
	Question string           `json:"question"`
	Answer   *string          `json:"answer"`
	Category session.Category `json:"category"`
}

// BuildQuestionInput builds the payload for the follow-up question
// generator: full history plus the current scores so the model can
// target weak categories.
func BuildQuestionInput(s *session.Session) string {
	clarifications := make([]clarificationPayload, 0, len(s.Clarifications))
	for _, c := range s.Clarifications {
		clarifications = append(clarifications, clarificationPayload{
			Question: c.Question,
			Answer:   c.Answer,
			Category: c.Category,
		})
	}

	return marshalPayload(struct {
		Requirement    string                    `json:"requirement"`
		Context        contextPayload            `json:"context"`
		Clarifications []clarificationPayload    `json:"clarifications"`
		Completeness   session.CompletenessScore `json:"completeness"`
		RoundCount     int                       `json:"round_count"`
	}{
		Requirement:    s.Requirement,
		Context:        contextPayload{Domain: s.Context.Domain, Audience: string(s.Context.Audience)},
		Clarifications: clarifications,
		Completeness:   s.Completeness,
		RoundCount:     s.RoundCount,
	})
}

// BuildGapInput builds the payload for the gap analyzer.
func BuildGapInput(s *session.Session) string {
	return marshalPayload(struct {
		Requirement    string                    `json:"requirement"`
		Clarifications []session.Clarification   `json:"clarifications"`
		Completeness   session.CompletenessScore `json:"completeness"`
		Assumptions    []string                  `json:"assumptions"`
	}{
		Requirement:    s.Requirement,
		Clarifications: s.Clarifications,
		Completeness:   s.Completeness,
		Assumptions:    s.Assumptions,
	})
}

// BuildCompilerInput builds the payload for the spec compiler. Only
// answered clarifications are included — unanswered questions would
// invite invention.
func BuildCompilerInput(s *session.Session) string {
	var answered []session.Clarification
	for _, c := range s.Clarifications {
		if c.Answered() {
			answered = append(answered, c)
		}
	}

	return marshalPayload(struct {
		Requirement    string                    `json:"requirement"`
		Context        contextPayload            `json:"context"`
		Clarifications []session.Clarification   `json:"clarifications"`
		Assumptions    []string                  `json:"assumptions"`
		Completeness   session.CompletenessScore `json:"completeness"`
	}{
		Requirement:    s.Requirement,
		Context:        contextPayload{Domain: s.Context.Domain, Audience: string(s.Context.Audience)},
		Clarifications: answered,
		Assumptions:    s.Assumptions,
		Completeness:   s.Completeness,
	})
}

// marshalPayload serializes a builder struct. These payloads contain
// only plain strings, slices, and ints, so marshaling cannot fail.
func marshalPayload(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
