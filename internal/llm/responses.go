package llm

import (
	"github.com/HendryAvila/spec-iterator/internal/session"
)

// Structured shapes the gateway decodes model output into. Field names
// and JSON tags match the schemas promised to the model in prompts.go.

// AnalyzedQuestion is one generated clarifying question.
type AnalyzedQuestion struct {
	Question string           `json:"question"`
	Category session.Category `json:"category"`
	Priority session.Priority `json:"priority"`
	Why      string           `json:"why"`
}

// RequirementAnalysis is the output of the requirement analyzer: the
// distilled core need plus the initial question batch.
type RequirementAnalysis struct {
	CoreNeed            string             `json:"core_need"`
	Entities            []string           `json:"entities"`
	ImplicitAssumptions []string           `json:"implicit_assumptions"`
	Questions           []AnalyzedQuestion `json:"questions"`
}

// GeneratedQuestions is the output of the follow-up question generator.
type GeneratedQuestions struct {
	Questions    []AnalyzedQuestion `json:"questions"`
	Observations []string           `json:"observations"`
}

// GapItem describes one missing piece of information.
type GapItem struct {
	Category       session.Category `json:"category"`
	Description    string           `json:"description"`
	Impact         string           `json:"impact"` // high | medium | low
	Recommendation string           `json:"recommendation"`
}

// GapAnalysis is the output of the gap analyzer.
type GapAnalysis struct {
	Gaps            []GapItem `json:"gaps"`
	ReadyToGenerate bool      `json:"ready_to_generate"`
	BlockingGaps    []string  `json:"blocking_gaps"`
}
