// Package specdoc defines the structured specification produced at
// session finalization and its deterministic markdown renderer.
package specdoc

// FeaturePriority buckets a feature by delivery horizon.
type FeaturePriority string

const (
	PriorityMVP    FeaturePriority = "mvp"
	PriorityV2     FeaturePriority = "v2"
	PriorityFuture FeaturePriority = "future"
)

// ProblemStatement captures the pain, who feels it, and how they cope
// today.
type ProblemStatement struct {
	Pain               string   `json:"pain"`
	Who                string   `json:"who"`
	CurrentWorkarounds []string `json:"current_workarounds"`
}

// FlowStep is one numbered step of the user flow.
type FlowStep struct {
	Step    int    `json:"step"`
	Actor   string `json:"actor"`
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// Feature is one deliverable with testable acceptance criteria.
type Feature struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	AcceptanceCriteria []string        `json:"acceptance_criteria"`
	Priority           FeaturePriority `json:"priority"`
}

// EdgeCase pairs a failure scenario with its handling.
type EdgeCase struct {
	Scenario string `json:"scenario"`
	Handling string `json:"handling"`
}

// Spec is the complete structured specification.
type Spec struct {
	Title            string           `json:"title"`
	ProblemStatement ProblemStatement `json:"problem_statement"`
	UserFlow         []FlowStep       `json:"user_flow"`
	Features         []Feature        `json:"features"`
	EdgeCases        []EdgeCase       `json:"edge_cases"`
	Assumptions      []string         `json:"assumptions"`
	OpenQuestions    []string         `json:"open_questions"`
}
