package dialogue

import (
	"github.com/HendryAvila/spec-iterator/internal/llm"
	"github.com/HendryAvila/spec-iterator/internal/session"
	"github.com/HendryAvila/spec-iterator/internal/specdoc"
)

// QuestionView is the compact question shape returned to callers.
type QuestionView struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Category session.Category `json:"category"`
	Priority session.Priority `json:"priority"`
}

func questionViews(clarifications []session.Clarification) []QuestionView {
	views := make([]QuestionView, 0, len(clarifications))
	for _, c := range clarifications {
		views = append(views, QuestionView{
			ID:       c.ID,
			Question: c.Question,
			Category: c.Category,
			Priority: c.Priority,
		})
	}
	return views
}

// Analysis is the requirement breakdown returned from session creation.
type Analysis struct {
	CoreNeed            string   `json:"core_need"`
	Entities            []string `json:"entities"`
	ImplicitAssumptions []string `json:"implicit_assumptions"`
}

// StartResult is the outcome of creating a session.
type StartResult struct {
	SessionID    string                    `json:"session_id"`
	Status       session.Status            `json:"status"`
	Analysis     Analysis                  `json:"analysis"`
	Questions    []QuestionView            `json:"questions"`
	Completeness session.CompletenessScore `json:"completeness"`
	Instructions string                    `json:"instructions"`
}

// Answer pairs a question id with its answer text.
type Answer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitResult is the outcome of an answer-submission cycle.
type SubmitResult struct {
	SessionID        string                    `json:"session_id"`
	Status           session.Status            `json:"status"`
	Completeness     session.CompletenessScore `json:"completeness"`
	Round            int                       `json:"round"`
	AnswersRecorded  int                       `json:"answers_recorded"`
	PendingQuestions []QuestionView            `json:"pending_questions"`
	Observations     []string                  `json:"observations,omitempty"`
	NextStep         string                    `json:"next_step"`
}

// GapsResult is the outcome of a gap analysis query.
type GapsResult struct {
	SessionID      string                    `json:"session_id"`
	Completeness   session.CompletenessScore `json:"completeness"`
	GapAnalysis    llm.GapAnalysis           `json:"gap_analysis"`
	Recommendation string                    `json:"recommendation"`
}

// Format selects the generate output representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts user input into a Format, defaulting to
// markdown for anything unrecognized.
func ParseFormat(s string) Format {
	if Format(s) == FormatJSON {
		return FormatJSON
	}
	return FormatMarkdown
}

// GenerateResult is the outcome of spec generation. Exactly one of
// Document, Spec, or Warning is populated: Document for markdown
// format, Spec for json format, Warning when completeness is below
// the generation threshold and nothing was generated.
type GenerateResult struct {
	SessionID    string                    `json:"session_id"`
	Status       session.Status            `json:"status"`
	Completeness session.CompletenessScore `json:"completeness"`
	Document     string                    `json:"-"`
	Spec         *specdoc.Spec             `json:"specification,omitempty"`
	Warning      string                    `json:"warning,omitempty"`
	Suggestion   string                    `json:"suggestion,omitempty"`
}

// QuestionCounts summarizes clarification progress.
type QuestionCounts struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Pending  int `json:"pending"`
}

// StatusResult is the full session snapshot returned by Status.
type StatusResult struct {
	SessionID        string                    `json:"session_id"`
	Status           session.Status            `json:"status"`
	CreatedAt        string                    `json:"created_at"`
	UpdatedAt        string                    `json:"updated_at"`
	Requirement      string                    `json:"requirement"`
	Context          session.Context           `json:"context"`
	Completeness     session.CompletenessScore `json:"completeness"`
	RoundCount       int                       `json:"round_count"`
	Questions        QuestionCounts            `json:"questions"`
	PendingQuestions []QuestionView            `json:"pending_questions"`
	Assumptions      []string                  `json:"assumptions"`
}
