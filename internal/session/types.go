// Package session defines the clarification session data model, the
// completeness scoring engine, and the process-wide session registry.
//
// A session is the aggregate root: it owns an ordered list of
// clarifications (question/answer pairs), a derived completeness score,
// and a forward-only status. The design assumes a single logical writer
// per session — only the registry itself is safe for concurrent use.
package session

import (
	"time"
)

// --- Question category enum ---

// Category classifies what kind of information a clarification probes.
type Category string

const (
	CategoryFunctional Category = "functional"
	CategoryTechnical  Category = "technical"
	CategoryUX         Category = "ux"
	CategoryEdgeCase   Category = "edge_case"
	CategoryConstraint Category = "constraint"
)

// Categories lists all question categories in weight order.
var Categories = []Category{
	CategoryFunctional,
	CategoryTechnical,
	CategoryUX,
	CategoryEdgeCase,
	CategoryConstraint,
}

// ValidCategory reports whether c is a recognized question category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFunctional, CategoryTechnical, CategoryUX, CategoryEdgeCase, CategoryConstraint:
		return true
	}
	return false
}

// --- Question priority enum ---

// Priority ranks how important answering a clarification is.
type Priority string

const (
	PriorityCritical   Priority = "critical"
	PriorityImportant  Priority = "important"
	PriorityNiceToHave Priority = "nice_to_have"
)

// ValidPriority reports whether p is a recognized question priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityCritical, PriorityImportant, PriorityNiceToHave:
		return true
	}
	return false
}

// --- Session status enum ---

// Status is the lifecycle state of a session. Transitions are
// forward-only: in_progress → ready_to_generate → complete. A status
// is never downgraded, even if a later recomputation drops the
// completeness score below the readiness threshold.
type Status string

const (
	StatusInProgress      Status = "in_progress"
	StatusReadyToGenerate Status = "ready_to_generate"
	StatusComplete        Status = "complete"
)

// --- Audience enum ---

// Audience is the target readership of the generated specification.
type Audience string

const (
	AudienceTechnical Audience = "technical"
	AudienceBusiness  Audience = "business"
	AudienceMixed     Audience = "mixed"
)

// ParseAudience converts user input into an Audience. Unrecognized
// values degrade to empty (treated as absent) rather than failing —
// a bad enum should never abort session creation.
func ParseAudience(s string) Audience {
	switch Audience(s) {
	case AudienceTechnical, AudienceBusiness, AudienceMixed:
		return Audience(s)
	}
	return ""
}

// Complexity is a rough gauge of how involved the requirement is.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// --- Core types ---

// Clarification is one question/answer pair. Created in batches from
// gateway output, appended to a session, and mutated only by filling
// in Answer. Never removed.
type Clarification struct {
	ID       string   `json:"id"` // q{round}_{index}, unique within a session
	Question string   `json:"question"`
	Answer   *string  `json:"answer,omitempty"` // nil means unanswered
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Why      string   `json:"why,omitempty"`
}

// Answered reports whether the clarification has an answer.
func (c *Clarification) Answered() bool {
	return c.Answer != nil
}

// CompletenessScore holds integer percentages (0-100) per category
// plus the weighted overall aggregate. It is derived state: always
// recomputed from scratch via Score, never maintained incrementally.
type CompletenessScore struct {
	Overall     int `json:"overall"`
	Functional  int `json:"functional"`
	Technical   int `json:"technical"`
	UX          int `json:"ux"`
	EdgeCases   int `json:"edge_cases"`
	Constraints int `json:"constraints"`
}

// Context carries optional domain hints supplied at session creation.
type Context struct {
	Domain     string     `json:"domain,omitempty"`
	Audience   Audience   `json:"audience,omitempty"`
	Complexity Complexity `json:"complexity"`
}

// Session is the aggregate root for one clarification dialogue.
type Session struct {
	ID             string            `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Requirement    string            `json:"requirement"`
	Context        Context           `json:"context"`
	Clarifications []Clarification   `json:"clarifications"`
	Completeness   CompletenessScore `json:"completeness"`
	Assumptions    []string          `json:"assumptions"`
	Status         Status            `json:"status"`
	RoundCount     int               `json:"round_count"`
}

// Pending returns the clarifications that have not been answered yet,
// in insertion order.
func (s *Session) Pending() []Clarification {
	var pending []Clarification
	for _, c := range s.Clarifications {
		if !c.Answered() {
			pending = append(pending, c)
		}
	}
	return pending
}

// AnsweredCount returns how many clarifications have answers.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, c := range s.Clarifications {
		if c.Answered() {
			n++
		}
	}
	return n
}

// Recompute refreshes the derived completeness score from the current
// clarification list and round count.
func (s *Session) Recompute() {
	s.Completeness = Score(s.Clarifications, s.RoundCount)
}
