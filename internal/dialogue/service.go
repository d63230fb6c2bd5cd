// Package dialogue implements the session state machine: the five
// operations that drive a clarification dialogue from a rough
// requirement to a generated specification.
//
// The service owns round progression. After each answer batch it
// recomputes completeness, decides whether another question round is
// needed (overall < 80 and fewer than 5 rounds), and promotes the
// session status forward. Status transitions are one-way:
//
//	in_progress --(submit, overall>=80)--> ready_to_generate
//	ready_to_generate --(generate ok)--> complete
//	in_progress --(generate, overall>=60)--> complete
//
// complete is terminal; nothing removes or reopens a session.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/spec-iterator/internal/llm"
	"github.com/HendryAvila/spec-iterator/internal/session"
	"github.com/HendryAvila/spec-iterator/internal/specdoc"
)

// ErrNotFound reports an unknown session id. Recoverable: the caller
// can list sessions or create a new one.
var ErrNotFound = errors.New("session not found")

// Package-level vars for test injection.
var (
	timeNow      = time.Now
	newSessionID = func() string { return uuid.NewString() }
)

// Service coordinates sessions, the scoring engine, and the
// text-generation gateway. It holds no per-session locks: requests
// against a single session id are assumed sequential, and the
// registry handles cross-session concurrency.
type Service struct {
	registry *session.Registry
	client   llm.Client
}

// New creates a Service backed by the given registry and gateway.
func New(registry *session.Registry, client llm.Client) *Service {
	return &Service{registry: registry, client: client}
}

// Registry exposes the session registry for read-only views
// (listing, statistics).
func (s *Service) Registry() *session.Registry {
	return s.registry
}

// Start creates a session from a rough requirement. The gateway
// analyzes the requirement and produces the initial question batch;
// if that call fails, no session is registered — creation is atomic.
func (s *Service) Start(ctx context.Context, requirement, domain, audience string) (*StartResult, error) {
	now := timeNow()
	sess := &session.Session{
		ID:          newSessionID(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Requirement: requirement,
		Context: session.Context{
			Domain:     domain,
			Audience:   session.ParseAudience(audience),
			Complexity: session.ComplexityModerate,
		},
		Status:     session.StatusInProgress,
		RoundCount: 1,
	}

	input := llm.BuildAnalyzerInput(requirement, domain, sess.Context.Audience)
	raw, err := s.client.Complete(ctx, llm.AnalyzerPrompt, input)
	if err != nil {
		return nil, fmt.Errorf("analyzing requirement: %w", err)
	}

	analysis, err := llm.DecodeAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("analyzing requirement: %w", err)
	}

	sess.Clarifications = newClarifications(analysis.Questions, 1)
	sess.Assumptions = analysis.ImplicitAssumptions
	sess.Recompute()

	s.registry.Put(sess)

	slog.InfoContext(ctx, "session started",
		"session_id", sess.ID,
		"questions", len(sess.Clarifications),
		"overall", sess.Completeness.Overall)

	return &StartResult{
		SessionID: sess.ID,
		Status:    sess.Status,
		Analysis: Analysis{
			CoreNeed:            analysis.CoreNeed,
			Entities:            analysis.Entities,
			ImplicitAssumptions: analysis.ImplicitAssumptions,
		},
		Questions:    questionViews(sess.Clarifications),
		Completeness: sess.Completeness,
		Instructions: "Use spec_answer_questions to provide answers to these questions.",
	}, nil
}

// SubmitAnswers records a batch of answers, recomputes completeness,
// and fetches a follow-up question round when the session is neither
// complete enough (overall < 80) nor out of rounds (round < 5).
//
// A follow-up gateway failure is non-fatal: the user's answers are
// already recorded and must not be lost to a downstream hiccup, so
// the cycle continues without new questions. Unmatched question ids
// are silently ignored; re-answering an id overwrites (last write
// wins).
func (s *Service) SubmitAnswers(ctx context.Context, sessionID string, answers []Answer) (*SubmitResult, error) {
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	for _, ans := range answers {
		for i := range sess.Clarifications {
			if sess.Clarifications[i].ID == ans.QuestionID {
				text := ans.Answer
				sess.Clarifications[i].Answer = &text
				break
			}
		}
	}

	sess.UpdatedAt = timeNow()
	sess.Recompute()

	var observations []string
	if sess.Completeness.Overall < session.ReadyThreshold && sess.RoundCount < session.MaxRounds {
		generated, err := s.followUpQuestions(ctx, sess)
		if err != nil {
			slog.WarnContext(ctx, "follow-up question generation failed, continuing without new questions",
				"session_id", sessionID,
				"kind", llm.KindOf(err),
				"error", err)
		} else {
			sess.Clarifications = append(sess.Clarifications,
				newClarifications(generated.Questions, sess.RoundCount+1)...)
			observations = generated.Observations
		}
	}

	// The stored score uses the post-increment round count — the new
	// round's bonus reflects the context this cycle surfaced.
	sess.RoundCount++
	sess.Recompute()

	if sess.Completeness.Overall >= session.ReadyThreshold && sess.Status == session.StatusInProgress {
		sess.Status = session.StatusReadyToGenerate
	}

	pending := sess.Pending()
	nextStep := fmt.Sprintf("Answer the %d pending questions to continue.", len(pending))
	if sess.Status == session.StatusReadyToGenerate {
		nextStep = "Completeness threshold reached. Use spec_generate to create the specification."
	}

	return &SubmitResult{
		SessionID:        sessionID,
		Status:           sess.Status,
		Completeness:     sess.Completeness,
		Round:            sess.RoundCount,
		AnswersRecorded:  len(answers),
		PendingQuestions: questionViews(pending),
		Observations:     observations,
		NextStep:         nextStep,
	}, nil
}

func (s *Service) followUpQuestions(ctx context.Context, sess *session.Session) (*llm.GeneratedQuestions, error) {
	raw, err := s.client.Complete(ctx, llm.QuestionGeneratorPrompt, llm.BuildQuestionInput(sess))
	if err != nil {
		return nil, err
	}
	return llm.DecodeQuestions(raw)
}

// Gaps runs a gap analysis over the current clarifications. Pure
// query — the session is never mutated, so gateway failures simply
// propagate.
func (s *Service) Gaps(ctx context.Context, sessionID string) (*GapsResult, error) {
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	raw, err := s.client.Complete(ctx, llm.GapAnalyzerPrompt, llm.BuildGapInput(sess))
	if err != nil {
		return nil, fmt.Errorf("analyzing gaps: %w", err)
	}

	analysis, err := llm.DecodeGapAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("analyzing gaps: %w", err)
	}

	recommendation := "Ready to generate specification. Use spec_generate."
	if !analysis.ReadyToGenerate {
		recommendation = fmt.Sprintf("Resolve blocking gaps first: %s", joinOrNone(analysis.BlockingGaps))
	}

	return &GapsResult{
		SessionID:      sessionID,
		Completeness:   sess.Completeness,
		GapAnalysis:    *analysis,
		Recommendation: recommendation,
	}, nil
}

// Generate compiles the final specification. Below 60% overall it
// returns a warning result without generating — a soft guard, not an
// error, so the caller may answer more questions and retry. Gateway
// failure preserves session state; status only advances to complete
// on success.
func (s *Service) Generate(ctx context.Context, sessionID string, format Format) (*GenerateResult, error) {
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	if sess.Completeness.Overall < session.GenerateThreshold {
		return &GenerateResult{
			SessionID:    sessionID,
			Status:       sess.Status,
			Completeness: sess.Completeness,
			Warning:      "Completeness is below 60%. Spec may have significant gaps.",
			Suggestion:   "Continue answering questions or use spec_get_gaps to see what's missing.",
		}, nil
	}

	raw, err := s.client.Complete(ctx, llm.CompilerPrompt, llm.BuildCompilerInput(sess))
	if err != nil {
		return nil, fmt.Errorf("compiling specification: %w", err)
	}

	spec, err := llm.DecodeSpec(raw)
	if err != nil {
		return nil, fmt.Errorf("compiling specification: %w", err)
	}

	sess.Status = session.StatusComplete
	sess.UpdatedAt = timeNow()

	result := &GenerateResult{
		SessionID:    sessionID,
		Status:       sess.Status,
		Completeness: sess.Completeness,
	}
	if format == FormatMarkdown {
		result.Document = specdoc.Render(spec, specdoc.Metadata{
			SessionID:    sessionID,
			Completeness: sess.Completeness.Overall,
		})
	} else {
		result.Spec = spec
	}
	return result, nil
}

// Status returns a full snapshot of the session. Pure read.
func (s *Service) Status(sessionID string) (*StatusResult, error) {
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	pending := sess.Pending()
	return &StatusResult{
		SessionID:    sessionID,
		Status:       sess.Status,
		CreatedAt:    sess.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    sess.UpdatedAt.Format(time.RFC3339),
		Requirement:  sess.Requirement,
		Context:      sess.Context,
		Completeness: sess.Completeness,
		RoundCount:   sess.RoundCount,
		Questions: QuestionCounts{
			Total:    len(sess.Clarifications),
			Answered: sess.AnsweredCount(),
			Pending:  len(pending),
		},
		PendingQuestions: questionViews(pending),
		Assumptions:      sess.Assumptions,
	}, nil
}

// newClarifications converts generated questions into clarifications
// with ids continuing the q{round}_{index} scheme.
func newClarifications(questions []llm.AnalyzedQuestion, round int) []session.Clarification {
	clarifications := make([]session.Clarification, 0, len(questions))
	for i, q := range questions {
		clarifications = append(clarifications, session.Clarification{
			ID:       fmt.Sprintf("q%d_%d", round, i+1),
			Question: q.Question,
			Category: q.Category,
			Priority: q.Priority,
			Why:      q.Why,
		})
	}
	return clarifications
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none identified"
	}
	out := items[0]
	for _, item := range items[1:] {
		out += ", " + item
	}
	return out
}
