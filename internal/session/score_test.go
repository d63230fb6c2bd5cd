package session

import (
	"fmt"
	"testing"
)

func answered(id string, cat Category) Clarification {
	a := "some answer"
	return Clarification{ID: id, Question: "q", Answer: &a, Category: cat, Priority: PriorityImportant}
}

func unanswered(id string, cat Category) Clarification {
	return Clarification{ID: id, Question: "q", Category: cat, Priority: PriorityImportant}
}

// --- Baselines ---

func TestScore_EmptySession_UsesBaselines(t *testing.T) {
	got := Score(nil, 0)

	want := CompletenessScore{Overall: 10, Functional: 15, Technical: 10, UX: 5, EdgeCases: 5, Constraints: 10}
	if got != want {
		t.Errorf("Score(nil, 0) = %+v, want %+v", got, want)
	}
}

func TestScore_EmptySession_RoundBonusAppliesToEveryDimension(t *testing.T) {
	got := Score(nil, 1)

	want := CompletenessScore{Overall: 20, Functional: 25, Technical: 20, UX: 15, EdgeCases: 15, Constraints: 20}
	if got != want {
		t.Errorf("Score(nil, 1) = %+v, want %+v", got, want)
	}
}

// --- Category ratios ---

func TestScore_UnansweredQuestionReplacesBaseline(t *testing.T) {
	clars := []Clarification{unanswered("q1_1", CategoryFunctional)}
	got := Score(clars, 0)

	if got.Functional != 0 {
		t.Errorf("Functional = %d, want 0 (question present but unanswered)", got.Functional)
	}
	// Untouched categories keep their baselines.
	if got.Technical != 10 || got.UX != 5 {
		t.Errorf("baselines changed: technical=%d ux=%d", got.Technical, got.UX)
	}
}

func TestScore_PartiallyAnsweredCategory(t *testing.T) {
	clars := []Clarification{
		answered("q1_1", CategoryFunctional),
		unanswered("q1_2", CategoryFunctional),
	}
	got := Score(clars, 0)

	if got.Functional != 50 {
		t.Errorf("Functional = %d, want 50 (1 of 2 answered)", got.Functional)
	}
}

func TestScore_RatioRoundsToNearest(t *testing.T) {
	clars := []Clarification{
		answered("q1_1", CategoryEdgeCase),
		unanswered("q1_2", CategoryEdgeCase),
		unanswered("q1_3", CategoryEdgeCase),
	}
	got := Score(clars, 0)

	if got.EdgeCases != 33 {
		t.Errorf("EdgeCases = %d, want 33 (round of 33.33)", got.EdgeCases)
	}
}

func TestScore_HalfRatioRoundsUp(t *testing.T) {
	clars := []Clarification{answered("q1_1", CategoryUX)}
	for i := 2; i <= 8; i++ {
		clars = append(clars, unanswered(fmt.Sprintf("q1_%d", i), CategoryUX))
	}
	got := Score(clars, 0)

	if got.UX != 13 {
		t.Errorf("UX = %d, want 13 (12.5 rounds up)", got.UX)
	}
}

// --- Overall aggregate ---

func TestScore_OverallIsWeightedSum(t *testing.T) {
	// functional fully answered, everything else at baseline:
	// 100*.30 + 10*.25 + 5*.20 + 5*.15 + 10*.10 = 35.25 -> 35
	clars := []Clarification{answered("q1_1", CategoryFunctional)}
	got := Score(clars, 0)

	if got.Overall != 35 {
		t.Errorf("Overall = %d, want 35", got.Overall)
	}
}

func TestScore_AllCategoriesAnswered_ClampsAt100(t *testing.T) {
	var clars []Clarification
	for i, cat := range Categories {
		clars = append(clars, answered(string(rune('a'+i)), cat))
	}
	got := Score(clars, 1)

	want := CompletenessScore{Overall: 100, Functional: 100, Technical: 100, UX: 100, EdgeCases: 100, Constraints: 100}
	if got != want {
		t.Errorf("Score = %+v, want all 100", got)
	}
}

// --- Round bonus ---

func TestScore_RoundBonusCapsAt30(t *testing.T) {
	three := Score(nil, 3)
	five := Score(nil, 5)

	if three != five {
		t.Errorf("bonus should cap at round 3: round 3 = %+v, round 5 = %+v", three, five)
	}
	if three.Overall != 40 {
		t.Errorf("Overall at capped bonus = %d, want 40", three.Overall)
	}
}

func TestScore_MonotonicInRounds(t *testing.T) {
	clars := []Clarification{answered("q1_1", CategoryFunctional)}
	prev := -1
	for round := 0; round <= MaxRounds; round++ {
		got := Score(clars, round).Overall
		if got < prev {
			t.Fatalf("Overall decreased at round %d: %d < %d", round, got, prev)
		}
		prev = got
	}
}

func TestScore_Deterministic(t *testing.T) {
	clars := []Clarification{
		answered("q1_1", CategoryFunctional),
		unanswered("q1_2", CategoryTechnical),
		answered("q1_3", CategoryConstraint),
	}
	first := Score(clars, 2)
	second := Score(clars, 2)

	if first != second {
		t.Errorf("repeated scoring differs: %+v vs %+v", first, second)
	}
}

// --- Session.Recompute ---

func TestRecompute_MatchesScore(t *testing.T) {
	s := &Session{
		Clarifications: []Clarification{answered("q1_1", CategoryFunctional)},
		RoundCount:     2,
	}
	s.Recompute()

	if want := Score(s.Clarifications, 2); s.Completeness != want {
		t.Errorf("Recompute stored %+v, want %+v", s.Completeness, want)
	}
}
