// Completeness scoring.
//
// Score is the heart of the round-progression logic: a pure function
// from (clarifications, round count) to a multi-dimensional score.
// The dialogue service recomputes it eagerly after every mutation so
// the stored score is always consistent with the clarification list.
package session

import "math"

// Thresholds and limits for round progression.
const (
	// ReadyThreshold is the overall score at which a session becomes
	// ready_to_generate and follow-up questions stop.
	ReadyThreshold = 80

	// GenerateThreshold is the minimum overall score for spec
	// generation. Below it, generate returns a warning instead.
	GenerateThreshold = 60

	// MaxRounds caps how many question rounds a session may run.
	MaxRounds = 5

	// maxRoundBonus caps the accumulated-context bonus.
	maxRoundBonus = 30
)

// Category weights for the overall aggregate. They sum to 1.0.
var categoryWeights = map[Category]float64{
	CategoryFunctional: 0.30,
	CategoryTechnical:  0.25,
	CategoryUX:         0.20,
	CategoryEdgeCase:   0.15,
	CategoryConstraint: 0.10,
}

// Baseline score for a category with no clarifications at all. Even an
// unasked category carries some implicit information from the original
// free-text requirement.
var categoryBaselines = map[Category]int{
	CategoryFunctional: 15,
	CategoryTechnical:  10,
	CategoryUX:         5,
	CategoryEdgeCase:   5,
	CategoryConstraint: 10,
}

// Score computes the completeness score for a clarification list at
// the given round count. Deterministic and side-effect free.
//
// Per category: answered/total as a rounded percentage, or the
// category baseline when no questions exist for it. The overall score
// is the weighted sum. A round bonus of min(roundCount*10, 30) is then
// added to every dimension independently, each clamped to 100.
func Score(clarifications []Clarification, roundCount int) CompletenessScore {
	type counts struct {
		answered int
		total    int
	}
	byCategory := make(map[Category]counts, len(Categories))

	for _, c := range clarifications {
		n := byCategory[c.Category]
		n.total++
		if c.Answered() {
			n.answered++
		}
		byCategory[c.Category] = n
	}

	raw := make(map[Category]int, len(Categories))
	overall := 0.0
	for _, cat := range Categories {
		n := byCategory[cat]
		score := categoryBaselines[cat]
		if n.total > 0 {
			// Halves round up: 1/8 answered scores 13, not 12.
			score = int(math.Round(float64(n.answered) / float64(n.total) * 100))
		}
		raw[cat] = score
		overall += float64(score) * categoryWeights[cat]
	}

	bonus := roundCount * 10
	if bonus > maxRoundBonus {
		bonus = maxRoundBonus
	}

	return CompletenessScore{
		Overall:     clamp(int(math.Round(overall)) + bonus),
		Functional:  clamp(raw[CategoryFunctional] + bonus),
		Technical:   clamp(raw[CategoryTechnical] + bonus),
		UX:          clamp(raw[CategoryUX] + bonus),
		EdgeCases:   clamp(raw[CategoryEdgeCase] + bonus),
		Constraints: clamp(raw[CategoryConstraint] + bonus),
	}
}

func clamp(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
