package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/spec-iterator/internal/session"
	"github.com/HendryAvila/spec-iterator/internal/specdoc"
)

// StripFences removes a markdown code-fence wrapper from model output:
// a leading fence (language-tagged or bare) and a trailing fence.
// Text without fences passes through unchanged.
func StripFences(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	return strings.TrimSpace(cleaned)
}

// decode strips fences and unmarshals into v. Any structural failure
// maps to malformed_response — raw parse errors never escape.
func decode(raw string, v any) error {
	if err := json.Unmarshal([]byte(StripFences(raw)), v); err != nil {
		return malformed(err)
	}
	return nil
}

// validateQuestions checks that every generated question carries a
// recognized category and priority. A schema violation here means the
// model ignored the instruction contract.
func validateQuestions(questions []AnalyzedQuestion) error {
	if len(questions) == 0 {
		return malformed(fmt.Errorf("response contains no questions"))
	}
	for i, q := range questions {
		if q.Question == "" {
			return malformed(fmt.Errorf("question %d has empty text", i+1))
		}
		if !session.ValidCategory(q.Category) {
			return malformed(fmt.Errorf("question %d has unknown category %q", i+1, q.Category))
		}
		if !session.ValidPriority(q.Priority) {
			return malformed(fmt.Errorf("question %d has unknown priority %q", i+1, q.Priority))
		}
	}
	return nil
}

// DecodeAnalysis parses requirement-analyzer output.
func DecodeAnalysis(raw string) (*RequirementAnalysis, error) {
	var analysis RequirementAnalysis
	if err := decode(raw, &analysis); err != nil {
		return nil, err
	}
	if err := validateQuestions(analysis.Questions); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DecodeQuestions parses follow-up question-generator output.
func DecodeQuestions(raw string) (*GeneratedQuestions, error) {
	var generated GeneratedQuestions
	if err := decode(raw, &generated); err != nil {
		return nil, err
	}
	if err := validateQuestions(generated.Questions); err != nil {
		return nil, err
	}
	return &generated, nil
}

// DecodeGapAnalysis parses gap-analyzer output.
func DecodeGapAnalysis(raw string) (*GapAnalysis, error) {
	var analysis GapAnalysis
	if err := decode(raw, &analysis); err != nil {
		return nil, err
	}
	for i, g := range analysis.Gaps {
		if !session.ValidCategory(g.Category) {
			return nil, malformed(fmt.Errorf("gap %d has unknown category %q", i+1, g.Category))
		}
	}
	return &analysis, nil
}

// DecodeSpec parses spec-compiler output into the structured
// specification the document compiler renders.
func DecodeSpec(raw string) (*specdoc.Spec, error) {
	var spec specdoc.Spec
	if err := decode(raw, &spec); err != nil {
		return nil, err
	}
	if spec.Title == "" {
		return nil, malformed(fmt.Errorf("specification has no title"))
	}
	return &spec, nil
}
