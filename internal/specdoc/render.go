package specdoc

import (
	"fmt"
	"strings"
	"time"
)

// timeNow is a package-level var to allow test injection — the date
// stamp is the only non-deterministic part of a rendered document.
var timeNow = time.Now

// Metadata is the session context embedded in the document header.
type Metadata struct {
	SessionID    string
	Completeness int // overall percentage at generation time
}

// Render converts a structured specification into a markdown document
// with a fixed section ordering: header, problem statement, user flow,
// features, edge cases, assumptions, and (only if non-empty) open
// questions. Same input yields byte-identical output except for the
// date stamp.
func Render(spec *Spec, meta Metadata) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", spec.Title))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", timeNow().Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("**Session:** %s\n", meta.SessionID))
	sb.WriteString(fmt.Sprintf("**Completeness:** %d%%\n", meta.Completeness))

	sb.WriteString("\n---\n\n## Problem Statement\n\n")
	sb.WriteString(fmt.Sprintf("**Pain:** %s\n\n", spec.ProblemStatement.Pain))
	sb.WriteString(fmt.Sprintf("**Who:** %s\n\n", spec.ProblemStatement.Who))
	sb.WriteString("**Current Workarounds:**\n")
	for _, w := range spec.ProblemStatement.CurrentWorkarounds {
		sb.WriteString(fmt.Sprintf("- %s\n", w))
	}

	sb.WriteString("\n---\n\n## User Flow\n\n")
	for _, step := range spec.UserFlow {
		sb.WriteString(fmt.Sprintf("%d. **%s** -> %s -> *%s*\n", step.Step, step.Actor, step.Action, step.Outcome))
	}

	sb.WriteString("\n---\n\n## Features\n\n")
	for _, feature := range spec.Features {
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", feature.Name, strings.ToUpper(string(feature.Priority))))
		sb.WriteString(feature.Description)
		sb.WriteString("\n\n**Acceptance Criteria:**\n")
		for _, criterion := range feature.AcceptanceCriteria {
			sb.WriteString(fmt.Sprintf("- [ ] %s\n", criterion))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n## Edge Cases\n\n")
	sb.WriteString("| Scenario | Handling |\n")
	sb.WriteString("|---|---|\n")
	for _, edge := range spec.EdgeCases {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", edge.Scenario, edge.Handling))
	}

	sb.WriteString("\n---\n\n## Assumptions\n\n")
	for _, assumption := range spec.Assumptions {
		sb.WriteString(fmt.Sprintf("- %s\n", assumption))
	}

	if len(spec.OpenQuestions) > 0 {
		sb.WriteString("\n---\n\n## Open Questions\n\n")
		for _, question := range spec.OpenQuestions {
			sb.WriteString(fmt.Sprintf("- [ ] %s\n", question))
		}
	}

	sb.WriteString("\n---\n\n*Generated by Spec Iterator*\n")

	return sb.String()
}
